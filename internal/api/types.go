package api

import (
	"country-api/internal/country"
	"country-api/internal/ipgeo"
)

// 文档注释：国家摘要（对外）
// 背景：/country、/countries、/ip 共用同一序列化模型；领土几何不对外输出。
// 约束：字段稳定；数值保持加载器原值（面积为平方千米，人口为整数）。
type countrySummary struct {
	ISO        string   `json:"iso"`
	ISO3       string   `json:"iso3"`
	ISONumeric int      `json:"iso_numeric"`
	Name       string   `json:"name"`
	Capital    string   `json:"capital,omitempty"`
	Continent  string   `json:"continent"`
	AreaKm2    float64  `json:"area_km2"`
	Population int64    `json:"population"`
	Currency   string   `json:"currency,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	TLD        string   `json:"tld,omitempty"`
	Languages  []string `json:"languages"`
	GeonameID  int64    `json:"geoname_id,omitempty"`
}

// countryDetail：/countries/{iso} 额外给出邮编规则、邻国与领土规模
type countryDetail struct {
	countrySummary
	FIPS           string   `json:"fips,omitempty"`
	EquivalentFIPS string   `json:"equivalent_fips,omitempty"`
	CurrencyName   string   `json:"currency_name,omitempty"`
	PostalFormat   string   `json:"postal_format,omitempty"`
	PostalRegex    string   `json:"postal_regex,omitempty"`
	Neighbours     []string `json:"neighbours"`
	Polygons       int      `json:"polygons"`
	Vertices       int      `json:"vertices"`
}

type ipResult struct {
	Location ipgeo.Location  `json:"location"`
	Country  *countrySummary `json:"country"`
}

type errorBody struct {
	Error string `json:"error"`
}

func summarize(c *country.Country) countrySummary {
	langs := make([]string, len(c.Locales))
	for i, t := range c.Locales {
		langs[i] = t.String()
	}
	return countrySummary{
		ISO: c.ISO, ISO3: c.ISO3, ISONumeric: c.ISONumeric, Name: c.Name, Capital: c.Capital,
		Continent: c.Continent, AreaKm2: c.Area, Population: c.Population, Currency: c.CurrencyCode,
		Phone: c.Phone, TLD: c.TLD, Languages: langs, GeonameID: c.GeonameID,
	}
}

func detail(c *country.Country) countryDetail {
	nb := c.Neighbours
	if nb == nil {
		nb = []string{}
	}
	return countryDetail{
		countrySummary: summarize(c),
		FIPS:           c.FIPS,
		EquivalentFIPS: c.EquivalentFIPS,
		CurrencyName:   c.CurrencyName,
		PostalFormat:   c.PostalCodeFormat,
		PostalRegex:    c.PostalCodeRegex,
		Neighbours:     nb,
		Polygons:       len(c.Territory),
		Vertices:       c.Territory.VertexCount(),
	}
}
