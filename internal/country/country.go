// 包 country：国家属性记录与只读目录
package country

import (
	"regexp"
	"strings"

	"country-api/internal/geo"

	"golang.org/x/text/language"
)

// 文档注释：国家记录（属性 + 领土）
// 背景：字段对应 geonames countryInfo.txt 的 19 列；领土由外部加载器提供的多边形集合组成。
// 约束：构建目录后视为只读；可选字段以零值表示缺失（PostalCodePattern 为 nil 表示无邮编规则）。
type Country struct {
	ISO              string
	ISO3             string
	ISONumeric       int
	FIPS             string
	Name             string
	Capital          string
	Area             float64 // 平方千米，保留加载器原值
	Population       int64
	Continent        string
	TLD              string
	CurrencyCode     string
	CurrencyName     string
	Phone            string
	PostalCodeFormat string
	PostalCodeRegex  string
	// 由 PostalCodeRegex 编译；RE2 不支持的表达式保持为 nil
	PostalCodePattern *regexp.Regexp
	// 按使用人数排序，保持加载器给出的顺序
	Locales        []language.Tag
	GeonameID      int64
	Neighbours     []string
	EquivalentFIPS string
	Territory      geo.MultiPolygon
}

// MatchPostalCode：按国家邮编正则校验；无规则时返回 false
func (c *Country) MatchPostalCode(code string) bool {
	if c.PostalCodePattern == nil {
		return false
	}
	return c.PostalCodePattern.MatchString(strings.TrimSpace(code))
}

// ParseLocales：解析逗号分隔的语言标签（如 "en-GB,cy-GB,gd"）
// 返回：成功解析的标签（保持原顺序）与无法识别的原始片段
func ParseLocales(s string) ([]language.Tag, []string) {
	var tags []language.Tag
	var bad []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		tag, err := language.Parse(part)
		if err != nil {
			bad = append(bad, part)
			continue
		}
		tags = append(tags, tag)
	}
	return tags, bad
}
