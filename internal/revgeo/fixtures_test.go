package revgeo

import (
	"testing"

	"country-api/internal/country"
	"country-api/internal/geo"
)

func rect(minLat, minLon, maxLat, maxLon float64) geo.Ring {
	return geo.Ring{{Lat: minLat, Lon: minLon}, {Lat: minLat, Lon: maxLon}, {Lat: maxLat, Lon: maxLon}, {Lat: maxLat, Lon: minLon}}
}

// 简化的测试世界：形状围绕真实坐标设计，保证与参考数据集一致的判定结果
// TH/LA 共享一条 lat+lon=122.136 的斜边界；LS 作为 ZA 的洞；FJ 横跨 ±180。
func testWorld() []*country.Country {
	locTH, _ := country.ParseLocales("th,en")
	locGB, _ := country.ParseLocales("en-GB,cy-GB,gd")
	locLS, _ := country.ParseLocales("en-LS,st,zu,xh")
	lesotho := rect(-30.7, 27.0, -28.5, 29.5)
	return []*country.Country{
		{
			ISO: "TH", ISO3: "THA", Name: "Thailand", Continent: "AS", Population: 67089500, Area: 514000, Locales: locTH,
			Territory: geo.MultiPolygon{geo.NewPolygon(geo.Ring{{Lat: 5, Lon: 97}, {Lat: 5, Lon: 107}, {Lat: 15.136, Lon: 107}, {Lat: 20.136, Lon: 102}, {Lat: 20.136, Lon: 97}})},
		},
		{
			ISO: "LA", ISO3: "LAO", Name: "Laos", Continent: "AS", Population: 6368162, Area: 236800,
			Territory: geo.MultiPolygon{geo.NewPolygon(geo.Ring{{Lat: 15.136, Lon: 107}, {Lat: 22.5, Lon: 107}, {Lat: 22.5, Lon: 102}, {Lat: 20.136, Lon: 102}})},
		},
		{
			ISO: "US", ISO3: "USA", Name: "United States", Continent: "NA", Population: 310232863, Area: 9629091,
			Territory: geo.MultiPolygon{
				geo.NewPolygon(rect(25, -125, 49, -67)),
				geo.NewPolygon(rect(18.9, -160.3, 22.3, -154.8)),
			},
		},
		{
			ISO: "ZA", ISO3: "ZAF", Name: "South Africa", Continent: "AF", Population: 49000000, Area: 1219912,
			Territory: geo.MultiPolygon{geo.NewPolygon(rect(-35, 16, -22, 33), lesotho)},
		},
		{
			ISO: "LS", ISO3: "LSO", Name: "Lesotho", Continent: "AF", Population: 1919552, Area: 30355, Locales: locLS,
			Territory: geo.MultiPolygon{geo.NewPolygon(lesotho)},
		},
		{
			ISO: "FJ", ISO3: "FJI", Name: "Fiji", Continent: "OC", Population: 875983, Area: 18270,
			Territory: geo.MultiPolygon{geo.NewPolygon(geo.Ring{{Lat: -19, Lon: 177}, {Lat: -19, Lon: -178}, {Lat: -16, Lon: -178}, {Lat: -16, Lon: 177}})},
		},
		{
			ISO: "GB", ISO3: "GBR", Name: "United Kingdom", Continent: "EU", Population: 62348447, Area: 244820, Locales: locGB,
			Territory: geo.MultiPolygon{geo.NewPolygon(rect(49.9, -8, 58.7, 1.8))},
		},
		{
			ISO: "AU", ISO3: "AUS", Name: "Australia", Continent: "OC", Population: 21515754, Area: 7686850,
			Territory: geo.MultiPolygon{geo.NewPolygon(rect(-34.9, 113, -11, 154))},
		},
	}
}

func testGeocoder(t *testing.T, opts ...Option) *Geocoder {
	t.Helper()
	g, err := Build(testWorld(), opts...)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return g
}
