package revgeo

import (
	"errors"
	"iter"

	"country-api/internal/country"
	"country-api/internal/geo"
)

// 文档注释：反地理查询门面（索引候选 → 精确判定 → 首个命中）
// 背景：目录与索引在启动时一次性构建，之后以共享只读引用提供给全部调用方；无锁、无缓存写入。
// 约束：候选按包围盒面积升序测试，首个命中即返回，因此飞地/内陆国总是先于包围它的国家被判定。
type Geocoder struct {
	catalog *country.Catalog
	index   *Index
}

// New：在已校验的目录上构建索引
func New(cat *country.Catalog, opts ...Option) *Geocoder {
	o := options{cellDeg: DefaultCellDegrees}
	for _, fn := range opts {
		fn(&o)
	}
	return &Geocoder{catalog: cat, index: NewIndex(cat, o.cellDeg)}
}

// Build：目录与索引要么一起构建成功，要么返回错误（*country.DataIntegrityError）
func Build(countries []*country.Country, opts ...Option) (*Geocoder, error) {
	cat, err := country.NewCatalog(countries)
	if err != nil {
		return nil, err
	}
	return New(cat, opts...), nil
}

// Resolve：返回包含该点的国家
// 异常：坐标越界返回 *OutOfRangeError；无命中返回 ErrNoMatch
func (g *Geocoder) Resolve(lat, lon float64) (*country.Country, error) {
	pt := geo.Point{Lat: lat, Lon: lon}
	if !pt.Valid() {
		return nil, &OutOfRangeError{Lat: lat, Lon: lon}
	}
	var found *country.Country
	g.index.Each(pt, func(c Candidate) bool {
		if PolygonContains(c.Country.Territory[c.Polygon], pt) {
			found = c.Country
			return false
		}
		return true
	})
	if found == nil {
		return nil, ErrNoMatch
	}
	return found, nil
}

// Country：按坐标查询国家；越界与未命中都表现为 ok=false
func (g *Geocoder) Country(lat, lon float64) (*country.Country, bool) {
	c, err := g.Resolve(lat, lon)
	return c, err == nil
}

// IsOutOfRange：判断 Resolve 返回的错误是否为坐标越界
func IsOutOfRange(err error) bool {
	var oe *OutOfRangeError
	return errors.As(err, &oe)
}

// Countries：按加载顺序惰性遍历全部国家，可重复遍历
func (g *Geocoder) Countries() iter.Seq[*country.Country] { return g.catalog.All() }

func (g *Geocoder) Catalog() *country.Catalog { return g.catalog }

// Candidates：调试用，返回索引对该点给出的候选（越界坐标返回空）
func (g *Geocoder) Candidates(lat, lon float64) []Candidate {
	pt := geo.Point{Lat: lat, Lon: lon}
	if !pt.Valid() {
		return nil
	}
	return g.index.Query(pt)
}

func (g *Geocoder) IndexStats() IndexStats { return g.index.Stats() }
