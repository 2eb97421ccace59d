package country

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

var (
	ErrEmptyCatalog   = errors.New("empty catalog")
	ErrMissingISO     = errors.New("missing iso code")
	ErrDuplicateISO   = errors.New("duplicate iso code")
	ErrEmptyTerritory = errors.New("territory has no polygons")
	ErrDegenerateRing = errors.New("ring has fewer than 3 points")
)

// DataIntegrityError：目录构建期的数据完整性错误；Err 为上面的哨兵错误之一
type DataIntegrityError struct {
	ISO     string
	Index   int // 记录在输入中的位置
	Polygon int
	Ring    int
	Err     error
}

func (e *DataIntegrityError) Error() string {
	if errors.Is(e.Err, ErrDegenerateRing) {
		return fmt.Sprintf("country %q (#%d) polygon %d ring %d: %v", e.ISO, e.Index, e.Polygon, e.Ring, e.Err)
	}
	return fmt.Sprintf("country %q (#%d): %v", e.ISO, e.Index, e.Err)
}

func (e *DataIntegrityError) Unwrap() error { return e.Err }

// 文档注释：国家目录（只读）
// 背景：进程启动时一次性构建，之后在全部查询间共享；顺序即加载顺序。
// 约束：构建失败时不返回部分目录；不做自相交、绕向等几何校验。
type Catalog struct {
	countries []*Country
	byISO     map[string]*Country
}

// NewCatalog：校验并构建目录
func NewCatalog(countries []*Country) (*Catalog, error) {
	if len(countries) == 0 {
		return nil, &DataIntegrityError{Index: -1, Err: ErrEmptyCatalog}
	}
	byISO := make(map[string]*Country, len(countries))
	for i, c := range countries {
		key := strings.ToUpper(c.ISO)
		if key == "" {
			return nil, &DataIntegrityError{Index: i, Err: ErrMissingISO}
		}
		if _, ok := byISO[key]; ok {
			return nil, &DataIntegrityError{ISO: c.ISO, Index: i, Err: ErrDuplicateISO}
		}
		if len(c.Territory) == 0 {
			return nil, &DataIntegrityError{ISO: c.ISO, Index: i, Err: ErrEmptyTerritory}
		}
		for pi, p := range c.Territory {
			for ri, r := range p.Rings() {
				if len(r) < 3 {
					return nil, &DataIntegrityError{ISO: c.ISO, Index: i, Polygon: pi, Ring: ri, Err: ErrDegenerateRing}
				}
			}
		}
		byISO[key] = c
	}
	list := make([]*Country, len(countries))
	copy(list, countries)
	return &Catalog{countries: list, byISO: byISO}, nil
}

// Len：已加载国家数
func (c *Catalog) Len() int { return len(c.countries) }

// At：按加载顺序取第 i 个国家
func (c *Catalog) At(i int) *Country { return c.countries[i] }

// Get：按 ISO 代码查询（大小写不敏感）
func (c *Catalog) Get(iso string) (*Country, bool) {
	v, ok := c.byISO[strings.ToUpper(strings.TrimSpace(iso))]
	return v, ok
}

// All：按加载顺序惰性遍历；每次调用都从头开始
func (c *Catalog) All() iter.Seq[*Country] {
	return func(yield func(*Country) bool) {
		for _, v := range c.countries {
			if !yield(v) {
				return
			}
		}
	}
}
