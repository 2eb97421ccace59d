package revgeo

import (
	"cmp"
	"math"
	"slices"

	"country-api/internal/country"
	"country-api/internal/geo"
)

// DefaultCellDegrees：默认网格边长（度）；越小候选越少、内存越多
const DefaultCellDegrees = 2.0

// Candidate：索引给出的待精确判定的（国家, 多边形）对
type Candidate struct {
	Country *country.Country
	Polygon int
	Bounds  geo.BBox
}

type entry struct {
	country *country.Country
	order   int
	polygon int
	bounds  geo.BBox
	area    float64
}

// 文档注释：均匀经纬网格空间索引
// 背景：将每次查询的候选从全部国家缩小到包围盒可能覆盖该点的少数多边形；只做保守预过滤，不判定包含关系。
// 约束：每个多边形一条记录，按包围盒面积升序编号（同面积按目录顺序、多边形顺序），
// 因此每个格子内的编号列表天然有序，查询结果按"小面积优先"输出；跨线包围盒按两段分别登记。
// 构建后只读，查询不写共享状态。
type Index struct {
	cell    float64
	cols    int
	rows    int
	cells   [][]int32
	entries []entry
}

// IndexStats：索引规模统计
type IndexStats struct {
	CellDegrees float64 `json:"cell_degrees"`
	Entries     int     `json:"entries"`
	Cells       int     `json:"cells"`
	MaxLoad     int     `json:"max_load"`
	Refs        int     `json:"refs"`
}

// NewIndex：基于目录中每个多边形的包围盒构建网格
func NewIndex(cat *country.Catalog, cellDeg float64) *Index {
	if !(cellDeg > 0) || cellDeg > 180 {
		cellDeg = DefaultCellDegrees
	}
	ix := &Index{
		cell: cellDeg,
		cols: int(math.Ceil(360 / cellDeg)),
		rows: int(math.Ceil(180 / cellDeg)),
	}
	for i := 0; i < cat.Len(); i++ {
		c := cat.At(i)
		for pi, p := range c.Territory {
			b := p.Bounds()
			ix.entries = append(ix.entries, entry{country: c, order: i, polygon: pi, bounds: b, area: b.Area()})
		}
	}
	slices.SortStableFunc(ix.entries, func(a, b entry) int {
		return cmp.Or(cmp.Compare(a.area, b.area), cmp.Compare(a.order, b.order), cmp.Compare(a.polygon, b.polygon))
	})
	ix.cells = make([][]int32, ix.cols*ix.rows)
	for id, e := range ix.entries {
		for _, b := range e.bounds.Split() {
			r0, c0 := ix.cellOf(b.MinLat, b.MinLon)
			r1, c1 := ix.cellOf(b.MaxLat, b.MaxLon)
			for r := r0; r <= r1; r++ {
				for c := c0; c <= c1; c++ {
					k := r*ix.cols + c
					if l := ix.cells[k]; len(l) > 0 && l[len(l)-1] == int32(id) {
						continue
					}
					ix.cells[k] = append(ix.cells[k], int32(id))
				}
			}
		}
	}
	return ix
}

func (ix *Index) cellOf(lat, lon float64) (row, col int) {
	row = clamp(int(math.Floor((lat+90)/ix.cell)), 0, ix.rows-1)
	col = clamp(int(math.Floor((lon+180)/ix.cell)), 0, ix.cols-1)
	return row, col
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Each：按优先级顺序回调候选，fn 返回 false 时停止；不分配内存
// 约束：经度恰为 ±180 时同时探测首尾两列并去重
func (ix *Index) Each(pt geo.Point, fn func(Candidate) bool) {
	row, col := ix.cellOf(pt.Lat, pt.Lon)
	a := ix.cells[row*ix.cols+col]
	var b []int32
	if pt.Lon == 180 || pt.Lon == -180 {
		alt := 0
		if col == 0 {
			alt = ix.cols - 1
		}
		if alt != col {
			b = ix.cells[row*ix.cols+alt]
		}
	}
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		var id int32
		switch {
		case j >= len(b) || (i < len(a) && a[i] < b[j]):
			id = a[i]
			i++
		case i >= len(a) || b[j] < a[i]:
			id = b[j]
			j++
		default:
			id = a[i]
			i++
			j++
		}
		e := &ix.entries[id]
		if !e.bounds.Contains(pt) {
			continue
		}
		if !fn(Candidate{Country: e.country, Polygon: e.polygon, Bounds: e.bounds}) {
			return
		}
	}
}

// Query：返回有序、去重的候选列表；空列表等价于"无国家"
func (ix *Index) Query(pt geo.Point) []Candidate {
	var out []Candidate
	ix.Each(pt, func(c Candidate) bool {
		out = append(out, c)
		return true
	})
	return out
}

// Stats：网格规模与最大格子负载
func (ix *Index) Stats() IndexStats {
	s := IndexStats{CellDegrees: ix.cell, Entries: len(ix.entries)}
	for _, l := range ix.cells {
		if len(l) == 0 {
			continue
		}
		s.Cells++
		s.Refs += len(l)
		if len(l) > s.MaxLoad {
			s.MaxLoad = len(l)
		}
	}
	return s
}
