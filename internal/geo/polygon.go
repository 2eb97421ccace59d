package geo

// Polygon：一个外环加若干洞；点在多边形内当且仅当在外环内且不在任何洞内
type Polygon struct {
	Outer Ring
	Holes []Ring
}

// NewPolygon：按结构而非绕向确定外环
// 约束：面积最大的环视为外环，其余均为洞；源数据的环顺序与方向均不保证
func NewPolygon(rings ...Ring) Polygon {
	if len(rings) == 0 {
		return Polygon{}
	}
	outer := 0
	best := rings[0].Area()
	for i := 1; i < len(rings); i++ {
		if a := rings[i].Area(); a > best {
			outer, best = i, a
		}
	}
	p := Polygon{Outer: rings[outer]}
	for i, r := range rings {
		if i != outer {
			p.Holes = append(p.Holes, r)
		}
	}
	return p
}

// Rings：外环在前，洞随后
func (p Polygon) Rings() []Ring {
	out := make([]Ring, 0, 1+len(p.Holes))
	out = append(out, p.Outer)
	return append(out, p.Holes...)
}

// Bounds：洞完全嵌套于外环，包围盒即外环的包围盒
func (p Polygon) Bounds() BBox { return p.Outer.Bounds() }

// MultiPolygon：一个国家的全部领土（离散陆块、飞地）
type MultiPolygon []Polygon

// VertexCount：领土全部环的顶点数
func (m MultiPolygon) VertexCount() int {
	n := 0
	for _, p := range m {
		for _, r := range p.Rings() {
			n += len(r)
		}
	}
	return n
}
