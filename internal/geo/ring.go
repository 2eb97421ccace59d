package geo

import "math"

// 文档注释：闭合环（外环或洞）
// 背景：边界数据来自外部文件，首尾点可能重复，经度可能以 179→-179 或 179→181 两种方式表达跨线。
// 约束：不假设顺/逆时针方向；相邻顶点的经度差一律按最短方向解释。
type Ring []Point

// NewRing：复制顶点并去掉重复的闭合点
func NewRing(pts []Point) Ring {
	n := len(pts)
	if n > 1 && pts[0] == pts[n-1] {
		n--
	}
	r := make(Ring, n)
	copy(r, pts[:n])
	return r
}

// unwrap：沿环累加最短经度差得到连续经度序列；winding 为闭合边之后的总经度位移
func (r Ring) unwrap() (lons []float64, winding float64) {
	if len(r) == 0 {
		return nil, 0
	}
	lons = make([]float64, len(r))
	lon := r[0].Lon
	lons[0] = lon
	for i := 1; i < len(r); i++ {
		lon += DeltaLon(r[i-1].Lon, r[i].Lon)
		lons[i] = lon
	}
	lon += DeltaLon(r[len(r)-1].Lon, r[0].Lon)
	return lons, lon - r[0].Lon
}

// EnclosesPole：环沿经度方向绕地球一周（如南极洲沿海岸线闭合，顶点不一定到达 -90）
func (r Ring) EnclosesPole() bool {
	_, w := r.unwrap()
	return math.Abs(w) > 180
}

// Bounds：在连续经度上计算包围盒，跨线时返回 MinLon > MaxLon 的盒
func (r Ring) Bounds() BBox {
	if len(r) == 0 {
		return BBox{}
	}
	lons, winding := r.unwrap()
	b := BBox{MinLat: r[0].Lat, MaxLat: r[0].Lat, MinLon: lons[0], MaxLon: lons[0]}
	for i, p := range r {
		b.MinLat = math.Min(b.MinLat, p.Lat)
		b.MaxLat = math.Max(b.MaxLat, p.Lat)
		b.MinLon = math.Min(b.MinLon, lons[i])
		b.MaxLon = math.Max(b.MaxLon, lons[i])
	}
	if math.Abs(winding) > 180 {
		// 绕极环只支持南极：射线向北，环以南直到 -90 都属于环内
		b.MinLat = -90
		b.MinLon, b.MaxLon = -180, 180
		return b
	}
	if b.MaxLon-b.MinLon >= 360 {
		b.MinLon, b.MaxLon = -180, 180
		return b
	}
	shift := NormLon(b.MinLon) - b.MinLon
	b.MinLon += shift
	b.MaxLon += shift
	if b.MaxLon > 180 {
		b.MaxLon -= 360
	}
	return b
}

// Area：连续经度上的鞋带公式面积（度²，取绝对值）；绕极环按包围带面积估算
func (r Ring) Area() float64 {
	if len(r) < 3 {
		return 0
	}
	lons, winding := r.unwrap()
	if math.Abs(winding) > 180 {
		b := r.Bounds()
		return 360 * (b.MaxLat - b.MinLat)
	}
	x0, y0 := lons[0], r[0].Lat
	var sum float64
	for i := range r {
		j := (i + 1) % len(r)
		xi, yi := lons[i]-x0, r[i].Lat-y0
		xj, yj := lons[j]-x0, r[j].Lat-y0
		sum += xi*yj - xj*yi
	}
	return math.Abs(sum) / 2
}
