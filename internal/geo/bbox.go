package geo

// 文档注释：经纬度包围盒
// 背景：用于空间索引登记与候选预过滤；跨越 ±180 的盒以 MinLon > MaxLon 表达，不做裁剪。
// 约束：跨线盒覆盖 [MinLon,180] ∪ [-180,MaxLon]；全经度盒为 [-180,180]。
type BBox struct {
	MinLat float64
	MinLon float64
	MaxLat float64
	MaxLon float64
}

// Wraps：是否跨越反子午线
func (b BBox) Wraps() bool { return b.MinLon > b.MaxLon }

// Contains：点是否落在盒内（含边界）；经度 180 与 -180 视为同一条子午线
func (b BBox) Contains(p Point) bool {
	if p.Lat < b.MinLat || p.Lat > b.MaxLat {
		return false
	}
	if b.containsLon(p.Lon) {
		return true
	}
	switch p.Lon {
	case 180:
		return b.containsLon(-180)
	case -180:
		return b.containsLon(180)
	}
	return false
}

func (b BBox) containsLon(lon float64) bool {
	if b.Wraps() {
		return lon >= b.MinLon || lon <= b.MaxLon
	}
	return lon >= b.MinLon && lon <= b.MaxLon
}

// Split：拆成一个或两个不跨线的盒，供网格登记
func (b BBox) Split() []BBox {
	if !b.Wraps() {
		return []BBox{b}
	}
	return []BBox{
		{MinLat: b.MinLat, MinLon: b.MinLon, MaxLat: b.MaxLat, MaxLon: 180},
		{MinLat: b.MinLat, MinLon: -180, MaxLat: b.MaxLat, MaxLon: b.MaxLon},
	}
}

// Width：经度跨度（度），跨线盒按两段之和计算
func (b BBox) Width() float64 {
	if b.Wraps() {
		return (180 - b.MinLon) + (b.MaxLon + 180)
	}
	return b.MaxLon - b.MinLon
}

// Area：平面面积（度²），仅用于候选排序
func (b BBox) Area() float64 { return b.Width() * (b.MaxLat - b.MinLat) }
