package revgeo

import (
	"math"

	"country-api/internal/geo"
)

// 点相对于环的位置
type location int8

const (
	outside location = iota
	inside
	boundary
)

// 边/顶点判定容差（度），约 0.1 微米，仅吸收浮点舍入
const boundaryEps = 1e-12

// 文档注释：点入环判定（射线奇偶法）
// 背景：射线沿查询点所在经线指向北极；每个顶点先换算为相对查询点的最短经度差，
// 因此 ±180 附近的环与其他经度带完全同等处理，不存在 [0,360) 重映射带来的接缝。
// 约束：半开规则 (ra > 0) != (rb > 0) 保证恰好落在射线上的顶点只计一次；
// 经度跨度超过 180 的边视为跨越查询点的对跖经线，不可能与射线相交；
// 落在边或顶点上的点返回 boundary（闭边界约定）。
func locateInRing(pt geo.Point, ring geo.Ring) location {
	n := len(ring)
	if n < 3 {
		return outside
	}
	in := false
	prev := ring[n-1]
	rPrev := geo.DeltaLon(pt.Lon, prev.Lon)
	for _, cur := range ring {
		rCur := geo.DeltaLon(pt.Lon, cur.Lon)
		if math.Abs(rCur-rPrev) <= 180 {
			if onSegment(rPrev, prev.Lat, rCur, cur.Lat, pt.Lat) {
				return boundary
			}
			if (rPrev > 0) != (rCur > 0) {
				lat := prev.Lat + (cur.Lat-prev.Lat)*(-rPrev)/(rCur-rPrev)
				if lat > pt.Lat {
					in = !in
				}
			}
		}
		prev, rPrev = cur, rCur
	}
	if in {
		return inside
	}
	return outside
}

// onSegment：查询点（相对经度 0，纬度 lat）是否落在边 (xa,ya)-(xb,yb) 上
func onSegment(xa, ya, xb, yb, lat float64) bool {
	if math.Min(xa, xb) > boundaryEps || math.Max(xa, xb) < -boundaryEps {
		return false
	}
	if lat < math.Min(ya, yb)-boundaryEps || lat > math.Max(ya, yb)+boundaryEps {
		return false
	}
	dx, dy := xb-xa, yb-ya
	l := math.Hypot(dx, dy)
	if l == 0 {
		return math.Abs(xa) <= boundaryEps && math.Abs(ya-lat) <= boundaryEps
	}
	cross := dx*(lat-ya) - dy*(-xa)
	return math.Abs(cross) <= boundaryEps*l
}

// PolygonContains：在外环内（含边界）且不严格位于任何洞内
// 约束：洞的边界属于多边形本身，因此洞边界上的点视为命中
func PolygonContains(poly geo.Polygon, pt geo.Point) bool {
	if locateInRing(pt, poly.Outer) == outside {
		return false
	}
	for _, h := range poly.Holes {
		if locateInRing(pt, h) == inside {
			return false
		}
	}
	return true
}

// TerritoryContains：任一多边形命中即返回
func TerritoryContains(t geo.MultiPolygon, pt geo.Point) bool {
	for _, p := range t {
		if PolygonContains(p, pt) {
			return true
		}
	}
	return false
}
