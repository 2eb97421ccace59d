// 包 geo：经纬度几何原语（点、环、多边形、包围盒），纯函数、无状态
package geo

import "math"

// 点坐标（WGS84，单位：度）
type Point struct {
	Lat float64
	Lon float64
}

// Valid：纬度 ∈ [-90,90]、经度 ∈ [-180,180]（闭区间，NaN 视为非法）
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// DeltaLon：from → to 的有向最短经度差，结果落在 (-180, 180]
// 约束：跨越 ±180 的边按最短方向解释，环内任意相邻两点经度差不应超过 180°
func DeltaLon(from, to float64) float64 {
	d := math.Mod(to-from, 360)
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}
	return d
}

// NormLon：经度归一化到 [-180, 180)
func NormLon(lon float64) float64 {
	l := math.Mod(lon+180, 360)
	if l < 0 {
		l += 360
	}
	return l - 180
}
