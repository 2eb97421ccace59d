package cache

// 文档注释：geohash 编码（base32）
// 背景：作为本地缓存与 Redis 的键；12 位精度约 3.7cm×1.9cm，远小于国界判定所需精度。
// 约束：仅用于缓存键，不参与国家判定。
const base32 = "0123456789bcdefghjkmnpqrstuvwxyz"

// KeyPrecision：查询缓存使用的 geohash 长度
const KeyPrecision = 12

func Geohash(lat, lon float64, precision int) string {
	latLo, latHi := -90.0, 90.0
	lonLo, lonHi := -180.0, 180.0
	bit, ch := 0, 0
	even := true
	out := make([]byte, 0, precision)
	for len(out) < precision {
		if even {
			mid := (lonLo + lonHi) / 2
			if lon >= mid {
				ch |= 16 >> bit
				lonLo = mid
			} else {
				lonHi = mid
			}
		} else {
			mid := (latLo + latHi) / 2
			if lat >= mid {
				ch |= 16 >> bit
				latLo = mid
			} else {
				latHi = mid
			}
		}
		even = !even
		if bit < 4 {
			bit++
		} else {
			out = append(out, base32[ch])
			bit, ch = 0, 0
		}
	}
	return string(out)
}
