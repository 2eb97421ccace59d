// 包 revgeo：国家级反地理编码核心（空间索引 + 点入多边形 + 查询门面）
package revgeo

import (
	"errors"
	"fmt"
)

// ErrNoMatch：点不在任何已加载领土内（海洋、未测绘区域）；属于正常结果而非故障
var ErrNoMatch = errors.New("no country contains the point")

// OutOfRangeError：坐标超出闭区间 lat ∈ [-90,90]、lon ∈ [-180,180]
type OutOfRangeError struct {
	Lat float64
	Lon float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("coordinate out of range: lat=%v lon=%v", e.Lat, e.Lon)
}

type options struct {
	cellDeg float64
}

// Option：构建期可调参数
type Option func(*options)

// WithCellDegrees：网格边长（度）；非法值回退到 DefaultCellDegrees
func WithCellDegrees(deg float64) Option {
	return func(o *options) { o.cellDeg = deg }
}
