// 包 ipgeo：基于 MaxMind City 库把 IP 解析为坐标，再交给反地理查询
package ipgeo

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/oschwald/geoip2-golang"
	"github.com/oschwald/maxminddb-golang"
)

var (
	ErrInvalidIP  = errors.New("invalid ip address")
	ErrNoLocation = errors.New("ip has no location record")
	ErrNotCityDB  = errors.New("mmdb is not a City database")
)

// Location：库中记录的坐标与国家（国家仅作对照，最终国家以多边形判定为准）
type Location struct {
	IP             string  `json:"ip"`
	Latitude       float64 `json:"lat"`
	Longitude      float64 `json:"lon"`
	AccuracyRadius uint16  `json:"accuracy_km"`
	RegisteredISO  string  `json:"registered_iso,omitempty"`
}

// 文档注释：IP 定位器
// 背景：mmdb 以 mmap 方式只读打开，可被多个请求并发使用。
// 约束：只接受 City 系列数据库（GeoLite2-City / GeoIP2-City / DBIP City Lite 等）。
type Locator struct {
	db *geoip2.Reader
}

func Open(path string) (*Locator, error) {
	db, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mmdb %s: %w", path, err)
	}
	if !strings.Contains(db.Metadata().DatabaseType, "City") {
		t := db.Metadata().DatabaseType
		_ = db.Close()
		return nil, fmt.Errorf("%w: %s", ErrNotCityDB, t)
	}
	return &Locator{db: db}, nil
}

// Locate：按 IP 文本查询坐标
func (l *Locator) Locate(ipText string) (Location, error) {
	ip := net.ParseIP(strings.TrimSpace(ipText))
	if ip == nil {
		return Location{}, ErrInvalidIP
	}
	return l.LocateIP(ip)
}

func (l *Locator) LocateIP(ip net.IP) (Location, error) {
	rec, err := l.db.City(ip)
	if err != nil {
		return Location{}, err
	}
	// 未收录的地址返回全零记录
	if rec.Location.AccuracyRadius == 0 && rec.Location.Latitude == 0 && rec.Location.Longitude == 0 {
		return Location{}, ErrNoLocation
	}
	return Location{
		IP:             ip.String(),
		Latitude:       rec.Location.Latitude,
		Longitude:      rec.Location.Longitude,
		AccuracyRadius: rec.Location.AccuracyRadius,
		RegisteredISO:  rec.Country.IsoCode,
	}, nil
}

// Metadata：数据库类型、构建时间等，用于启动日志与 /healthz
func (l *Locator) Metadata() maxminddb.Metadata { return l.db.Metadata() }

func (l *Locator) Close() error { return l.db.Close() }
