// 包 loader：从 geonames 数据文件构建国家记录（属性 + 领土）
package loader

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"country-api/internal/country"
	"country-api/internal/geo"
	"country-api/internal/logger"
)

// ErrNoShapes：形状文件中没有任何可用的多边形
var ErrNoShapes = errors.New("no shapes found")

// 文档注释：加载并拼接国家属性与领土
// 背景：属性来自 geonames countryInfo.txt，领土来自 shapes 文件（GeoJSON 或 geonames TSV）；两者按 geoname id 关联，缺失时回退到 ISO。
// 约束：保持 countryInfo 的顺序；没有形状的记录跳过并记日志，全部缺失时返回 ErrNoShapes；.gz 文件透明解压。
func Load(infoPath, shapesPath string) ([]*country.Country, error) {
	info, err := openFile(infoPath)
	if err != nil {
		return nil, err
	}
	defer info.Close()
	countries, err := ParseCountryInfo(info)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", infoPath, err)
	}
	shp, err := openFile(shapesPath)
	if err != nil {
		return nil, err
	}
	defer shp.Close()
	shapes, err := ParseShapes(shp)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", shapesPath, err)
	}
	out := Join(countries, shapes)
	if len(out) == 0 {
		return nil, fmt.Errorf("join %s with %s: %w", infoPath, shapesPath, ErrNoShapes)
	}
	return out, nil
}

// Join：把领土挂到属性记录上，返回有领土的记录
func Join(countries []*country.Country, shapes map[string]geo.MultiPolygon) []*country.Country {
	out := make([]*country.Country, 0, len(countries))
	for _, c := range countries {
		t, ok := shapes[fmt.Sprint(c.GeonameID)]
		if !ok {
			t, ok = shapes[strings.ToUpper(c.ISO)]
		}
		if !ok || len(t) == 0 {
			logger.L().Warn("loader_shape_missing", "iso", c.ISO, "geoname_id", c.GeonameID)
			continue
		}
		c.Territory = t
		out = append(out, c)
	}
	logger.L().Info("loader_join_ok", "countries", len(countries), "with_shape", len(out))
	return out
}

type gzipFile struct {
	*gzip.Reader
	f *os.File
}

func (g gzipFile) Close() error {
	_ = g.Reader.Close()
	return g.f.Close()
}

func openFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(strings.ToLower(path), ".gz") {
		return f, nil
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("gzip %s: %w", path, err)
	}
	return gzipFile{Reader: zr, f: f}, nil
}

func newScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	// 单行几何可达数 MB
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	return sc
}
