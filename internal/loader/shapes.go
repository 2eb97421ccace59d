package loader

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"country-api/internal/geo"
	"country-api/internal/logger"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// 文档注释：解析领土形状
// 背景：兼容两种来源：GeoJSON FeatureCollection（properties.geoNameId，或 iso / ISO_A2），
// 以及 geonames shapes_*.txt（每行 "geonameid<TAB>geometry-json"，首行为表头）。
// 约束：只接受 Polygon / MultiPolygon；orb 的 [lon,lat] 转为 geo.Point{Lat,Lon}，外环由 geo.NewPolygon 按面积确定。
// 返回：键为 geoname id 或大写 ISO 代码
func ParseShapes(r io.Reader) (map[string]geo.MultiPolygon, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(data)
	var out map[string]geo.MultiPolygon
	if len(trimmed) > 0 && trimmed[0] == '{' {
		out, err = parseFeatureCollection(trimmed)
	} else {
		out, err = parseShapesTSV(bytes.NewReader(data))
	}
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrNoShapes
	}
	return out, nil
}

func parseFeatureCollection(data []byte) (map[string]geo.MultiPolygon, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("geojson: %w", err)
	}
	out := make(map[string]geo.MultiPolygon, len(fc.Features))
	for i, f := range fc.Features {
		key := featureKey(f.Properties)
		if key == "" {
			logger.L().Warn("loader_feature_no_key", "index", i)
			continue
		}
		mp, ok := toMultiPolygon(f.Geometry)
		if !ok {
			logger.L().Warn("loader_feature_geometry_skip", "key", key, "type", fmt.Sprintf("%T", f.Geometry))
			continue
		}
		out[key] = append(out[key], mp...)
	}
	return out, nil
}

func featureKey(p geojson.Properties) string {
	switch v := p["geoNameId"].(type) {
	case string:
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	case float64:
		return strconv.FormatInt(int64(v), 10)
	}
	for _, k := range []string{"iso", "ISO_A2"} {
		if v, ok := p[k].(string); ok && v != "" && v != "-99" {
			return strings.ToUpper(v)
		}
	}
	return ""
}

func parseShapesTSV(r io.Reader) (map[string]geo.MultiPolygon, error) {
	sc := newScanner(r)
	out := make(map[string]geo.MultiPolygon)
	line := 0
	for sc.Scan() {
		line++
		s := sc.Text()
		if strings.TrimSpace(s) == "" || strings.HasPrefix(s, "#") {
			continue
		}
		id, js, ok := strings.Cut(s, "\t")
		if !ok {
			return nil, fmt.Errorf("line %d: missing tab separator", line)
		}
		id = strings.TrimSpace(id)
		if _, err := strconv.ParseInt(id, 10, 64); err != nil {
			if line == 1 {
				continue // 表头
			}
			return nil, fmt.Errorf("line %d: bad geoname id %q", line, id)
		}
		g, err := geojson.UnmarshalGeometry([]byte(js))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		mp, ok := toMultiPolygon(g.Geometry())
		if !ok {
			return nil, fmt.Errorf("line %d: unsupported geometry %s", line, g.Type)
		}
		out[id] = append(out[id], mp...)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func toMultiPolygon(g orb.Geometry) (geo.MultiPolygon, bool) {
	switch v := g.(type) {
	case orb.Polygon:
		return geo.MultiPolygon{toPolygon(v)}, true
	case orb.MultiPolygon:
		mp := make(geo.MultiPolygon, 0, len(v))
		for _, p := range v {
			mp = append(mp, toPolygon(p))
		}
		return mp, true
	}
	return nil, false
}

func toPolygon(p orb.Polygon) geo.Polygon {
	rings := make([]geo.Ring, 0, len(p))
	for _, r := range p {
		pts := make([]geo.Point, len(r))
		for i, pt := range r {
			pts[i] = geo.Point{Lat: pt.Lat(), Lon: pt.Lon()}
		}
		rings = append(rings, geo.NewRing(pts))
	}
	return geo.NewPolygon(rings...)
}
