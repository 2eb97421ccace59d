package loader

import (
	"time"

	"country-api/internal/config"
	"country-api/internal/logger"
	"country-api/internal/revgeo"
)

// BuildGeocoder：加载数据文件并构建目录与索引；任一步失败都不返回部分结果
func BuildGeocoder(cfg config.Data) (*revgeo.Geocoder, error) {
	begin := time.Now()
	countries, err := Load(cfg.CountryInfoPath, cfg.CountryShapesPath)
	if err != nil {
		return nil, err
	}
	g, err := revgeo.Build(countries, revgeo.WithCellDegrees(cfg.CellDegrees))
	if err != nil {
		return nil, err
	}
	st := g.IndexStats()
	logger.L().Info("catalog_load_ok",
		"countries", g.Catalog().Len(),
		"polygons", st.Entries,
		"cell_deg", st.CellDegrees,
		"max_cell_load", st.MaxLoad,
		"duration_ms", time.Since(begin).Milliseconds(),
	)
	return g, nil
}
