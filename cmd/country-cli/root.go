package main

import (
	"fmt"

	"country-api/internal/config"
	"country-api/internal/loader"
	"country-api/internal/logger"
	"country-api/internal/revgeo"

	"github.com/spf13/cobra"
)

type cliOpts struct {
	infoPath   string
	shapesPath string
	cellDeg    float64
	jsonOut    bool
}

func newRootCmd() *cobra.Command {
	o := &cliOpts{}
	root := &cobra.Command{
		Use:           "country-cli",
		Short:         "Resolve coordinates to countries and inspect the country dataset",
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&o.infoPath, "info", "", "countryInfo.txt path (default from COUNTRY_INFO_PATH)")
	root.PersistentFlags().StringVar(&o.shapesPath, "shapes", "", "shapes file path, GeoJSON or geonames TSV (default from COUNTRY_SHAPES_PATH)")
	root.PersistentFlags().Float64Var(&o.cellDeg, "cell", 0, "index cell size in degrees (default from REVGEO_CELL_DEG)")
	root.PersistentFlags().BoolVar(&o.jsonOut, "json", false, "print JSON instead of text")
	root.AddCommand(newLookupCmd(o), newListCmd(o), newShowCmd(o), newValidateCmd(o))
	return root
}

// geocoder：命令行参数优先，其余取自配置
func (o *cliOpts) geocoder() (*revgeo.Geocoder, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	logger.Setup()
	d := cfg.Data
	if o.infoPath != "" {
		d.CountryInfoPath = o.infoPath
	}
	if o.shapesPath != "" {
		d.CountryShapesPath = o.shapesPath
	}
	if o.cellDeg > 0 {
		d.CellDegrees = o.cellDeg
	}
	return loader.BuildGeocoder(d)
}
