package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"country-api/internal/country"

	"github.com/spf13/cobra"
)

type countryRow struct {
	ISO        string  `json:"iso"`
	ISO3       string  `json:"iso3"`
	Name       string  `json:"name"`
	Continent  string  `json:"continent"`
	Population int64   `json:"population"`
	AreaKm2    float64 `json:"area_km2"`
	Polygons   int     `json:"polygons"`
}

func toRow(c *country.Country) countryRow {
	return countryRow{ISO: c.ISO, ISO3: c.ISO3, Name: c.Name, Continent: c.Continent,
		Population: c.Population, AreaKm2: c.Area, Polygons: len(c.Territory)}
}

func newListCmd(o *cliOpts) *cobra.Command {
	var continent string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List countries in load order",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := o.geocoder()
			if err != nil {
				return err
			}
			var rows []countryRow
			for c := range g.Countries() {
				if continent != "" && !strings.EqualFold(c.Continent, continent) {
					continue
				}
				rows = append(rows, toRow(c))
			}
			out := cmd.OutOrStdout()
			if o.jsonOut {
				return json.NewEncoder(out).Encode(rows)
			}
			for _, r := range rows {
				fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%d\n", r.ISO, r.ISO3, r.Continent, r.Name, r.Population)
			}
			fmt.Fprintf(out, "%d countries\n", len(rows))
			return nil
		},
	}
	cmd.Flags().StringVar(&continent, "continent", "", "only list countries on this continent code (AF, AN, AS, EU, NA, OC, SA)")
	return cmd
}
