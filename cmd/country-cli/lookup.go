package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"country-api/internal/revgeo"

	"github.com/spf13/cobra"
)

type lookupRow struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	ISO   string  `json:"iso,omitempty"`
	Name  string  `json:"name,omitempty"`
	Error string  `json:"error,omitempty"`
}

func newLookupCmd(o *cliOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup LAT LON [LAT LON ...]",
		Short: "Print the country containing each coordinate",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || len(args)%2 != 0 {
				return fmt.Errorf("expected LAT LON pairs, got %d arguments", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			pairs := make([][2]float64, 0, len(args)/2)
			for i := 0; i < len(args); i += 2 {
				lat, err := strconv.ParseFloat(args[i], 64)
				if err != nil {
					return fmt.Errorf("latitude %q: %w", args[i], err)
				}
				lon, err := strconv.ParseFloat(args[i+1], 64)
				if err != nil {
					return fmt.Errorf("longitude %q: %w", args[i+1], err)
				}
				pairs = append(pairs, [2]float64{lat, lon})
			}
			g, err := o.geocoder()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			rows := make([]lookupRow, 0, len(pairs))
			for _, p := range pairs {
				row := lookupRow{Lat: p[0], Lon: p[1]}
				c, err := g.Resolve(p[0], p[1])
				switch {
				case err == nil:
					row.ISO, row.Name = c.ISO, c.Name
				case revgeo.IsOutOfRange(err):
					row.Error = "out_of_range"
				default:
					row.Error = "no_match"
				}
				rows = append(rows, row)
			}
			if o.jsonOut {
				return json.NewEncoder(out).Encode(rows)
			}
			for _, r := range rows {
				if r.Error != "" {
					fmt.Fprintf(out, "%v,%v\t-\t%s\n", r.Lat, r.Lon, r.Error)
					continue
				}
				fmt.Fprintf(out, "%v,%v\t%s\t%s\n", r.Lat, r.Lon, r.ISO, r.Name)
			}
			return nil
		},
	}
}
