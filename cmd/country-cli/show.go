package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newShowCmd(o *cliOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "show ISO",
		Short: "Print one country's attribute record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := o.geocoder()
			if err != nil {
				return err
			}
			c, ok := g.Catalog().Get(args[0])
			if !ok {
				return fmt.Errorf("unknown country %q", args[0])
			}
			out := cmd.OutOrStdout()
			if o.jsonOut {
				return json.NewEncoder(out).Encode(toRow(c))
			}
			langs := make([]string, len(c.Locales))
			for i, t := range c.Locales {
				langs[i] = t.String()
			}
			fmt.Fprintf(out, "ISO:         %s / %s / %03d\n", c.ISO, c.ISO3, c.ISONumeric)
			fmt.Fprintf(out, "Name:        %s\n", c.Name)
			fmt.Fprintf(out, "Capital:     %s\n", c.Capital)
			fmt.Fprintf(out, "Continent:   %s\n", c.Continent)
			fmt.Fprintf(out, "Population:  %d\n", c.Population)
			fmt.Fprintf(out, "Area (km2):  %v\n", c.Area)
			fmt.Fprintf(out, "Currency:    %s %s\n", c.CurrencyCode, c.CurrencyName)
			fmt.Fprintf(out, "Languages:   %s\n", strings.Join(langs, ","))
			fmt.Fprintf(out, "Neighbours:  %s\n", strings.Join(c.Neighbours, ","))
			fmt.Fprintf(out, "Territory:   %d polygons, %d vertices\n", len(c.Territory), c.Territory.VertexCount())
			return nil
		},
	}
}
