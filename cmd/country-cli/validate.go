package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// validate：构建成功即说明数据通过完整性校验；额外报告索引规模与跨线领土
func newValidateCmd(o *cliOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Build the catalog and index and report their size",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := o.geocoder()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			st := g.IndexStats()
			fmt.Fprintf(out, "countries:      %d\n", g.Catalog().Len())
			fmt.Fprintf(out, "polygons:       %d\n", st.Entries)
			fmt.Fprintf(out, "cell degrees:   %v\n", st.CellDegrees)
			fmt.Fprintf(out, "occupied cells: %d (refs %d, max load %d)\n", st.Cells, st.Refs, st.MaxLoad)
			for c := range g.Countries() {
				for i, p := range c.Territory {
					if b := p.Bounds(); b.Wraps() {
						fmt.Fprintf(out, "antimeridian:   %s polygon %d [%v..%v]\n", c.ISO, i, b.MinLon, b.MaxLon)
					}
				}
			}
			return nil
		},
	}
}
