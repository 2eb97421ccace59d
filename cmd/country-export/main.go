// country-export：把国家属性字典同步到 Postgres（_countries），供报表与 SQL 侧使用
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"country-api/internal/config"
	"country-api/internal/country"
	"country-api/internal/loader"
	"country-api/internal/logger"
	"country-api/internal/migrate"
	"country-api/internal/store"
	"country-api/internal/utils"

	"github.com/joho/godotenv"
)

func usage() {
	fmt.Println("usage: country-export [--env <file>] [--dry-run] [--stats]")
	fmt.Println("  --env      extra .env file loaded before configuration")
	fmt.Println("  --dry-run  build the catalog and print the row count without writing")
	fmt.Println("  --stats    print lookup totals and today's top countries after export")
}

func main() {
	var envFile string
	var dryRun, showStats bool
	for i := 1; i < len(os.Args); i++ {
		switch a := os.Args[i]; {
		case a == "--env" && i+1 < len(os.Args):
			envFile = os.Args[i+1]
			i++
		case strings.HasSuffix(a, ".env"):
			envFile = a
		case a == "--dry-run":
			dryRun = true
		case a == "--stats":
			showStats = true
		case a == "-h" || a == "--help" || a == "help":
			usage()
			return
		default:
			fmt.Println("unknown argument:", a)
			usage()
			os.Exit(2)
		}
	}
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			fmt.Println("env error:", err)
			os.Exit(1)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(1)
	}
	l := logger.Setup()
	g, err := loader.BuildGeocoder(cfg.Data)
	if err != nil {
		fmt.Println("catalog error:", err)
		os.Exit(1)
	}
	countries := make([]*country.Country, 0, g.Catalog().Len())
	for c := range g.Countries() {
		countries = append(countries, c)
	}
	if dryRun {
		fmt.Printf("dry run: %d countries ready for export\n", len(countries))
		return
	}

	cfg.Postgres.Enabled = true
	db, err := utils.OpenPostgres(cfg.Postgres)
	if err != nil {
		fmt.Println("db error:", err)
		os.Exit(1)
	}
	defer db.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if err := migrate.EnsureSchema(ctx, db); err != nil {
		fmt.Println("schema error:", err)
		os.Exit(1)
	}
	st := store.AttachDB(db)
	n, err := st.UpsertCountries(ctx, countries)
	if err != nil {
		l.Error("export_error", "err", err)
		fmt.Println("export error:", err)
		os.Exit(1)
	}
	fmt.Printf("exported %d countries\n", n)
	if !showStats {
		return
	}
	t, err := st.GetTotals(ctx)
	if err != nil {
		fmt.Println("stats error:", err)
		os.Exit(1)
	}
	fmt.Printf("lookups: total %d, matched %d, today %d\n", t.Total, t.Matches, t.Today)
	top, err := st.TopCountriesToday(ctx, 10)
	if err != nil {
		fmt.Println("stats error:", err)
		os.Exit(1)
	}
	for _, h := range top {
		fmt.Printf("  %s\t%d\n", h.ISO, h.Hits)
	}
}
