// 程序入口：读取配置、构建国家目录与索引、初始化可选依赖并启动 HTTP 服务；路由注册在 internal/api
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"country-api/internal/api"
	"country-api/internal/cache"
	"country-api/internal/config"
	"country-api/internal/ipgeo"
	"country-api/internal/loader"
	"country-api/internal/logger"
	"country-api/internal/metrics"
	"country-api/internal/middleware"
	"country-api/internal/migrate"
	"country-api/internal/store"
	"country-api/internal/utils"
)

func main() {
	// 先读取 .env，日志级别与格式可能来自其中
	cfg, err := config.Load()
	l := logger.Setup()
	if err != nil {
		l.Error("config_error", "err", err)
		os.Exit(1)
	}
	l.Debug("config_api_base", "base", cfg.APIBase)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 目录与索引构建失败直接退出：没有部分可用的查询服务
	g, err := loader.BuildGeocoder(cfg.Data)
	if err != nil {
		l.Error("catalog_load_error", "info", cfg.Data.CountryInfoPath, "shapes", cfg.Data.CountryShapesPath, "err", err)
		os.Exit(1)
	}
	st := g.IndexStats()
	metrics.CatalogCountries.Set(float64(g.Catalog().Len()))
	metrics.IndexEntries.Set(float64(st.Entries))
	metrics.IndexMaxCellLoad.Set(float64(st.MaxLoad))

	rc := utils.OpenRedis(cfg.Redis)
	if rc == nil {
		l.Info("redis_disabled")
	} else if err := rc.Ping(ctx).Err(); err != nil {
		l.Error("redis_ping_error", "err", err)
	} else {
		l.Info("redis_ping_ok")
	}

	deps := api.Deps{
		Resolver: api.NewResolver(g, cache.NewLRU[string](cfg.Cache.Size, cfg.Cache.TTL), rc, cfg.Cache.TTL),
		Stats:    api.NewStats(),
	}

	var wg sync.WaitGroup
	db, err := utils.OpenPostgres(cfg.Postgres)
	if err != nil {
		l.Error("db_open_error", "err", err)
		os.Exit(1)
	}
	if db == nil {
		l.Info("db_disabled")
	} else {
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			l.Error("db_ping_error", "err", err)
		} else if err := migrate.EnsureSchema(ctx, db); err != nil {
			l.Error("schema_error", "err", err)
		} else {
			l.Info("db_ready")
			deps.Store = store.AttachDB(db)
			wg.Add(1)
			go func() {
				defer wg.Done()
				deps.Stats.Run(ctx, deps.Store, cfg.StatsFlush)
			}()
		}
	}

	if cfg.GeoIP.CityPath != "" {
		loc, err := ipgeo.Open(cfg.GeoIP.CityPath)
		if err != nil {
			l.Error("geoip_open_error", "path", cfg.GeoIP.CityPath, "err", err)
		} else {
			defer loc.Close()
			m := loc.Metadata()
			l.Info("geoip_ready", "type", m.DatabaseType, "build_epoch", m.BuildEpoch)
			deps.IP = loc
		}
	}

	mux := http.NewServeMux()
	mux.Handle(cfg.APIBase+"/", http.StripPrefix(cfg.APIBase, api.BuildRoutes(deps)))
	mux.Handle(cfg.APIBase+"/metrics", metrics.Handler())

	handler := logger.AccessMiddleware(l)(mux)
	handler = middleware.Wrap(cfg.RateLimit, handler)
	s := &http.Server{Addr: cfg.Addr, Handler: handler, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = s.Shutdown(sctx)
	}()

	if cfg.TLS.Enabled {
		if err := utils.EnsureSelfSignedCert(cfg.TLS.CertPath, cfg.TLS.KeyPath, "country-api.local"); err != nil {
			l.Error("tls_cert_error", "err", err)
			os.Exit(1)
		}
		l.Info("listening_tls", "addr", cfg.Addr, "cert", cfg.TLS.CertPath)
		err = s.ListenAndServeTLS(cfg.TLS.CertPath, cfg.TLS.KeyPath)
	} else {
		l.Info("listening", "addr", cfg.Addr)
		err = s.ListenAndServe()
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		l.Error("server_error", "err", err)
		os.Exit(1)
	}
	stop()
	wg.Wait()
	l.Info("server_stopped")
}
