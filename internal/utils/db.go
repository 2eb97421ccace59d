// 包 utils：外部依赖（Postgres / Redis / 证书）的打开与准备
package utils

import (
	"database/sql"

	"country-api/internal/config"

	_ "github.com/lib/pq"
)

// OpenPostgres：按配置打开连接池；未启用时返回 (nil, nil)
// 约束：sql.Open 不建立连接，调用方需自行 Ping
func OpenPostgres(cfg config.Postgres) (*sql.DB, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, err
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	return db, nil
}
