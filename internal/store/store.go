// 包 store：PostgreSQL 数据访问层（国家属性导出、查询统计读写）
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"country-api/internal/country"
	"country-api/internal/logger"
)

// Store：持有连接池；为 nil 的 *Store 不可用，调用方按是否配置数据库决定是否构造
type Store struct {
	db *sql.DB
}

func AttachDB(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) DB() *sql.DB { return s.db }

const upsertCountry = `INSERT INTO _countries(
	iso, iso3, iso_numeric, fips, name, capital, area_km2, population, continent, tld,
	currency_code, currency_name, phone, postal_format, postal_regex, languages, geoname_id,
	neighbours, equivalent_fips, polygons, vertices, updated_at)
VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,now())
ON CONFLICT (iso) DO UPDATE SET iso3=EXCLUDED.iso3, iso_numeric=EXCLUDED.iso_numeric, fips=EXCLUDED.fips,
	name=EXCLUDED.name, capital=EXCLUDED.capital, area_km2=EXCLUDED.area_km2, population=EXCLUDED.population,
	continent=EXCLUDED.continent, tld=EXCLUDED.tld, currency_code=EXCLUDED.currency_code,
	currency_name=EXCLUDED.currency_name, phone=EXCLUDED.phone, postal_format=EXCLUDED.postal_format,
	postal_regex=EXCLUDED.postal_regex, languages=EXCLUDED.languages, geoname_id=EXCLUDED.geoname_id,
	neighbours=EXCLUDED.neighbours, equivalent_fips=EXCLUDED.equivalent_fips, polygons=EXCLUDED.polygons,
	vertices=EXCLUDED.vertices, updated_at=now()`

// 文档注释：导出国家属性
// 背景：下游报表与 BI 需要以 SQL 读取国家字典；领土几何不入库，仅记录多边形与顶点数量。
// 约束：单事务写入，任一行失败整体回滚；以 ISO 为主键幂等覆盖。
func (s *Store) UpsertCountries(ctx context.Context, countries []*country.Country) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()
	stmt, err := tx.PrepareContext(ctx, upsertCountry)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()
	n := 0
	for _, c := range countries {
		if _, err := stmt.ExecContext(ctx, CountryRow(c)...); err != nil {
			return 0, fmt.Errorf("upsert %s: %w", c.ISO, err)
		}
		n++
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	logger.L().Info("store_countries_upsert", "rows", n)
	return n, nil
}

// CountryRow：按 upsert 语句的参数顺序展开一条记录
func CountryRow(c *country.Country) []any {
	langs := make([]string, len(c.Locales))
	for i, t := range c.Locales {
		langs[i] = t.String()
	}
	return []any{
		strings.ToUpper(c.ISO), c.ISO3, c.ISONumeric, c.FIPS, c.Name, c.Capital, c.Area, c.Population,
		c.Continent, c.TLD, c.CurrencyCode, c.CurrencyName, c.Phone, c.PostalCodeFormat, c.PostalCodeRegex,
		strings.Join(langs, ","), c.GeonameID, strings.Join(c.Neighbours, ","), c.EquivalentFIPS,
		len(c.Territory), c.Territory.VertexCount(),
	}
}

// StatsDelta：一个刷写周期内累积的查询计数
type StatsDelta struct {
	Queries    int64
	Matches    int64
	NoMatch    int64
	OutOfRange int64
	ByISO      map[string]int64
}

func (d StatsDelta) Empty() bool { return d.Queries == 0 && len(d.ByISO) == 0 }

// AddStats：把一个周期的计数累加到总计、当日与分国家表
func (s *Store) AddStats(ctx context.Context, d StatsDelta) error {
	if d.Empty() {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx, `UPDATE _revgeo_stats_total SET queries=queries+$1, matches=matches+$2 WHERE id=1`, d.Queries, d.Matches); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO _revgeo_stats_daily(day, queries, matches, no_match, out_of_range)
		VALUES(current_date, $1, $2, $3, $4)
		ON CONFLICT (day) DO UPDATE SET queries=_revgeo_stats_daily.queries+EXCLUDED.queries,
			matches=_revgeo_stats_daily.matches+EXCLUDED.matches,
			no_match=_revgeo_stats_daily.no_match+EXCLUDED.no_match,
			out_of_range=_revgeo_stats_daily.out_of_range+EXCLUDED.out_of_range`,
		d.Queries, d.Matches, d.NoMatch, d.OutOfRange); err != nil {
		return err
	}
	for iso, n := range d.ByISO {
		if _, err := tx.ExecContext(ctx, `INSERT INTO _revgeo_country_daily(day, iso, hits) VALUES(current_date, $1, $2)
			ON CONFLICT (day, iso) DO UPDATE SET hits=_revgeo_country_daily.hits+EXCLUDED.hits`, iso, n); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	logger.L().Debug("stats_flush", "queries", d.Queries, "matches", d.Matches, "countries", len(d.ByISO))
	return nil
}

// Totals：累计与当日查询次数
type Totals struct {
	Total   int64 `json:"total"`
	Matches int64 `json:"matches"`
	Today   int64 `json:"today"`
}

// GetTotals：当日尚无记录时 Today 为 0
func (s *Store) GetTotals(ctx context.Context) (*Totals, error) {
	var t Totals
	if err := s.db.QueryRowContext(ctx, `SELECT queries, matches FROM _revgeo_stats_total WHERE id=1`).Scan(&t.Total, &t.Matches); err != nil {
		return nil, err
	}
	err := s.db.QueryRowContext(ctx, `SELECT queries FROM _revgeo_stats_daily WHERE day=current_date`).Scan(&t.Today)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	return &t, nil
}

// CountryHits：当日命中最多的国家
type CountryHits struct {
	ISO  string `json:"iso"`
	Hits int64  `json:"hits"`
}

func (s *Store) TopCountriesToday(ctx context.Context, limit int) ([]CountryHits, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `SELECT iso, hits FROM _revgeo_country_daily WHERE day=current_date ORDER BY hits DESC, iso ASC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []CountryHits
	for rows.Next() {
		var h CountryHits
		if err := rows.Scan(&h.ISO, &h.Hits); err != nil {
			return nil, err
		}
		h.ISO = strings.TrimSpace(h.ISO)
		out = append(out, h)
	}
	return out, rows.Err()
}
