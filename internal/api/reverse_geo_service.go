package api

import (
	"context"
	"errors"
	"time"

	"country-api/internal/cache"
	"country-api/internal/country"
	"country-api/internal/geo"
	"country-api/internal/logger"
	"country-api/internal/metrics"
	"country-api/internal/revgeo"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix = "revgeo:"
	// 缓存中的"无国家"标记；越界坐标在进入缓存前即被拒绝，不会写入
	noMatchMark = "-"
)

// 文档注释：带缓存的反地理查询服务
// 背景：核心 Geocoder 无状态且只读；热点坐标先查进程内 LRU，再查共享 Redis，最后才做索引与点入多边形判定。
// 约束：缓存值只存 ISO 代码，命中后回到当前目录取记录，因此缓存不会返回已不在目录中的国家；
// 缓存键为 12 位 geohash（约 3.7cm × 1.9cm），同一格内跨越国界的两点共享先写入的结果，
// 需要逐点精确判定时直接调用 Geocoder.Resolve；Redis 不可用时记日志并直接计算，不影响结果。
type Resolver struct {
	geocoder *revgeo.Geocoder
	local    *cache.LRU[string]
	rc       *redis.Client
	ttl      time.Duration
}

func NewResolver(g *revgeo.Geocoder, local *cache.LRU[string], rc *redis.Client, ttl time.Duration) *Resolver {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Resolver{geocoder: g, local: local, rc: rc, ttl: ttl}
}

func (s *Resolver) Geocoder() *revgeo.Geocoder { return s.geocoder }

// Lookup：与 Geocoder.Resolve 相同的结果与错误约定
func (s *Resolver) Lookup(ctx context.Context, lat, lon float64) (*country.Country, error) {
	begin := time.Now()
	defer func() {
		metrics.LookupDurationMs.Observe(float64(time.Since(begin).Microseconds()) / 1000)
	}()
	if !(geo.Point{Lat: lat, Lon: lon}).Valid() {
		return nil, &revgeo.OutOfRangeError{Lat: lat, Lon: lon}
	}
	key := cache.Geohash(lat, lon, cache.KeyPrecision)
	if s.local != nil {
		if iso, ok := s.local.Get(key); ok {
			if c, ok := s.fromCache(iso); ok {
				metrics.CacheHitsTotal.WithLabelValues("local").Inc()
				return found(c)
			}
		}
		metrics.CacheMissesTotal.WithLabelValues("local").Inc()
	}
	if s.rc != nil {
		iso, err := s.rc.Get(ctx, redisKeyPrefix+key).Result()
		switch {
		case err == nil:
			if c, ok := s.fromCache(iso); ok {
				metrics.CacheHitsTotal.WithLabelValues("redis").Inc()
				s.remember(key, iso)
				return found(c)
			}
			metrics.CacheMissesTotal.WithLabelValues("redis").Inc()
		case errors.Is(err, redis.Nil):
			metrics.CacheMissesTotal.WithLabelValues("redis").Inc()
		default:
			logger.L().Warn("redis_get_error", "key", key, "err", err)
		}
	}
	c, err := s.geocoder.Resolve(lat, lon)
	iso := noMatchMark
	switch {
	case err == nil:
		iso = c.ISO
	case !errors.Is(err, revgeo.ErrNoMatch):
		return nil, err
	}
	s.remember(key, iso)
	if s.rc != nil {
		if e := s.rc.Set(ctx, redisKeyPrefix+key, iso, s.ttl).Err(); e != nil {
			logger.L().Warn("redis_set_error", "key", key, "err", e)
		}
	}
	logger.L().Debug("reverse_geo_resolve", "lat", lat, "lon", lon, "iso", iso)
	return c, err
}

func (s *Resolver) remember(key, iso string) {
	if s.local != nil {
		s.local.Set(key, iso)
	}
}

// fromCache：ok=false 表示缓存值已失效（目录中不存在该 ISO），需要重新计算；c 为 nil 表示缓存的是"无国家"
func (s *Resolver) fromCache(iso string) (c *country.Country, ok bool) {
	if iso == noMatchMark {
		return nil, true
	}
	return s.geocoder.Catalog().Get(iso)
}

func found(c *country.Country) (*country.Country, error) {
	if c == nil {
		return nil, revgeo.ErrNoMatch
	}
	return c, nil
}
