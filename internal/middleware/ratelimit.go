package middleware

import (
	"net/http"
	"sync"
	"time"

	"country-api/internal/config"
	"country-api/internal/logger"
	"country-api/internal/metrics"
)

// 文档注释：令牌桶限流（进程级）
// 背景：坐标查询是纯 CPU 计算，突发流量直接压在索引与判定上；入口限速保护尾延迟。
// 约束：不排队，超出即返回 429；令牌按 QPS 连续补充，上限为 burst。
type TokenBucket struct {
	mu     sync.Mutex
	rate   float64
	burst  float64
	tokens float64
	last   time.Time
	now    func() time.Time
}

func NewTokenBucket(qps float64, burst int) *TokenBucket {
	if qps <= 0 {
		qps = 1
	}
	if burst < 1 {
		burst = int(qps)
		if burst < 1 {
			burst = 1
		}
	}
	tb := &TokenBucket{rate: qps, burst: float64(burst), tokens: float64(burst), now: time.Now}
	tb.last = tb.now()
	return tb
}

// Allow：取一个令牌，成功返回 true
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	now := tb.now()
	tb.tokens += now.Sub(tb.last).Seconds() * tb.rate
	if tb.tokens > tb.burst {
		tb.tokens = tb.burst
	}
	tb.last = now
	if tb.tokens >= 1 {
		tb.tokens--
		return true
	}
	return false
}

// Wrap：按配置包裹入口处理器；未启用限流时只注入客户端地址
func Wrap(cfg config.RateLimit, next http.Handler) http.Handler {
	h := WithClientIP(next)
	if !cfg.Enabled {
		return h
	}
	tb := NewTokenBucket(cfg.QPS, cfg.Burst)
	logger.L().Info("rate_limit_enabled", "qps", cfg.QPS, "burst", cfg.Burst)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !tb.Allow() {
			metrics.RateLimitedTotal.Inc()
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		h.ServeHTTP(w, r)
	})
}
