package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
)

type ctxKey struct{}

// WithClientIP：解析客户端地址并写入上下文，供 /ip 在未显式传参时使用
// 约束：优先 X-Forwarded-For 的首个地址，其次 X-Real-IP，最后 RemoteAddr；无法解析的值被忽略
func WithClientIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ip := clientIP(r); ip != nil {
			r = r.WithContext(context.WithValue(r.Context(), ctxKey{}, ip))
		}
		next.ServeHTTP(w, r)
	})
}

// ClientIP：读取 WithClientIP 注入的地址
func ClientIP(ctx context.Context) (net.IP, bool) {
	ip, ok := ctx.Value(ctxKey{}).(net.IP)
	return ip, ok
}

func clientIP(r *http.Request) net.IP {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip
		}
	}
	if ip := net.ParseIP(strings.TrimSpace(r.Header.Get("X-Real-IP"))); ip != nil {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return net.ParseIP(host)
}
