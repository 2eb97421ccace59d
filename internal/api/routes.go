// 包 api：HTTP 路由（坐标查国家、国家字典、IP 定位、统计与健康检查）
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"country-api/internal/ipgeo"
	"country-api/internal/logger"
	"country-api/internal/metrics"
	"country-api/internal/middleware"
	"country-api/internal/revgeo"
	"country-api/internal/store"

	"github.com/oschwald/maxminddb-golang"
)

// IPLocator：IP 到坐标（*ipgeo.Locator 实现）
type IPLocator interface {
	Locate(ip string) (ipgeo.Location, error)
	Metadata() maxminddb.Metadata
}

// Deps：路由依赖；IP 与 Store 可为空，对应端点返回 503 或退化为进程内统计
type Deps struct {
	Resolver *Resolver
	IP       IPLocator
	Stats    *Stats
	Store    *store.Store
}

// 构建并返回 API 路由：独立 ServeMux，在主入口挂载到 API_BASE 前缀
func BuildRoutes(d Deps) *http.ServeMux {
	if d.Stats == nil {
		d.Stats = NewStats()
	}
	h := &handlers{Deps: d}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /country", h.country)
	mux.HandleFunc("GET /countries", h.countries)
	mux.HandleFunc("GET /countries/{iso}", h.countryByISO)
	mux.HandleFunc("GET /countries/{iso}/postal", h.postal)
	mux.HandleFunc("GET /ip", h.ip)
	mux.HandleFunc("GET /stats", h.stats)
	mux.HandleFunc("GET /healthz", h.healthz)
	return mux
}

type handlers struct {
	Deps
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("content-type", "application/json; charset=utf-8")
	w.Header().Set("cache-control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, errorBody{Error: code})
}

func parseCoord(q string) (float64, bool) {
	if q = strings.TrimSpace(q); q == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(q, 64)
	return v, err == nil
}

func (h *handlers) country(w http.ResponseWriter, r *http.Request) {
	lat, ok1 := parseCoord(r.URL.Query().Get("lat"))
	lon, ok2 := parseCoord(r.URL.Query().Get("lon"))
	if !ok1 || !ok2 {
		h.record(resultBadRequest, "")
		writeError(w, http.StatusBadRequest, "bad_request")
		return
	}
	c, err := h.Resolver.Lookup(r.Context(), lat, lon)
	switch {
	case err == nil:
		h.record(resultMatch, c.ISO)
		writeJSON(w, http.StatusOK, summarize(c))
	case revgeo.IsOutOfRange(err):
		h.record(resultOutOfRange, "")
		writeError(w, http.StatusNotFound, "out_of_range")
	case errors.Is(err, revgeo.ErrNoMatch):
		h.record(resultNoMatch, "")
		writeError(w, http.StatusNotFound, "no_match")
	default:
		logger.L().Error("lookup_error", "lat", lat, "lon", lon, "err", err)
		writeError(w, http.StatusInternalServerError, "internal")
	}
}

func (h *handlers) record(res lookupResult, iso string) {
	metrics.LookupsTotal.WithLabelValues(string(res)).Inc()
	if res == resultMatch {
		metrics.CountryMatchesTotal.WithLabelValues(iso).Inc()
	}
	h.Stats.Record(res, iso)
}

// countries：按加载顺序列出；continent 参数可按大洲代码过滤
func (h *handlers) countries(w http.ResponseWriter, r *http.Request) {
	cont := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("continent")))
	out := []countrySummary{}
	for c := range h.Resolver.Geocoder().Countries() {
		if cont != "" && c.Continent != cont {
			continue
		}
		out = append(out, summarize(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handlers) countryByISO(w http.ResponseWriter, r *http.Request) {
	c, ok := h.Resolver.Geocoder().Catalog().Get(r.PathValue("iso"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown_country")
		return
	}
	writeJSON(w, http.StatusOK, detail(c))
}

// postal：按国家邮编规则校验 code；无规则的国家返回 valid=false 与 has_rule=false
func (h *handlers) postal(w http.ResponseWriter, r *http.Request) {
	c, ok := h.Resolver.Geocoder().Catalog().Get(r.PathValue("iso"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown_country")
		return
	}
	code := r.URL.Query().Get("code")
	writeJSON(w, http.StatusOK, map[string]any{
		"iso":      c.ISO,
		"code":     code,
		"has_rule": c.PostalCodePattern != nil,
		"valid":    c.MatchPostalCode(code),
	})
}

func (h *handlers) ip(w http.ResponseWriter, r *http.Request) {
	if h.IP == nil {
		metrics.IPLookupsTotal.WithLabelValues("disabled").Inc()
		writeError(w, http.StatusServiceUnavailable, "geoip_disabled")
		return
	}
	ipText := strings.TrimSpace(r.URL.Query().Get("ip"))
	if ipText == "" {
		if ip, ok := middleware.ClientIP(r.Context()); ok {
			ipText = ip.String()
		}
	}
	loc, err := h.IP.Locate(ipText)
	switch {
	case errors.Is(err, ipgeo.ErrInvalidIP):
		metrics.IPLookupsTotal.WithLabelValues("bad_request").Inc()
		writeError(w, http.StatusBadRequest, "bad_request")
		return
	case errors.Is(err, ipgeo.ErrNoLocation):
		metrics.IPLookupsTotal.WithLabelValues("no_location").Inc()
		writeError(w, http.StatusNotFound, "no_location")
		return
	case err != nil:
		logger.L().Error("ip_lookup_error", "ip", ipText, "err", err)
		writeError(w, http.StatusInternalServerError, "internal")
		return
	}
	res := ipResult{Location: loc}
	c, err := h.Resolver.Lookup(r.Context(), loc.Latitude, loc.Longitude)
	if err == nil {
		s := summarize(c)
		res.Country = &s
		metrics.IPLookupsTotal.WithLabelValues("match").Inc()
	} else {
		metrics.IPLookupsTotal.WithLabelValues("no_match").Inc()
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *handlers) stats(w http.ResponseWriter, r *http.Request) {
	if h.Store != nil {
		t, err := h.Store.GetTotals(r.Context())
		if err == nil {
			top, _ := h.Store.TopCountriesToday(r.Context(), 10)
			writeJSON(w, http.StatusOK, map[string]any{"source": "db", "total": t.Total, "matches": t.Matches, "today": t.Today, "top_today": top})
			return
		}
		logger.L().Warn("stats_db_error", "err", err)
	}
	snap, since := h.Stats.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"source":       "process",
		"since":        since.UTC().Format(time.RFC3339),
		"total":        snap.Queries,
		"matches":      snap.Matches,
		"no_match":     snap.NoMatch,
		"out_of_range": snap.OutOfRange,
		"by_iso":       snap.ByISO,
	})
}

func (h *handlers) healthz(w http.ResponseWriter, r *http.Request) {
	g := h.Resolver.Geocoder()
	body := map[string]any{
		"status":    "ok",
		"countries": g.Catalog().Len(),
		"index":     g.IndexStats(),
	}
	if h.IP != nil {
		m := h.IP.Metadata()
		body["geoip"] = map[string]any{"type": m.DatabaseType, "build_epoch": m.BuildEpoch}
	}
	writeJSON(w, http.StatusOK, body)
}
