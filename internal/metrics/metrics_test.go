package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	dto "github.com/prometheus/client_model/go"
)

func TestHandlerExposesCollectors(t *testing.T) {
	LookupsTotal.WithLabelValues("match").Inc()
	CatalogCountries.Set(247)
	srv := httptest.NewServer(Handler())
	defer srv.Close()
	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	for _, name := range []string{"countryapi_lookups_total", "countryapi_catalog_countries 247"} {
		if !strings.Contains(string(body), name) {
			t.Errorf("metrics output missing %q", name)
		}
	}
}

func TestCounterLabels(t *testing.T) {
	before := counterValue(t, "local")
	CacheHitsTotal.WithLabelValues("local").Inc()
	if got := counterValue(t, "local"); got != before+1 {
		t.Errorf("local hits = %v, want %v", got, before+1)
	}
}

func counterValue(t *testing.T, layer string) float64 {
	t.Helper()
	var m dto.Metric
	if err := CacheHitsTotal.WithLabelValues(layer).Write(&m); err != nil {
		t.Fatal(err)
	}
	return m.GetCounter().GetValue()
}
