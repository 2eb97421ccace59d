package cache

import (
	"testing"
	"time"
)

func TestGeohash(t *testing.T) {
	tests := []struct {
		lat, lon float64
		prec     int
		want     string
	}{
		{57.64911, 10.40744, 11, "u4pruydqqvj"},
		{42.6, -5.6, 5, "ezs42"},
		{0, 0, 4, "s000"},
	}
	for _, tt := range tests {
		if got := Geohash(tt.lat, tt.lon, tt.prec); got != tt.want {
			t.Errorf("Geohash(%v, %v, %d) = %s, want %s", tt.lat, tt.lon, tt.prec, got, tt.want)
		}
	}
	// 国界两侧约 1km 的两点必须得到不同键
	a := Geohash(17.711150, 104.411472, KeyPrecision)
	b := Geohash(17.722720, 104.427701, KeyPrecision)
	if a == b {
		t.Error("distinct border points share a cache key")
	}
}

func TestLRUEvictsOldest(t *testing.T) {
	c := NewLRU[string](2, time.Minute)
	c.Set("a", "TH")
	c.Set("b", "LA")
	if _, ok := c.Get("a"); !ok {
		t.Fatal("a should be cached")
	}
	c.Set("c", "US")
	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	if v, ok := c.Get("a"); !ok || v != "TH" {
		t.Errorf("Get(a) = %q, %v", v, ok)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestLRUExpires(t *testing.T) {
	c := NewLRU[string](4, time.Second)
	now := time.Unix(1700000000, 0)
	c.now = func() time.Time { return now }
	c.Set("k", "ZA")
	if _, ok := c.Get("k"); !ok {
		t.Fatal("fresh entry should hit")
	}
	now = now.Add(2 * time.Second)
	if _, ok := c.Get("k"); ok {
		t.Error("expired entry should miss")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry should be removed, Len() = %d", c.Len())
	}
}

func TestLRUDisabled(t *testing.T) {
	c := NewLRU[string](0, time.Minute)
	c.Set("k", "v")
	if _, ok := c.Get("k"); ok {
		t.Error("zero-capacity cache should never hit")
	}
}
