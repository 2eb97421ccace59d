package revgeo

import (
	"math/rand/v2"
	"testing"

	"country-api/internal/country"
	"country-api/internal/geo"
)

func candidateISOs(cs []Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Country.ISO
	}
	return out
}

func testIndex(t *testing.T, cellDeg float64) *Index {
	t.Helper()
	cat, err := country.NewCatalog(testWorld())
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return NewIndex(cat, cellDeg)
}

func TestIndexSmallerBoxesFirst(t *testing.T) {
	ix := testIndex(t, DefaultCellDegrees)
	got := candidateISOs(ix.Query(geo.Point{Lat: -29.3, Lon: 28.0}))
	if len(got) != 2 || got[0] != "LS" || got[1] != "ZA" {
		t.Errorf("candidates = %v, want [LS ZA]", got)
	}
}

func TestIndexAntimeridian(t *testing.T) {
	ix := testIndex(t, DefaultCellDegrees)
	for _, lon := range []float64{177.5, 179.9, 180, -180, -179.5, -178} {
		got := candidateISOs(ix.Query(geo.Point{Lat: -17.5, Lon: lon}))
		if len(got) != 1 || got[0] != "FJ" {
			t.Errorf("lon=%v candidates = %v, want [FJ]", lon, got)
		}
	}
	if got := ix.Query(geo.Point{Lat: -17.5, Lon: 0}); len(got) != 0 {
		t.Errorf("far side candidates = %v, want none", candidateISOs(got))
	}
}

func TestIndexEdgeColumnsShareMeridian(t *testing.T) {
	east := &country.Country{ISO: "EA", Territory: geo.MultiPolygon{geo.NewPolygon(rect(-19, 178, -16, 180))}}
	west := &country.Country{ISO: "WE", Territory: geo.MultiPolygon{geo.NewPolygon(rect(-19, -180, -16, -179))}}
	cat, err := country.NewCatalog([]*country.Country{east, west})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	ix := NewIndex(cat, 1)
	for _, lon := range []float64{180, -180} {
		got := candidateISOs(ix.Query(geo.Point{Lat: -17, Lon: lon}))
		if len(got) != 2 {
			t.Errorf("lon=%v candidates = %v, want both edge polygons", lon, got)
		}
	}
}

func TestIndexEmptyForOcean(t *testing.T) {
	ix := testIndex(t, DefaultCellDegrees)
	for _, p := range []geo.Point{{Lat: 0, Lon: 0}, {Lat: 0, Lon: -30}, {Lat: -60, Lon: 90}, {Lat: 90, Lon: 180}, {Lat: -90, Lon: -180}} {
		if got := ix.Query(p); len(got) != 0 {
			t.Errorf("%+v candidates = %v, want none", p, candidateISOs(got))
		}
	}
}

// 索引只能多给候选，不能漏掉任何真实命中
func TestIndexIsConservative(t *testing.T) {
	world := testWorld()
	for _, cell := range []float64{0.25, 1, DefaultCellDegrees, 7, 45} {
		cat, err := country.NewCatalog(world)
		if err != nil {
			t.Fatalf("NewCatalog: %v", err)
		}
		ix := NewIndex(cat, cell)
		rng := rand.New(rand.NewPCG(1, uint64(cell*100)))
		for i := 0; i < 20000; i++ {
			p := geo.Point{Lat: rng.Float64()*180 - 90, Lon: rng.Float64()*360 - 180}
			cands := ix.Query(p)
			seen := map[*country.Country]map[int]bool{}
			for _, c := range cands {
				if seen[c.Country] == nil {
					seen[c.Country] = map[int]bool{}
				}
				if seen[c.Country][c.Polygon] {
					t.Fatalf("cell=%v %+v: duplicate candidate %s/%d", cell, p, c.Country.ISO, c.Polygon)
				}
				seen[c.Country][c.Polygon] = true
			}
			for _, c := range world {
				for pi, poly := range c.Territory {
					if PolygonContains(poly, p) && !seen[c][pi] {
						t.Fatalf("cell=%v %+v: %s polygon %d missing from candidates", cell, p, c.ISO, pi)
					}
				}
			}
		}
	}
}

func TestIndexStats(t *testing.T) {
	ix := testIndex(t, DefaultCellDegrees)
	s := ix.Stats()
	if s.Entries != 9 {
		t.Errorf("Entries = %d, want 9", s.Entries)
	}
	if s.CellDegrees != DefaultCellDegrees {
		t.Errorf("CellDegrees = %v", s.CellDegrees)
	}
	if s.Cells == 0 || s.MaxLoad < 2 || s.Refs < s.Cells {
		t.Errorf("unexpected stats %+v", s)
	}
	if got := NewIndex(mustCatalog(t), -1).Stats().CellDegrees; got != DefaultCellDegrees {
		t.Errorf("invalid cell size should fall back, got %v", got)
	}
}

func mustCatalog(t *testing.T) *country.Catalog {
	t.Helper()
	cat, err := country.NewCatalog(testWorld())
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return cat
}
