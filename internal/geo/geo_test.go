package geo

import (
	"math"
	"testing"
)

func TestDeltaLon(t *testing.T) {
	tests := []struct {
		from, to float64
		want     float64
	}{
		{0, 10, 10},
		{10, 0, -10},
		{179, -179, 2},
		{-179, 179, -2},
		{170, 190, 20},
		{0, 180, 180},
		{0, -180, 180},
		{180, -180, 0},
		{-90, 90, 180},
	}
	for _, tt := range tests {
		if got := DeltaLon(tt.from, tt.to); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("DeltaLon(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestNormLon(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0}, {180, -180}, {-180, -180}, {190, -170}, {-190, 170}, {540, -180}, {359, -1},
	}
	for _, tt := range tests {
		if got := NormLon(tt.in); got != tt.want {
			t.Errorf("NormLon(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPointValid(t *testing.T) {
	tests := []struct {
		p    Point
		want bool
	}{
		{Point{0, 0}, true},
		{Point{90, 180}, true},
		{Point{-90, -180}, true},
		{Point{-91, 27.8725}, false},
		{Point{91, 181}, false},
		{Point{7.88481, -181}, false},
		{Point{math.NaN(), 0}, false},
		{Point{0, math.Inf(1)}, false},
	}
	for _, tt := range tests {
		if got := tt.p.Valid(); got != tt.want {
			t.Errorf("%+v.Valid() = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestNewRingDropsClosingVertex(t *testing.T) {
	r := NewRing([]Point{{0, 0}, {0, 1}, {1, 1}, {0, 0}})
	if len(r) != 3 {
		t.Fatalf("len = %d, want 3", len(r))
	}
	open := NewRing([]Point{{0, 0}, {0, 1}, {1, 1}})
	if len(open) != 3 {
		t.Fatalf("len = %d, want 3", len(open))
	}
}

func TestRingBounds(t *testing.T) {
	tests := []struct {
		name  string
		ring  Ring
		want  BBox
		wraps bool
	}{
		{
			name: "plain square",
			ring: Ring{{0, 10}, {0, 20}, {5, 20}, {5, 10}},
			want: BBox{MinLat: 0, MinLon: 10, MaxLat: 5, MaxLon: 20},
		},
		{
			name:  "antimeridian with jump",
			ring:  Ring{{-19, 177}, {-19, -178}, {-16, -178}, {-16, 177}},
			want:  BBox{MinLat: -19, MinLon: 177, MaxLat: -16, MaxLon: -178},
			wraps: true,
		},
		{
			name:  "antimeridian past 180",
			ring:  Ring{{60, 170}, {60, 190}, {70, 190}, {70, 170}},
			want:  BBox{MinLat: 60, MinLon: 170, MaxLat: 70, MaxLon: -170},
			wraps: true,
		},
		{
			name: "touching 180 from the east side",
			ring: Ring{{-19, 178}, {-19, 180}, {-16, 180}, {-16, 178}},
			want: BBox{MinLat: -19, MinLon: 178, MaxLat: -16, MaxLon: 180},
		},
		{
			name: "south polar cap",
			ring: Ring{{-70, -180}, {-70, -90}, {-70, 0}, {-70, 90}, {-70, 180}, {-90, 180}, {-90, -180}},
			want: BBox{MinLat: -90, MinLon: -180, MaxLat: -70, MaxLon: 180},
		},
		{
			name: "south polar coastline without pole vertices",
			ring: Ring{{-70, -180}, {-65, -90}, {-70, 0}, {-65, 90}, {-70, 179}},
			want: BBox{MinLat: -90, MinLon: -180, MaxLat: -65, MaxLon: 180},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.ring.Bounds()
			if got != tt.want {
				t.Errorf("Bounds() = %+v, want %+v", got, tt.want)
			}
			if got.Wraps() != tt.wraps {
				t.Errorf("Wraps() = %v, want %v", got.Wraps(), tt.wraps)
			}
		})
	}
}

func TestRingEnclosesPole(t *testing.T) {
	polar := Ring{{-70, -180}, {-70, -90}, {-70, 0}, {-70, 90}, {-70, 180}, {-90, 180}, {-90, -180}}
	if !polar.EnclosesPole() {
		t.Error("polar cap should enclose the pole")
	}
	fiji := Ring{{-19, 177}, {-19, -178}, {-16, -178}, {-16, 177}}
	coast := Ring{{-70, -180}, {-65, -90}, {-70, 0}, {-65, 90}, {-70, 179}}
	if !coast.EnclosesPole() {
		t.Error("coastline winding once around the globe should enclose the pole")
	}
	if fiji.EnclosesPole() {
		t.Error("antimeridian ring should not enclose the pole")
	}
}

func TestRingArea(t *testing.T) {
	square := Ring{{0, 0}, {0, 2}, {2, 2}, {2, 0}}
	if got := square.Area(); got != 4 {
		t.Errorf("square area = %v, want 4", got)
	}
	reversed := Ring{{2, 0}, {2, 2}, {0, 2}, {0, 0}}
	if got := reversed.Area(); got != 4 {
		t.Errorf("reversed area = %v, want 4", got)
	}
	wrap := Ring{{-19, 179}, {-19, -179}, {-17, -179}, {-17, 179}}
	if got := wrap.Area(); math.Abs(got-4) > 1e-9 {
		t.Errorf("wrapping area = %v, want 4", got)
	}
}

func TestBBoxContains(t *testing.T) {
	plain := BBox{MinLat: 0, MinLon: 10, MaxLat: 5, MaxLon: 20}
	wrap := BBox{MinLat: -19, MinLon: 177, MaxLat: -16, MaxLon: -178}
	east := BBox{MinLat: -19, MinLon: 178, MaxLat: -16, MaxLon: 180}
	tests := []struct {
		name string
		b    BBox
		p    Point
		want bool
	}{
		{"inside", plain, Point{2, 15}, true},
		{"corner", plain, Point{0, 10}, true},
		{"outside lat", plain, Point{6, 15}, false},
		{"outside lon", plain, Point{2, 21}, false},
		{"wrap east half", wrap, Point{-17, 179}, true},
		{"wrap west half", wrap, Point{-17, -179}, true},
		{"wrap gap", wrap, Point{-17, 0}, false},
		{"180 matches -180 edge", wrap, Point{-17, -180}, true},
		{"-180 matches 180 edge", east, Point{-17, -180}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.b.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%+v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestBBoxSplitAndArea(t *testing.T) {
	wrap := BBox{MinLat: -19, MinLon: 177, MaxLat: -16, MaxLon: -178}
	parts := wrap.Split()
	if len(parts) != 2 {
		t.Fatalf("Split() returned %d boxes, want 2", len(parts))
	}
	if parts[0].MaxLon != 180 || parts[1].MinLon != -180 {
		t.Errorf("Split() = %+v", parts)
	}
	if got := wrap.Area(); math.Abs(got-15) > 1e-9 {
		t.Errorf("Area() = %v, want 15", got)
	}
	plain := BBox{MinLat: 0, MinLon: 0, MaxLat: 1, MaxLon: 1}
	if len(plain.Split()) != 1 {
		t.Error("plain box should not split")
	}
}

func TestNewPolygonPicksLargestRingAsOuter(t *testing.T) {
	hole := Ring{{1, 1}, {1, 2}, {2, 2}, {2, 1}}
	shell := Ring{{0, 0}, {0, 10}, {10, 10}, {10, 0}}
	p := NewPolygon(hole, shell)
	if len(p.Outer) != 4 || p.Outer[2] != (Point{10, 10}) {
		t.Errorf("outer = %v, want the 10x10 shell", p.Outer)
	}
	if len(p.Holes) != 1 {
		t.Fatalf("holes = %d, want 1", len(p.Holes))
	}
	if got := len(p.Rings()); got != 2 {
		t.Errorf("Rings() = %d, want 2", got)
	}
	if got := (MultiPolygon{p}).VertexCount(); got != 8 {
		t.Errorf("VertexCount() = %d, want 8", got)
	}
}
