package surface

import (
	"math"
	"testing"
)

func TestCircleCurvatureSymmetry(t *testing.T) {
	c := NewCircle(5.0)

	for _, x := range []float64{0, 0.5, 1.0, 2.5, 4.0} {
		left := c.CurvatureRadius(-x)
		right := c.CurvatureRadius(x)
		if math.Abs(left-right) > 1e-9 {
			t.Errorf("R(%v)=%v, R(-%v)=%v, want equal", x, right, x, left)
		}
	}
}

func TestCircleCurvatureRadius(t *testing.T) {
	c := NewCircle(5.0)

	// Away from the domain edge the osculating circle is the circle itself.
	for _, x := range []float64{0, 1.0, 2.0, 3.0} {
		r := c.CurvatureRadius(x)
		if math.Abs(r-5.0) > 1e-6 {
			t.Errorf("CurvatureRadius(%v) = %v, want 5.0", x, r)
		}
	}
}

func TestCircleBoundaryIsFinite(t *testing.T) {
	c := NewCircle(2.0)

	for _, x := range []float64{2.0, -2.0, 2.0000001} {
		for name, v := range map[string]float64{
			"height": c.Height(x),
			"slope":  c.Slope(x),
			"second": c.Second(x),
		} {
			if math.IsNaN(v) {
				t.Errorf("%s(%v) is NaN", name, x)
			}
		}
	}
}

func TestTrackFlatRegion(t *testing.T) {
	tr := NewTrack()

	for _, x := range []float64{-4.0, -1.0, -0.001} {
		if y := tr.Height(x); y != 0 {
			t.Errorf("Height(%v) = %v, want 0", x, y)
		}
		if s := tr.Slope(x); s != 0 {
			t.Errorf("Slope(%v) = %v, want 0", x, s)
		}
		if r := tr.CurvatureRadius(x); !math.IsInf(r, 1) {
			t.Errorf("CurvatureRadius(%v) = %v, want +Inf", x, r)
		}
	}
}

func TestTrackHillDerivatives(t *testing.T) {
	tr := NewTrack()
	h := 1e-6

	for _, x := range []float64{0.5, 1.0, 2.0, 3.5} {
		numeric := (tr.Height(x+h) - tr.Height(x-h)) / (2 * h)
		if math.Abs(numeric-tr.Slope(x)) > 1e-5 {
			t.Errorf("Slope(%v) = %v, finite difference %v", x, tr.Slope(x), numeric)
		}
	}
}

func TestEllipseDerivatives(t *testing.T) {
	e := NewEllipse(3.0, 2.0)
	h := 1e-6

	for _, x := range []float64{-2.0, -0.5, 0, 0.5, 2.0} {
		numeric := (e.Height(x+h) - e.Height(x-h)) / (2 * h)
		if math.Abs(numeric-e.Slope(x)) > 1e-4 {
			t.Errorf("Slope(%v) = %v, finite difference %v", x, e.Slope(x), numeric)
		}
	}

	// Degenerates to the circle when a == b.
	circ := NewCircle(2.0)
	round := NewEllipse(2.0, 2.0)
	for _, x := range []float64{0, 0.5, 1.0} {
		if math.Abs(circ.Height(x)-round.Height(x)) > 1e-9 {
			t.Errorf("ellipse(2,2).Height(%v) = %v, circle(2) = %v", x, round.Height(x), circ.Height(x))
		}
	}
}

func TestExprSurface(t *testing.T) {
	e, err := NewExpr("2*sin(x) + 0.5*x")
	if err != nil {
		t.Fatalf("NewExpr failed: %v", err)
	}

	for _, x := range []float64{-1.0, 0, 0.7, 2.0} {
		want := 2*math.Sin(x) + 0.5*x
		if math.Abs(e.Height(x)-want) > 1e-9 {
			t.Errorf("Height(%v) = %v, want %v", x, e.Height(x), want)
		}
		wantSlope := 2*math.Cos(x) + 0.5
		if math.Abs(e.Slope(x)-wantSlope) > 1e-4 {
			t.Errorf("Slope(%v) = %v, want ~%v", x, e.Slope(x), wantSlope)
		}
	}
}

func TestExprRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"unbalanced", "sin(x"},
		{"unknown variable", "y + 1"},
		{"unknown variable mixed", "x + t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewExpr(tt.src); err == nil {
				t.Errorf("NewExpr(%q) succeeded, want error", tt.src)
			}
		})
	}
}

func TestCompileMuExpression(t *testing.T) {
	fn, err := Compile("0.3 + 0.1*sin(x)")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	want := 0.3 + 0.1*math.Sin(1.5)
	if got := fn(1.5); math.Abs(got-want) > 1e-9 {
		t.Errorf("fn(1.5) = %v, want %v", got, want)
	}
}

func TestRadiusFromFlat(t *testing.T) {
	if r := radiusFrom(0.5, 0); !math.IsInf(r, 1) {
		t.Errorf("radiusFrom(0.5, 0) = %v, want +Inf", r)
	}
	if r := radiusFrom(0, 1.0); math.Abs(r-1.0) > 1e-12 {
		t.Errorf("radiusFrom(0, 1) = %v, want 1", r)
	}
}
