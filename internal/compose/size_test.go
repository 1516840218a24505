package compose

import "testing"

func TestParseDimension(t *testing.T) {
	d, err := ParseDimension("480")
	if err != nil {
		t.Fatalf("ParseDimension error: %v", err)
	}
	if d.String() != "480" {
		t.Fatalf("unexpected dimension %s", d)
	}

	d, err = ParseDimension("25%")
	if err != nil {
		t.Fatalf("ParseDimension error: %v", err)
	}
	if d.String() != "25%" {
		t.Fatalf("unexpected dimension %s", d)
	}

	d, err = ParseDimension("")
	if err != nil {
		t.Fatalf("ParseDimension error: %v", err)
	}
	if !d.IsNative() {
		t.Fatal("empty value should stay native")
	}

	for _, bad := range []string{"abc", "-20", "0", "110%x"} {
		if _, err := ParseDimension(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestResolveScalePercentWidth(t *testing.T) {
	scale, ok := ResolveScale(Percent(25), Native(), 0, 0, true)
	if !ok {
		t.Fatal("expected scaling to be needed")
	}
	if scale.W != "iw*25/100" {
		t.Fatalf("unexpected width expression %q", scale.W)
	}
	if scale.H != "-1" {
		t.Fatalf("expected proportional height, got %q", scale.H)
	}
}

func TestResolveScaleLiteralPixels(t *testing.T) {
	scale, ok := ResolveScale(Pixels(480), Native(), 0, 0, true)
	if !ok {
		t.Fatal("expected scaling to be needed")
	}
	if scale.W != "480" {
		t.Fatalf("unexpected width expression %q", scale.W)
	}
	if scale.H != "-1" {
		t.Fatalf("expected proportional height, got %q", scale.H)
	}
}

func TestResolveScaleDerivesNumericAxisFromSourceDims(t *testing.T) {
	// 1920x1080 source scaled to width 480 keeps a 16:9 height of 270.
	scale, ok := ResolveScale(Pixels(480), Native(), 1920, 1080, true)
	if !ok {
		t.Fatal("expected scaling to be needed")
	}
	if scale.H != "270" {
		t.Fatalf("expected derived height 270, got %q", scale.H)
	}

	// Height given, width derived.
	scale, _ = ResolveScale(Native(), Pixels(270), 1920, 1080, true)
	if scale.W != "480" {
		t.Fatalf("expected derived width 480, got %q", scale.W)
	}
}

func TestResolveScaleBothAxes(t *testing.T) {
	scale, ok := ResolveScale(Pixels(640), Percent(50), 0, 0, true)
	if !ok {
		t.Fatal("expected scaling to be needed")
	}
	if scale.W != "640" || scale.H != "ih*50/100" {
		t.Fatalf("unexpected scale {%s,%s}", scale.W, scale.H)
	}
}

func TestResolveScaleNativeKeepsClipUntouched(t *testing.T) {
	if _, ok := ResolveScale(Native(), Native(), 1920, 1080, true); ok {
		t.Fatal("native/native should need no scaling")
	}
}

func TestResolveScaleAspectOff(t *testing.T) {
	scale, ok := ResolveScale(Pixels(480), Native(), 1920, 1080, false)
	if !ok {
		t.Fatal("expected scaling to be needed")
	}
	if scale.H != "ih" {
		t.Fatalf("aspect off should keep native height placeholder, got %q", scale.H)
	}
}
