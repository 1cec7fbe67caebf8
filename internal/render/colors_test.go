package render

import (
	"image/color"
	"testing"

	"github.com/TommyTokk/parole-bot/internal/config"
	"gonum.org/v1/plot/vg"
)

func TestSampleColors(t *testing.T) {
	cm, err := Viridis()
	if err != nil {
		t.Fatalf("Viridis failed: %v", err)
	}

	tests := []struct {
		name string
		n    int
	}{
		{"single", 1},
		{"three", 3},
		{"many", 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			colors, err := SampleColors(cm, tt.n, 0, 0.8)
			if err != nil {
				t.Fatalf("SampleColors failed: %v", err)
			}
			if len(colors) != tt.n {
				t.Fatalf("len = %d, want %d", len(colors), tt.n)
			}
			seen := make(map[color.NRGBA]bool)
			for _, c := range colors {
				n := color.NRGBAModel.Convert(c).(color.NRGBA)
				if seen[n] {
					t.Errorf("duplicate color %v", n)
				}
				seen[n] = true
			}
		})
	}
}

func TestSampleColorsStartsAtStart(t *testing.T) {
	cm, err := Viridis()
	if err != nil {
		t.Fatalf("Viridis failed: %v", err)
	}
	colors, err := SampleColors(cm, 1, 0.3, 0.8)
	if err != nil {
		t.Fatalf("SampleColors failed: %v", err)
	}
	want, _ := cm.At(0.3)
	if colors[0] != want {
		t.Errorf("colors[0] = %v, want %v", colors[0], want)
	}
}

func TestSampleColorsOutOfRange(t *testing.T) {
	cm, err := Viridis()
	if err != nil {
		t.Fatalf("Viridis failed: %v", err)
	}
	if _, err := SampleColors(cm, 2, 0, 1.5); err == nil {
		t.Error("expected error sampling outside the colormap")
	}
}

func TestWithAlpha(t *testing.T) {
	got := withAlpha(color.NRGBA{R: 10, G: 20, B: 30, A: 255}, 0.8)
	if got.A != 204 || got.R != 10 || got.G != 20 || got.B != 30 {
		t.Errorf("withAlpha() = %v, want {10 20 30 204}", got)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	opts := OptionsFromConfig(config.Default())

	if opts.Width != 12*vg.Inch || opts.Height != 8*vg.Inch {
		t.Errorf("size = %vx%v inches, want 12x8", float64(opts.Width/vg.Inch), float64(opts.Height/vg.Inch))
	}
	if opts.Format != FormatPNG || opts.Dir != "imgs" {
		t.Errorf("format = %q dir = %q", opts.Format, opts.Dir)
	}

	r, g, b, _ := opts.BoxColor(0).RGBA()
	if r>>8 != 0xFF || g>>8 != 0xFF || b>>8 != 0xE0 {
		t.Errorf("BoxColor(0) = %x %x %x, want lightyellow", r>>8, g>>8, b>>8)
	}
	if opts.BoxColor(3) != opts.BoxColor(0) {
		t.Error("box colors should cycle every three boxes")
	}
}

func TestFormat(t *testing.T) {
	if !FormatPNG.Valid() || !FormatSVG.Valid() || Format("gif").Valid() {
		t.Error("unexpected Valid() results")
	}
	if FormatSVG.Ext() != ".svg" {
		t.Errorf("Ext() = %q, want .svg", FormatSVG.Ext())
	}
}
