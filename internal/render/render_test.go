package render

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/malonic/quotehub-backend/internal/sketch"
	"github.com/malonic/quotehub-backend/pkg/enums"
)

func testConfig(t *testing.T) *sketch.Configuration {
	t.Helper()
	cfg := sketch.NewConfiguration()
	if err := cfg.SetPanelCount(2); err != nil {
		t.Fatalf("SetPanelCount: %v", err)
	}
	cfg.PanelDivisions = []sketch.PanelDivision{
		{PanelIndex: 0, Rows: 2, Cols: 1},
		{PanelIndex: 1, Rows: 1, Cols: 1},
	}
	cfg.OpeningPanes = []sketch.OpeningPane{
		{PanelIndex: 0, Row: 0, Col: 0, Direction: enums.OpeningDirectionLeft},
	}
	return cfg
}

func TestSVGContainsSceneElements(t *testing.T) {
	out, err := SVG(testConfig(t), Options{Width: 400, Height: 320})
	if err != nil {
		t.Fatalf("svg render: %v", err)
	}
	doc := string(out)

	if !strings.Contains(doc, "<svg") || !strings.Contains(doc, "</svg>") {
		t.Fatal("output is not an svg document")
	}
	if !strings.Contains(doc, "rotate(") {
		t.Fatal("open hinged pane should emit a rotation transform")
	}
	if !strings.Contains(doc, "1000 mm") {
		t.Fatal("dimension labels should be present in editable mode")
	}
	if !strings.Contains(doc, "stroke-dasharray") {
		t.Fatal("open pane should leave a dashed ghost outline")
	}
}

func TestSVGCompactSuppressesDimensions(t *testing.T) {
	out, err := SVG(testConfig(t), Options{Width: 160, Height: 120, CompactForPrint: true})
	if err != nil {
		t.Fatalf("svg render: %v", err)
	}
	if strings.Contains(string(out), "1000 mm") {
		t.Fatal("compact mode must not draw dimension labels")
	}
}

func TestSVGSharesLayoutAcrossSizes(t *testing.T) {
	cfg := testConfig(t)
	small, err := SVG(cfg, Options{Width: 160, Height: 120, CompactForPrint: true})
	if err != nil {
		t.Fatalf("small render: %v", err)
	}
	large, err := SVG(cfg, Options{Width: 800, Height: 600, CompactForPrint: true})
	if err != nil {
		t.Fatalf("large render: %v", err)
	}
	// same scene at different scales still renders the rotation for
	// the same open pane
	if strings.Count(string(small), "rotate(") != strings.Count(string(large), "rotate(") {
		t.Fatal("open state decisions must not depend on pixel scale")
	}
}

func TestPNGProducesDecodableImage(t *testing.T) {
	out, err := PNG(testConfig(t), Options{Width: 320, Height: 240, CompactForPrint: true})
	if err != nil {
		t.Fatalf("png render: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not a decodable png: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 320 || bounds.Dy() != 240 {
		t.Fatalf("unexpected image size %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestPNGAppliesDefaultSize(t *testing.T) {
	out, err := PNG(sketch.NewConfiguration(), Options{})
	if err != nil {
		t.Fatalf("png render: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 360 || img.Bounds().Dy() != 280 {
		t.Fatalf("expected default 360x280, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestRenderRejectsInvalidConfiguration(t *testing.T) {
	cfg := sketch.NewConfiguration()
	cfg.Width = -1
	if _, err := SVG(cfg, Options{}); err == nil {
		t.Fatal("svg should reject invalid configurations")
	}
	if _, err := PNG(cfg, Options{}); err == nil {
		t.Fatal("png should reject invalid configurations")
	}
}
