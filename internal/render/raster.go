package render

import (
	"bytes"
	"fmt"

	"github.com/fogleman/gg"

	"github.com/malonic/quotehub-backend/internal/sketch"
)

// PNG rasterizes a configuration for document embedding. The scene is
// the same one the SVG target draws; only the backend differs.
func PNG(cfg *sketch.Configuration, opts Options) ([]byte, error) {
	scene, opts, err := layoutScene(cfg, opts)
	if err != nil {
		return nil, err
	}

	margin := opts.margin()
	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetHexColor("#ffffff")
	dc.Clear()
	dc.Translate(margin, margin)

	frame := scene.FrameColor
	if frame == "" {
		frame = "#1f2937"
	}
	fill := glassFill(scene.GlassType, scene.GlassTint)

	for _, panel := range scene.Panels {
		for _, cell := range panel.Cells {
			if cell.State.Open {
				ghostRect(dc, cell.Rect)
				continue
			}
			paneRect(dc, cell.Rect, fill, frame, paneStroke)
		}
		dc.SetHexColor(frame)
		dc.SetLineWidth(frameStroke)
		dc.DrawRectangle(panel.Rect.X, panel.Rect.Y, panel.Rect.W, panel.Rect.H)
		dc.Stroke()
	}

	for _, panel := range scene.Panels {
		for _, cell := range panel.Cells {
			if !cell.State.Open {
				continue
			}
			openRect(dc, cell.Rect, cell.State, fill, frame)
		}
	}

	for _, line := range scene.Dimensions {
		dimensionLine(dc, line)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encoding png: %w", err)
	}
	return buf.Bytes(), nil
}

func paneRect(dc *gg.Context, r sketch.Rect, fill, stroke string, width float64) {
	dc.SetHexColor(fill)
	dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	dc.Fill()
	dc.SetHexColor(stroke)
	dc.SetLineWidth(width)
	dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	dc.Stroke()
}

func ghostRect(dc *gg.Context, r sketch.Rect) {
	dc.SetHexColor("#9ca3af")
	dc.SetLineWidth(1)
	dc.SetDash(4, 3)
	dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	dc.Stroke()
	dc.SetDash()
}

func openRect(dc *gg.Context, r sketch.Rect, state sketch.OpenState, fill, frame string) {
	dc.Push()
	dc.Translate(state.TranslateX, state.TranslateY)
	if state.RotateDeg != 0 {
		dc.RotateAbout(gg.Radians(state.RotateDeg), state.OriginX, state.OriginY)
	}

	if state.Shadow {
		dc.SetRGBA(0, 0, 0, 0.18)
		dc.DrawRectangle(r.X+3, r.Y+3, r.W, r.H)
		dc.Fill()
	}

	dc.SetHexColor(fill)
	dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	dc.Fill()
	dc.SetHexColor(frame)
	dc.SetLineWidth(frameStroke)
	dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	dc.Stroke()
	dc.Pop()
}

func dimensionLine(dc *gg.Context, line sketch.DimensionLine) {
	dc.SetHexColor("#374151")
	dc.SetLineWidth(1)
	dc.DrawLine(line.X1, line.Y1, line.X2, line.Y2)
	dc.Stroke()

	if line.Y1 == line.Y2 {
		dc.DrawLine(line.X1, line.Y1-dimensionTick, line.X1, line.Y1+dimensionTick)
		dc.DrawLine(line.X2, line.Y2-dimensionTick, line.X2, line.Y2+dimensionTick)
		dc.Stroke()
		dc.DrawStringAnchored(line.Label, (line.X1+line.X2)/2, line.Y1-6, 0.5, 0.5)
		return
	}

	dc.DrawLine(line.X1-dimensionTick, line.Y1, line.X1+dimensionTick, line.Y1)
	dc.DrawLine(line.X2-dimensionTick, line.Y2, line.X2+dimensionTick, line.Y2)
	dc.Stroke()
	dc.Push()
	dc.RotateAbout(gg.Radians(-90), line.X1-6, (line.Y1+line.Y2)/2)
	dc.DrawStringAnchored(line.Label, line.X1-6, (line.Y1+line.Y2)/2, 0.5, 0.5)
	dc.Pop()
}
