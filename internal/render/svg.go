package render

import (
	"bytes"
	"fmt"

	svg "github.com/ajstarks/svgo"

	"github.com/malonic/quotehub-backend/internal/sketch"
)

const (
	frameStroke   = 2
	paneStroke    = 1
	dimensionTick = 3
)

// SVG renders a configuration as a standalone SVG document.
func SVG(cfg *sketch.Configuration, opts Options) ([]byte, error) {
	scene, opts, err := layoutScene(cfg, opts)
	if err != nil {
		return nil, err
	}

	margin := opts.margin()
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(opts.Width, opts.Height)
	canvas.Rect(0, 0, opts.Width, opts.Height, "fill:#ffffff")

	// scene coordinates are offset by the margin
	canvas.Gtransform(fmt.Sprintf("translate(%g,%g)", margin, margin))

	frame := scene.FrameColor
	if frame == "" {
		frame = "#1f2937"
	}
	fill := glassFill(scene.GlassType, scene.GlassTint)

	// closed geometry first, open sashes on top
	for _, panel := range scene.Panels {
		for _, cell := range panel.Cells {
			if cell.State.Open {
				drawGhost(canvas, cell.Rect)
				continue
			}
			drawPane(canvas, cell.Rect, fill, frame)
		}
		canvas.Rect(
			int(panel.Rect.X), int(panel.Rect.Y),
			int(panel.Rect.W), int(panel.Rect.H),
			fmt.Sprintf("fill:none;stroke:%s;stroke-width:%d", frame, frameStroke),
		)
	}

	for _, panel := range scene.Panels {
		for _, cell := range panel.Cells {
			if !cell.State.Open {
				continue
			}
			drawOpenPane(canvas, cell.Rect, cell.State, fill, frame)
		}
	}

	for _, line := range scene.Dimensions {
		drawDimension(canvas, line)
	}

	canvas.Gend()
	canvas.End()
	return buf.Bytes(), nil
}

func drawPane(canvas *svg.SVG, r sketch.Rect, fill, frame string) {
	canvas.Rect(
		int(r.X), int(r.Y), int(r.W), int(r.H),
		fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%d", fill, frame, paneStroke),
	)
}

// drawGhost outlines where an open sash sits when closed.
func drawGhost(canvas *svg.SVG, r sketch.Rect) {
	canvas.Rect(
		int(r.X), int(r.Y), int(r.W), int(r.H),
		"fill:none;stroke:#9ca3af;stroke-width:1;stroke-dasharray:4,3",
	)
}

func drawOpenPane(canvas *svg.SVG, r sketch.Rect, state sketch.OpenState, fill, frame string) {
	transform := fmt.Sprintf("translate(%g,%g)", state.TranslateX, state.TranslateY)
	if state.RotateDeg != 0 {
		transform += fmt.Sprintf(" rotate(%g,%g,%g)", state.RotateDeg, state.OriginX, state.OriginY)
	}

	canvas.Gtransform(transform)
	if state.Shadow {
		canvas.Rect(
			int(r.X)+3, int(r.Y)+3, int(r.W), int(r.H),
			"fill:#000000;fill-opacity:0.18",
		)
	}
	canvas.Rect(
		int(r.X), int(r.Y), int(r.W), int(r.H),
		fmt.Sprintf("fill:%s;fill-opacity:0.85;stroke:%s;stroke-width:%d", fill, frame, frameStroke),
	)
	canvas.Gend()
}

func drawDimension(canvas *svg.SVG, line sketch.DimensionLine) {
	x1, y1, x2, y2 := int(line.X1), int(line.Y1), int(line.X2), int(line.Y2)
	style := "stroke:#374151;stroke-width:1"
	canvas.Line(x1, y1, x2, y2, style)

	if y1 == y2 {
		// horizontal: end ticks plus centered label above the line
		canvas.Line(x1, y1-dimensionTick, x1, y1+dimensionTick, style)
		canvas.Line(x2, y2-dimensionTick, x2, y2+dimensionTick, style)
		canvas.Text((x1+x2)/2, y1-4, line.Label, "text-anchor:middle;font-size:10px;fill:#374151")
		return
	}

	canvas.Line(x1-dimensionTick, y1, x1+dimensionTick, y1, style)
	canvas.Line(x2-dimensionTick, y2, x2+dimensionTick, y2, style)
	canvas.Gtransform(fmt.Sprintf("rotate(-90,%d,%d)", x1-4, (y1+y2)/2))
	canvas.Text(x1-4, (y1+y2)/2, line.Label, "text-anchor:middle;font-size:10px;fill:#374151")
	canvas.Gend()
}
