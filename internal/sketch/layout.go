package sketch

import (
	"fmt"
	"strconv"

	"github.com/malonic/quotehub-backend/pkg/enums"
)

// Transform magnitudes shared by every rendering target. Sliding
// panels translate along their axis; hinged panels and window panes
// swing with a perspective rotation anchored on the hinge edge.
const (
	slideRatio      = 0.6
	hingeAngleDeg   = 45.0
	hingeNudge      = 0.08
	dimensionGap    = 24.0
	rowDimensionGap = 18.0
)

// Rect is an axis-aligned rectangle in scene pixels.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// OpenState describes how an open panel or pane is displaced. A zero
// value means closed.
type OpenState struct {
	Open       bool                   `json:"open"`
	Direction  enums.OpeningDirection `json:"direction,omitempty"`
	Sliding    bool                   `json:"sliding,omitempty"`
	TranslateX float64                `json:"translateX,omitempty"`
	TranslateY float64                `json:"translateY,omitempty"`
	RotateDeg  float64                `json:"rotateDeg,omitempty"`
	OriginX    float64                `json:"originX,omitempty"`
	OriginY    float64                `json:"originY,omitempty"`
	Elevated   bool                   `json:"elevated,omitempty"`
	Shadow     bool                   `json:"shadow,omitempty"`
}

// CellNode is one pane inside a panel's division grid.
type CellNode struct {
	Row   int       `json:"row"`
	Col   int       `json:"col"`
	Rect  Rect      `json:"rect"`
	State OpenState `json:"state"`
}

// PanelNode is one vertical panel with its division grid.
type PanelNode struct {
	Index         int        `json:"index"`
	Rect          Rect       `json:"rect"`
	DeclaredWidth float64    `json:"declaredWidth"`
	Rows          int        `json:"rows"`
	Cols          int        `json:"cols"`
	Cells         []CellNode `json:"cells"`
	State         OpenState  `json:"state"`
}

// DimensionKind distinguishes the annotation lines the engine emits.
type DimensionKind string

const (
	DimensionPanelWidth  DimensionKind = "panel-width"
	DimensionTotalWidth  DimensionKind = "total-width"
	DimensionTotalHeight DimensionKind = "total-height"
	DimensionRowHeight   DimensionKind = "row-height"
)

// DimensionLine is an annotated measurement line placed outside the
// scene box.
type DimensionLine struct {
	Kind  DimensionKind `json:"kind"`
	Label string        `json:"label"`
	X1    float64       `json:"x1"`
	Y1    float64       `json:"y1"`
	X2    float64       `json:"x2"`
	Y2    float64       `json:"y2"`
}

// Scene is the renderable output of the layout engine. Panels are
// ordered by index and cells row-major, so output is reproducible.
type Scene struct {
	Box        Rect            `json:"box"`
	FrameColor string          `json:"frameColor"`
	GlassType  enums.GlassType `json:"glassType"`
	GlassTint  string          `json:"glassTint,omitempty"`
	Panels     []PanelNode     `json:"panels"`
	Dimensions []DimensionLine `json:"dimensions,omitempty"`
}

// Options control the annotation output. Compact thumbnails suppress
// dimension lines entirely.
type Options struct {
	ShowDimensions bool
}

// Layout converts a configuration plus a target pixel box into a
// scene graph. It is pure: the same inputs always produce the same
// scene. Structurally invalid configurations are rejected.
func Layout(cfg *Configuration, boxW, boxH float64, opts Options) (*Scene, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if boxW <= 0 || boxH <= 0 {
		return nil, fmt.Errorf("target box must be positive, got %gx%g", boxW, boxH)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	totalDeclared := 0.0
	for _, w := range cfg.PanelWidths {
		totalDeclared += w
	}

	scene := &Scene{
		Box:        Rect{X: 0, Y: 0, W: boxW, H: boxH},
		FrameColor: cfg.FrameColor,
		GlassType:  cfg.GlassType,
		GlassTint:  cfg.CustomGlassTint,
		Panels:     make([]PanelNode, 0, cfg.PanelCount),
	}

	sliding := cfg.Kind == enums.ProductKindDoor && cfg.DoorStyle == enums.DoorStyleSliding

	x := 0.0
	for i := 0; i < cfg.PanelCount; i++ {
		pw := boxW * cfg.PanelWidths[i] / totalDeclared
		rect := Rect{X: x, Y: 0, W: pw, H: boxH}
		rows, cols := cfg.DivisionFor(i)

		panel := PanelNode{
			Index:         i,
			Rect:          rect,
			DeclaredWidth: cfg.PanelWidths[i],
			Rows:          rows,
			Cols:          cols,
		}

		panelOpen, panelDir := cfg.IsPanelOpen(i)
		if panelOpen {
			panel.State = openState(rect, panelDir, sliding)
		}

		cellW := rect.W / float64(cols)
		cellH := rect.H / float64(rows)
		for r := 0; r < rows; r++ {
			for cIdx := 0; cIdx < cols; cIdx++ {
				cellRect := Rect{
					X: rect.X + float64(cIdx)*cellW,
					Y: rect.Y + float64(r)*cellH,
					W: cellW,
					H: cellH,
				}
				cell := CellNode{Row: r, Col: cIdx, Rect: cellRect}
				if panelOpen {
					// whole-panel opening overrides any per-cell entry
					cell.State = openState(cellRect, panelDir, sliding)
				} else if dir, ok := cfg.PaneOpening(i, r, cIdx); ok {
					cell.State = openState(cellRect, dir, sliding)
				}
				panel.Cells = append(panel.Cells, cell)
			}
		}

		scene.Panels = append(scene.Panels, panel)
		x += pw
	}

	if opts.ShowDimensions {
		scene.Dimensions = dimensionLines(cfg, scene)
	}

	return scene, nil
}

func openState(rect Rect, dir enums.OpeningDirection, sliding bool) OpenState {
	state := OpenState{
		Open:      true,
		Direction: dir,
		Sliding:   sliding,
		Elevated:  true,
		Shadow:    true,
	}

	if sliding {
		switch dir {
		case enums.OpeningDirectionLeft:
			state.TranslateX = -slideRatio * rect.W
		case enums.OpeningDirectionRight:
			state.TranslateX = slideRatio * rect.W
		case enums.OpeningDirectionUp:
			state.TranslateY = -slideRatio * rect.H
		case enums.OpeningDirectionDown:
			state.TranslateY = slideRatio * rect.H
		}
		return state
	}

	// hinged: origin sits on the hinge edge named by the direction
	switch dir {
	case enums.OpeningDirectionLeft:
		state.OriginX, state.OriginY = rect.X, rect.Y+rect.H/2
		state.RotateDeg = hingeAngleDeg
		state.TranslateX = -hingeNudge * rect.W
	case enums.OpeningDirectionRight:
		state.OriginX, state.OriginY = rect.X+rect.W, rect.Y+rect.H/2
		state.RotateDeg = -hingeAngleDeg
		state.TranslateX = hingeNudge * rect.W
	case enums.OpeningDirectionUp:
		state.OriginX, state.OriginY = rect.X+rect.W/2, rect.Y
		state.RotateDeg = hingeAngleDeg
		state.TranslateY = -hingeNudge * rect.H
	case enums.OpeningDirectionDown:
		state.OriginX, state.OriginY = rect.X+rect.W/2, rect.Y+rect.H
		state.RotateDeg = -hingeAngleDeg
		state.TranslateY = hingeNudge * rect.H
	}
	return state
}

func dimensionLines(cfg *Configuration, scene *Scene) []DimensionLine {
	lines := make([]DimensionLine, 0, len(scene.Panels)+2)

	// per-panel widths run above the box
	for _, panel := range scene.Panels {
		lines = append(lines, DimensionLine{
			Kind:  DimensionPanelWidth,
			Label: FormatDimension(panel.DeclaredWidth, cfg.Unit),
			X1:    panel.Rect.X,
			Y1:    -dimensionGap,
			X2:    panel.Rect.X + panel.Rect.W,
			Y2:    -dimensionGap,
		})
	}

	// overall width below, overall height on the left
	lines = append(lines, DimensionLine{
		Kind:  DimensionTotalWidth,
		Label: FormatDimension(cfg.Width, cfg.Unit),
		X1:    0,
		Y1:    scene.Box.H + dimensionGap,
		X2:    scene.Box.W,
		Y2:    scene.Box.H + dimensionGap,
	})
	lines = append(lines, DimensionLine{
		Kind:  DimensionTotalHeight,
		Label: FormatDimension(cfg.Height, cfg.Unit),
		X1:    -dimensionGap,
		Y1:    0,
		X2:    -dimensionGap,
		Y2:    scene.Box.H,
	})

	// row heights on the right of any panel divided into rows
	for _, panel := range scene.Panels {
		if panel.Rows <= 1 {
			continue
		}
		rowDeclared := cfg.Height / float64(panel.Rows)
		rowPx := panel.Rect.H / float64(panel.Rows)
		for r := 0; r < panel.Rows; r++ {
			lines = append(lines, DimensionLine{
				Kind:  DimensionRowHeight,
				Label: FormatDimension(rowDeclared, cfg.Unit),
				X1:    panel.Rect.X + panel.Rect.W + rowDimensionGap,
				Y1:    float64(r) * rowPx,
				X2:    panel.Rect.X + panel.Rect.W + rowDimensionGap,
				Y2:    float64(r+1) * rowPx,
			})
		}
	}

	return lines
}

// FormatDimension renders a declared measurement with its unit, with
// trailing zeros trimmed.
func FormatDimension(value float64, unit enums.MeasureUnit) string {
	return strconv.FormatFloat(value, 'f', -1, 64) + " " + unit.String()
}
