package sketch

import (
	"fmt"
	"regexp"

	"github.com/malonic/quotehub-backend/pkg/enums"
	"github.com/malonic/quotehub-backend/pkg/errors"
)

const (
	// MaxPanels caps how many side-by-side panels a product may have.
	MaxPanels = 6
	// MaxDivision caps rows/columns of a panel's internal grid.
	MaxDivision = 4
)

// FramePalette is the default set of frame finishes offered in the editor.
// Any other value is treated as a custom hex color.
var FramePalette = []string{
	"#FFFFFF",
	"#6B7280",
	"#1F2937",
	"#7C3AED",
	"#92400E",
}

var hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// PanelDivision splits a panel into a rows x cols grid of panes.
// A panel without an entry has an implicit 1x1 division.
type PanelDivision struct {
	PanelIndex int `json:"panelIndex"`
	Rows       int `json:"rows"`
	Cols       int `json:"cols"`
}

// OpeningPane marks a single grid cell as individually opening.
type OpeningPane struct {
	PanelIndex int                    `json:"panelIndex"`
	Row        int                    `json:"row"`
	Col        int                    `json:"col"`
	Direction  enums.OpeningDirection `json:"direction"`
}

// Configuration is the parametric description of one window or door
// product. It is the persisted shape: no derived geometry is stored.
type Configuration struct {
	Kind              enums.ProductKind              `json:"kind"`
	DoorStyle         enums.DoorStyle                `json:"doorStyle,omitempty"`
	Width             float64                        `json:"width"`
	Height            float64                        `json:"height"`
	Unit              enums.MeasureUnit              `json:"unit"`
	PanelCount        int                            `json:"panelCount"`
	PanelWidths       []float64                      `json:"panelWidths"`
	FrameColor        string                         `json:"frameColor"`
	GlassType         enums.GlassType                `json:"glassType"`
	CustomGlassTint   string                         `json:"customGlassTint,omitempty"`
	OpeningPanels     []int                          `json:"openingPanels,omitempty"`
	OpeningDirections map[int]enums.OpeningDirection `json:"openingDirections,omitempty"`
	PanelDivisions    []PanelDivision                `json:"panelDivisions,omitempty"`
	OpeningPanes      []OpeningPane                  `json:"openingPanes,omitempty"`
}

// NewConfiguration returns the editor default: a single-panel clear
// window of 1000x1000 mm.
func NewConfiguration() *Configuration {
	return &Configuration{
		Kind:        enums.ProductKindWindow,
		Width:       1000,
		Height:      1000,
		Unit:        enums.MeasureUnitMillimeter,
		PanelCount:  1,
		PanelWidths: []float64{1000},
		FrameColor:  FramePalette[0],
		GlassType:   enums.GlassTypeClear,
		PanelDivisions: []PanelDivision{
			{PanelIndex: 0, Rows: 1, Cols: 1},
		},
	}
}

// SetPanelCount re-partitions the panel widths into n equal shares,
// with the last share absorbing any remainder so the sum equals the
// declared width exactly. New panels are seeded with a 1x1 division,
// and state referencing removed panels is dropped.
func (c *Configuration) SetPanelCount(n int) error {
	if n < 1 || n > MaxPanels {
		return errors.New(errors.CodeValidation, fmt.Sprintf("panel count must be between 1 and %d", MaxPanels))
	}
	if n == c.PanelCount && len(c.PanelWidths) == n {
		return nil
	}

	share := c.Width / float64(n)
	widths := make([]float64, n)
	for i := 0; i < n-1; i++ {
		widths[i] = share
	}
	widths[n-1] = c.Width - share*float64(n-1)

	c.PanelCount = n
	c.PanelWidths = widths
	c.seedDivisions()
	c.dropOutOfRangeState()
	return nil
}

// SetWidth rescales the panel widths proportionally to the new total,
// then corrects the last entry so the sum matches exactly.
func (c *Configuration) SetWidth(w float64) error {
	if w <= 0 {
		return errors.New(errors.CodeValidation, "width must be positive")
	}

	oldSum := 0.0
	for _, pw := range c.PanelWidths {
		oldSum += pw
	}

	n := len(c.PanelWidths)
	if n == 0 || oldSum <= 0 {
		c.Width = w
		return c.SetPanelCount(maxInt(c.PanelCount, 1))
	}

	scale := w / oldSum
	widths := make([]float64, n)
	running := 0.0
	for i := 0; i < n-1; i++ {
		widths[i] = c.PanelWidths[i] * scale
		running += widths[i]
	}
	widths[n-1] = w - running

	c.Width = w
	c.PanelWidths = widths
	return nil
}

// SetPanelWidth assigns a specific width to one panel and pushes the
// difference onto the last panel (or the previous one when the last
// panel itself is edited) so the total is conserved.
func (c *Configuration) SetPanelWidth(index int, w float64) error {
	if index < 0 || index >= len(c.PanelWidths) {
		return errors.New(errors.CodeValidation, "panel index out of range")
	}
	if w <= 0 {
		return errors.New(errors.CodeValidation, "panel width must be positive")
	}

	absorber := len(c.PanelWidths) - 1
	if absorber == index {
		absorber = index - 1
	}
	if absorber < 0 {
		// single panel: its width is the total width
		c.PanelWidths[index] = w
		c.Width = w
		return nil
	}

	rest := 0.0
	for i, pw := range c.PanelWidths {
		if i != index && i != absorber {
			rest += pw
		}
	}
	remainder := c.Width - w - rest
	if remainder <= 0 {
		return errors.New(errors.CodeValidation, "panel width leaves no room for remaining panels")
	}

	c.PanelWidths[index] = w
	c.PanelWidths[absorber] = remainder
	return nil
}

// DivisionFor returns the grid dimensions for a panel, defaulting to
// the implicit 1x1 division.
func (c *Configuration) DivisionFor(panelIndex int) (rows, cols int) {
	for _, d := range c.PanelDivisions {
		if d.PanelIndex == panelIndex {
			return d.Rows, d.Cols
		}
	}
	return 1, 1
}

// IsPanelOpen reports whether the whole panel is marked open, and the
// direction it opens toward. Direction falls back to left when the
// mapping has no entry.
func (c *Configuration) IsPanelOpen(panelIndex int) (bool, enums.OpeningDirection) {
	for _, idx := range c.OpeningPanels {
		if idx == panelIndex {
			if dir, ok := c.OpeningDirections[panelIndex]; ok {
				return true, dir
			}
			return true, enums.OpeningDirectionLeft
		}
	}
	return false, ""
}

// PaneOpening returns the per-cell opening entry for a grid cell.
func (c *Configuration) PaneOpening(panelIndex, row, col int) (enums.OpeningDirection, bool) {
	for _, p := range c.OpeningPanes {
		if p.PanelIndex == panelIndex && p.Row == row && p.Col == col {
			return p.Direction, true
		}
	}
	return "", false
}

// AreaSquareMeters converts the declared width and height to meters
// and returns the face area.
func (c *Configuration) AreaSquareMeters() float64 {
	return c.Unit.ToMeters(c.Width) * c.Unit.ToMeters(c.Height)
}

// Clone returns a deep copy. The editor works on a copy so cancel
// discards all in-progress mutations.
func (c *Configuration) Clone() *Configuration {
	out := *c
	out.PanelWidths = append([]float64(nil), c.PanelWidths...)
	out.OpeningPanels = append([]int(nil), c.OpeningPanels...)
	out.PanelDivisions = append([]PanelDivision(nil), c.PanelDivisions...)
	out.OpeningPanes = append([]OpeningPane(nil), c.OpeningPanes...)
	if c.OpeningDirections != nil {
		out.OpeningDirections = make(map[int]enums.OpeningDirection, len(c.OpeningDirections))
		for k, v := range c.OpeningDirections {
			out.OpeningDirections[k] = v
		}
	}
	return &out
}

// Validate checks the structural invariants that must hold before the
// configuration is rendered or saved.
func (c *Configuration) Validate() error {
	if !c.Kind.IsValid() {
		return errors.New(errors.CodeValidation, fmt.Sprintf("invalid product kind %q", c.Kind))
	}
	if c.Kind == enums.ProductKindDoor && !c.DoorStyle.IsValid() {
		return errors.New(errors.CodeValidation, "doors require a door style")
	}
	if c.Width <= 0 || c.Height <= 0 {
		return errors.New(errors.CodeValidation, "width and height must be positive")
	}
	if !c.Unit.IsValid() {
		return errors.New(errors.CodeValidation, fmt.Sprintf("invalid measure unit %q", c.Unit))
	}
	if c.PanelCount < 1 || c.PanelCount > MaxPanels {
		return errors.New(errors.CodeValidation, fmt.Sprintf("panel count must be between 1 and %d", MaxPanels))
	}
	if len(c.PanelWidths) != c.PanelCount {
		return errors.New(errors.CodeValidation, "panel widths must have one entry per panel")
	}
	for i, w := range c.PanelWidths {
		if w <= 0 {
			return errors.New(errors.CodeValidation, fmt.Sprintf("panel %d width must be positive", i))
		}
	}
	if !c.GlassType.IsValid() {
		return errors.New(errors.CodeValidation, fmt.Sprintf("invalid glass type %q", c.GlassType))
	}
	if c.GlassType == enums.GlassTypeCustomTint && !hexColorRe.MatchString(c.CustomGlassTint) {
		return errors.New(errors.CodeValidation, "custom-tint glass requires a hex tint color")
	}
	if c.FrameColor != "" && !hexColorRe.MatchString(c.FrameColor) {
		return errors.New(errors.CodeValidation, fmt.Sprintf("invalid frame color %q", c.FrameColor))
	}

	seenDivision := map[int]bool{}
	for _, d := range c.PanelDivisions {
		if d.PanelIndex < 0 || d.PanelIndex >= c.PanelCount {
			return errors.New(errors.CodeValidation, fmt.Sprintf("division references panel %d out of range", d.PanelIndex))
		}
		if seenDivision[d.PanelIndex] {
			return errors.New(errors.CodeValidation, fmt.Sprintf("panel %d has multiple division entries", d.PanelIndex))
		}
		seenDivision[d.PanelIndex] = true
		if d.Rows < 1 || d.Rows > MaxDivision || d.Cols < 1 || d.Cols > MaxDivision {
			return errors.New(errors.CodeValidation, fmt.Sprintf("panel %d division must be between 1x1 and %dx%d", d.PanelIndex, MaxDivision, MaxDivision))
		}
	}

	for _, idx := range c.OpeningPanels {
		if idx < 0 || idx >= c.PanelCount {
			return errors.New(errors.CodeValidation, fmt.Sprintf("opening panel %d out of range", idx))
		}
	}
	for idx, dir := range c.OpeningDirections {
		if idx < 0 || idx >= c.PanelCount {
			return errors.New(errors.CodeValidation, fmt.Sprintf("opening direction references panel %d out of range", idx))
		}
		if !dir.ValidForKind(c.Kind) {
			return errors.New(errors.CodeValidation, fmt.Sprintf("direction %q is not allowed for %s products", dir, c.Kind))
		}
	}

	seenPane := map[[3]int]bool{}
	for _, p := range c.OpeningPanes {
		if p.PanelIndex < 0 || p.PanelIndex >= c.PanelCount {
			return errors.New(errors.CodeValidation, fmt.Sprintf("opening pane references panel %d out of range", p.PanelIndex))
		}
		rows, cols := c.DivisionFor(p.PanelIndex)
		if p.Row < 0 || p.Row >= rows || p.Col < 0 || p.Col >= cols {
			return errors.New(errors.CodeValidation, fmt.Sprintf("opening pane (%d,%d,%d) outside the panel's %dx%d division", p.PanelIndex, p.Row, p.Col, rows, cols))
		}
		key := [3]int{p.PanelIndex, p.Row, p.Col}
		if seenPane[key] {
			return errors.New(errors.CodeValidation, fmt.Sprintf("duplicate opening pane (%d,%d,%d)", p.PanelIndex, p.Row, p.Col))
		}
		seenPane[key] = true
		if !p.Direction.ValidForKind(c.Kind) {
			return errors.New(errors.CodeValidation, fmt.Sprintf("direction %q is not allowed for %s products", p.Direction, c.Kind))
		}
	}

	return nil
}

func (c *Configuration) seedDivisions() {
	for i := 0; i < c.PanelCount; i++ {
		found := false
		for _, d := range c.PanelDivisions {
			if d.PanelIndex == i {
				found = true
				break
			}
		}
		if !found {
			c.PanelDivisions = append(c.PanelDivisions, PanelDivision{PanelIndex: i, Rows: 1, Cols: 1})
		}
	}
}

func (c *Configuration) dropOutOfRangeState() {
	divisions := c.PanelDivisions[:0]
	for _, d := range c.PanelDivisions {
		if d.PanelIndex < c.PanelCount {
			divisions = append(divisions, d)
		}
	}
	c.PanelDivisions = divisions

	panels := c.OpeningPanels[:0]
	for _, idx := range c.OpeningPanels {
		if idx < c.PanelCount {
			panels = append(panels, idx)
		}
	}
	c.OpeningPanels = panels

	panes := c.OpeningPanes[:0]
	for _, p := range c.OpeningPanes {
		if p.PanelIndex < c.PanelCount {
			panes = append(panes, p)
		}
	}
	c.OpeningPanes = panes

	for idx := range c.OpeningDirections {
		if idx >= c.PanelCount {
			delete(c.OpeningDirections, idx)
		}
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
