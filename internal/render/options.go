// Package render binds the sketch layout engine to concrete image
// targets: SVG for the interactive editor and previews, PNG for
// export embedding. Both targets consume the same scene graph, so a
// configuration renders with identical proportions and open states
// everywhere.
package render

import (
	"github.com/malonic/quotehub-backend/internal/sketch"
	"github.com/malonic/quotehub-backend/pkg/enums"
)

const (
	defaultWidth  = 360
	defaultHeight = 280

	dimensionMargin = 48.0
	compactMargin   = 8.0
)

// Options select the target size and annotation mode.
type Options struct {
	Width  int
	Height int
	// CompactForPrint suppresses dimension lines and hover
	// affordances for thumbnails and PDF embedding.
	CompactForPrint bool
}

func (o Options) normalized() Options {
	if o.Width <= 0 {
		o.Width = defaultWidth
	}
	if o.Height <= 0 {
		o.Height = defaultHeight
	}
	return o
}

func (o Options) margin() float64 {
	if o.CompactForPrint {
		return compactMargin
	}
	return dimensionMargin
}

// layoutScene runs the shared layout for the drawable inner box.
func layoutScene(cfg *sketch.Configuration, opts Options) (*sketch.Scene, Options, error) {
	opts = opts.normalized()
	margin := opts.margin()
	innerW := float64(opts.Width) - 2*margin
	innerH := float64(opts.Height) - 2*margin
	if innerW < 1 {
		innerW = 1
	}
	if innerH < 1 {
		innerH = 1
	}
	scene, err := sketch.Layout(cfg, innerW, innerH, sketch.Options{
		ShowDimensions: !opts.CompactForPrint,
	})
	if err != nil {
		return nil, opts, err
	}
	return scene, opts, nil
}

// glassFill maps the glazing finish to a presentation color.
func glassFill(glass enums.GlassType, tint string) string {
	switch glass {
	case enums.GlassTypeFrosted:
		return "#e5eef5"
	case enums.GlassTypeCustomTint:
		if tint != "" {
			return tint
		}
		return "#bcd6e8"
	default:
		return "#d6ecf8"
	}
}
