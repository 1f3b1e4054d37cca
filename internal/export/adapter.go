// Package export turns stored quotations into deliverable documents:
// a raster adapter that snapshots sketches for embedding, and a PDF
// builder that lays out the full quotation.
package export

import (
	"context"
	"time"

	"github.com/malonic/quotehub-backend/internal/render"
	"github.com/malonic/quotehub-backend/internal/sketch"
	"github.com/malonic/quotehub-backend/pkg/config"
	"github.com/malonic/quotehub-backend/pkg/logger"
	"github.com/malonic/quotehub-backend/pkg/metrics"
)

// Adapter rasterizes sketches for document embedding. Rasterization
// failure is non-fatal: the document is built without the image.
type Adapter struct {
	logg    *logger.Logger
	metrics *metrics.RenderMetrics
	width   int
	height  int
}

// NewAdapter wires the adapter with the configured raster size.
func NewAdapter(cfg config.RenderConfig, logg *logger.Logger, m *metrics.RenderMetrics) *Adapter {
	return &Adapter{
		logg:    logg,
		metrics: m,
		width:   cfg.RasterWidth,
		height:  cfg.RasterHeight,
	}
}

// SketchImage renders the compact raster for one sketch. On failure
// it logs and returns nil so the caller can proceed without the image.
func (a *Adapter) SketchImage(ctx context.Context, cfg *sketch.Configuration) []byte {
	if cfg == nil {
		return nil
	}

	start := time.Now()
	out, err := render.PNG(cfg, render.Options{
		Width:           a.width,
		Height:          a.height,
		CompactForPrint: true,
	})
	a.metrics.ObserveDuration("export-raster", time.Since(start))
	if err != nil {
		a.metrics.IncFailure("export-raster")
		if a.logg != nil {
			a.logg.Error(ctx, "sketch rasterization failed, exporting without image", err)
		}
		return nil
	}
	a.metrics.IncSuccess("export-raster")
	return out
}
