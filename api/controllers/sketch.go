package controllers

import (
	"net/http"
	"time"

	"github.com/malonic/quotehub-backend/api/responses"
	"github.com/malonic/quotehub-backend/api/validators"
	"github.com/malonic/quotehub-backend/internal/render"
	"github.com/malonic/quotehub-backend/internal/sketch"
	pkgerrors "github.com/malonic/quotehub-backend/pkg/errors"
	"github.com/malonic/quotehub-backend/pkg/logger"
	"github.com/malonic/quotehub-backend/pkg/metrics"
)

type sketchRenderRequest struct {
	Sketch  *sketch.Configuration `json:"sketch" validate:"required"`
	Width   int                   `json:"width,omitempty" validate:"omitempty,min=80,max=4096"`
	Height  int                   `json:"height,omitempty" validate:"omitempty,min=80,max=4096"`
	Compact bool                  `json:"compact,omitempty"`
}

func (req sketchRenderRequest) options() render.Options {
	return render.Options{
		Width:           req.Width,
		Height:          req.Height,
		CompactForPrint: req.Compact,
	}
}

// SketchPreview returns the interactive SVG for a configuration.
func SketchPreview(logg *logger.Logger, rm *metrics.RenderMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body sketchRenderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		start := time.Now()
		out, err := render.SVG(body.Sketch, body.options())
		rm.ObserveDuration("svg", time.Since(start))
		if err != nil {
			rm.IncFailure("svg")
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeRender, err, "render svg"))
			return
		}
		rm.IncSuccess("svg")

		w.Header().Set("Content-Type", "image/svg+xml")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(out)
	}
}

// SketchRender returns the raster PNG for a configuration.
func SketchRender(logg *logger.Logger, rm *metrics.RenderMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body sketchRenderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		start := time.Now()
		out, err := render.PNG(body.Sketch, body.options())
		rm.ObserveDuration("png", time.Since(start))
		if err != nil {
			rm.IncFailure("png")
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeRender, err, "render png"))
			return
		}
		rm.IncSuccess("png")

		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(out)
	}
}
