package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/matzehuels/kitchenrun/pkg/buildinfo"
	"github.com/matzehuels/kitchenrun/pkg/errors"
	"github.com/matzehuels/kitchenrun/pkg/kitchen"
	"github.com/matzehuels/kitchenrun/pkg/pipeline"
	"github.com/matzehuels/kitchenrun/pkg/pricing"
)

// kitchenRequest names modules and a selection. Selection fields that are
// absent keep their defaults.
type kitchenRequest struct {
	Modules   []string           `json:"modules"`
	Selection *kitchen.Selection `json:"selection"`
}

func (s *Server) decodeKitchen(w http.ResponseWriter, r *http.Request) (kitchenRequest, error) {
	sel := kitchen.DefaultSelection(s.catalog)
	req := kitchenRequest{Selection: &sel}
	if err := decode(w, r, &req); err != nil {
		return req, err
	}
	if req.Selection == nil {
		req.Selection = &sel
	}
	return req, nil
}

func (s *Server) options(req kitchenRequest, formats ...string) pipeline.Options {
	return pipeline.Options{
		Modules:   req.Modules,
		Selection: req.Selection,
		Formats:   formats,
		Catalog:   s.catalog,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Get()})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog)
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeKitchen(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	res, err := s.runner.Execute(r.Context(), s.options(req, pipeline.FormatJSON))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeRaw(w, http.StatusOK, pipeline.ContentTypes[pipeline.FormatJSON], res.Artifacts[pipeline.FormatJSON])
}

type priceResponse struct {
	pricing.Breakdown
	Lines []pricing.Line `json:"lines"`
}

func (s *Server) handlePrice(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeKitchen(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	snap, err := s.runner.Plan(r.Context(), s.options(req))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, priceResponse{Breakdown: snap.Price, Lines: snap.Price.Lines()})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeKitchen(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	opts, err := s.renderOptions(r, s.options(req))
	if err != nil {
		s.writeError(w, err)
		return
	}
	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	format := opts.Formats[0]
	w.Header().Set("X-Cache", cacheHeader(res.CacheInfo.RenderHit))
	writeRaw(w, http.StatusOK, pipeline.ContentTypes[format], res.Artifacts[format])
}

// renderOptions applies the query parameters format, scale, labels and
// price to opts.
func (s *Server) renderOptions(r *http.Request, opts pipeline.Options) (pipeline.Options, error) {
	q := r.URL.Query()

	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return opts, err
	}
	opts.Formats = []string{format}

	if v := q.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil || scale <= 0 {
			return opts, errors.New(errors.ErrCodeInvalidInput, "scale must be a positive number")
		}
		opts.Scale = scale
	}
	if v := q.Get("labels"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "labels must be a boolean")
		}
		opts.NoLabels = !b
	}
	if v := q.Get("price"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "price must be a boolean")
		}
		opts.ShowPrice = b
	}
	return opts, nil
}

func cacheHeader(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}

// scene renders the JSON scene of a session snapshot. Session scenes
// change with every pointer event, so they bypass the artifact cache.
func (s *Server) scene(snap kitchen.Snapshot) (json.RawMessage, error) {
	artifacts, err := pipeline.RenderSnapshot(snap, pipeline.Options{
		Formats: []string{pipeline.FormatJSON},
		Compact: true,
		Catalog: s.catalog,
	})
	if err != nil {
		return nil, err
	}
	return artifacts[pipeline.FormatJSON], nil
}
