package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/legenda-dev/legenda/pkg/cache"
	"github.com/legenda-dev/legenda/pkg/chartfile"
	apperrors "github.com/legenda-dev/legenda/pkg/errors"
	"github.com/legenda-dev/legenda/pkg/pipeline"
)

// renderRequest is the inline render payload. Source holds the chart
// document text; format selects the artifact (svg, png or json).
type renderRequest struct {
	Source       string  `json:"source"`
	SourceFormat string  `json:"source_format,omitempty"`
	Legend       string  `json:"legend,omitempty"`
	Width        float64 `json:"width,omitempty"`
	Height       float64 `json:"height,omitempty"`
	Format       string  `json:"format,omitempty"`
	Scale        float64 `json:"scale,omitempty"`
	Canvas       string  `json:"canvas,omitempty"`
	Refresh      bool    `json:"refresh,omitempty"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		s.respondError(w, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	if req.Source == "" {
		s.respondError(w, apperrors.New(apperrors.ErrCodeInvalidInput, "source is required"))
		return
	}

	format := req.Format
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.respondError(w, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "invalid render format"))
		return
	}

	opts := pipeline.Options{
		Source:       []byte(req.Source),
		SourceFormat: chartfile.Format(req.SourceFormat),
		Refresh:      req.Refresh,
		Legend:       req.Legend,
		Width:        req.Width,
		Height:       req.Height,
		Formats:      []string{format},
		Scale:        req.Scale,
		Canvas:       req.Canvas,
	}
	s.render(w, r, "", format, opts)
}

func (s *Server) handleRenderChart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "chartID")
	ch, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}

	opts, format, err := renderQueryOptions(r.URL.Query())
	if err != nil {
		s.respondError(w, err)
		return
	}
	opts.Source = ch.Source
	opts.SourceFormat = chartfile.FormatJSON
	s.render(w, r, id, format, opts)
}

// render executes the pipeline and writes the requested artifact with
// cache headers. A matching If-None-Match gets 304 without a body.
func (s *Server) render(w http.ResponseWriter, r *http.Request, chartID, format string, opts pipeline.Options) {
	opts.Logger = s.logger
	opts.Measurer = s.measurer
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.respondError(w, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "invalid render options"))
		return
	}

	result, err := s.runner(chartID).Execute(r.Context(), opts)
	if err != nil {
		s.respondError(w, err)
		return
	}
	artifact := result.Artifacts[format]

	etag := `"` + cache.Hash(artifact) + `"`
	w.Header().Set("ETag", etag)
	w.Header().Set("X-Cache", cacheState(result.CacheInfo.RenderHit))
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", artifactContentType(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifact)
}

// runner builds a pipeline runner, namespacing cache keys under a
// stored chart when an ID is given.
func (s *Server) runner(chartID string) *pipeline.Runner {
	var keyer cache.Keyer
	if chartID != "" {
		keyer = cache.NewScopedKeyer(nil, "chart:"+chartID+":")
	}
	return pipeline.NewRunner(s.cache, keyer, s.logger)
}

// renderQueryOptions builds pipeline options from render query
// parameters: format, legend, width, height, scale, canvas, refresh.
func renderQueryOptions(q url.Values) (pipeline.Options, string, error) {
	var opts pipeline.Options

	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return opts, "", apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "invalid render format")
	}
	opts.Formats = []string{format}
	opts.Legend = q.Get("legend")
	opts.Canvas = q.Get("canvas")
	opts.Refresh = q.Get("refresh") == "true" || q.Get("refresh") == "1"

	var err error
	if opts.Width, err = floatParam(q, "width"); err != nil {
		return opts, "", err
	}
	if opts.Height, err = floatParam(q, "height"); err != nil {
		return opts, "", err
	}
	if opts.Scale, err = floatParam(q, "scale"); err != nil {
		return opts, "", err
	}
	return opts, format, nil
}

// floatParam parses an optional float query parameter, zero when
// absent.
func floatParam(q url.Values, name string) (float64, error) {
	raw := q.Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid %s: %q", name, raw)
	}
	return v, nil
}

func cacheState(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

// artifactContentType maps a render format to its MIME type.
func artifactContentType(format string) string {
	switch format {
	case pipeline.FormatPNG:
		return "image/png"
	case pipeline.FormatJSON:
		return "application/json"
	default:
		return "image/svg+xml"
	}
}
