package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/legenda-dev/legenda/pkg/chartfile"
	apperrors "github.com/legenda-dev/legenda/pkg/errors"
	"github.com/legenda-dev/legenda/pkg/store"
)

// maxBodyBytes bounds request bodies; chart documents are small.
const maxBodyBytes = 1 << 20

// chartRequest is the create/update payload. The document source may be
// TOML (the default) or JSON text.
type chartRequest struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	Format string `json:"format,omitempty"`
}

// chartResponse is the stored-chart representation. Source carries the
// canonical JSON document and is omitted in listings.
type chartResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Source    json.RawMessage `json:"source,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func chartMeta(ch *store.Chart) chartResponse {
	return chartResponse{
		ID:        ch.ID,
		Name:      ch.Name,
		CreatedAt: ch.CreatedAt,
		UpdatedAt: ch.UpdatedAt,
	}
}

func chartFull(ch *store.Chart) chartResponse {
	resp := chartMeta(ch)
	resp.Source = json.RawMessage(ch.Source)
	return resp
}

// decodeChartRequest parses a create/update body and canonicalizes the
// document to JSON. Documents that do not decode are rejected here, so
// the store only ever holds renderable charts.
func (s *Server) decodeChartRequest(w http.ResponseWriter, r *http.Request) (string, []byte, *chartfile.Document, error) {
	var req chartRequest
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return "", nil, nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode request body")
	}
	if req.Source == "" {
		return "", nil, nil, apperrors.New(apperrors.ErrCodeInvalidInput, "source is required")
	}

	format := chartfile.Format(req.Format)
	switch format {
	case "", chartfile.FormatTOML, chartfile.FormatJSON:
	default:
		return "", nil, nil, apperrors.New(apperrors.ErrCodeInvalidFormat, "unsupported document format %q", req.Format)
	}

	doc, err := chartfile.Decode([]byte(req.Source), format)
	if err != nil {
		return "", nil, nil, apperrors.Wrap(apperrors.ErrCodeInvalidChart, err, "decode chart document")
	}
	canonical, err := doc.Encode(chartfile.FormatJSON)
	if err != nil {
		return "", nil, nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "encode chart document")
	}
	return req.Name, canonical, doc, nil
}

func (s *Server) handleListCharts(w http.ResponseWriter, r *http.Request) {
	charts, err := s.store.List(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	resp := make([]chartResponse, len(charts))
	for i, ch := range charts {
		resp[i] = chartMeta(ch)
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateChart(w http.ResponseWriter, r *http.Request) {
	name, source, doc, err := s.decodeChartRequest(w, r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	if name == "" {
		name = doc.Title
	}

	ch := &store.Chart{Name: name, Source: source}
	if err := s.store.Create(r.Context(), ch); err != nil {
		s.respondError(w, err)
		return
	}
	s.logger.Info("chart created", "id", ch.ID, "name", ch.Name)

	w.Header().Set("Location", "/api/charts/"+ch.ID)
	respondJSON(w, http.StatusCreated, chartFull(ch))
}

func (s *Server) handleGetChart(w http.ResponseWriter, r *http.Request) {
	ch, err := s.store.Get(r.Context(), chi.URLParam(r, "chartID"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, chartFull(ch))
}

func (s *Server) handleUpdateChart(w http.ResponseWriter, r *http.Request) {
	name, source, doc, err := s.decodeChartRequest(w, r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	if name == "" {
		name = doc.Title
	}

	ch := &store.Chart{
		ID:     chi.URLParam(r, "chartID"),
		Name:   name,
		Source: source,
	}
	if err := s.store.Update(r.Context(), ch); err != nil {
		s.respondError(w, err)
		return
	}
	s.logger.Info("chart updated", "id", ch.ID, "name", ch.Name)
	respondJSON(w, http.StatusOK, chartFull(ch))
}

func (s *Server) handleDeleteChart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "chartID")
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.respondError(w, err)
		return
	}
	s.logger.Info("chart deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}
