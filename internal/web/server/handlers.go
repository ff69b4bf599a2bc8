package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/benchtop-io/benchtop/internal/artifact"
	"github.com/benchtop-io/benchtop/internal/registry"
	"github.com/benchtop-io/benchtop/internal/schema"
)

// Handler builds the chi router for the introspection API
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)

	r.Get("/models", s.handleModels)
	r.Get("/models/{name}", s.handleModel)
	r.Get("/models/{name}/artifacts/{kind}", s.handleArtifact)
	r.Get("/families/samples", s.handleSamples)
	r.Get("/families/measurements", s.handleMeasurements)

	return r
}

// requestLogger tags each request with an ID and logs its outcome
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(w, r)

		s.log.Info("request",
			zap.String("request_id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// modelSummary is the list-view representation of a registered model
type modelSummary struct {
	Name   string `json:"name"`
	Family string `json:"family"`
	Label  string `json:"label,omitempty"`
	Fields int    `json:"fields"`
}

func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	entries := s.reg.Entries()
	out := make([]modelSummary, 0, len(entries))
	for _, e := range entries {
		out = append(out, modelSummary{
			Name:   e.Schema.Qualified(),
			Family: e.Family.String(),
			Label:  e.Config.Meta.Label,
			Fields: len(e.Schema.Fields()),
		})
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"models": out})
}

// modelDetail is the full representation of a registered model
type modelDetail struct {
	Name       string              `json:"name"`
	Family     string              `json:"family"`
	Label      string              `json:"label,omitempty"`
	Fields     []fieldDetail       `json:"fields"`
	SafeFields []string            `json:"safe_fields"`
	Artifacts  map[string][]string `json:"artifacts"` // kind -> resolved field list
	Site       string              `json:"registered_at,omitempty"`
}

type fieldDetail struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Nullable bool   `json:"nullable"`
	Target   string `json:"target,omitempty"`
}

func (s *Server) handleModel(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.lookup(w, chi.URLParam(r, "name"))
	if !ok {
		return
	}

	detail := modelDetail{
		Name:       entry.Schema.Qualified(),
		Family:     entry.Family.String(),
		Label:      entry.Config.Meta.Label,
		SafeFields: schema.SafeFields(entry.Schema),
		Artifacts:  make(map[string][]string, len(artifact.Kinds)),
		Site:       entry.Site,
	}
	for _, f := range entry.Schema.Fields() {
		fd := fieldDetail{Name: f.Name, Kind: f.Kind.String(), Nullable: f.Nullable}
		if f.Related != nil {
			fd.Target = f.Related.Qualified()
		}
		detail.Fields = append(detail.Fields, fd)
	}
	for _, kind := range artifact.Kinds {
		detail.Artifacts[kind.String()] = entry.Config.FieldsFor(kind)
	}

	s.writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleArtifact(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.lookup(w, chi.URLParam(r, "name"))
	if !ok {
		return
	}

	kind, err := artifact.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	a, err := entry.Config.Get(kind)
	if err != nil {
		var unsupported *artifact.UnsupportedKindError
		if errors.As(err, &unsupported) {
			s.writeError(w, http.StatusUnprocessableEntity, err.Error(), nil)
			return
		}
		s.log.Error("artifact generation failed",
			zap.String("model", entry.Schema.Qualified()),
			zap.String("kind", kind.String()),
			zap.Error(err),
		)
		s.writeError(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	s.writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleSamples(w http.ResponseWriter, r *http.Request) {
	s.writeFamily(w, s.reg.Samples())
}

func (s *Server) handleMeasurements(w http.ResponseWriter, r *http.Request) {
	s.writeFamily(w, s.reg.Measurements())
}

func (s *Server) writeFamily(w http.ResponseWriter, schemas []schema.Schema) {
	names := make([]string, 0, len(schemas))
	for _, sch := range schemas {
		names = append(names, sch.Qualified())
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"models": names})
}

// lookup fetches a registry entry or writes a 404 with similar-name hints
func (s *Server) lookup(w http.ResponseWriter, name string) (*registry.Entry, bool) {
	entry, ok := s.reg.Entry(name)
	if !ok {
		suggestions := schema.FindSimilar(name, s.reg.Names())
		s.writeError(w, http.StatusNotFound, "model not registered: "+name, suggestions)
		return nil, false
	}
	return entry, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string, suggestions []string) {
	body := map[string]interface{}{"error": msg}
	if len(suggestions) > 0 {
		body["did_you_mean"] = suggestions
	}
	s.writeJSON(w, status, body)
}
