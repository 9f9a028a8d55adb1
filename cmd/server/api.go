package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Simplici0/mako-cost/internal/codec"
	"github.com/Simplici0/mako-cost/internal/config"
	"github.com/Simplici0/mako-cost/internal/model"
	"github.com/Simplici0/mako-cost/internal/montecarlo"
	"github.com/Simplici0/mako-cost/internal/report"
	"github.com/Simplici0/mako-cost/internal/scenario"
	"github.com/Simplici0/mako-cost/internal/sensitivity"
	"github.com/Simplici0/mako-cost/internal/store"
)

const maxBodyBytes = 1 << 20

type server struct {
	cfg    config.Config
	log    *slog.Logger
	store  scenario.Store
	cache  *store.SimulationCache
	shares codec.Codec
}

func newServer(cfg config.Config, logger *slog.Logger, st scenario.Store, cache *store.SimulationCache) *server {
	return &server{
		cfg:    cfg,
		log:    logger,
		store:  st,
		cache:  cache,
		shares: codec.Base64JSON{},
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.accessLog)

	r.Get("/healthz", s.handleHealth)
	r.Get("/report", s.handleReport)

	r.Route("/api", func(r chi.Router) {
		r.Get("/defaults", s.handleDefaults)
		r.Get("/ranges", s.handleRanges)
		r.Post("/calculate", s.handleCalculate)
		r.Post("/sensitivity", s.handleSensitivity)
		r.Post("/simulate", s.handleSimulate)
		r.Get("/presets", s.handlePresets)
		r.Post("/presets/compare", s.handlePresetsCompare)
		r.Get("/scenarios", s.handleScenariosList)
		r.Post("/scenarios", s.handleScenariosCreate)
		r.Delete("/scenarios/{id}", s.handleScenariosDelete)
		r.Post("/share", s.handleShareCreate)
		r.Get("/share/{config}", s.handleShareResolve)
	})

	return r
}

func (s *server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleDefaults(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.Defaults())
}

type rangeView struct {
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Step  float64 `json:"step"`
	Log   bool    `json:"log"`
}

func (s *server) handleRanges(w http.ResponseWriter, r *http.Request) {
	ranges := model.Ranges()
	if scope := model.Scope(r.URL.Query().Get("scope")); scope.Valid() {
		ranges = model.ActiveRanges(scope)
	}

	out := make([]rangeView, 0, len(ranges))
	for _, rg := range ranges {
		out = append(out, rangeView{Key: rg.Key, Label: rg.Label, Min: rg.Min, Max: rg.Max, Step: rg.Step, Log: rg.Log})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	params, ok := s.readParams(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, model.Calculate(params))
}

func (s *server) handleSensitivity(w http.ResponseWriter, r *http.Request) {
	topN, err := parseIntParam(r, "top", sensitivity.DefaultTopN)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	params, ok := s.readParams(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sensitivity.Analyze(params, topN))
}

type simulateResponse struct {
	montecarlo.Result
	Histogram []montecarlo.Bin `json:"histogram"`
}

func (s *server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	requested, err := parseIntParam(r, "iterations", 0)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	params, ok := s.readParams(w, r)
	if !ok {
		return
	}

	res := s.simulate(r, params, s.cfg.Iterations(requested))
	writeJSON(w, http.StatusOK, simulateResponse{
		Result:    res,
		Histogram: montecarlo.Histogram(res.Samples, montecarlo.DefaultBins),
	})
}

// simulate serves from the cache when one is configured. Cache failures are
// logged and the result is computed instead.
func (s *server) simulate(r *http.Request, params model.ParameterSet, iterations int) montecarlo.Result {
	if s.cache == nil {
		return montecarlo.Simulate(params, iterations)
	}

	key, err := s.shares.Encode(params)
	if err != nil {
		s.log.Warn("encode simulation cache key", "err", err)
		return montecarlo.Simulate(params, iterations)
	}

	ctx := r.Context()
	if cached, ok, err := s.cache.Get(ctx, key, iterations); err != nil {
		s.log.Warn("read simulation cache", "err", err)
	} else if ok {
		return cached
	}

	res := montecarlo.Simulate(params, iterations)
	if err := s.cache.Put(ctx, key, res); err != nil {
		s.log.Warn("write simulation cache", "err", err)
	}
	return res
}

type presetsResponse struct {
	Presets     []scenario.Preset     `json:"presets"`
	Comparisons []scenario.Comparison `json:"comparisons"`
}

func (s *server) handlePresets(w http.ResponseWriter, r *http.Request) {
	base := model.Defaults()
	if raw := r.URL.Query().Get("config"); raw != "" {
		base = s.shares.Decode(raw)
	}
	presets := scenario.Presets()
	writeJSON(w, http.StatusOK, presetsResponse{
		Presets:     presets,
		Comparisons: scenario.Compare(base, presets),
	})
}

func (s *server) handlePresetsCompare(w http.ResponseWriter, r *http.Request) {
	params, ok := s.readParams(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, scenario.Compare(params, scenario.Presets()))
}

func (s *server) handleScenariosList(w http.ResponseWriter, r *http.Request) {
	saved, err := s.store.Load(r.Context())
	if err != nil {
		s.log.Error("load scenarios", "err", err)
		http.Error(w, "failed to load scenarios", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

type createScenarioRequest struct {
	Name   string        `json:"name"`
	Inputs codec.Partial `json:"inputs"`
}

func (s *server) handleScenariosCreate(w http.ResponseWriter, r *http.Request) {
	var req createScenarioRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		http.Error(w, "invalid scenario payload", http.StatusBadRequest)
		return
	}

	saved, err := s.store.Save(r.Context(), req.Name, codec.Normalize(req.Inputs))
	if errors.Is(err, store.ErrEmptyName) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		s.log.Error("save scenario", "err", err)
		http.Error(w, "failed to save scenario", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (s *server) handleScenariosDelete(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		http.Error(w, "invalid scenario id", http.StatusBadRequest)
		return
	}

	err := s.store.Delete(r.Context(), id)
	if errors.Is(err, scenario.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.log.Error("delete scenario", "id", id, "err", err)
		http.Error(w, "failed to delete scenario", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleShareCreate(w http.ResponseWriter, r *http.Request) {
	params, ok := s.readParams(w, r)
	if !ok {
		return
	}
	token, err := s.shares.Encode(params)
	if err != nil {
		http.Error(w, "failed to encode config", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"config": token})
}

// handleShareResolve decodes a token taken from the path. Standard base64 may
// contain '/', so the segment arrives escaped.
func (s *server) handleShareResolve(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "config")
	if unescaped, err := url.PathUnescape(token); err == nil {
		token = unescaped
	}
	writeJSON(w, http.StatusOK, s.shares.Decode(token))
}

// handleReport renders the text summary for ?config=, optionally with a
// preset applied via ?scenario=.
func (s *server) handleReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	topN, err := parseIntParam(r, "top", sensitivity.DefaultTopN)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	requested, err := parseIntParam(r, "iterations", 0)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := model.Defaults()
	if raw := q.Get("config"); raw != "" {
		params = s.shares.Decode(raw)
	}

	title := ""
	if id := q.Get("scenario"); id != "" {
		preset, ok := scenario.PresetByID(id)
		if !ok {
			http.Error(w, "unknown scenario", http.StatusNotFound)
			return
		}
		params = scenario.Apply(params, preset.Overrides)
		title = preset.Name
	}

	rep := report.New(title, params, topN)
	sim := s.simulate(r, params, s.cfg.Iterations(requested))
	rep.Simulation = &sim

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := rep.WriteText(w); err != nil {
		s.log.Error("write report", "err", err)
	}
}

// readParams decodes the request body as a partial parameter set. An empty
// body yields the baseline.
func (s *server) readParams(w http.ResponseWriter, r *http.Request) (model.ParameterSet, bool) {
	params, err := codec.ReadJSON(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "invalid parameter set", http.StatusBadRequest)
		return model.ParameterSet{}, false
	}
	return params, true
}

func parseIntParam(r *http.Request, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(name + " must be an integer")
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
