package dashboard

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/de-tools/commerce-atlas/pkg/adapters"
	"github.com/de-tools/commerce-atlas/pkg/models/api"
	"github.com/de-tools/commerce-atlas/pkg/services/dataset"
	"github.com/de-tools/commerce-atlas/pkg/services/filter"
	"github.com/de-tools/commerce-atlas/pkg/services/insights"
	"github.com/de-tools/commerce-atlas/pkg/services/metrics"
	storecsv "github.com/de-tools/commerce-atlas/pkg/store/csv"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// maxUploadBytes caps a single uploaded source.
const maxUploadBytes = 256 << 20

type Handler struct {
	cache    *dataset.Cache
	sessions *dataset.SessionStore
	settings metrics.Settings
}

func NewHandler(cache *dataset.Cache, sessions *dataset.SessionStore, settings metrics.Settings) *Handler {
	return &Handler{
		cache:    cache,
		sessions: sessions,
		settings: settings,
	}
}

func (h *Handler) GetDatasetStatus(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.cache.Active()
	if !ok {
		writeJSON(r, w, adapters.MapDatasetStatusDomainToApi(nil))
		return
	}
	writeJSON(r, w, adapters.MapDatasetStatusDomainToApi(ds))
}

func (h *Handler) GetFilterDomains(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.cache.Active()
	if !ok {
		http.Error(w, "no dataset loaded", http.StatusServiceUnavailable)
		return
	}
	writeJSON(r, w, adapters.MapFilterDomainsDomainToApi(ds))
}

func (h *Handler) CreateUploadSession(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Create()
	w.WriteHeader(http.StatusCreated)
	writeJSON(r, w, sessionStatus(s))
}

func (h *Handler) GetUploadSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessions.Get(chi.URLParam(r, "session"))
	if !ok {
		http.Error(w, "unknown upload session", http.StatusNotFound)
		return
	}
	writeJSON(r, w, sessionStatus(s))
}

func (h *Handler) AttachSource(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "session")
	source := chi.URLParam(r, "source")

	body, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes))
	if err != nil {
		http.Error(w, "failed to read upload body", http.StatusBadRequest)
		return
	}

	s, err := h.sessions.Attach(id, source, body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(r, w, sessionStatus(s))
}

// ActivateSession loads a completed upload session into the cache, making
// it the active snapshot and invalidating the previously active one.
func (h *Handler) ActivateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "session")

	s, ok := h.sessions.Get(id)
	if !ok {
		http.Error(w, "unknown upload session", http.StatusNotFound)
		return
	}

	provider, err := s.Provider()
	if err != nil {
		// The session is still awaiting sources. Not ready, not fatal.
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	ds, err := h.cache.Replace(ctx, provider)
	if err != nil {
		writeLoadError(w, r, err)
		return
	}
	h.sessions.Drop(id)

	writeJSON(r, w, adapters.MapDatasetStatusDomainToApi(ds))
}

func (h *Handler) GetMetric(w http.ResponseWriter, r *http.Request) {
	question := chi.URLParam(r, "question")

	ds, ok := h.cache.Active()
	if !ok {
		http.Error(w, "no dataset loaded", http.StatusServiceUnavailable)
		return
	}

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		http.Error(w, "invalid 'year' parameter. Expected an integer", http.StatusBadRequest)
		return
	}
	state := r.URL.Query().Get("state")

	f, err := filter.Apply(ds, year, state)
	if err != nil {
		var invalid *filter.InvalidFilterError
		if errors.As(err, &invalid) {
			http.Error(w, invalid.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "failed to filter dataset", http.StatusInternalServerError)
		return
	}

	insight := insights.For(question)
	switch question {
	case insights.QuestionSummary:
		writeJSON(r, w, adapters.MapSummaryDomainToApi(f, metrics.Summarize(ds, f), insight))
	case insights.QuestionTrend:
		writeJSON(r, w, adapters.MapMonthlyTrendDomainToApi(f, metrics.MonthlyTrend(f), insight))
	case insights.QuestionCategory:
		writeJSON(r, w, adapters.MapCategoryBreakdownDomainToApi(f, metrics.CategoryBreakdown(ds, f, h.settings), insight))
	case insights.QuestionFreight:
		writeJSON(r, w, adapters.MapCorrelationDomainToApi(f, metrics.FreightCorrelation(ds, f), insight))
	case insights.QuestionPayments:
		writeJSON(r, w, adapters.MapPaymentDistributionDomainToApi(f, metrics.PaymentDistribution(ds, f), insight))
	case insights.QuestionRFM:
		writeJSON(r, w, adapters.MapRFMDomainToApi(f, metrics.RFM(ds, f), insight))
	default:
		http.Error(w, "unknown question", http.StatusNotFound)
	}
}

func sessionStatus(s *dataset.Session) api.UploadSession {
	return api.UploadSession{
		ID:       s.ID,
		Received: s.Received(),
		Missing:  s.Missing(),
		Ready:    s.Ready(),
	}
}

func writeLoadError(w http.ResponseWriter, r *http.Request, err error) {
	var missingSource *storecsv.MissingSourceError
	var missingColumn *storecsv.MissingColumnError
	var malformed *storecsv.MalformedTimestampError
	if errors.As(err, &missingSource) || errors.As(err, &missingColumn) || errors.As(err, &malformed) {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	zerolog.Ctx(r.Context()).Error().Err(err).Msg("dataset load failed")
	http.Error(w, "failed to load dataset", http.StatusInternalServerError)
}

func writeJSON(r *http.Request, w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Str("path", r.URL.Path).
			Msg("failed to encode response")
	}
}
