package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"ashoka_frontdesk/internal/adapters/observability"
	"ashoka_frontdesk/internal/app"
	"ashoka_frontdesk/internal/domain"
	"ashoka_frontdesk/internal/pricing"
)

const (
	idempotencyHeader = "Idempotency-Key"
	maxIdempotencyKey = 64 // booking_submissions.idempotency_key
	maxBodyBytes      = 1 << 20
	pingTimeout       = 2 * time.Second
)

// Pinger is a backing store /healthz reports on.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handlers struct {
	Desk    *app.FrontDesk
	Catalog *app.CatalogService
	Health  map[string]Pinger
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
	Field  string `json:"field,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", h.healthz)
	s.mux.Route("/v1", func(r chi.Router) {
		r.Get("/catalog", h.getCatalog)
		r.Get("/availability", h.getAvailability)
		r.Post("/quote", h.postQuote)
		r.Post("/bookings", h.postBooking)
		r.Get("/guests/{grcNo}", h.getGuest)
		r.Get("/settings/gst", h.getGST)
		r.Put("/settings/gst", h.putGST)
		r.Get("/submissions", h.listSubmissions)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	writeProblemBody(w, problem{Type: "about:blank", Title: title, Status: status, Detail: detail})
}

func writeProblemBody(w http.ResponseWriter, p problem) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps domain errors onto HTTP problems.
func writeError(w http.ResponseWriter, err error) {
	p := problem{Type: "about:blank", Detail: err.Error()}
	var fe *domain.FieldError
	switch {
	case errors.As(err, &fe):
		p.Status, p.Title, p.Field = http.StatusUnprocessableEntity, "Validation Failed", fe.Field
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrAvailabilityNotChecked):
		p.Status, p.Title = http.StatusUnprocessableEntity, "Validation Failed"
	case errors.Is(err, domain.ErrRoomsUnavailable), errors.Is(err, domain.ErrCategoryUnavailable):
		p.Status, p.Title = http.StatusConflict, "Rooms Unavailable"
	case errors.Is(err, domain.ErrBusy):
		p.Status, p.Title = http.StatusConflict, "Busy"
	case errors.Is(err, domain.ErrNotFound):
		p.Status, p.Title = http.StatusNotFound, "Not Found"
	case errors.Is(err, context.DeadlineExceeded):
		p.Status, p.Title = http.StatusGatewayTimeout, "Upstream Timeout"
	default:
		p.Status, p.Title = http.StatusBadGateway, "Upstream Failure"
	}
	writeProblemBody(w, p)
}

// writeJSON marshals before writing the status so an unencodable value
// becomes a 500 instead of an empty success.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("marshal JSON response failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "response could not be encoded")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return false
	}
	return true
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func (h *Handlers) healthz(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(h.Health))
	for name := range h.Health {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		err := h.Health[name].Ping(ctx)
		cancel()
		if err != nil {
			log.Warn().Err(err).Str("dependency", name).Msg("health check failed")
			writeProblem(w, http.StatusServiceUnavailable, "Unhealthy", name+" unreachable")
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handlers) getCatalog(w http.ResponseWriter, r *http.Request) {
	var (
		resp any
		err  error
	)
	if cat := r.URL.Query().Get("categoryId"); cat != "" {
		resp, err = h.Catalog.RoomsIn(r.Context(), cat)
	} else {
		resp, err = h.Catalog.Catalog(r.Context())
	}
	if err != nil {
		writeError(w, err)
		return
	}

	etag, body := calcETagAndBody(resp)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write catalog body")
	}
}

type categoryCount struct {
	domain.CategoryAvailability
	Available int `json:"available"`
}

func (h *Handlers) getAvailability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	in, err := domain.ParseDate(q.Get("checkInDate"))
	if err != nil {
		writeError(w, domain.Invalid("checkInDate", err))
		return
	}
	out, err := domain.ParseDate(q.Get("checkOutDate"))
	if err != nil {
		writeError(w, domain.Invalid("checkOutDate", err))
		return
	}

	f := h.Desk.NewForm(r.Context())
	f.SetStay(in, out)
	err = h.Desk.CheckAvailability(r.Context(), f)
	observeAvailability(err)
	if err != nil {
		writeError(w, err)
		return
	}

	cats := f.Categories()
	resp := make([]categoryCount, 0, len(cats))
	for _, c := range cats {
		resp = append(resp, categoryCount{CategoryAvailability: c, Available: c.Available()})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"checkInDate":  in.Format(domain.DateLayout),
		"checkOutDate": out.Format(domain.DateLayout),
		"nights":       pricing.Nights(in, out),
		"categories":   resp,
	})
}

type quoteResponse struct {
	Pricing         pricing.Breakdown       `json:"pricing"`
	Rooms           []domain.SelectedRoom   `json:"rooms"`
	Rates           domain.GSTRates         `json:"rates"`
	ExtraBedCharge  float64                 `json:"extraBedCharge"`
	NonChargeable   bool                    `json:"nonChargeable"`
	AdvancePayments []domain.AdvancePayment `json:"advancePayments"`
	Valid           bool                    `json:"valid"`
	Problem         string                  `json:"problem,omitempty"`
}

func quoteOf(f *app.Form) quoteResponse {
	q := quoteResponse{
		Pricing:         f.Pricing(),
		Rooms:           f.Selected(),
		Rates:           f.Rates(),
		ExtraBedCharge:  f.ExtraBedCharge(),
		NonChargeable:   f.NonChargeable(),
		AdvancePayments: f.AdvancePayments(),
		Valid:           true,
	}
	if q.Rooms == nil {
		q.Rooms = []domain.SelectedRoom{}
	}
	if err := f.Validate(); err != nil {
		q.Valid, q.Problem = false, err.Error()
	}
	return q
}

// postQuote prices a draft without booking it.
func (h *Handlers) postQuote(w http.ResponseWriter, r *http.Request) {
	var d draft
	if !decodeBody(w, r, &d) {
		return
	}
	f, err := buildForm(r.Context(), h.Desk, d)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quoteOf(f))
}

type bookingResponse struct {
	IdempotencyKey string              `json:"idempotencyKey"`
	InvoiceNumbers []string            `json:"invoiceNumbers"`
	Booked         []domain.BookedRoom `json:"booked"`
	Pricing        pricing.Breakdown   `json:"pricing"`
}

func (h *Handlers) postBooking(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimSpace(r.Header.Get(idempotencyHeader))
	if len(key) > maxIdempotencyKey {
		writeProblem(w, http.StatusBadRequest, "Invalid Idempotency-Key",
			fmt.Sprintf("Idempotency-Key must be at most %d characters", maxIdempotencyKey))
		return
	}
	if key == "" {
		key = uuid.NewString()
	}
	w.Header().Set(idempotencyHeader, key)

	var d draft
	if !decodeBody(w, r, &d) {
		return
	}
	f, err := buildForm(r.Context(), h.Desk, d)
	if err != nil {
		writeError(w, err)
		return
	}

	priced := f.Pricing()
	res, err := h.Desk.Submit(r.Context(), f, key)
	observability.ObserveSubmission(string(app.OutcomeOf(err)), priced.GrandTotal)
	if err != nil {
		writeError(w, err)
		return
	}
	h.Catalog.Invalidate(r.Context())

	writeJSON(w, http.StatusCreated, bookingResponse{
		IdempotencyKey: key,
		InvoiceNumbers: res.InvoiceNumbers(),
		Booked:         res.Booked,
		Pricing:        priced,
	})
}

func (h *Handlers) getGuest(w http.ResponseWriter, r *http.Request) {
	g, err := h.Desk.FindGuest(r.Context(), chi.URLParam(r, "grcNo"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (h *Handlers) getGST(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Desk.DefaultRates(r.Context()))
}

func (h *Handlers) putGST(w http.ResponseWriter, r *http.Request) {
	var rates domain.GSTRates
	if !decodeBody(w, r, &rates) {
		return
	}
	if err := h.Desk.SaveDefaultRates(r.Context(), rates); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeError(w, err)
			return
		}
		log.Error().Err(err).Msg("save default GST rates failed")
		writeProblem(w, http.StatusServiceUnavailable, "Rate Store Unavailable", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rates)
}

func (h *Handlers) listSubmissions(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 200 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 200")
			return
		}
		limit = l
	}

	out, err := h.Desk.RecentSubmissions(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("list submissions failed")
		writeProblem(w, http.StatusServiceUnavailable, "Journal Unavailable", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"submissions": out})
}
