package calculator

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"bmi-advisor/internal/auth"
	"bmi-advisor/internal/bmi"
	"bmi-advisor/internal/events"
	"bmi-advisor/internal/models"
	"bmi-advisor/internal/storage"

	"go.uber.org/zap"
)

type CalculateRequest struct {
	Weight Field  `json:"weight"`
	Height Field  `json:"height"`
	Sex    string `json:"sex"`
}

// Field is a raw form value: a JSON number, a string or null. The text is
// parsed by bmi.Parse, as in the terminal form.
type Field string

func (f *Field) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = Field(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected number or string, got %s", data)
	}
	*f = Field(n)
	return nil
}

type CalculateResponse struct {
	BMI         float64      `json:"bmi"`
	Category    bmi.Category `json:"category"`
	Label       string       `json:"label"`
	Advice      string       `json:"advice"`
	IdealWeight float64      `json:"ideal_weight"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type HistoryResponse struct {
	Readings []models.Reading `json:"readings"`
	Page     int              `json:"page"`
	PerPage  int              `json:"per_page"`
	Total    int64            `json:"total"`
}

type CategoryResponse struct {
	Category  bmi.Category `json:"category"`
	Label     string       `json:"label"`
	Advice    string       `json:"advice"`
	Bound     *float64     `json:"bound,omitempty"`
	Inclusive bool         `json:"inclusive"`
}

type Handler struct {
	advisor  *bmi.Advisor
	readings *storage.ReadingStore
	events   events.Publisher
	log      *zap.Logger
}

func NewHandler(advisor *bmi.Advisor, readings *storage.ReadingStore, publisher events.Publisher, log *zap.Logger) *Handler {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &Handler{
		advisor:  advisor,
		readings: readings,
		events:   publisher,
		log:      log,
	}
}

// calculate decodes the request and runs the advisor. It writes the error
// response itself and reports whether the caller may continue.
func (h *Handler) calculate(w http.ResponseWriter, r *http.Request) (bmi.Measurement, bmi.Result, bool) {
	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return bmi.Measurement{}, bmi.Result{}, false
	}

	m, err := bmi.Parse(bmi.Input{
		Weight: string(req.Weight),
		Height: string(req.Height),
		Sex:    req.Sex,
	})
	if err == nil {
		var res bmi.Result
		res, err = h.advisor.Advise(m)
		if err == nil {
			return m, res, true
		}
	}

	if ve, ok := bmi.AsValidationError(err); ok {
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: string(ve.Kind), Message: ve.Error()})
		return bmi.Measurement{}, bmi.Result{}, false
	}
	if errors.Is(err, bmi.ErrUnknownSex) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return bmi.Measurement{}, bmi.Result{}, false
	}
	h.log.Error("advise failed", zap.Error(err))
	http.Error(w, "internal error", http.StatusInternalServerError)
	return bmi.Measurement{}, bmi.Result{}, false
}

// Advise answers POST /api/v1/bmi without storing anything.
func (h *Handler) Advise(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	_, res, ok := h.calculate(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toResponse(res))
}

// Readings serves /api/v1/readings: POST records, GET lists history.
func (h *Handler) Readings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.Record(w, r)
	case http.MethodGet:
		h.History(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) Record(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	m, res, ok := h.calculate(w, r)
	if !ok {
		return
	}

	reading := models.Reading{
		UserID:      userID,
		Weight:      m.Weight,
		Height:      m.Height,
		Sex:         string(m.Sex),
		BMI:         res.BMI,
		IdealWeight: res.IdealWeight,
		Category:    string(res.Category),
		Advice:      res.Advice,
	}
	if err := h.readings.Create(r.Context(), &reading); err != nil {
		h.log.Error("failed to save reading", zap.Int64("user_id", userID), zap.Error(err))
		http.Error(w, "failed to save reading", http.StatusInternalServerError)
		return
	}

	if err := h.events.Publish(r.Context(), events.FromReading(reading)); err != nil {
		h.log.Warn("failed to publish reading", zap.Int64("reading_id", reading.ID), zap.Error(err))
	}

	h.log.Debug("reading stored",
		zap.Int64("user_id", userID),
		zap.Int64("reading_id", reading.ID),
		zap.String("category", reading.Category))
	writeJSON(w, http.StatusCreated, reading)
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	page, perPage := storage.NormalizePage(queryInt(r, "page"), queryInt(r, "per_page"))
	readings, total, err := h.readings.ListByUser(r.Context(), userID, page, perPage)
	if err != nil {
		h.log.Error("failed to list readings", zap.Int64("user_id", userID), zap.Error(err))
		http.Error(w, "failed to list readings", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, HistoryResponse{
		Readings: readings,
		Page:     page,
		PerPage:  perPage,
		Total:    total,
	})
}

// Categories lists the ladder, top-down.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, CategoryTable(h.advisor.Ladder()))
}

func CategoryTable(l bmi.Ladder) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(l.Thresholds)+1)
	for _, t := range l.Thresholds {
		bound := t.Bound
		out = append(out, CategoryResponse{
			Category:  t.Category,
			Label:     t.Category.Label(),
			Advice:    t.Category.Advice(),
			Bound:     &bound,
			Inclusive: t.Inclusive,
		})
	}
	return append(out, CategoryResponse{
		Category: l.Fallback,
		Label:    l.Fallback.Label(),
		Advice:   l.Fallback.Advice(),
	})
}

func toResponse(res bmi.Result) CalculateResponse {
	return CalculateResponse{
		BMI:         res.BMI,
		Category:    res.Category,
		Label:       res.Category.Label(),
		Advice:      res.Advice,
		IdealWeight: res.IdealWeight,
	}
}

func queryInt(r *http.Request, key string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
