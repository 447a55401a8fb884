package calculator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"bmi-advisor/internal/auth"
	"bmi-advisor/internal/bmi"
	"bmi-advisor/internal/events"
	"bmi-advisor/internal/models"
	"bmi-advisor/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.ReadingEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev events.ReadingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := storage.NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { storage.Close(db) })
	return db
}

func newTestHandler(t *testing.T, pub events.Publisher) (*Handler, *gorm.DB) {
	db := setupTestDB(t)
	return NewHandler(bmi.NewAdvisor(), storage.NewReadingStore(db), pub, zap.NewNop()), db
}

func contextWithUserID(userID int64) context.Context {
	return auth.WithUserID(context.Background(), userID)
}

func post(h http.HandlerFunc, ctx context.Context, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	req = req.WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func TestAdvise_Success(t *testing.T) {
	h, _ := newTestHandler(t, nil)

	w := post(h.Advise, context.Background(), `{"weight": 70, "height": "175", "sex": "male"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp CalculateResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.InDelta(t, 22.857, resp.BMI, 0.001)
	assert.Equal(t, bmi.HealthyUpper, resp.Category)
	assert.Equal(t, "Healthy (upper)", resp.Label)
	assert.Equal(t, bmi.HealthyUpper.Advice(), resp.Advice)
	assert.Equal(t, 71.0, resp.IdealWeight)
}

func TestAdvise_ValidationErrors(t *testing.T) {
	h, _ := newTestHandler(t, nil)

	tests := []struct {
		name string
		body string
		kind bmi.Kind
	}{
		{"missing height", `{"weight": 70}`, bmi.KindMissingInput},
		{"null weight", `{"weight": null, "height": 170}`, bmi.KindMissingInput},
		{"empty weight", `{"weight": "", "height": "170"}`, bmi.KindMissingInput},
		{"empty height", `{"weight": "70", "height": ""}`, bmi.KindMissingInput},
		{"blank height", `{"weight": "70", "height": "  "}`, bmi.KindMissingInput},
		{"garbled weight", `{"weight": "abc", "height": "170"}`, bmi.KindMissingInput},
		{"padded heavy", `{"weight": " 501 ", "height": "170"}`, bmi.KindExcessiveWeight},
		{"zero weight", `{"weight": 0, "height": 170}`, bmi.KindNonPositiveWeight},
		{"negative weight", `{"weight": -1, "height": 170}`, bmi.KindNonPositiveWeight},
		{"heavy", `{"weight": 501, "height": 170}`, bmi.KindExcessiveWeight},
		{"tall", `{"weight": 70, "height": 300}`, bmi.KindExcessiveHeight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(h.Advise, context.Background(), tt.body)
			require.Equal(t, http.StatusUnprocessableEntity, w.Code)

			var resp ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, string(tt.kind), resp.Error)
			assert.Equal(t, (&bmi.ValidationError{Kind: tt.kind}).Error(), resp.Message)
		})
	}
}

func TestAdvise_PaddedStrings(t *testing.T) {
	h, _ := newTestHandler(t, nil)

	w := post(h.Advise, context.Background(), `{"weight": " 70 ", "height": "175\t"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp CalculateResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, bmi.HealthyUpper, resp.Category)
}

func TestAdvise_NonFiniteFormula(t *testing.T) {
	advisor := bmi.NewAdvisor(bmi.WithIdealWeight(bmi.Male, func(h float64) (float64, error) {
		return 50 / (h - 175), nil
	}))
	h := NewHandler(advisor, storage.NewReadingStore(setupTestDB(t)), nil, zap.NewNop())

	w := post(h.Advise, context.Background(), `{"weight": 70, "height": 175}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = post(h.Record, contextWithUserID(1), `{"weight": 70, "height": 175}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAdvise_BadRequests(t *testing.T) {
	h, _ := newTestHandler(t, nil)

	assert.Equal(t, http.StatusBadRequest, post(h.Advise, context.Background(), `{invalid json}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(h.Advise, context.Background(), `{"weight": true, "height": 170}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(h.Advise, context.Background(), `{"weight": [70], "height": 170}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(h.Advise, context.Background(), `{"weight":70,"height":170,"sex":"robot"}`).Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	h.Advise(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRecord_SavesAndPublishes(t *testing.T) {
	pub := &recordingPublisher{}
	h, db := newTestHandler(t, pub)

	user := models.User{Login: "testuser", PasswordHash: "hash"}
	require.NoError(t, db.Create(&user).Error)

	w := post(h.Record, contextWithUserID(user.ID), `{"weight": 95, "height": 180, "sex": "female"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var reading models.Reading
	require.NoError(t, json.NewDecoder(w.Body).Decode(&reading))
	assert.NotZero(t, reading.ID)
	assert.Equal(t, user.ID, reading.UserID)
	assert.Equal(t, string(bmi.Overweight), reading.Category)
	assert.Equal(t, 71.0, reading.IdealWeight)

	var count int64
	require.NoError(t, db.Model(&models.Reading{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	require.Len(t, pub.events, 1)
	assert.Equal(t, reading.ID, pub.events[0].ReadingID)
	assert.Equal(t, string(bmi.Overweight), pub.events[0].Category)
}

func TestRecord_PublishFailureDoesNotFail(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	h, _ := newTestHandler(t, pub)

	w := post(h.Record, contextWithUserID(1), `{"weight": 70, "height": 175}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, pub.events, 1)
}

func TestRecord_Rejections(t *testing.T) {
	pub := &recordingPublisher{}
	h, db := newTestHandler(t, pub)

	// without user id in context
	assert.Equal(t, http.StatusUnauthorized, post(h.Record, context.Background(), `{"weight": 70, "height": 175}`).Code)

	w := post(h.Record, contextWithUserID(1), `{"weight": 700, "height": 175}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Reading{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Empty(t, pub.events)
}

func TestHistory(t *testing.T) {
	h, _ := newTestHandler(t, nil)

	for _, weight := range []string{"60", "70", "80"} {
		w := post(h.Record, contextWithUserID(1), `{"weight": `+weight+`, "height": 175}`)
		require.Equal(t, http.StatusCreated, w.Code)
	}
	post(h.Record, contextWithUserID(2), `{"weight": 50, "height": 160}`)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/readings?page=1&per_page=2", nil)
	req = req.WithContext(contextWithUserID(1))
	w := httptest.NewRecorder()
	h.Readings(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp HistoryResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, int64(3), resp.Total)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 2, resp.PerPage)
	require.Len(t, resp.Readings, 2)
	assert.Equal(t, 80.0, resp.Readings[0].Weight)
	assert.Equal(t, 70.0, resp.Readings[1].Weight)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/readings", nil)
	w = httptest.NewRecorder()
	h.History(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCategories(t *testing.T) {
	h, _ := newTestHandler(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
	w := httptest.NewRecorder()
	h.Categories(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp []CategoryResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp, 8)
	assert.Equal(t, bmi.ObeseSevere, resp[0].Category)
	require.NotNil(t, resp[0].Bound)
	assert.Equal(t, 40.0, *resp[0].Bound)
	assert.False(t, resp[0].Inclusive)
	assert.True(t, resp[4].Inclusive)
	assert.Equal(t, bmi.UnderweightSevere, resp[7].Category)
	assert.Nil(t, resp[7].Bound)
}
