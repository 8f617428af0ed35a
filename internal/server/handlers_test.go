package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/ava/internal/app"
	"github.com/bobmcallan/ava/internal/chat"
	"github.com/bobmcallan/ava/internal/common"
	"github.com/bobmcallan/ava/internal/models"
)

type stubClassifier struct {
	prediction *models.IntentPrediction
	err        error
}

func (s *stubClassifier) Classify(_ context.Context, _ string) (*models.IntentPrediction, error) {
	return s.prediction, s.err
}

type stubHandler struct {
	reply string
}

func (s *stubHandler) Execute(_ context.Context, _ models.Instrument, _ string, _ *models.Annotation) (string, error) {
	return s.reply, nil
}

func newTestServer(t *testing.T, classifier *stubClassifier) *Server {
	t.Helper()

	config := common.NewDefaultConfig()
	logger := common.NewSilentLogger()

	dispatcher := chat.NewDispatcher(
		config.Instruments,
		classifier,
		nil,
		map[string]chat.Handler{chat.IntentPriceQuery: &stubHandler{reply: "fiyat cevabı"}},
		config.Chat.ConfidenceThreshold,
		config.Chat.HistoryDepth,
		logger,
	)

	a := &app.App{
		Config:      config,
		Logger:      logger,
		Dispatcher:  dispatcher,
		StartupTime: time.Now(),
	}
	return NewServer(a)
}

func doRequest(s *Server, method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		data, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, &stubClassifier{})

	rec := doRequest(s, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestHealthEndpoint_MethodNotAllowed(t *testing.T) {
	s := newTestServer(t, &stubClassifier{})

	rec := doRequest(s, http.MethodPost, "/api/health", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestVersionEndpoint(t *testing.T) {
	s := newTestServer(t, &stubClassifier{})

	rec := doRequest(s, http.MethodGet, "/api/version", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["version"])
}

func TestChatEndpoint_NewSession(t *testing.T) {
	s := newTestServer(t, &stubClassifier{
		prediction: &models.IntentPrediction{Intent: chat.IntentPriceQuery, Confidence: 0.9},
	})

	rec := doRequest(s, http.MethodPost, "/api/chat", ChatRequest{Message: "thy fiyatı ne kadar"})
	require.Equal(t, http.StatusOK, rec.Code)

	var body ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.SessionID)
	assert.Contains(t, body.Reply, "fiyat cevabı")
	assert.Contains(t, body.Reply, "yatırım tavsiyesi niteliği taşımaz")
}

func TestChatEndpoint_SessionReuse(t *testing.T) {
	s := newTestServer(t, &stubClassifier{
		prediction: &models.IntentPrediction{Intent: chat.IntentPriceQuery, Confidence: 0.9},
	})

	rec := doRequest(s, http.MethodPost, "/api/chat", ChatRequest{Message: "thy fiyatı ne kadar"})
	require.Equal(t, http.StatusOK, rec.Code)
	var first ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))

	// Entity-less follow-up rides on the session memory
	rec = doRequest(s, http.MethodPost, "/api/chat", ChatRequest{Message: "peki ne kadar oldu", SessionID: first.SessionID})
	require.Equal(t, http.StatusOK, rec.Code)
	var second ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))

	assert.Equal(t, first.SessionID, second.SessionID)
	assert.Contains(t, second.Reply, "fiyat cevabı")
}

func TestChatEndpoint_EmptyMessage(t *testing.T) {
	s := newTestServer(t, &stubClassifier{})

	rec := doRequest(s, http.MethodPost, "/api/chat", ChatRequest{Message: "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatEndpoint_MalformedJSON(t *testing.T) {
	s := newTestServer(t, &stubClassifier{})

	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewBufferString("{bozuk"))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatEndpoint_ClassifierFailure(t *testing.T) {
	s := newTestServer(t, &stubClassifier{err: errors.New("model offline")})

	rec := doRequest(s, http.MethodPost, "/api/chat", ChatRequest{Message: "thy fiyatı ne kadar"})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestSessionReset(t *testing.T) {
	s := newTestServer(t, &stubClassifier{
		prediction: &models.IntentPrediction{Intent: chat.IntentPriceQuery, Confidence: 0.9},
	})

	rec := doRequest(s, http.MethodPost, "/api/chat", ChatRequest{Message: "thy fiyatı ne kadar"})
	require.Equal(t, http.StatusOK, rec.Code)
	var body ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	rec = doRequest(s, http.MethodPost, "/api/sessions/"+body.SessionID+"/reset", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// With memory gone the follow-up no longer resolves an entity
	rec = doRequest(s, http.MethodPost, "/api/chat", ChatRequest{Message: "peki ne kadar oldu", SessionID: body.SessionID})
	require.Equal(t, http.StatusOK, rec.Code)
	var after ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &after))
	assert.Contains(t, after.Reply, "Hangi hisse veya varlık")
}

func TestSessionReset_UnknownSession(t *testing.T) {
	s := newTestServer(t, &stubClassifier{})

	rec := doRequest(s, http.MethodPost, "/api/sessions/bilinmeyen/reset", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInstrumentsEndpoint(t *testing.T) {
	s := newTestServer(t, &stubClassifier{})

	rec := doRequest(s, http.MethodGet, "/api/instruments", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var instruments []models.Instrument
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &instruments))
	assert.Len(t, instruments, 10)
}

func TestConfigEndpoint(t *testing.T) {
	s := newTestServer(t, &stubClassifier{})

	rec := doRequest(s, http.MethodGet, "/api/config", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "development", body["environment"])
	assert.EqualValues(t, 0.35, body["confidence_threshold"])
	assert.EqualValues(t, 10, body["instrument_count"])
}

func TestShutdownEndpoint_DisabledInProduction(t *testing.T) {
	s := newTestServer(t, &stubClassifier{})
	s.app.Config.Environment = "production"

	rec := doRequest(s, http.MethodPost, "/api/shutdown", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestShutdownEndpoint_DevMode(t *testing.T) {
	s := newTestServer(t, &stubClassifier{})
	ch := make(chan struct{}, 1)
	s.SetShutdownChannel(ch)

	rec := doRequest(s, http.MethodPost, "/api/shutdown", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("shutdown signal not delivered")
	}
}

func TestCORSHeaders(t *testing.T) {
	s := newTestServer(t, &stubClassifier{})

	rec := doRequest(s, http.MethodGet, "/api/health", nil)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = doRequest(s, http.MethodOptions, "/api/chat", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
