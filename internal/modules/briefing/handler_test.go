package briefing

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
	"go.uber.org/zap"
)

func newTestRouter(o *Orchestrator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(o, zap.NewNop())
	r := gin.New()
	r.POST("/api/briefings", h.Create)
	r.POST("/api/followup", h.FollowUp)
	r.GET("/api/prefetch-status", h.PrefetchStatus)
	return r
}

func postJSON(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateBriefingOK(t *testing.T) {
	o := newTestOrchestrator(newFakeStore(), &fakeSynth{result: sampleDialogue()}, "key")
	r := newTestRouter(o)

	w := postJSON(r, "/api/briefings", gin.H{"topics": []string{"ai"}})
	assert.Equal(t, w.Code, http.StatusOK)

	var res BriefingResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, res.Cached, false)
	assert.Equal(t, len(res.Messages), 3)
}

func TestCreateBriefingBadTopics(t *testing.T) {
	o := newTestOrchestrator(newFakeStore(), &fakeSynth{}, "key")
	r := newTestRouter(o)

	w := postJSON(r, "/api/briefings", gin.H{"topics": []string{"astrology"}})
	assert.Equal(t, w.Code, http.StatusBadRequest)

	w = postJSON(r, "/api/briefings", gin.H{"topics": []string{}})
	assert.Equal(t, w.Code, http.StatusBadRequest)
}

func TestCreateBriefingMalformedBody(t *testing.T) {
	o := newTestOrchestrator(newFakeStore(), &fakeSynth{}, "key")
	r := newTestRouter(o)

	req := httptest.NewRequest(http.MethodPost, "/api/briefings", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, w.Code, http.StatusBadRequest)
}

func TestCreateBriefingNoAPIKey(t *testing.T) {
	o := newTestOrchestrator(newFakeStore(), &fakeSynth{}, "")
	r := newTestRouter(o)

	w := postJSON(r, "/api/briefings", gin.H{"topics": []string{"ai"}})
	assert.Equal(t, w.Code, http.StatusInternalServerError)
}

func TestCreateBriefingUpstreamFailure(t *testing.T) {
	o := newTestOrchestrator(newFakeStore(), &fakeSynth{err: errors.New("overloaded")}, "key")
	r := newTestRouter(o)

	w := postJSON(r, "/api/briefings", gin.H{"topics": []string{"ai"}})
	assert.Equal(t, w.Code, http.StatusBadGateway)
}

func TestFollowUpRequiresMessageAndQuestion(t *testing.T) {
	o := newTestOrchestrator(newFakeStore(), &fakeSynth{result: sampleDialogue()}, "key")
	r := newTestRouter(o)

	w := postJSON(r, "/api/followup", gin.H{"message": "", "question": "why?"})
	assert.Equal(t, w.Code, http.StatusBadRequest)

	w = postJSON(r, "/api/followup", gin.H{"message": "something happened"})
	assert.Equal(t, w.Code, http.StatusBadRequest)

	w = postJSON(r, "/api/followup", gin.H{"message": "something happened", "question": "why?"})
	assert.Equal(t, w.Code, http.StatusOK)
}

func TestPrefetchStatusEndpoint(t *testing.T) {
	st := newFakeStore()
	st.news["2025-06-15:finance"] = nil // explicit nil stays uncached
	o := newTestOrchestrator(st, &fakeSynth{}, "key")
	r := newTestRouter(o)

	req := httptest.NewRequest(http.MethodGet, "/api/prefetch-status", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, w.Code, http.StatusOK)

	var res struct {
		Date   string        `json:"date"`
		Topics []TopicStatus `json:"topics"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, res.Date, "2025-06-15")
	for _, ts := range res.Topics {
		assert.Equal(t, ts.Cached, false)
	}
}
