package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scrape returns the text exposition of m's registry.
func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestNew_IndependentRegistries(t *testing.T) {
	// Two instances must not collide on registration.
	a := New()
	b := New()

	a.Login()

	assert.Contains(t, scrape(t, a), "promptlib_session_logins_total 1")
	assert.Contains(t, scrape(t, b), "promptlib_session_logins_total 0")
}

func TestRecorders(t *testing.T) {
	m := New()

	m.Search("popular", 3)
	m.Search("", 0)
	m.Fill(true)
	m.Fill(false)
	m.Fill(false)
	m.FavoriteToggled("added")
	m.Generated("Midjourney")

	body := scrape(t, m)
	assert.Contains(t, body, `promptlib_searches_total{sort="popular"} 1`)
	assert.Contains(t, body, `promptlib_searches_total{sort="none"} 1`)
	assert.Contains(t, body, `promptlib_search_results_count 2`)
	assert.Contains(t, body, `promptlib_template_fills_total{complete="false"} 2`)
	assert.Contains(t, body, `promptlib_template_fills_total{complete="true"} 1`)
	assert.Contains(t, body, `promptlib_favorite_toggles_total{outcome="added"} 1`)
	assert.Contains(t, body, `promptlib_generations_total{model="Midjourney"} 1`)
}

func TestRequestFinished(t *testing.T) {
	m := New()

	m.RequestStarted()
	assert.Contains(t, scrape(t, m), "promptlib_http_requests_in_flight 1")

	m.RequestFinished(http.MethodGet, "/api/prompts/{id}", http.StatusNotFound, 5*time.Millisecond)

	body := scrape(t, m)
	assert.Contains(t, body, "promptlib_http_requests_in_flight 0")
	assert.Contains(t, body, `promptlib_http_requests_total{method="GET",route="/api/prompts/{id}",status="404"} 1`)
}

func TestNilMetricsIsNoOp(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RequestStarted()
		m.RequestFinished("GET", "/", 200, time.Second)
		m.Search("rating", 1)
		m.Fill(true)
		m.FavoriteToggled("removed")
		m.Login()
		m.Generated("Claude")
	})
}

func TestHandler_IncludesRuntimeCollectors(t *testing.T) {
	assert.Contains(t, scrape(t, New()), "go_goroutines")
}
