package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/dfacheck"
	"github.com/aretw0/dfacheck/internal/logging"
	"github.com/aretw0/dfacheck/pkg/domain"
	"github.com/aretw0/dfacheck/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// evenA accepts words over {a,b} with an even number of a.
const evenA = "2 2 0 1 0\n0 a 1\n0 b 0\n1 a 0\n1 b 1\n"

func newTestHandler(t *testing.T) (http.Handler, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)
	checker := dfacheck.New(dfacheck.WithLifecycleHooks(m.Hooks()))
	return NewHandler(checker, WithMetrics(reg), WithLogger(logging.NewNop())), reg
}

func post(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestCheck(t *testing.T) {
	h, _ := newTestHandler(t)

	tests := []struct {
		name     string
		req      CheckRequest
		answer   string
		kind     domain.ErrorKind
		final    string
		accepted bool
	}{
		{"Accepted", CheckRequest{Machine: evenA, Word: "abab"}, "yes", "", "0", true},
		{"Rejected", CheckRequest{Machine: evenA, Word: "ab"}, "no", "", "1", false},
		{"Empty Word", CheckRequest{Machine: evenA, Word: "-"}, "yes", "", "0", true},
		{"Out Of Alphabet", CheckRequest{Machine: evenA, Word: "abc"}, "no", domain.KindOutOfAlphabet, "", false},
		{"Non Deterministic", CheckRequest{Machine: evenA + "0 a 0\n", Word: "-"}, "no", domain.KindNonDeterministic, "", false},
		{"Infix", CheckRequest{Machine: evenA, Word: "a", Mode: "infix"}, "yes", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(t, h, "/check", tt.req)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			var resp CheckResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, tt.answer, resp.Answer)
			assert.Equal(t, tt.accepted, resp.Accepted)
			assert.Equal(t, tt.final, resp.FinalState)
			if tt.kind == "" {
				assert.Nil(t, resp.Error)
			} else {
				require.NotNil(t, resp.Error)
				assert.Equal(t, tt.kind, resp.Error.Kind)
			}
		})
	}
}

func TestCheck_BadRequests(t *testing.T) {
	h, _ := newTestHandler(t)

	w := post(t, h, "/check", CheckRequest{Machine: evenA, Word: "a", Mode: "prefix"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(t, h, "/check", CheckRequest{Machine: evenA, Word: "a", Format: "xml"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest("POST", "/check", strings.NewReader(`{"machine": 1}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest("POST", "/check", strings.NewReader(`{"machine": "", "extra": true}`))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestValidate(t *testing.T) {
	h, _ := newTestHandler(t)

	t.Run("Valid", func(t *testing.T) {
		w := post(t, h, "/validate", ValidateRequest{Machine: evenA})
		require.Equal(t, http.StatusOK, w.Code)

		var resp ValidateResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.True(t, resp.Valid)
		require.NotNil(t, resp.Report)
		assert.Equal(t, 2, resp.Report.States)
		assert.Equal(t, "ab", resp.Report.Alphabet)
	})

	t.Run("Incomplete Aggregates Details", func(t *testing.T) {
		w := post(t, h, "/validate", ValidateRequest{Machine: "2 2 0 0\n0 a 1\n"})
		require.Equal(t, http.StatusOK, w.Code)

		var resp ValidateResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.False(t, resp.Valid)
		require.NotNil(t, resp.Error)
		assert.Equal(t, domain.KindNonDeterministic, resp.Error.Kind)
		// 0/b, 1/a, 1/b are missing
		assert.Len(t, resp.Error.Details, 3)
	})

	t.Run("Too Large", func(t *testing.T) {
		w := post(t, h, "/validate", ValidateRequest{Machine: "27 1 0 0"})
		var resp ValidateResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.False(t, resp.Valid)
		assert.Equal(t, domain.KindAlphabetTooLarge, resp.Error.Kind)
	})
}

func TestHealthAndMetrics(t *testing.T) {
	h, _ := newTestHandler(t)
	post(t, h, "/check", CheckRequest{Machine: evenA, Word: "aa"})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `dfacheck_queries_total{answer="yes",cached="false",mode="exact"} 1`)
}

func TestCORSPreflight(t *testing.T) {
	h, _ := newTestHandler(t)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("OPTIONS", "/check", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
