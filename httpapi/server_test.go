package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "secret-token"

type fakeRunner struct {
	runFn func(ctx context.Context, questions []string) ([]string, error)
	calls int
}

func (f *fakeRunner) Run(ctx context.Context, questions []string) ([]string, error) {
	f.calls++
	if f.runFn != nil {
		return f.runFn(ctx, questions)
	}
	answers := make([]string, len(questions))
	for i, q := range questions {
		answers[i] = "answer to " + q
	}
	return answers, nil
}

func newTestServer(t *testing.T, runner *fakeRunner) *Server {
	t.Helper()
	s, err := NewServer(runner, testToken)
	require.NoError(t, err)
	return s
}

func doRun(s *Server, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/run", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestNewServer(t *testing.T) {
	t.Run("nil runner", func(t *testing.T) {
		_, err := NewServer(nil, testToken)
		assert.Equal(t, ErrRunnerRequired, err)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := NewServer(&fakeRunner{}, "")
		assert.Equal(t, ErrTokenRequired, err)
	})
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, &fakeRunner{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRun(t *testing.T) {
	runner := &fakeRunner{}
	s := newTestServer(t, runner)

	rec := doRun(s, testToken, `{"questions":["What is covered?","What is excluded?"]}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"answers":["answer to What is covered?","answer to What is excluded?"]}`, rec.Body.String())
	assert.Equal(t, 1, runner.calls)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestRun_Unauthorized(t *testing.T) {
	runner := &fakeRunner{}
	s := newTestServer(t, runner)

	t.Run("missing header", func(t *testing.T) {
		rec := doRun(s, "", `{"questions":["q"]}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong token", func(t *testing.T) {
		rec := doRun(s, "wrong", `{"questions":["q"]}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/run", strings.NewReader(`{"questions":["q"]}`))
		req.Header.Set("Authorization", "Basic "+testToken)
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	assert.Zero(t, runner.calls, "unauthorized requests must never reach the runner")
}

func TestRun_BadRequest(t *testing.T) {
	runner := &fakeRunner{}
	s := newTestServer(t, runner)

	cases := []struct {
		name string
		body string
	}{
		{"malformed JSON", `{"questions": [`},
		{"missing questions", `{}`},
		{"empty questions array", `{"questions":[]}`},
		{"empty question string", `{"questions":[""]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRun(s, testToken, tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
	assert.Zero(t, runner.calls)
}

func TestRun_RunnerFailure(t *testing.T) {
	runner := &fakeRunner{
		runFn: func(ctx context.Context, questions []string) ([]string, error) {
			return nil, errors.New("vector index unavailable")
		},
	}
	s := newTestServer(t, runner)

	rec := doRun(s, testToken, `{"questions":["q"]}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "vector index unavailable")
}
