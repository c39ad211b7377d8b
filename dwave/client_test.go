package dwave

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub004/qubo"
)

func testMatrix() *qubo.Matrix {
	m := qubo.NewMatrix()
	m.Add(0, 0, -1)
	m.Add(1, 1, -1)
	m.Add(0, 1, 100)
	return m
}

func noLimit(o *Options) {
	o.RequestsPerSecond = 0
	o.PollInterval = time.Millisecond
}

func TestSubmitCompletedImmediately(t *testing.T) {
	var gotToken string
	var gotReq problemRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/problems", r.URL.Path)
		gotToken = r.Header.Get("X-Auth-Token")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		_ = json.NewEncoder(w).Encode(problemResponse{
			ID:        "p-1",
			Status:    statusCompleted,
			Solutions: [][]int8{{1, 1}, {0, 1}},
			Energies:  []float64{98, -1},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", noLimit)
	sample, energy, err := c.Submit(context.Background(), testMatrix(), 50)
	require.NoError(t, err)
	assert.Equal(t, "secret", gotToken)
	assert.Equal(t, 50, gotReq.NumReads)
	assert.Equal(t, 2, gotReq.NumVariables)
	assert.Len(t, gotReq.Entries, 3)
	assert.Equal(t, qubo.Sample{0, 1}, sample)
	assert.InDelta(t, -1.0, energy, 1e-12)
}

func TestSubmitPollsUntilCompleted(t *testing.T) {
	polls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			_ = json.NewEncoder(w).Encode(problemResponse{ID: "p-2", Status: "PENDING"})
			return
		}
		require.Equal(t, "/problems/p-2", r.URL.Path)
		polls++
		if polls < 3 {
			_ = json.NewEncoder(w).Encode(problemResponse{ID: "p-2", Status: "IN_PROGRESS"})
			return
		}
		_ = json.NewEncoder(w).Encode(problemResponse{
			ID:        "p-2",
			Status:    statusCompleted,
			Solutions: [][]int8{{1, 0}},
			Energies:  []float64{-1},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", noLimit)
	sample, energy, err := c.Submit(context.Background(), testMatrix(), 10)
	require.NoError(t, err)
	assert.Equal(t, 3, polls)
	assert.Equal(t, qubo.Sample{1, 0}, sample)
	assert.InDelta(t, -1.0, energy, 1e-12)
}

func TestSubmitAuthFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "bad-token", noLimit)
	_, _, err := c.Submit(context.Background(), testMatrix(), 10)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestSubmitServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "maintenance window", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", noLimit)
	_, _, err := c.Submit(context.Background(), testMatrix(), 10)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestSubmitFailedProblem(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(problemResponse{
			ID:      "p-3",
			Status:  statusFailed,
			Message: "chip offline",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", noLimit)
	_, _, err := c.Submit(context.Background(), testMatrix(), 10)
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "chip offline")
}

func TestSubmitContextCancelledWhilePolling(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(problemResponse{ID: "p-4", Status: "PENDING"})
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	c := NewClient(srv.URL, "secret", func(o *Options) {
		o.RequestsPerSecond = 0
		o.PollInterval = time.Second
	})
	_, _, err := c.Submit(ctx, testMatrix(), 10)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSubmitTransportError(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "secret", noLimit)
	_, _, err := c.Submit(context.Background(), testMatrix(), 10)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestSubmitClampsReads(t *testing.T) {
	var gotReads int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var pr problemRequest
		_ = json.NewDecoder(r.Body).Decode(&pr)
		gotReads = pr.NumReads
		_ = json.NewEncoder(w).Encode(problemResponse{
			Status:    statusCompleted,
			Solutions: [][]int8{{0, 0}},
			Energies:  []float64{0},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", func(o *Options) {
		o.RequestsPerSecond = 0
		o.MaxReads = 100
	})
	_, _, err := c.Submit(context.Background(), testMatrix(), 5000)
	require.NoError(t, err)
	assert.Equal(t, 100, gotReads)
}

func TestBestSolutionRejectsNonBinary(t *testing.T) {
	_, _, err := bestSolution(&problemResponse{
		Solutions: [][]int8{{0, 3}},
		Energies:  []float64{1},
	}, 2)
	assert.ErrorIs(t, err, ErrUnavailable)
}
