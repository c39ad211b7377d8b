package dwave

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub004/qubo"
)

// ErrUnavailable marks every failure of the quantum-annealing service:
// transport errors, authentication failures, oversized problems, service
// errors, and timeouts. Callers match it with errors.Is and fall back to the
// classical solver.
var ErrUnavailable = errors.New("quantum annealing service unavailable")

const (
	// DefaultAnnealTime is the fixed annealing duration per read.
	DefaultAnnealTime = 20 * time.Microsecond

	// DefaultMaxReads bounds the read count of one submission.
	DefaultMaxReads = 1000

	// DefaultPollInterval is the delay between answer polls.
	DefaultPollInterval = 250 * time.Millisecond

	// DefaultRequestsPerSecond limits submissions to the service.
	DefaultRequestsPerSecond = 2
)

// Options configures a Client.
type Options struct {
	// HTTPClient performs the requests. Defaults to a client with a
	// 30 second timeout.
	HTTPClient *http.Client

	// AnnealTime is the annealing duration per read.
	AnnealTime time.Duration

	// MaxReads caps the read count of a submission.
	MaxReads int

	// PollInterval is the delay between answer polls.
	PollInterval time.Duration

	// RequestsPerSecond limits outgoing requests. <= 0 disables limiting.
	RequestsPerSecond float64

	// Logger receives submission diagnostics.
	Logger *slog.Logger
}

// Client submits QUBO problems to a quantum-annealing REST service.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
	annealTime time.Duration
	maxReads   int
	pollEvery  time.Duration
	logger     *slog.Logger
}

// NewClient creates a client for the service at endpoint, authenticating
// with token.
func NewClient(endpoint, token string, optFns ...func(*Options)) *Client {
	opts := Options{
		AnnealTime:        DefaultAnnealTime,
		MaxReads:          DefaultMaxReads,
		PollInterval:      DefaultPollInterval,
		RequestsPerSecond: DefaultRequestsPerSecond,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&opts)
		}
	}

	c := &Client{
		endpoint:   endpoint,
		token:      token,
		httpClient: opts.HTTPClient,
		annealTime: opts.AnnealTime,
		maxReads:   opts.MaxReads,
		pollEvery:  opts.PollInterval,
		logger:     opts.Logger,
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if opts.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	return c
}

// problemRequest is the submission body: the sparse matrix in canonical
// (i, j, value) entries plus solver parameters.
type problemRequest struct {
	Entries         []qubo.Entry `json:"entries"`
	NumVariables    int          `json:"num_variables"`
	NumReads        int          `json:"num_reads"`
	AnnealingTimeUS int64        `json:"annealing_time_us"`
}

// problemResponse is the service's view of a submitted problem. Solutions
// and energies are only present once Status is COMPLETED.
type problemResponse struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	Solutions [][]int8  `json:"solutions"`
	Energies  []float64 `json:"energies"`
	Message   string    `json:"message,omitempty"`
}

const (
	statusCompleted = "COMPLETED"
	statusFailed    = "FAILED"
	statusCancelled = "CANCELLED"
)

// Submit sends the matrix to the annealer and waits for the lowest-energy
// sample. It satisfies solver.HardwareAnnealer.
func (c *Client) Submit(ctx context.Context, m *qubo.Matrix, reads int) (qubo.Sample, float64, error) {
	if reads <= 0 || reads > c.maxReads {
		reads = c.maxReads
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, 0, fmt.Errorf("%w: rate limit wait: %w", ErrUnavailable, err)
		}
	}

	start := time.Now()
	resp, err := c.post(ctx, problemRequest{
		Entries:         m.Entries(),
		NumVariables:    m.NumVariables(),
		NumReads:        reads,
		AnnealingTimeUS: c.annealTime.Microseconds(),
	})
	if err != nil {
		return nil, 0, err
	}

	for !terminal(resp.Status) {
		select {
		case <-ctx.Done():
			return nil, 0, fmt.Errorf("%w: waiting for answer: %w", ErrUnavailable, ctx.Err())
		case <-time.After(c.pollEvery):
		}
		resp, err = c.poll(ctx, resp.ID)
		if err != nil {
			return nil, 0, err
		}
	}

	if resp.Status != statusCompleted {
		return nil, 0, fmt.Errorf("%w: problem %s: %s", ErrUnavailable, resp.Status, resp.Message)
	}

	sample, energy, err := bestSolution(resp, m.NumVariables())
	if err != nil {
		return nil, 0, err
	}

	c.logger.Debug("quantum annealing completed",
		"variables", m.NumVariables(),
		"reads", reads,
		"energy", energy,
		"elapsed", time.Since(start),
	)
	return sample, energy, nil
}

func (c *Client) post(ctx context.Context, pr problemRequest) (*problemResponse, error) {
	body, err := json.Marshal(pr)
	if err != nil {
		return nil, fmt.Errorf("%w: encode problem: %w", ErrUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/problems", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Auth-Token", c.token)

	return c.do(req)
}

func (c *Client) poll(ctx context.Context, id string) (*problemResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/problems/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	req.Header.Set("X-Auth-Token", c.token)

	return c.do(req)
}

func (c *Client) do(req *http.Request) (*problemResponse, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", ErrUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: authentication rejected (%d)", ErrUnavailable, resp.StatusCode)
	case resp.StatusCode == http.StatusRequestEntityTooLarge:
		return nil, fmt.Errorf("%w: problem too large for solver", ErrUnavailable)
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("%w: service returned %d: %s", ErrUnavailable, resp.StatusCode, truncate(data))
	}

	var pr problemResponse
	if err := json.Unmarshal(data, &pr); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", ErrUnavailable, err)
	}
	return &pr, nil
}

// bestSolution picks the lowest-energy solution from a completed answer.
func bestSolution(resp *problemResponse, numVars int) (qubo.Sample, float64, error) {
	if len(resp.Solutions) == 0 || len(resp.Solutions) != len(resp.Energies) {
		return nil, 0, fmt.Errorf("%w: answer carries %d solutions and %d energies",
			ErrUnavailable, len(resp.Solutions), len(resp.Energies))
	}

	best := 0
	for i := 1; i < len(resp.Energies); i++ {
		if resp.Energies[i] < resp.Energies[best] {
			best = i
		}
	}

	raw := resp.Solutions[best]
	if len(raw) != numVars {
		return nil, 0, fmt.Errorf("%w: solution length %d, want %d", ErrUnavailable, len(raw), numVars)
	}
	sample := make(qubo.Sample, len(raw))
	for i, v := range raw {
		if v != 0 && v != 1 {
			return nil, 0, fmt.Errorf("%w: non-binary value %d in solution", ErrUnavailable, v)
		}
		sample[i] = uint8(v)
	}
	return sample, resp.Energies[best], nil
}

func terminal(status string) bool {
	return status == statusCompleted || status == statusFailed || status == statusCancelled
}

func truncate(data []byte) string {
	const limit = 256
	if len(data) > limit {
		data = data[:limit]
	}
	return string(data)
}
