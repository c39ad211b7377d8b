package anneal

import (
	"context"
	"math"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub004/internal/xrand"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub004/qubo"
)

// tunnelingWeight scales the tunneling acceptance term relative to the
// classical Metropolis term.
const tunnelingWeight = 0.1

// Params configures one solve. A Params value is immutable per run.
type Params struct {
	// Reads is the number of independent trials, each from a fresh random
	// initial vector.
	Reads int

	// Sweeps is the number of passes per read; each sweep attempts to flip
	// every variable once.
	Sweeps int

	// BetaStart and BetaEnd bound the inverse temperature, which rises
	// linearly across the sweeps of a read.
	BetaStart float64
	BetaEnd   float64

	// Seed fixes the random stream. Two solves with the same seed, matrix,
	// and parameters produce identical results.
	Seed int64

	// MaxConcurrent caps the number of reads running at once.
	// If <= 0, runtime.GOMAXPROCS(0) is used.
	MaxConcurrent int
}

// DefaultParams returns the standard solver parameters.
func DefaultParams() Params {
	return Params{
		Reads:     100,
		Sweeps:    1000,
		BetaStart: 0.1,
		BetaEnd:   10.0,
	}
}

func (p Params) normalize() Params {
	if p.Reads <= 0 {
		p.Reads = DefaultParams().Reads
	}
	if p.Sweeps <= 0 {
		p.Sweeps = DefaultParams().Sweeps
	}
	if p.BetaStart <= 0 {
		p.BetaStart = DefaultParams().BetaStart
	}
	if p.BetaEnd <= p.BetaStart {
		p.BetaEnd = p.BetaStart + DefaultParams().BetaEnd
	}
	if p.MaxConcurrent <= 0 {
		p.MaxConcurrent = runtime.GOMAXPROCS(0)
	}
	return p
}

// Outcome is the result of one solve.
type Outcome struct {
	// Sample is the lowest-energy binary vector observed.
	Sample qubo.Sample

	// Energy is the QUBO energy of Sample.
	Energy float64

	// ReadsCompleted counts reads that ran their full sweep budget.
	// It falls short of Params.Reads when the context expires mid-solve.
	ReadsCompleted int

	// SamplesEvaluated counts flip evaluations plus initial vectors across
	// all reads. Zero means the context expired before any read started.
	SamplesEvaluated int64
}

// neighbor is one off-diagonal coefficient touching a variable.
type neighbor struct {
	v     int32
	coeff float64
}

// adjacency is the per-variable view of the matrix: the linear term of each
// variable plus its interaction row. It is built once per solve and shared
// read-only across all reads.
type adjacency struct {
	n      int
	linear []float64
	rows   [][]neighbor
}

func buildAdjacency(m *qubo.Matrix) *adjacency {
	n := m.NumVariables()
	adj := &adjacency{
		n:      n,
		linear: make([]float64, n),
		rows:   make([][]neighbor, n),
	}
	for _, e := range m.Entries() {
		if e.I == e.J {
			adj.linear[e.I] += e.Value
			continue
		}
		adj.rows[e.I] = append(adj.rows[e.I], neighbor{v: e.J, coeff: e.Value})
		adj.rows[e.J] = append(adj.rows[e.J], neighbor{v: e.I, coeff: e.Value})
	}
	return adj
}

// flipDelta returns the energy change of flipping variable v, using only the
// matrix row touching v.
func (adj *adjacency) flipDelta(x qubo.Sample, v int) float64 {
	sum := adj.linear[v]
	for _, nb := range adj.rows[v] {
		if x[nb.v] == 1 {
			sum += nb.coeff
		}
	}
	if x[v] == 1 {
		return -sum
	}
	return sum
}

// energy evaluates the full QUBO energy of x.
func (adj *adjacency) energy(x qubo.Sample) float64 {
	var e float64
	for v := 0; v < adj.n; v++ {
		if x[v] == 0 {
			continue
		}
		e += adj.linear[v]
		for _, nb := range adj.rows[v] {
			// Rows hold both orientations of each pair; count each once.
			if nb.v > int32(v) && x[nb.v] == 1 {
				e += nb.coeff
			}
		}
	}
	return e
}

// Energy evaluates the QUBO energy of a sample against a matrix.
func Energy(m *qubo.Matrix, s qubo.Sample) float64 {
	return buildAdjacency(m).energy(s)
}

// tracker holds the best sample across reads. Ties on energy resolve to the
// lowest read index so the result does not depend on completion order.
type tracker struct {
	mu     sync.Mutex
	any    bool
	energy float64
	read   int
	sample qubo.Sample
}

func (t *tracker) offer(read int, energy float64, sample qubo.Sample) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.any && (energy > t.energy || (energy == t.energy && read > t.read)) {
		return
	}
	t.any = true
	t.energy = energy
	t.read = read
	if t.sample == nil {
		t.sample = make(qubo.Sample, len(sample))
	}
	copy(t.sample, sample)
}

// Solve minimizes the QUBO energy of m.
//
// The returned outcome is never nil on a nil error. An expired context is not
// an error: reads abandon their remaining sweeps and the best sample found so
// far is returned, with SamplesEvaluated reporting whether anything was
// evaluated at all.
func Solve(ctx context.Context, m *qubo.Matrix, params Params) (*Outcome, error) {
	p := params.normalize()
	adj := buildAdjacency(m)
	if adj.n == 0 {
		return &Outcome{Sample: qubo.Sample{}}, nil
	}

	var (
		best      tracker
		evaluated atomic.Int64
		completed atomic.Int64
	)

	g := &errgroup.Group{}
	g.SetLimit(p.MaxConcurrent)
	for read := 0; read < p.Reads; read++ {
		g.Go(func() error {
			sample, energy, evals, full := runRead(ctx, adj, p, read)
			if evals > 0 {
				evaluated.Add(evals)
				best.offer(read, energy, sample)
			}
			if full {
				completed.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	out := &Outcome{
		Energy:           best.energy,
		ReadsCompleted:   int(completed.Load()),
		SamplesEvaluated: evaluated.Load(),
	}
	if best.any {
		out.Sample = best.sample
	}
	return out, nil
}

// runRead performs one independent annealing trial. It returns the best
// vector of the trial, its energy, the number of evaluations performed, and
// whether the trial ran its full sweep budget.
func runRead(ctx context.Context, adj *adjacency, p Params, read int) (qubo.Sample, float64, int64, bool) {
	if ctx.Err() != nil {
		return nil, 0, 0, false
	}

	rng := rand.New(rand.NewSource(xrand.SubSeed(p.Seed, read)))

	x := make(qubo.Sample, adj.n)
	for v := range x {
		x[v] = uint8(rng.Intn(2))
	}
	energy := adj.energy(x)

	bestSample := make(qubo.Sample, adj.n)
	copy(bestSample, x)
	bestEnergy := energy
	evals := int64(1)

	betaStep := 0.0
	if p.Sweeps > 1 {
		betaStep = (p.BetaEnd - p.BetaStart) / float64(p.Sweeps-1)
	}

	for sweep := 0; sweep < p.Sweeps; sweep++ {
		if ctx.Err() != nil {
			return bestSample, bestEnergy, evals, false
		}
		beta := p.BetaStart + betaStep*float64(sweep)

		for v := 0; v < adj.n; v++ {
			delta := adj.flipDelta(x, v)
			evals++

			accept := delta <= 0
			if !accept {
				classical := math.Exp(-beta * delta)
				tunneling := math.Exp(-math.Sqrt(delta))
				accept = rng.Float64() < math.Max(classical, tunnelingWeight*tunneling)
			}
			if !accept {
				continue
			}

			x[v] ^= 1
			energy += delta
			if energy < bestEnergy {
				bestEnergy = energy
				copy(bestSample, x)
			}
		}
	}

	return bestSample, bestEnergy, evals, true
}
