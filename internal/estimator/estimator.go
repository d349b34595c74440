// Package estimator estimates, for every unmarked number, the chance that
// marking it leads to enough completed lines before attempts run out.
//
// The estimate is a Monte Carlo simulation: each trial marks the candidate
// plus a uniformly random subset of the other remaining numbers, sized to the
// attempt budget, and checks the line count against the target.
package estimator

import (
	"math"
	rand "math/rand/v2"
	"sort"

	"github.com/lox/bingobot/internal/board"
	"github.com/lox/bingobot/internal/randutil"
)

const (
	// DefaultTrials is the number of simulation rounds per candidate
	DefaultTrials = 5000

	// DefaultTargetLines is the number of completed lines that counts as a win
	DefaultTargetLines = 4
)

// Outcome holds the raw simulation counts for one candidate
type Outcome struct {
	Successes int
	Trials    int
}

// Probability returns the success rate (0.0 to 1.0)
func (o Outcome) Probability() float64 {
	if o.Trials <= 0 {
		return 0.0
	}
	return float64(o.Successes) / float64(o.Trials)
}

// Percent returns the success rate as a percentage (0 to 100)
func (o Outcome) Percent() float64 {
	return o.Probability() * 100
}

// ConfidenceInterval returns the 95% confidence interval as percentages
func (o Outcome) ConfidenceInterval() (lower, upper float64) {
	if o.Trials <= 0 {
		return 0.0, 0.0
	}
	p := o.Probability()

	// Standard error for binomial proportion
	se := math.Sqrt(p * (1.0 - p) / float64(o.Trials))
	margin := 1.96 * se

	lower = math.Max(0.0, p-margin) * 100
	upper = math.Min(1.0, p+margin) * 100
	return lower, upper
}

// Result maps each candidate number to its simulation outcome
type Result map[int]Outcome

// Probabilities projects the result onto percentages
func (r Result) Probabilities() Probabilities {
	probs := make(Probabilities, len(r))
	for n, o := range r {
		probs[n] = o.Percent()
	}
	return probs
}

// Probabilities maps each remaining number to a win percentage in [0,100]
type Probabilities map[int]float64

// Numbers returns the candidates in ascending order
func (p Probabilities) Numbers() []int {
	nums := make([]int, 0, len(p))
	for n := range p {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}

type options struct {
	rng         *rand.Rand
	board       *board.Board
	targetLines int
}

// Option configures an estimation
type Option func(*options)

// WithRand sets the random source. Use a seeded source for reproducible runs.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		o.rng = rng
	}
}

// WithBoard evaluates lines on b instead of the standard board
func WithBoard(b *board.Board) Option {
	return func(o *options) {
		o.board = b
	}
}

// WithTargetLines sets how many completed lines count as a win
func WithTargetLines(n int) Option {
	return func(o *options) {
		o.targetLines = n
	}
}

// EstimateWinProbabilities returns, per remaining number, the percentage of
// trials in which marking it yields at least the target number of lines.
func EstimateWinProbabilities(marked, remaining board.Set, attemptsLeft, trials int, opts ...Option) Probabilities {
	return Estimate(marked, remaining, attemptsLeft, trials, opts...).Probabilities()
}

// Estimate runs the simulation and returns raw counts per candidate.
// Candidates are simulated independently; nothing is shared between them.
func Estimate(marked, remaining board.Set, attemptsLeft, trials int, opts ...Option) Result {
	o := options{
		board:       board.Standard(),
		targetLines: DefaultTargetLines,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = randutil.New(randutil.Seed(nil))
	}

	candidates := remaining.Numbers()
	result := make(Result, len(candidates))
	if trials <= 0 {
		for _, n := range candidates {
			result[n] = Outcome{}
		}
		return result
	}

	// Reused across candidates; its order never matters to the draw.
	pool := make([]int, 0, len(candidates))

	for _, candidate := range candidates {
		base := marked
		base.Add(candidate)

		pool = pool[:0]
		for _, n := range candidates {
			if n != candidate {
				pool = append(pool, n)
			}
		}

		draws := min(attemptsLeft, len(pool))
		if draws <= 0 || draws == len(pool) {
			// Every trial would mark the same set
			final := base
			if draws > 0 {
				final = final.Union(remaining)
			}
			result[candidate] = deterministic(o, final, trials)
			continue
		}

		successes := 0
		for i := 0; i < trials; i++ {
			final := base
			for k := 0; k < draws; k++ {
				j := k + o.rng.IntN(len(pool)-k)
				pool[k], pool[j] = pool[j], pool[k]
				final.Add(pool[k])
			}
			if o.board.CountCompletedLines(final) >= o.targetLines {
				successes++
			}
		}
		result[candidate] = Outcome{Successes: successes, Trials: trials}
	}

	return result
}

func deterministic(o options, final board.Set, trials int) Outcome {
	if o.board.CountCompletedLines(final) >= o.targetLines {
		return Outcome{Successes: trials, Trials: trials}
	}
	return Outcome{Trials: trials}
}
