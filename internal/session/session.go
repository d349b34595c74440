// Package session pairs a game with its estimator settings and the most
// recent probability map. Hosts keep one Session per player context.
package session

import (
	"errors"
	rand "math/rand/v2"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/lox/bingobot/internal/estimator"
	"github.com/lox/bingobot/internal/game"
	"github.com/lox/bingobot/internal/randutil"
)

// Settings control the game rules and estimation cost for new sessions.
type Settings struct {
	Attempts    int
	Trials      int
	TargetLines int
}

// DefaultSettings returns the standard rules: 16 attempts, 5000 trials, 4 lines.
func DefaultSettings() Settings {
	return Settings{
		Attempts:    game.DefaultAttempts,
		Trials:      estimator.DefaultTrials,
		TargetLines: estimator.DefaultTargetLines,
	}
}

// Update is what a host renders after an operation.
type Update struct {
	Snapshot      game.Snapshot
	Probabilities estimator.Probabilities
	Rejected      []game.Rejection
	Accepted      []int
	Elapsed       time.Duration
	// Estimated is true when this update ran a fresh estimation
	Estimated bool
}

// Session owns one game. All methods are safe for concurrent use; calls are
// serialized so an estimation always sees a consistent state.
type Session struct {
	ID string

	mu       sync.Mutex
	game     *game.Game
	settings Settings
	rng      *rand.Rand
	clock    quartz.Clock
	probs    estimator.Probabilities
	stale    bool
}

// Option configures a Session
type Option func(*Session)

// WithSeed makes the session's estimations reproducible.
func WithSeed(seed int64) Option {
	return func(s *Session) {
		s.rng = randutil.New(seed)
	}
}

// WithClock sets the clock used to time estimations.
func WithClock(clock quartz.Clock) Option {
	return func(s *Session) {
		s.clock = clock
	}
}

// New creates a session with a fresh game.
func New(id string, settings Settings, opts ...Option) *Session {
	s := &Session{
		ID:       id,
		game:     game.New(game.WithAttempts(settings.Attempts)),
		settings: settings,
		clock:    quartz.NewReal(),
		stale:    true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = randutil.New(randutil.Seed(nil))
	}
	return s
}

// Select marks numbers and re-estimates. When no attempts are left the
// returned error wraps game.ErrNoAttemptsLeft and the state is untouched.
func (s *Session) Select(nums ...int) (Update, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.mark(nums)
	if err != nil {
		return Update{Snapshot: s.game.Snapshot(), Probabilities: s.probs}, err
	}

	u := s.estimate()
	u.Accepted = res.Accepted
	u.Rejected = res.Rejected
	return u, nil
}

// Mark applies a selection without estimating. The cached probabilities are
// marked stale when anything changed, so the next State call re-estimates.
func (s *Session) Mark(nums ...int) (game.SelectResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mark(nums)
}

func (s *Session) mark(nums []int) (game.SelectResult, error) {
	res, err := s.game.Select(nums...)
	if err != nil {
		return res, err
	}
	if res.Changed() {
		s.stale = true
	}
	return res, nil
}

// Reset restores the initial game. The probability map is discarded and
// recomputed on the next State call.
func (s *Session) Reset() game.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.game.Reset()
	s.probs = nil
	s.stale = true
	return s.game.Snapshot()
}

// State returns the current snapshot, estimating first if the map is stale.
func (s *Session) State() Update {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stale {
		return s.estimate()
	}
	return Update{Snapshot: s.game.Snapshot(), Probabilities: s.probs}
}

// Snapshot returns the game state without estimating.
func (s *Session) Snapshot() game.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Snapshot()
}

func (s *Session) estimate() Update {
	start := s.clock.Now()
	s.probs = estimator.EstimateWinProbabilities(
		s.game.Marked(),
		s.game.Remaining(),
		s.game.AttemptsLeft(),
		s.settings.Trials,
		estimator.WithRand(s.rng),
		estimator.WithBoard(s.game.Board()),
		estimator.WithTargetLines(s.settings.TargetLines),
	)
	s.stale = false

	return Update{
		Snapshot:      s.game.Snapshot(),
		Probabilities: s.probs,
		Elapsed:       s.clock.Since(start),
		Estimated:     true,
	}
}

// IsGameOver reports whether err means the attempt budget is spent.
func IsGameOver(err error) bool {
	return errors.Is(err, game.ErrNoAttemptsLeft)
}
