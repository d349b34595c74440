// Package game holds the state of a single bingo game.
//
// A Game tracks which numbers the player has marked, which remain, and how
// many attempts are left. It is owned by exactly one host session (a Discord
// channel, a websocket connection, a terminal) and is not safe for
// concurrent use.
//
// # Basic Usage
//
//	g := game.New()
//	res, err := g.Select(7, 13, 19)
//	if errors.Is(err, game.ErrNoAttemptsLeft) {
//	    // game over
//	}
//	for _, r := range res.Rejected {
//	    fmt.Println(r.Err)
//	}
//	probs := estimator.EstimateWinProbabilities(g.Marked(), g.Remaining(), g.AttemptsLeft(), estimator.DefaultTrials)
//
// Reset restores the initial state:
//
//	g.Reset()
//
// # Attempts
//
// Every accepted number consumes exactly one attempt. Once attempts reach
// zero further selections are rejected with ErrNoAttemptsLeft; the counter
// never goes negative.
package game
