// meta/meta.go
package meta

// GO_ROUTINES defines the number of goroutines a search policy uses.
const GO_ROUTINES = 4

// EPISODES defines the number of rollouts per searched decision.
const EPISODES = 150

// WITH_CUTOFF defines the rollout depth before a state is evaluated.
const WITH_CUTOFF = 100

// MAX_ROUNDS stops a game that nobody wins.
const MAX_ROUNDS = 300

// GAMES defines the number of games per matchup.
const GAMES = 10

// PARALLEL defines the number of games played at once.
const PARALLEL = 4

// OUTPUT_DIR is where experiment results are written.
const OUTPUT_DIR = "results"
