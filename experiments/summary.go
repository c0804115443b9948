package experiments

import (
	"time"

	"github.com/rs/zerolog/log"
)

// Summary aggregates the games of one matchup.
type Summary struct {
	Matchup    string
	Games      int
	Unfinished int            // games stopped by the round cap
	Wins       map[string]int // per policy name
	MeanRounds float64

	// Search throughput over every searched decision of the matchup
	Searches          int
	EpisodesPerSecond float64
}

// Summarize groups records by matchup, in the order matchups first appear.
func Summarize(result Result) []Summary {
	index := make(map[string]int)
	var out []Summary
	gameMatchup := make(map[string]string, len(result.Games))

	for _, g := range result.Games {
		i, ok := index[g.Matchup]
		if !ok {
			i = len(out)
			index[g.Matchup] = i
			out = append(out, Summary{Matchup: g.Matchup, Wins: make(map[string]int)})
		}
		s := &out[i]
		s.Games++
		s.MeanRounds += float64(g.Rounds)
		if g.Winner < 0 || g.Winner >= len(g.Policies) {
			s.Unfinished++
		} else {
			s.Wins[g.Policies[g.Winner]]++
		}
		gameMatchup[g.ID] = g.Matchup
	}

	episodes := make([]int, len(out))
	durations := make([]time.Duration, len(out))
	for _, m := range result.Moves {
		matchup, ok := gameMatchup[m.Game]
		if !ok || m.Episodes == 0 {
			continue
		}
		i := index[matchup]
		out[i].Searches++
		episodes[i] += m.Episodes
		durations[i] += m.Duration
	}

	for i := range out {
		if out[i].Games > 0 {
			out[i].MeanRounds /= float64(out[i].Games)
		}
		if durations[i] > 0 {
			out[i].EpisodesPerSecond = float64(episodes[i]) / durations[i].Seconds()
		}
	}
	return out
}

// LogSummaries writes one line per matchup.
func LogSummaries(summaries []Summary) {
	for _, s := range summaries {
		event := log.Info().
			Str("matchup", s.Matchup).
			Int("games", s.Games).
			Int("unfinished", s.Unfinished).
			Float64("mean_rounds", s.MeanRounds)
		for name, wins := range s.Wins {
			event = event.Int("wins_"+name, wins)
		}
		if s.Searches > 0 {
			event = event.Int("searches", s.Searches).Float64("episodes_per_second", s.EpisodesPerSecond)
		}
		event.Msg("matchup summary")
	}
}
