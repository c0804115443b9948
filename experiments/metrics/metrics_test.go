package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func sampleGames() []GameRecord {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return []GameRecord{
		{Matchup: "random-vs-heuristic", Seed: 1, GameMetric: GameMetric{
			ID: "g1", Policies: []string{"random", "heuristic"}, Winner: 1, Points: []int{4, 10},
			Rounds: 40, StartTime: start, EndTime: start.Add(time.Second), Duration: time.Second, TotalMoves: 120,
		}},
		{Matchup: "random-vs-heuristic", Seed: 2, GameMetric: GameMetric{
			ID: "g2", Policies: []string{"heuristic", "random"}, Winner: 0, Points: []int{10, 6},
			Rounds: 35, StartTime: start, EndTime: start.Add(time.Second), Duration: time.Second, TotalMoves: 100,
		}},
		{Matchup: "random-vs-heuristic", Seed: 3, GameMetric: GameMetric{
			ID: "g3", Policies: []string{"random", "heuristic"}, Winner: -1, Points: []int{7, 8},
			Rounds: 300, StartTime: start, EndTime: start.Add(time.Second), Duration: time.Second, TotalMoves: 900,
		}},
	}
}

func TestCollector(t *testing.T) {
	t.Run("counts concurrent episodes", func(t *testing.T) {
		c := NewCollector()
		c.Start(4, 20, 7)

		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 25; j++ {
					c.AddEpisode()
				}
				c.AddFullPlayout()
			}()
		}
		wg.Wait()

		m := c.Complete()
		require.Equal(t, 100, m.Episodes)
		require.Equal(t, 4, m.FullPlayouts)
		require.Equal(t, 4, m.Goroutines)
		require.Equal(t, 20, m.Cutoff)
		require.Equal(t, 7, m.Candidates)
	})

	t.Run("dummy collector records nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start(4, 20, 7)
		c.AddEpisode()
		require.Equal(t, SearchMetric{}, c.Complete())
	})
}

func TestWriter(t *testing.T) {
	w, err := NewWriter(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, w.WriteGameRecords(sampleGames()))
	require.NoError(t, w.WriteMoveRecords([]MoveRecord{
		{Game: "g1", MoveMetric: MoveMetric{Step: 1, Round: 1, Player: 0, Kind: "pass"}},
	}))

	f, err := os.Open(filepath.Join(w.Dir(), "game_records.csv"))
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4, "Header plus one row per game")
	require.Equal(t, "id", rows[0][0])
	require.Equal(t, []string{"g1", "random-vs-heuristic", "1", "random|heuristic", "0", "1", "4|10"}, rows[1][:7])

	_, err = os.Stat(filepath.Join(w.Dir(), "move_records.csv"))
	require.NoError(t, err)
}

func TestSQLiteStore(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.WriteGameRecords(sampleGames()))
	require.NoError(t, s.WriteMoveRecords([]MoveRecord{
		{Game: "g1", MoveMetric: MoveMetric{Step: 1, Round: 1, Player: 0, Kind: "settle"}},
		{Game: "g1", MoveMetric: MoveMetric{Step: 2, Round: 1, Player: 1, Kind: "pass"}},
	}))

	n, err := s.GameCount()
	require.NoError(t, err)
	require.Equal(t, 3, n)

	wins, err := s.WinCounts("random-vs-heuristic")
	require.NoError(t, err)
	require.Equal(t, map[string]int{"heuristic": 2}, wins, "Capped games are not wins")

	require.NoError(t, s.WriteGameRecords(sampleGames()[:1]), "Rewriting a game replaces it")
	n, err = s.GameCount()
	require.NoError(t, err)
	require.Equal(t, 3, n)
}
