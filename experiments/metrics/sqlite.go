package metrics

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps experiment records in a SQLite database.
type SQLiteStore struct {
	conn *sqlx.DB
}

type gameRow struct {
	ID             string `db:"id"`
	Matchup        string `db:"matchup"`
	Seed           int64  `db:"seed"`
	Policies       string `db:"policies"`
	StartingPlayer int    `db:"starting_player"`
	Winner         int    `db:"winner"`
	Points         string `db:"points"`
	Rounds         int    `db:"rounds"`
	TotalMoves     int    `db:"total_moves"`
	StartTime      string `db:"start_time"`
	DurationMS     int64  `db:"duration_ms"`
}

type moveRow struct {
	Game         string `db:"game"`
	Step         int    `db:"step"`
	Round        int    `db:"round"`
	Player       int    `db:"player"`
	Kind         string `db:"kind"`
	DurationMS   int64  `db:"duration_ms"`
	Episodes     int    `db:"episodes"`
	Candidates   int    `db:"candidates"`
	FullPlayouts int    `db:"full_playouts"`
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	conn, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	conn.SetMaxOpenConns(1)
	if _, err := conn.Exec("PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000;"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("pragmas: %w", err)
	}

	s := &SQLiteStore{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS games (
		id TEXT PRIMARY KEY,
		matchup TEXT NOT NULL,
		seed INTEGER NOT NULL,
		policies TEXT NOT NULL,
		starting_player INTEGER NOT NULL,
		winner INTEGER NOT NULL,
		points TEXT NOT NULL,
		rounds INTEGER NOT NULL,
		total_moves INTEGER NOT NULL,
		start_time TEXT NOT NULL,
		duration_ms INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS moves (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		game TEXT NOT NULL,
		step INTEGER NOT NULL,
		round INTEGER NOT NULL,
		player INTEGER NOT NULL,
		kind TEXT NOT NULL,
		duration_ms INTEGER NOT NULL,
		episodes INTEGER NOT NULL,
		candidates INTEGER NOT NULL,
		full_playouts INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_moves_game ON moves(game);
	CREATE INDEX IF NOT EXISTS idx_games_matchup ON games(matchup);
	`
	_, err := s.conn.Exec(schema)
	return err
}

func (s *SQLiteStore) WriteGameRecords(records []GameRecord) error {
	tx, err := s.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, r := range records {
		points := make([]string, len(r.Points))
		for i, p := range r.Points {
			points[i] = strconv.Itoa(p)
		}
		row := gameRow{
			ID:             r.ID,
			Matchup:        r.Matchup,
			Seed:           int64(r.Seed),
			Policies:       strings.Join(r.Policies, "|"),
			StartingPlayer: r.StartingPlayer,
			Winner:         r.Winner,
			Points:         strings.Join(points, "|"),
			Rounds:         r.Rounds,
			TotalMoves:     r.TotalMoves,
			StartTime:      r.StartTime.UTC().Format(time.RFC3339Nano),
			DurationMS:     r.Duration.Milliseconds(),
		}
		_, err := tx.NamedExec(`INSERT OR REPLACE INTO games
			(id, matchup, seed, policies, starting_player, winner, points, rounds, total_moves, start_time, duration_ms)
			VALUES (:id, :matchup, :seed, :policies, :starting_player, :winner, :points, :rounds, :total_moves, :start_time, :duration_ms)`, row)
		if err != nil {
			return fmt.Errorf("insert game %s: %w", r.ID, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) WriteMoveRecords(records []MoveRecord) error {
	tx, err := s.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, r := range records {
		row := moveRow{
			Game:         r.Game,
			Step:         r.Step,
			Round:        r.Round,
			Player:       r.Player,
			Kind:         r.Kind,
			DurationMS:   r.Duration.Milliseconds(),
			Episodes:     r.Episodes,
			Candidates:   r.Candidates,
			FullPlayouts: r.FullPlayouts,
		}
		_, err := tx.NamedExec(`INSERT INTO moves
			(game, step, round, player, kind, duration_ms, episodes, candidates, full_playouts)
			VALUES (:game, :step, :round, :player, :kind, :duration_ms, :episodes, :candidates, :full_playouts)`, row)
		if err != nil {
			return fmt.Errorf("insert move %s/%d: %w", r.Game, r.Step, err)
		}
	}
	return tx.Commit()
}

// WinCounts tallies wins per policy name for a matchup. Games without a
// winner are not counted.
func (s *SQLiteStore) WinCounts(matchup string) (map[string]int, error) {
	var rows []struct {
		Policies string `db:"policies"`
		Winner   int    `db:"winner"`
	}
	err := s.conn.Select(&rows, "SELECT policies, winner FROM games WHERE matchup = ? AND winner >= 0", matchup)
	if err != nil {
		return nil, fmt.Errorf("select wins: %w", err)
	}
	wins := make(map[string]int)
	for _, r := range rows {
		names := strings.Split(r.Policies, "|")
		if r.Winner < len(names) {
			wins[names[r.Winner]]++
		}
	}
	return wins, nil
}

// GameCount returns the number of stored games.
func (s *SQLiteStore) GameCount() (int, error) {
	var n int
	if err := s.conn.Get(&n, "SELECT COUNT(*) FROM games"); err != nil {
		return 0, fmt.Errorf("count games: %w", err)
	}
	return n, nil
}
