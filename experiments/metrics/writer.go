package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type GameRecord struct {
	Matchup string
	Seed    uint64
	GameMetric
}

type MoveRecord struct {
	Game string // GameMetric.ID
	MoveMetric
}

// Sink receives finished experiment records.
type Sink interface {
	WriteGameRecords(records []GameRecord) error
	WriteMoveRecords(records []MoveRecord) error
}

type Writer struct {
	baseDir string
}

// NewWriter creates a timestamped folder under dir for the CSV files.
func NewWriter(dir string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(dir, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		points := make([]string, len(record.Points))
		for i, p := range record.Points {
			points[i] = strconv.Itoa(p)
		}
		rows = append(rows, []string{
			record.ID,
			record.Matchup,
			strconv.FormatUint(record.Seed, 10),
			strings.Join(record.Policies, "|"),
			strconv.Itoa(record.StartingPlayer),
			strconv.Itoa(record.Winner),
			strings.Join(points, "|"),
			strconv.Itoa(record.Rounds),
			strconv.Itoa(record.TotalMoves),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	header := []string{"id", "matchup", "seed", "policies", "starting_player", "winner", "points", "rounds", "total_moves", "start_time", "end_time", "duration"}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.Game,
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Round),
			strconv.Itoa(record.Player),
			record.Kind,
			record.Duration.String(),
			strconv.Itoa(record.Episodes),
			strconv.Itoa(record.Candidates),
			strconv.Itoa(record.FullPlayouts),
		})
	}
	header := []string{"game", "step", "round", "player", "kind", "duration", "episodes", "candidates", "full_playouts"}
	return w.write("move_records.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}
