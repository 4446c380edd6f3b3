package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/omarshaarawi/sleeperbot/internal/models"
)

const timestampLayout = "20060102_150405"

// Snapshot is everything a run fetched and produced.
type Snapshot struct {
	LeagueInfo   *models.LeagueInfo   `json:"league_info"`
	Matchups     []models.Matchup     `json:"matchups"`
	Transactions []models.Transaction `json:"transactions"`
	Standings    []models.StandingRow `json:"standings"`
	Alerts       []models.Alert       `json:"alerts"`
	Timestamp    string               `json:"timestamp"`
}

// Repository writes snapshots as indented JSON files. Files are never read
// back.
type Repository struct {
	dir string
	now func() time.Time
	mu  sync.Mutex
}

func NewRepository(dir string, now func() time.Time) *Repository {
	if now == nil {
		now = time.Now
	}
	return &Repository{dir: dir, now: now}
}

// Save writes s to league_data_<timestamp>.json and returns the file path.
func (r *Repository) Save(s Snapshot) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating snapshot dir: %w", err)
	}

	s.Timestamp = r.now().Format(timestampLayout)
	path := filepath.Join(r.dir, fmt.Sprintf("league_data_%s.json", s.Timestamp))

	data, err := json.MarshalIndent(s, "", "    ")
	if err != nil {
		return "", fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing snapshot: %w", err)
	}
	return path, nil
}
