package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Store persists finished reports as JSON files in the output directory.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Save writes the report under the given filename and returns the full
// path.
func (s *Store) Save(rep Report, filename string) (string, error) {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	path := filepath.Join(s.dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// SingleFilename derives the output filename for a single-document
// report: "<base>_analysis_<unix>.json".
func SingleFilename(documentName string, now time.Time) string {
	base := strings.TrimSuffix(documentName, filepath.Ext(documentName))
	return fmt.Sprintf("%s_analysis_%d.json", base, now.Unix())
}

// CollectionFilename derives the output filename for a collection
// report.
func CollectionFilename(taskID string, now time.Time) string {
	return fmt.Sprintf("collection_%s_analysis_%d.json", taskID, now.Unix())
}
