package presets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"uidmigrate/internal/migrate"
)

// Mapping is the immutable legacy→current replacement set confirmed during
// a project migration, keyed and valued as 32-character uppercase hex.
type Mapping struct {
	RunID        string            `toml:"run_id"`
	Project      string            `toml:"project"`
	CreatedAt    time.Time         `toml:"created_at"`
	Replacements map[string]string `toml:"replacements"`
}

// NewMapping captures the accepted replacements of a completed migration.
func NewMapping(result *migrate.Result) Mapping {
	replacements := make(map[string]string, len(result.Accepted))
	for legacy, current := range result.Accepted {
		replacements[legacy.Hex()] = current.Hex()
	}
	return Mapping{
		RunID:        result.RunID,
		Project:      result.OutputPath,
		CreatedAt:    result.FinishedAt,
		Replacements: replacements,
	}
}

// MappingPath derives the mapping file path for a migrated project:
// the output path with its extension replaced by ".replacements.toml".
func MappingPath(outputPath string) string {
	return strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ".replacements.toml"
}

// Save writes the mapping as TOML.
func (m Mapping) Save(path string) error {
	data, err := toml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode replacement mapping: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write replacement mapping: %w", err)
	}
	return nil
}

// LoadMapping reads and validates a mapping file written by Save. Every
// key and value must be a well-formed class identifier.
func LoadMapping(path string) (Mapping, error) {
	var m Mapping
	data, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("read replacement mapping: %w", err)
	}
	if err := toml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("parse replacement mapping: %w", err)
	}
	if err := m.validate(); err != nil {
		return m, fmt.Errorf("replacement mapping %s: %w", path, err)
	}
	return m, nil
}
