package presets

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"uidmigrate/internal/uid"
)

// Extension is the preset file extension, matched case-insensitively.
const Extension = ".vstpreset"

// headerSize is the fixed preset header length; the class ID field starts
// immediately after it. The layout follows the Steinberg preset format and
// must be treated as bit-exact.
const headerSize = 8

// DefaultDir returns the directory Bitwig extracts preset state files to.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".BitwigStudio", "plugin-states"), nil
}

// Stats summarizes one replication pass.
type Stats struct {
	Scanned   int
	Rewritten int
}

func (m Mapping) validate() error {
	for legacy, current := range m.Replacements {
		if _, err := uid.Parse(legacy); err != nil {
			return fmt.Errorf("legacy identifier: %w", err)
		}
		if _, err := uid.Parse(current); err != nil {
			return fmt.Errorf("current identifier: %w", err)
		}
	}
	return nil
}

// Replicate walks root recursively and applies the mapping to every preset
// file whose class ID field matches a legacy key, overwriting exactly the
// 32 identifier bytes in place. Files without a matching field, and files
// too short to hold one, are left untouched. Each file is opened and closed
// independently, so an interrupted pass can simply be re-run; a second pass
// finds no legacy field left and changes nothing.
func Replicate(root string, m Mapping, logger *slog.Logger) (Stats, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var stats Stats
	if _, err := os.Stat(root); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("preset directory absent, nothing to replicate", "dir", root)
			return stats, nil
		}
		return stats, fmt.Errorf("inspect preset directory: %w", err)
	}

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(path), Extension) {
			return nil
		}

		stats.Scanned++
		rewritten, err := replicateFile(path, m.Replacements)
		if err != nil {
			return fmt.Errorf("rewrite preset %s: %w", path, err)
		}
		if rewritten {
			stats.Rewritten++
			logger.Debug("preset rewritten", "path", path)
		}
		return nil
	})
	if err != nil {
		return stats, fmt.Errorf("walk preset directory: %w", err)
	}

	logger.Info("preset replication finished",
		"dir", root,
		"scanned", stats.Scanned,
		"rewritten", stats.Rewritten,
		"run_id", m.RunID)
	return stats, nil
}

func replicateFile(path string, replacements map[string]string) (bool, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return false, err
	}
	defer f.Close()

	field := make([]byte, uid.HexLen)
	if _, err := f.ReadAt(field, headerSize); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			// Too short to carry an identifier field, so it cannot match.
			return false, nil
		}
		return false, err
	}

	current, ok := replacements[string(field)]
	if !ok {
		return false, nil
	}
	if _, err := f.WriteAt([]byte(current), headerSize); err != nil {
		return false, err
	}
	return true, f.Close()
}
