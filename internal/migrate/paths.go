package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MigratedSuffix is appended to the file stem of every migration output.
// A source path already carrying it is refused.
const MigratedSuffix = "-migrated"

// OutputPath derives the migration output path: the source path with the
// migrated suffix inserted between stem and extension, in the same
// directory. The original extension's case is preserved.
func OutputPath(sourcePath string) string {
	ext := filepath.Ext(sourcePath)
	stem := strings.TrimSuffix(sourcePath, ext)
	return stem + MigratedSuffix + ext
}

// CheckSource validates the migration preconditions for sourcePath and
// returns the derived output path. The extension must match wantExt
// case-insensitively, the stem must not already carry the migrated suffix,
// and nothing may exist at the output path. Any violation aborts before a
// single byte of the source is read.
func CheckSource(sourcePath, wantExt string) (string, error) {
	ext := filepath.Ext(sourcePath)
	if !strings.EqualFold(ext, wantExt) {
		return "", fmt.Errorf("%w: only '*%s' files are accepted, got %q", ErrWrongExtension, wantExt, sourcePath)
	}

	stem := strings.TrimSuffix(sourcePath, ext)
	if strings.HasSuffix(stem, MigratedSuffix) {
		return "", fmt.Errorf("%w: %s", ErrAlreadyMigrated, sourcePath)
	}

	outputPath := OutputPath(sourcePath)
	if _, err := os.Lstat(outputPath); err == nil {
		return "", fmt.Errorf("%w: %s (back it up and move it elsewhere to redo the migration)", ErrOutputExists, outputPath)
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("inspect output path: %w", err)
	}

	return outputPath, nil
}
