package migrate

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"uidmigrate/internal/uid"
)

var (
	// ErrWrongExtension indicates the source path does not carry the
	// extension the selected format requires.
	ErrWrongExtension = errors.New("unexpected file extension")
	// ErrAlreadyMigrated indicates the source path already carries the
	// migrated suffix marker.
	ErrAlreadyMigrated = errors.New("project file has already been migrated")
	// ErrOutputExists indicates the derived output path is already taken.
	ErrOutputExists = errors.New("migrated output file already exists")
)

// Candidate is one located, not-yet-decided legacy identifier occurrence.
type Candidate struct {
	// Label identifies the occurrence to the operator: a plugin name for
	// the text formats, a plugin bundle path for Bitwig projects.
	Label  string
	Legacy uid.ClassID
}

// Document is parsed project content that can enumerate candidates and
// apply confirmed replacements. Rewrite receives only accepted identifiers,
// keyed by their legacy value; everything else must come through untouched.
type Document interface {
	Candidates() []Candidate
	Rewrite(accepted map[uid.ClassID]uid.ClassID) ([]byte, error)
}

// Format binds a project file extension to its parsing strategy.
type Format struct {
	// Name is the host application name, used in logs and prompts.
	Name string
	// Extension is the required source extension including the leading
	// dot, compared case-insensitively.
	Extension string
	Parse     func(content []byte) (Document, error)
}

// DecisionFunc resolves one candidate to accept (migrate) or reject (leave
// as is). It blocks until the operator answers; any error aborts the run
// before anything is written.
type DecisionFunc func(label string, legacy uid.ClassID) (bool, error)

// Decision records the operator's answer for one distinct legacy identifier.
type Decision struct {
	Label    string
	Legacy   uid.ClassID
	Current  uid.ClassID
	Accepted bool
}

// Result summarizes a completed migration pass.
type Result struct {
	RunID       string
	SourcePath  string
	OutputPath  string
	Occurrences int
	Decisions   []Decision
	// Accepted maps each confirmed legacy identifier to its current form.
	// For Bitwig projects this mapping feeds the preset replication phase.
	Accepted   map[uid.ClassID]uid.ClassID
	StartedAt  time.Time
	FinishedAt time.Time
}

// AcceptedCount reports how many distinct identifiers were confirmed.
func (r *Result) AcceptedCount() int {
	return len(r.Accepted)
}

// Run migrates sourcePath with the given format strategy. The operator is
// consulted once per distinct legacy identifier; nothing is written unless
// every decision has been collected, and the output file is created
// exclusively so an existing or concurrently created file is never
// overwritten.
func Run(format Format, sourcePath string, decide DecisionFunc, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	outputPath, err := CheckSource(sourcePath, format.Extension)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("read project file: %w", err)
	}

	doc, err := format.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parse %s project: %w", format.Name, err)
	}

	result := &Result{
		RunID:      uuid.NewString(),
		SourcePath: sourcePath,
		OutputPath: outputPath,
		Accepted:   make(map[uid.ClassID]uid.ClassID),
		StartedAt:  time.Now().UTC(),
	}

	candidates := doc.Candidates()
	result.Occurrences = len(candidates)
	logger.Debug("scanned project",
		"format", format.Name,
		"source", sourcePath,
		"occurrences", len(candidates),
		"run_id", result.RunID)

	// The same identifier may occur on several lines or at several offsets;
	// the operator answers once per value and the answer is broadcast.
	decided := make(map[uid.ClassID]bool)
	for _, candidate := range candidates {
		if _, seen := decided[candidate.Legacy]; seen {
			continue
		}

		accepted, err := decide(candidate.Label, candidate.Legacy)
		if err != nil {
			return nil, fmt.Errorf("collect decision for %q: %w", candidate.Label, err)
		}
		decided[candidate.Legacy] = accepted

		decision := Decision{
			Label:    candidate.Label,
			Legacy:   candidate.Legacy,
			Current:  candidate.Legacy.ToCurrent(),
			Accepted: accepted,
		}
		result.Decisions = append(result.Decisions, decision)
		if accepted {
			result.Accepted[decision.Legacy] = decision.Current
		}
		logger.Debug("decision recorded",
			"label", candidate.Label,
			"legacy", candidate.Legacy.Hex(),
			"accepted", accepted)
	}

	rewritten, err := doc.Rewrite(result.Accepted)
	if err != nil {
		return nil, fmt.Errorf("rewrite %s project: %w", format.Name, err)
	}

	if err := writeExclusive(outputPath, rewritten); err != nil {
		return nil, err
	}

	result.FinishedAt = time.Now().UTC()
	logger.Info("migration written",
		"format", format.Name,
		"output", outputPath,
		"accepted", len(result.Accepted),
		"rejected", len(result.Decisions)-len(result.Accepted),
		"run_id", result.RunID)
	return result, nil
}

// writeExclusive creates path with O_EXCL and writes content in one pass.
// Exclusive creation is the sole concurrency guard in the system: if another
// migration produced the file first, this one fails instead of clobbering it.
func writeExclusive(path string, content []byte) error {
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", ErrOutputExists, path)
		}
		return fmt.Errorf("create output file: %w", err)
	}

	if _, err := out.Write(content); err != nil {
		_ = out.Close()
		_ = os.Remove(path)
		return fmt.Errorf("write output file: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("close output file: %w", err)
	}
	return nil
}
