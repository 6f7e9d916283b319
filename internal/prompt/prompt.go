// Package prompt implements the operator confirmation collaborator: a
// blocking yes/no question per candidate plugin and the single continue
// gate in the Bitwig two-phase flow. Answers outside the closed vocabulary
// are re-prompted, never defaulted.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"uidmigrate/internal/migrate"
	"uidmigrate/internal/uid"
)

// wrapWidth matches the 80-column wrapping of the operator guidance text.
const wrapWidth = 80

// ErrInputClosed is returned when stdin ends before the operator answered.
var ErrInputClosed = errors.New("input closed before an answer was given")

// StdinIsTerminal reports whether stdin can carry an interactive prompt.
func StdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Interactive returns a decision function that announces each candidate on
// out and reads yes/no answers from in, re-asking until one of the two
// accepted words is given.
func Interactive(in io.Reader, out io.Writer) migrate.DecisionFunc {
	reader := bufio.NewReader(in)
	return func(label string, legacy uid.ClassID) (bool, error) {
		fmt.Fprintf(out, "Found '%s' with class ID '%s'\n", label, legacy.Hex())
		for {
			fmt.Fprint(out, "Should this plugin be migrated? [yes/no] ")
			answer, err := readAnswer(reader)
			if err != nil {
				return false, err
			}
			switch answer {
			case "yes":
				return true, nil
			case "no":
				return false, nil
			default:
				fmt.Fprintln(out, "Please answer only 'yes' or 'no'")
			}
		}
	}
}

// Scripted returns a decision function that replays the given answers in
// order, for driving migrations in tests and automation.
func Scripted(answers ...bool) migrate.DecisionFunc {
	i := 0
	return func(string, uid.ClassID) (bool, error) {
		if i >= len(answers) {
			return false, fmt.Errorf("scripted decisions exhausted after %d answers", len(answers))
		}
		answer := answers[i]
		i++
		return answer, nil
	}
}

// ContinueGate blocks until the operator types exactly "continue". It is
// the only non-yes/no gate: the Bitwig flow uses it to wait until the
// intermediate project has been verified before preset files are touched.
func ContinueGate(in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)
	for {
		fmt.Fprint(out, "Continue? [continue] ")
		answer, err := readAnswer(reader)
		if err != nil {
			return err
		}
		if answer == "continue" {
			return nil
		}
	}
}

// Wrap reflows a guidance paragraph to the prompt width.
func Wrap(s string) string {
	return text.WrapSoft(s, wrapWidth)
}

func readAnswer(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && strings.TrimSpace(line) != "" {
			// Final unterminated answer still counts.
			return strings.ToLower(strings.TrimSpace(line)), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrInputClosed
		}
		return "", fmt.Errorf("read answer: %w", err)
	}
	return strings.ToLower(strings.TrimSpace(line)), nil
}
