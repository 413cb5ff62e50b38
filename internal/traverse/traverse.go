// Package traverse implements the client-side interactive selection
// engine (spec.md §4.5): a loop that repeatedly invokes a Selector —
// local or RPC-backed, the engine does not care which — until the user
// lands on a pick that satisfies their role, or a fatal error aborts
// the session.
package traverse

import (
	"fmt"
	"io"
	"strings"

	"github.com/fltrhq/fltr/internal/cli/prompt"
	"github.com/fltrhq/fltr/internal/protocol/fltr"
	"github.com/fltrhq/fltr/internal/selector"
)

// Selector is satisfied by both the in-process local picker and an
// RPC-client stub calling pick_file; the engine is identical either way.
type Selector = selector.Selector

// Engine runs the interactive traversal loop against one Selector.
type Engine struct {
	Pick Selector
	Host string // display-only label ("local" or the remote host)
	Out  io.Writer
	In   func(label string) (string, error) // overridable for tests
}

// NewEngine builds an Engine. host is shown in prompts only; out
// defaults to nil meaning "discard" is never valid — callers must
// supply a writer (normally os.Stdout).
func NewEngine(pick Selector, host string, out io.Writer) *Engine {
	return &Engine{Pick: pick, Host: host, Out: out, In: prompt.Input}
}

// rootPath is the guaranteed-valid starting point for path rollback,
// per spec.md §4.5's "previous_path initialized to /" rule.
const rootPath = "/"

// Run drives the loop of spec.md §4.5 to completion: it returns the
// absolute path of a valid pick, or an error if the session is aborted
// (selector transport failure, non-filesystem selection failure, or an
// aborted or failed input read). Input segments are appended as typed;
// Run does not validate them or reject an over-long path.
func (e *Engine) Run(start string, role fltr.PickRole) (string, error) {
	currentPath := start
	previousPath := rootPath

	for {
		result, err := e.Pick.Select(fltr.PickedFile{Name: currentPath, Role: role})
		if err != nil {
			return "", fmt.Errorf("selector transport failure: %w", err)
		}

		if result.Err.Num == 0 {
			switch result.File.Type {
			case fltr.TypeREG, fltr.TypeNEX:
				return result.File.Name, nil
			}
		} else {
			if result.File.Type == fltr.TypeDFL {
				return "", fmt.Errorf("non-filesystem selection failure: %s", result.Err.Error())
			}
			fmt.Fprintf(e.Out, "!--%s\n", result.Err.Error())
			currentPath = previousPath
			continue
		}

		fmt.Fprintf(e.Out, "\n%s [%s]:\n", result.File.Name, e.Host)
		e.Out.Write(result.File.Content)

		currentPath = result.File.Name
		previousPath = currentPath

		line, err := e.In(fmt.Sprintf("%s> ", result.File.Name))
		if err != nil {
			if prompt.IsAborted(err) {
				return "", fmt.Errorf("traversal aborted")
			}
			return "", fmt.Errorf("read input: %w", err)
		}
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			currentPath = joinSegment("", strings.TrimPrefix(line, "/"))
		} else {
			currentPath = joinSegment(currentPath, line)
		}
	}
}

// joinSegment appends segment to base as "<base>/<segment>", mirroring
// spec.md §4.5 step 8's formatted append. base may be empty (an
// absolute-reset), in which case the result is "/<segment>".
func joinSegment(base, segment string) string {
	if base == "" {
		return "/" + segment
	}
	return strings.TrimRight(base, "/") + "/" + segment
}

// Confirm wraps Run with the confirmation prompt of spec.md §4.5: on
// "no" the traversal restarts from the original starting path; the
// default answer is yes.
func Confirm(e *Engine, start string, role fltr.PickRole) (string, error) {
	for {
		picked, err := e.Run(start, role)
		if err != nil {
			return "", err
		}

		ok, err := prompt.Confirm(fmt.Sprintf("use %q", picked), true)
		if err != nil {
			return "", fmt.Errorf("confirmation aborted: %w", err)
		}
		if ok {
			return picked, nil
		}
	}
}
