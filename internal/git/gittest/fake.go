// Package gittest provides a scripted git.Runner for tests.
package gittest

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/inovacc/diarypush/internal/git"
)

// Call is one recorded invocation
type Call struct {
	Dir  string
	Args []string
}

// String renders the call the way it would be typed, without the binary name
func (c Call) String() string {
	return strings.Join(c.Args, " ")
}

// Response is the scripted result for a command line
type Response struct {
	Output string
	Err    error
}

// FakeRunner records every call and answers from Responses, keyed by the
// space-joined argument list. Unscripted commands succeed with no output.
type FakeRunner struct {
	mu        sync.Mutex
	Calls     []Call
	Responses map[string]Response

	// Hook, when set, runs before the scripted lookup; returning handled=true
	// short-circuits it.
	Hook func(dir string, args []string) (output string, err error, handled bool)
}

// NewFakeRunner creates an empty FakeRunner
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{Responses: make(map[string]Response)}
}

// On scripts a successful response for the command line
func (f *FakeRunner) On(cmdline, output string) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Responses[cmdline] = Response{Output: output}

	return f
}

// Fail scripts a non-zero exit for the command line with the given stderr
func (f *FakeRunner) Fail(cmdline, stderr string) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Responses[cmdline] = Response{
		Err: &git.GitError{
			Args:     strings.Fields(cmdline),
			ExitCode: 1,
			Stderr:   stderr,
		},
	}

	return f
}

// Run implements git.Runner
func (f *FakeRunner) Run(_ context.Context, dir string, args ...string) (string, error) {
	f.mu.Lock()
	f.Calls = append(f.Calls, Call{Dir: dir, Args: append([]string(nil), args...)})
	hook := f.Hook
	resp, ok := f.Responses[strings.Join(args, " ")]
	f.mu.Unlock()

	if hook != nil {
		if out, err, handled := hook(dir, args); handled {
			return out, err
		}
	}

	if ok {
		return resp.Output, resp.Err
	}

	return "", nil
}

// Commands returns every recorded call as a command line
func (f *FakeRunner) Commands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]string, 0, len(f.Calls))
	for _, c := range f.Calls {
		out = append(out, c.String())
	}

	return out
}

// Called reports whether cmdline was invoked
func (f *FakeRunner) Called(cmdline string) bool {
	for _, c := range f.Commands() {
		if c == cmdline {
			return true
		}
	}

	return false
}

// CalledPrefix reports whether any invocation starts with prefix
func (f *FakeRunner) CalledPrefix(prefix string) bool {
	for _, c := range f.Commands() {
		if strings.HasPrefix(c, prefix) {
			return true
		}
	}

	return false
}

// ErrExit is a generic failure for hooks
var ErrExit = errors.New("exit status 1")
