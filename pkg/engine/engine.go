// Package engine evaluates generator configuration scripts. A script is
// zygomys Lisp run in a fresh sandbox; the mapgen builtin collects keyword
// arguments into a params.RawConfiguration:
//
//	(mapgen :generator "mandelbulb2" :iterations 12 :power 8
//	        :center (vec3 0 -600 0) :invert true)
package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/chazu/mathgen/pkg/params"
	zygo "github.com/glycerine/zygomys/zygo"
)

// EvalTimeout is the default limit for a single evaluation.
const EvalTimeout = 5 * time.Second

var (
	// ErrTimeout is returned when a script runs past the engine's timeout.
	ErrTimeout = errors.New("engine: evaluation timed out")
	// ErrSuperseded is returned to a caller whose evaluation finished after
	// a newer Evaluate call on the same Engine had started.
	ErrSuperseded = errors.New("engine: evaluation superseded by a newer request")
)

// EvalError is a non-fatal error in the script itself, such as a parse
// error or a bad builtin argument.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Engine runs configuration scripts. It is safe for concurrent use; each
// call to Evaluate gets its own sandbox.
type Engine struct {
	generation atomic.Uint64
	timeout    time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout overrides EvalTimeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// NewEngine creates a new Engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{timeout: EvalTimeout}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate runs source and returns the configuration it built.
//
// Return semantics:
//   - On success: returns configuration + nil errors + nil error
//   - On parse/eval failure: returns nil configuration + eval errors + nil error
//   - On fatal failure (timeout, panic, superseded): returns nil + nil + error
func (e *Engine) Evaluate(source string) (params.RawConfiguration, []EvalError, error) {
	return e.EvaluateContext(context.Background(), source)
}

// outcome is what one sandbox run hands back to its caller.
type outcome struct {
	raw    params.RawConfiguration
	errors []EvalError
	err    error
}

// EvaluateContext is Evaluate bounded by ctx as well as the engine timeout.
// A sandbox cannot be interrupted, so on timeout or cancellation its
// goroutine runs to completion in the background and the result is dropped.
func (e *Engine) EvaluateContext(ctx context.Context, source string) (params.RawConfiguration, []EvalError, error) {
	gen := e.generation.Add(1)

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("engine: panic during evaluation: %v", r)}
			}
		}()
		raw, evalErrs, err := e.evaluate(source)
		done <- outcome{raw: raw, errors: evalErrs, err: err}
	}()

	return e.await(ctx, gen, done)
}

// await returns the outcome for generation gen, or the reason it will
// never be delivered.
func (e *Engine) await(ctx context.Context, gen uint64, done <-chan outcome) (params.RawConfiguration, []EvalError, error) {
	select {
	case o := <-done:
		if e.generation.Load() != gen {
			return nil, nil, ErrSuperseded
		}
		return o.raw, o.errors, o.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, nil, fmt.Errorf("%w after %s", ErrTimeout, e.timeout)
		}
		return nil, nil, ctx.Err()
	}
}

// EvaluateFile reads and evaluates a script file.
func (e *Engine) EvaluateFile(ctx context.Context, path string) (params.RawConfiguration, []EvalError, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("engine: read %s: %w", path, err)
	}
	return e.EvaluateContext(ctx, string(src))
}

// evaluate performs the zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) (params.RawConfiguration, []EvalError, error) {
	// Empty source is a valid script that configures nothing.
	if strings.TrimSpace(source) == "" {
		return params.RawConfiguration{}, nil, nil
	}

	// Sandbox mode keeps scripts away from the filesystem and syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	cfg := newCollector()
	registerBuiltins(env, cfg)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygomysError(err), nil
	}
	return cfg.snapshot(), nil, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into EvalError values,
// extracting the line number when the message carries one.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{
				Line:    line,
				Message: strings.TrimSpace(m[2]),
			}}
		}
	}

	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
