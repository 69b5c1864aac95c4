// Package apperr defines the error kinds the viewer distinguishes and the
// single boundary where they are reported.
package apperr

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/anaglyph/internal/logger"
)

// Kind classifies an error by how the application reacts to it.
type Kind int

const (
	// KindUnknown is any error not created by this package.
	KindUnknown Kind = iota
	// KindConfiguration is an invalid stereo or surface parameter. The
	// update is rejected and the previous value kept.
	KindConfiguration
	// KindBackendInit is a missing graphics context or a shader that
	// fails to compile or link. Fatal at startup.
	KindBackendInit
	// KindFrameComputation is a frame whose matrices came out non-finite.
	// The frame is skipped.
	KindFrameComputation
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindBackendInit:
		return "backend-init"
	case KindFrameComputation:
		return "frame-computation"
	default:
		return "unknown"
	}
}

// Error carries a Kind, the operation that failed and the cause.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s error", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Configuration wraps err as a configuration error.
func Configuration(op string, err error) error {
	return &Error{Kind: KindConfiguration, Op: op, Err: err}
}

// Configurationf builds a configuration error from a format string.
func Configurationf(op, format string, args ...any) error {
	return Configuration(op, fmt.Errorf(format, args...))
}

// BackendInit wraps err as a backend initialization error.
func BackendInit(op string, err error) error {
	return &Error{Kind: KindBackendInit, Op: op, Err: err}
}

// FrameComputation wraps err as a frame computation error.
func FrameComputation(op string, err error) error {
	return &Error{Kind: KindFrameComputation, Op: op, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// repeat suppresses identical frame errors so a bad parameter set does not
// flood the log at the frame rate.
var repeat struct {
	mu      sync.Mutex
	last    string
	skipped int
}

// Report logs err once at the level its kind calls for. It returns the kind
// so callers can decide whether to continue.
func Report(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	kind := KindOf(err)
	log := logger.Named("apperr").With(zap.String("kind", kind.String()))

	switch kind {
	case KindConfiguration:
		log.Warn("parameter update rejected", zap.Error(err))
	case KindBackendInit:
		log.Error("graphics backend unavailable", zap.Error(err))
	case KindFrameComputation:
		reportFrame(log, err)
	default:
		log.Error("unexpected error", zap.Error(err))
	}
	return kind
}

func reportFrame(log *zap.Logger, err error) {
	repeat.mu.Lock()
	defer repeat.mu.Unlock()

	msg := err.Error()
	if msg == repeat.last {
		repeat.skipped++
		return
	}
	if repeat.skipped > 0 {
		log.Error("previous frame error repeated", zap.Int("times", repeat.skipped))
	}
	repeat.last = msg
	repeat.skipped = 0
	log.Error("frame skipped", zap.Error(err))
}

// ResetFrameReports clears the repeat suppression, e.g. after a frame
// rendered successfully.
func ResetFrameReports() {
	repeat.mu.Lock()
	repeat.last = ""
	repeat.skipped = 0
	repeat.mu.Unlock()
}
