package ai

import (
	"context"
	"fmt"
)

// Generator produces a single-shot text completion for a prompt. There is no
// conversation state: every pipeline stage sends one prompt and parses one
// response.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Embedder turns a text into a vector for semantic similarity scoring.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// CallErrKind distinguishes why a provider call produced no usable value.
type CallErrKind string

const (
	// KindUnreachable covers transport and provider-side failures.
	KindUnreachable CallErrKind = "unreachable"
	// KindUnparseable covers responses that arrived but could not be decoded.
	KindUnparseable CallErrKind = "unparseable"
)

// CallErr is the failure half of a provider call result. Both kinds degrade
// to the same fallback behavior in the pipeline, but the kind is preserved
// for diagnostics.
type CallErr struct {
	Kind CallErrKind
	Op   string
	Err  error
}

func (e *CallErr) Error() string {
	return fmt.Sprintf("%s: provider %s: %v", e.Op, e.Kind, e.Err)
}

func (e *CallErr) Unwrap() error { return e.Err }

// Unreachable wraps a transport or provider error.
func Unreachable(op string, err error) *CallErr {
	return &CallErr{Kind: KindUnreachable, Op: op, Err: err}
}

// Unparseable wraps a response decoding error.
func Unparseable(op string, err error) *CallErr {
	return &CallErr{Kind: KindUnparseable, Op: op, Err: err}
}
