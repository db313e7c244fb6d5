// Package callstack locates the caller of a function from an explicitly passed frame chain.
package callstack

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/femnad/modgate/common"
	"github.com/femnad/modgate/internal"
)

// TopScope is reported when the chain is too shallow to have a caller.
const TopScope = "TOPSCOPE"

// Frame is a location in a manifest. Line 0 means the line is unknown.
type Frame struct {
	File string `yaml:"file"`
	Line int    `yaml:"line,omitempty"`
}

func (f Frame) String() string {
	if f.Line == 0 {
		return f.File
	}
	return fmt.Sprintf("%s:%d", f.File, f.Line)
}

// ParseFrame reads a frame in file:line form, lines starting at 1. A missing or
// non-numeric line leaves the whole input as the file.
func ParseFrame(s string) (Frame, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Frame{}, fmt.Errorf("empty frame")
	}

	fields := common.RightSplit(s, ":")
	if len(fields) != 2 {
		return Frame{File: s}, nil
	}

	line, err := strconv.Atoi(fields[1])
	if err != nil {
		return Frame{File: s}, nil
	}
	if line < 1 {
		return Frame{}, fmt.Errorf("invalid line %d in frame %s", line, s)
	}

	return Frame{File: fields[0], Line: line}, nil
}

// Stack is an ordered frame chain, innermost frame last.
type Stack []Frame

// Push returns a copy of s extended with f, leaving s untouched.
func (s Stack) Push(f Frame) Stack {
	pushed := make(Stack, len(s), len(s)+1)
	copy(pushed, s)
	return append(pushed, f)
}

func (s Stack) Strings() []string {
	out := make([]string, 0, len(s))
	for _, f := range s {
		out = append(out, f.String())
	}
	return out
}

// LocateCaller returns the frame two levels up from the innermost one.
func LocateCaller(s Stack) string {
	if len(s) > 2 {
		return s[len(s)-2].String()
	}
	return TopScope
}

// Trace renders the chain, logging each frame when print is set.
func Trace(s Stack, print bool) []string {
	frames := s.Strings()
	if print {
		for i, frame := range frames {
			internal.Log.Noticef("#%d %s", i, frame)
		}
	}
	return frames
}

type stackKey struct{}

// WithFrame returns a context carrying the chain of ctx extended by f.
func WithFrame(ctx context.Context, f Frame) context.Context {
	return context.WithValue(ctx, stackKey{}, FromContext(ctx).Push(f))
}

func FromContext(ctx context.Context) Stack {
	s, _ := ctx.Value(stackKey{}).(Stack)
	return s
}

// Caller locates the caller from the chain carried by ctx.
func Caller(ctx context.Context, print bool) string {
	caller := LocateCaller(FromContext(ctx))
	if print {
		internal.Log.Noticef("Called from %s", caller)
	}
	return caller
}
