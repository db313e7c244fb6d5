package caller

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/femnad/modgate/callstack"
	"github.com/femnad/modgate/internal"
)

type Input struct {
	Frames   []string
	LogLevel int
	Print    bool
	Stack    string
}

func readStack(file string) (callstack.Stack, error) {
	f, err := os.Open(internal.ExpandUser(file))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var stack callstack.Stack
	if err = yaml.NewDecoder(f).Decode(&stack); err != nil {
		return nil, fmt.Errorf("error decoding stack file %s: %w", file, err)
	}
	return stack, nil
}

func buildContext(input Input) (context.Context, error) {
	ctx := context.Background()

	if input.Stack != "" {
		stack, err := readStack(input.Stack)
		if err != nil {
			return nil, err
		}
		for _, frame := range stack {
			ctx = callstack.WithFrame(ctx, frame)
		}
	}

	for _, s := range input.Frames {
		frame, err := callstack.ParseFrame(s)
		if err != nil {
			return nil, err
		}
		ctx = callstack.WithFrame(ctx, frame)
	}

	return ctx, nil
}

// Locate prints the caller of the innermost frame given on the command line, stack file frames
// preceding positional ones.
func Locate(input Input, out io.Writer) error {
	internal.InitLogging(input.LogLevel)

	ctx, err := buildContext(input)
	if err != nil {
		return err
	}

	if input.Print {
		callstack.Trace(callstack.FromContext(ctx), true)
	}

	_, err = fmt.Fprintln(out, callstack.Caller(ctx, input.Print))
	return err
}
