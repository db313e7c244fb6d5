package main

import (
	"os"

	"github.com/alexflint/go-arg"

	"github.com/femnad/modgate/cmd/base"
	"github.com/femnad/modgate/cmd/caller"
	"github.com/femnad/modgate/cmd/printspec"
	"github.com/femnad/modgate/cmd/supported"
	"github.com/femnad/modgate/internal"
)

type supportedCmd struct {
	Module  string `arg:"positional,required" help:"Module name"`
	Facts   string `arg:"--facts" help:"Facts file to use instead of collecting host facts"`
	Options string `arg:"-o,--options" help:"Validation options file, overrides the module's configured options"`
}

type callerCmd struct {
	Frames []string `arg:"positional" help:"Frames in file:line form, innermost last"`
	Print  bool     `arg:"-p,--print" help:"Log the frame chain and the located caller"`
	Stack  string   `arg:"-s,--stack" help:"YAML file listing frames, innermost last"`
}

type printSpecCmd struct {
	Module  string `arg:"positional,required" help:"Module name"`
	Options string `arg:"-o,--options" help:"Validation options file"`
}

type args struct {
	Caller    *callerCmd    `arg:"subcommand:caller" help:"Locate the caller of the innermost frame"`
	PrintSpec *printSpecCmd `arg:"subcommand:printspec" help:"Print effective validation options"`
	Supported *supportedCmd `arg:"subcommand:supported" help:"Check if a module supports the host OS"`

	File     string `arg:"-f,--file" default:"~/.config/modgate/modgate.yml"`
	LogLevel int    `arg:"-l,--loglevel" default:"4"`
}

func (args) Version() string {
	return "modgate 0.1.0"
}

func main() {
	var parsed args
	p := arg.MustParse(&parsed)
	input := base.Input{Config: parsed.File, LogLevel: parsed.LogLevel}

	switch {
	case parsed.Supported != nil:
		ok, err := supported.Check(supported.Input{
			Input:   input,
			Facts:   parsed.Supported.Facts,
			Module:  parsed.Supported.Module,
			Options: parsed.Supported.Options,
		}, os.Stdout)
		if err != nil {
			internal.Log.Fatalf("Error checking OS support of %s: %v", parsed.Supported.Module, err)
		}
		if !ok {
			os.Exit(1)
		}
	case parsed.Caller != nil:
		err := caller.Locate(caller.Input{
			Frames:   parsed.Caller.Frames,
			LogLevel: parsed.LogLevel,
			Print:    parsed.Caller.Print,
			Stack:    parsed.Caller.Stack,
		}, os.Stdout)
		if err != nil {
			internal.Log.Fatalf("Error locating caller: %v", err)
		}
	case parsed.PrintSpec != nil:
		err := printspec.PrintSpec(printspec.Input{
			Input:   input,
			Module:  parsed.PrintSpec.Module,
			Options: parsed.PrintSpec.Options,
		}, os.Stdout)
		if err != nil {
			internal.Log.Fatalf("Error printing spec for %s: %v", parsed.PrintSpec.Module, err)
		}
	default:
		p.Fail("missing subcommand")
	}
}
