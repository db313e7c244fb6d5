package main

import (
	"log"

	"github.com/alexflint/go-arg"

	"github.com/femnad/modgate/cmd/base"
	"github.com/femnad/modgate/cmd/verify"
)

type args struct {
	Config   string `arg:"-c,--config" help:"Modgate config file path"`
	File     string `arg:"required,-f,--file" help:"Verification cases file path"`
	LogLevel int    `arg:"-l,--loglevel" default:"4"`
}

func main() {
	var parsed args
	arg.MustParse(&parsed)

	config, err := base.Setup(base.Input{Config: parsed.Config, LogLevel: parsed.LogLevel})
	if err != nil {
		log.Fatalf("error reading modgate config: %v", err)
	}

	err = verify.Verify(parsed.File, config)
	if err != nil {
		log.Fatalf("Error during verification: %v\n", err)
	}
}
