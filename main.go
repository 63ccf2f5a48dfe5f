package main

import (
	"context"
	"flag"
	"os"

	"github.com/jcorbin/filo/internal/logio"
)

func main() {
	log := logio.New(os.Stderr)
	cmd := command{
		log: log,
		in:  os.Stdin,
		out: newWriteFlusher(os.Stdout),
	}
	if err := cmd.parse(flag.CommandLine, os.Args[1:]); err != nil {
		log.Errorf("%v", err)
		os.Exit(log.ExitCode())
	}
	log.ErrorIf(cmd.run(context.Background(), flag.Args()))
	os.Exit(log.ExitCode())
}
