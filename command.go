package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"io/ioutil"

	"golang.org/x/sync/errgroup"

	"github.com/jcorbin/filo/internal/item"
	"github.com/jcorbin/filo/internal/logio"
	"github.com/jcorbin/filo/internal/reduce"
	"github.com/jcorbin/filo/internal/rule"
)

type command struct {
	config
	configPath  string
	dump        bool
	interactive bool

	log *logio.Logger
	in  io.Reader
	out writeFlusher
}

func (cmd *command) bindFlags(fs *flag.FlagSet) {
	cmd.config.bindFlags(fs)
	fs.StringVar(&cmd.configPath, "config", "", "read default settings from a YAML file; flags override it")
	fs.BoolVar(&cmd.dump, "dump", false, "print the compiled operator table before running anything")
	fs.BoolVar(&cmd.interactive, "i", false, "read programs interactively, one per line")
}

// parse parses flags from args, then fills in any settings not given by
// them from the config file, if any.
func (cmd *command) parse(fs *flag.FlagSet, args []string) error {
	cmd.bindFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.configPath != "" {
		file, err := loadConfig(cmd.configPath)
		if err != nil {
			return err
		}
		cmd.merge(file, explicitFlags(fs))
	}
	return nil
}

// run loads the operator table, and then reduces each of programs, printing
// one line of output for each. With no programs, a single program is read
// from the command's input, unless running interactively.
func (cmd *command) run(ctx context.Context, programs []string) error {
	table, err := cmd.loadTable()
	if err != nil {
		return err
	}

	if cmd.dump {
		if err := table.Dump(cmd.out, true); err != nil {
			return err
		}
		if err := cmd.out.Flush(); err != nil {
			return err
		}
		if len(programs) == 0 && !cmd.interactive {
			return nil
		}
	}

	if cmd.interactive {
		return cmd.repl(ctx, table)
	}

	if len(programs) == 0 {
		text, err := ioutil.ReadAll(cmd.in)
		if err != nil {
			return fmt.Errorf("couldn't read program: %w", err)
		}
		programs = []string{string(text)}
	}
	return cmd.runAll(ctx, table, programs)
}

func (cmd *command) loadTable() (*rule.Table, error) {
	var opts []rule.Option
	if cmd.Trace {
		opts = append(opts, rule.WithLogf(cmd.log.Leveledf("DEFS")))
	}
	return rule.LoadFiles(cmd.Defs, opts...)
}

// runAll reduces programs concurrently, all sharing table, and writes their
// outputs in order once every one has succeeded. The first error cancels
// any reductions still running.
func (cmd *command) runAll(ctx context.Context, table *rule.Table, programs []string) error {
	if cmd.Timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cmd.Timeout)
		defer cancel()
	}

	outs := make([][]item.Program, len(programs))
	eg, ctx := errgroup.WithContext(ctx)
	for i, text := range programs {
		i, text := i, text
		eg.Go(func() (err error) {
			outs[i], err = cmd.reduce(ctx, programName(i, len(programs)), text, table)
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	for _, out := range outs {
		if err := writeOutput(cmd.out, out); err != nil {
			return err
		}
	}
	return cmd.out.Flush()
}

func programName(i, n int) string {
	if n == 1 {
		return "program"
	}
	return fmt.Sprintf("program%v", i+1)
}

func (cmd *command) reduce(ctx context.Context, name, text string, table *rule.Table) ([]item.Program, error) {
	program, err := item.ParseProgram(name, text)
	if err != nil {
		return nil, err
	}

	var opts []reduce.Option
	if cmd.StepLimit > 0 {
		opts = append(opts, reduce.WithStepLimit(cmd.StepLimit))
	}
	if cmd.Trace {
		opts = append(opts, reduce.WithLogf(withLogPrefix(name, cmd.log.Leveledf("TRACE"))))
	}

	out, err := reduce.Execute(ctx, program, table, opts...)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", name, err)
	}
	return out, nil
}
