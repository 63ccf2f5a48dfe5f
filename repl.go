package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/jcorbin/filo/internal/rule"
)

const replPrompt = "filo> "

// prompter reads interactive lines; implemented by *liner.State.
type prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

func (cmd *command) repl(ctx context.Context, table *rule.Table) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetWordCompleter(completeOperator(table.Names()))

	if cmd.History != "" {
		if f, err := os.Open(cmd.History); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(cmd.History); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			} else {
				cmd.log.Printf("WARN", "couldn't save history: %v", err)
			}
		}()
	}

	return cmd.replLoop(ctx, ln, table)
}

// replLoop reduces each line read from p as its own program, printing its
// output or its error. Errors do not end the loop, only end of input, an
// aborted prompt, or ":quit" do.
func (cmd *command) replLoop(ctx context.Context, p prompter, table *rule.Table) error {
	for n := 1; ; n++ {
		line, err := p.Prompt(replPrompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(cmd.out)
			return cmd.out.Flush()
		} else if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case ":quit":
			return cmd.out.Flush()
		case ":dump":
			if err := table.Dump(cmd.out, false); err != nil {
				return err
			}
			if err := cmd.out.Flush(); err != nil {
				return err
			}
			continue
		}
		p.AppendHistory(line)

		if err := cmd.replLine(ctx, fmt.Sprintf("line%v", n), line, table); err != nil {
			cmd.log.Printf("ERROR", "%v", err)
		}
		if err := cmd.out.Flush(); err != nil {
			return err
		}
	}
}

func (cmd *command) replLine(ctx context.Context, name, line string, table *rule.Table) error {
	if cmd.Timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cmd.Timeout)
		defer cancel()
	}
	out, err := cmd.reduce(ctx, name, line, table)
	if err != nil {
		return err
	}
	return writeOutput(cmd.out, out)
}

// completeOperator completes the word before the cursor, at rune offset pos,
// to operator names.
func completeOperator(names []string) liner.WordCompleter {
	return func(line string, pos int) (head string, completions []string, tail string) {
		runes := []rune(line)
		head, tail = string(runes[:pos]), string(runes[pos:])
		start := strings.LastIndexAny(head, " \t[]{}") + 1
		word := head[start:]
		head = head[:start]
		if word == "" {
			return head, nil, tail
		}
		for _, name := range names {
			if strings.HasPrefix(name, word) {
				completions = append(completions, name)
			}
		}
		return head, completions, tail
	}
}
