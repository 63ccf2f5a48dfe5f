package main

import (
	"bufio"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/jcorbin/filo/internal/item"
)

type writeFlusher interface {
	io.Writer
	Flush() error
}

func newWriteFlusher(w io.Writer) writeFlusher {
	if w == ioutil.Discard {
		return nopFlusher{w}
	}

	if wf, is := w.(writeFlusher); is {
		return wf
	}

	// in memory buffers, like bytes.Buffer and strings.Builder, need no flushing
	type buffer interface {
		io.Writer
		Len() int
		Grow(n int)
		Reset()
	}
	if _, isBuffer := w.(buffer); isBuffer {
		return nopFlusher{w}
	}

	return bufio.NewWriter(w)
}

type nopFlusher struct{ io.Writer }

func (nf nopFlusher) Flush() error { return nil }

// writeOutput writes one reduction's output as a line of canonical text.
func writeOutput(w io.Writer, out []item.Program) error {
	_, err := fmt.Fprintln(w, item.Format(out))
	return err
}

func withLogPrefix(prefix string, logfn func(mess string, args ...interface{})) func(mess string, args ...interface{}) {
	return func(mess string, args ...interface{}) {
		logfn("%v "+mess, append([]interface{}{prefix}, args...)...)
	}
}
