package fileinput

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Location names a line in an Input file.
type Location struct {
	Name string
	Line int
}

// Line is one line of text read from an Input, without its line ending.
type Line struct {
	Location
	Text string
}

func (loc Location) String() string { return fmt.Sprintf("%v:%v", loc.Name, loc.Line) }
func (il Line) String() string      { return fmt.Sprintf("%v %q", il.Location, il.Text) }

// Blank returns true if the line holds only whitespace.
func (il Line) Blank() bool { return strings.TrimSpace(il.Text) == "" }

// Input implements sequential line reading through a Queue of one or more
// input streams. Each stream is closed, if it is an io.Closer, once read.
type Input struct {
	Queue []io.Reader

	cur  io.Reader
	sc   *bufio.Scanner
	scan Location
}

// Add queues a named string of text, as if read from a file with that name.
func (in *Input) Add(name, text string) {
	in.Queue = append(in.Queue, namedReader{strings.NewReader(text), name})
}

// ReadLine returns the next line, moving on to the next queued stream at the
// end of the current one. Returns io.EOF after the last line of the last stream.
func (in *Input) ReadLine() (Line, error) {
	for {
		if in.sc == nil && !in.nextIn() {
			return Line{}, io.EOF
		}
		if in.sc.Scan() {
			in.scan.Line++
			return Line{in.scan, strings.TrimSuffix(in.sc.Text(), "\r")}, nil
		}
		if err := in.sc.Err(); err != nil {
			in.closeCur()
			return Line{}, fmt.Errorf("%v: %w", in.scan, err)
		}
		in.closeCur()
	}
}

// ReadAll reads all remaining lines.
func (in *Input) ReadAll() (lines []Line, err error) {
	for {
		line, err := in.ReadLine()
		if err == io.EOF {
			return lines, nil
		} else if err != nil {
			return lines, err
		}
		lines = append(lines, line)
	}
}

func (in *Input) closeCur() {
	if cl, ok := in.cur.(io.Closer); ok {
		cl.Close()
	}
	in.cur = nil
	in.sc = nil
}

func (in *Input) nextIn() bool {
	if len(in.Queue) == 0 {
		return false
	}
	in.cur = in.Queue[0]
	in.Queue = in.Queue[1:]
	in.sc = bufio.NewScanner(in.cur)
	in.scan = Location{Name: nameOf(in.cur)}
	return true
}

type namedReader struct {
	io.Reader
	name string
}

func (nr namedReader) Name() string { return nr.name }

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}
