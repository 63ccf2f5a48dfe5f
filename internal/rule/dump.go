package rule

import (
	"bytes"
	"fmt"
	"io"
)

// Dump writes the table back out as definition source, in definition order.
// With comments, each definition and entry is preceded by where it came from.
func (t *Table) Dump(w io.Writer, comments bool) error {
	dump := tableDumper{out: w, comments: comments}
	for i := range t.Names() {
		dump.operator(&t.ops[i])
	}
	return dump.err
}

type tableDumper struct {
	out      io.Writer
	comments bool
	ops      int
	buf      bytes.Buffer
	err      error
}

func (dump *tableDumper) operator(op *Operator) {
	if dump.ops > 0 {
		dump.line("")
	}
	dump.ops++
	if dump.comments && op.Loc.Name != "" {
		dump.line("# %v", op.Loc)
	}
	dump.line("def %v:", op.Name)
	for _, ent := range op.Entries {
		dump.line("%v", ent)
	}
}

func (dump *tableDumper) line(mess string, args ...interface{}) {
	if dump.err != nil {
		return
	}
	fmt.Fprintf(&dump.buf, mess, args...)
	dump.buf.WriteByte('\n')
	_, dump.err = dump.buf.WriteTo(dump.out)
}
