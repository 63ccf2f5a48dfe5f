package reduce_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/filo/internal/item"
	"github.com/jcorbin/filo/internal/panicerr"
	"github.com/jcorbin/filo/internal/reduce"
	"github.com/jcorbin/filo/internal/rule"
)

type reduceTestCases []reduceTestCase

func (rts reduceTestCases) run(t *testing.T) {
	{
		var exclusive []reduceTestCase
		for _, rt := range rts {
			if rt.exclusive {
				exclusive = append(exclusive, rt)
			}
		}
		if len(exclusive) > 0 {
			rts = exclusive
		}
	}
	for _, rt := range rts {
		if !t.Run(rt.name, rt.run) {
			return
		}
	}
}

func reduceTest(name string) (rt reduceTestCase) {
	rt.name = name
	return rt
}

type reduceTestCase struct {
	name    string
	defs    []string
	table   *rule.Table
	program string
	opts    []reduce.Option
	timeout time.Duration

	expectOutput *string
	expectErr    []func(t *testing.T, err error)

	exclusive bool
}

func (rt reduceTestCase) exclusiveTest() reduceTestCase {
	rt.exclusive = true
	return rt
}

func (rt reduceTestCase) withDefs(lines ...string) reduceTestCase {
	rt.defs = append(rt.defs, lines...)
	return rt
}

func (rt reduceTestCase) withTable(table *rule.Table) reduceTestCase {
	rt.table = table
	return rt
}

func (rt reduceTestCase) withProgram(text string) reduceTestCase {
	rt.program = text
	return rt
}

func (rt reduceTestCase) withOptions(opts ...reduce.Option) reduceTestCase {
	rt.opts = append(rt.opts, opts...)
	return rt
}

func (rt reduceTestCase) withTimeout(timeout time.Duration) reduceTestCase {
	rt.timeout = timeout
	return rt
}

func (rt reduceTestCase) expectOutputText(text string) reduceTestCase {
	rt.expectOutput = &text
	return rt
}

func (rt reduceTestCase) expectError(expect func(t *testing.T, err error)) reduceTestCase {
	rt.expectErr = append(rt.expectErr, expect)
	return rt
}

func (rt reduceTestCase) expectErrorString(s string) reduceTestCase {
	return rt.expectError(func(t *testing.T, err error) {
		assert.EqualError(t, err, s)
	})
}

func (rt reduceTestCase) buildTable(t *testing.T) *rule.Table {
	if rt.table != nil {
		return rt.table
	}
	table, err := rule.ParseSource(rt.name, strings.Join(rt.defs, "\n"))
	require.NoError(t, err, "must parse definitions")
	return table
}

func (rt reduceTestCase) run(t *testing.T) {
	table := rt.buildTable(t)
	program, err := item.ParseProgram(rt.name, rt.program)
	require.NoError(t, err, "must parse program")

	ctx := context.Background()
	if rt.timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, rt.timeout)
		defer cancel()
	}

	var trace []string
	opts := append([]reduce.Option{reduce.WithLogf(func(mess string, args ...interface{}) {
		trace = append(trace, fmtLog(mess, args...))
	})}, rt.opts...)

	out, err := reduce.Execute(ctx, program, table, opts...)
	defer func() {
		if t.Failed() {
			for _, line := range trace {
				t.Log(line)
			}
		}
	}()

	if len(rt.expectErr) > 0 {
		require.Error(t, err, "expected reduction to fail")
		assert.Nil(t, out, "expected no partial output")
		for _, expect := range rt.expectErr {
			expect(t, err)
		}
		return
	}
	require.NoError(t, err, "unexpected reduction error")
	if rt.expectOutput != nil {
		assert.Equal(t, *rt.expectOutput, item.Format(out), "expected output")
	}
}

func fmtLog(mess string, args ...interface{}) string {
	return strings.TrimSpace(sprintf(mess, args...))
}

func expectUnknownOperator(word string, suggest ...string) func(t *testing.T, err error) {
	return func(t *testing.T, err error) {
		var unknown reduce.UnknownOperatorError
		if assert.True(t, errors.As(err, &unknown), "expected an UnknownOperatorError, got %v", err) {
			assert.Equal(t, word, unknown.Word)
			if len(suggest) > 0 {
				assert.Equal(t, suggest, unknown.Suggest)
			}
		}
	}
}

func expectNoMatch(op string) func(t *testing.T, err error) {
	return func(t *testing.T, err error) {
		var noMatch reduce.NoMatchError
		if assert.True(t, errors.As(err, &noMatch), "expected a NoMatchError, got %v", err) {
			assert.Equal(t, op, noMatch.Operator)
		}
	}
}

func TestExecute(t *testing.T) {
	reduceTestCases{
		reduceTest("identity").
			withDefs(`def id:`, `x => x`).
			withProgram(`id 5`).
			expectOutputText(`5`),

		reduceTest("swap").
			withDefs(`def swap:`, `a b => b a`).
			withProgram(`swap 1 2`).
			expectOutputText(`2 1`),

		reduceTest("only the matched span is replaced").
			withDefs(`def swap:`, `a b => b a`).
			withProgram(`swap 1 2 3 swap true false`).
			expectOutputText(`2 1 3 false true`),

		reduceTest("unknown operator").
			withProgram(`nope 1 2`).
			expectErrorString(`unrecognized operator nope`).
			expectError(expectUnknownOperator("nope")),

		reduceTest("literal mismatch").
			withDefs(`def assert:`, `true =>`).
			withProgram(`assert false`).
			expectErrorString(`unmatched operator invocation assert [false]`).
			expectError(expectNoMatch("assert")),

		reduceTest("no input to match").
			withDefs(`def id:`, `x => x`).
			withProgram(`1 id`).
			expectError(expectNoMatch("id")),

		reduceTest("literals and stacks pass through").
			withProgram(`1 2.5 true [swap 1 2] [nope]`).
			expectOutputText(`1 2.5 true [swap 1 2] [nope]`),

		reduceTest("blocks flatten").
			withDefs(`def swap:`, `a b => b a`).
			withProgram(`{1 {2}} {swap 3 4} 5`).
			expectOutputText(`1 2 4 3 5`),

		reduceTest("block arguments flatten when reached").
			withDefs(`def twice:`, `x => x x`, ``, `def swap:`, `a b => b a`).
			withProgram(`twice {swap 1 2} 3`).
			expectOutputText(`2 1 2 1 3`),

		reduceTest("states introduce blocks").
			withDefs(`def dup:`, `x => {x x}`).
			withProgram(`dup 7`).
			expectOutputText(`7 7`),

		reduceTest("first matching entry wins").
			withDefs(`def pick:`, `x y => 1`, `x => 2`).
			withProgram(`pick 5 6 pick 5`).
			expectOutputText(`1 2`),

		reduceTest("literal entries").
			withDefs(`def not:`, `true => false`, `false => true`).
			withProgram(`not true not false`).
			expectOutputText(`false true`),

		reduceTest("literals compare by kind").
			withDefs(`def one:`, `1 => true`, `x => false`).
			withProgram(`one 1. one 1 one 0.5`).
			expectOutputText(`false true false`),

		reduceTest("operator references").
			withDefs(`def and:`, `x => x`, ``, `def pair:`, `a and b => [a b]`).
			withProgram(`pair 1 and 2`).
			expectOutputText(`[1 2]`),

		reduceTest("operator reference mismatch").
			withDefs(`def and:`, `x => x`, ``, `def pair:`, `a and b => [a b]`).
			withProgram(`pair 1 or 2`).
			expectError(expectNoMatch("pair")),

		reduceTest("nested stack patterns").
			withDefs(`def head:`, `[x ...] => x`).
			withProgram(`head [1 2 3] head [[4] 5]`).
			expectOutputText(`1 [4]`),

		reduceTest("nested stack patterns must match whole").
			withDefs(`def single:`, `[x] => x`).
			withProgram(`single [1 2]`).
			expectError(expectNoMatch("single")),

		reduceTest("empty stack pattern").
			withDefs(`def empty?:`, `[] => true`, `x => false`).
			withProgram(`empty? [] empty? [1] empty? 1`).
			expectOutputText(`true false false`),

		reduceTest("list variable captures the rest of a stack").
			withDefs(`def last:`, `[... x] => x`).
			withProgram(`last [1 2 3]`).
			expectOutputText(`3`),

		reduceTest("list variables capture minimally").
			withDefs(`def split:`, `[...a ...b] => [a] [b]`).
			withProgram(`split [1 2]`).
			expectOutputText(`[] [1 2]`),

		reduceTest("list variable before a literal").
			withDefs(`def upto:`, `...xs 0 => [xs]`).
			withProgram(`upto 1 2 0 3 0`).
			expectOutputText(`[1 2] 3 0`),

		reduceTest("stack end requires the end of input").
			withDefs(`def only:`, `x _ => [x]`).
			withProgram(`only 1`).
			expectOutputText(`[1]`),

		reduceTest("stack end fails with input left").
			withDefs(`def only:`, `x _ => [x]`).
			withProgram(`only 1 2`).
			expectError(expectNoMatch("only")),

		reduceTest("stack end makes a remainder take everything").
			withDefs(`def keep:`, `x ... _ => x`).
			withProgram(`keep 1 2 3`).
			expectOutputText(`1`),

		reduceTest("list variable to the end of input").
			withDefs(`def all:`, `...xs _ => [xs]`).
			withProgram(`all 1 {2} [3]`).
			expectOutputText(`[1 {2} [3]]`),

		reduceTest("trailing list variable captures nothing").
			withDefs(`def some:`, `...xs => [xs]`).
			withProgram(`some 1 2`).
			expectOutputText(`[] 1 2`),

		reduceTest("state markers are dropped").
			withDefs(`def mark:`, `x => _ x ...`).
			withProgram(`mark 1`).
			expectOutputText(`1`),

		reduceTest("lists splice into blocks").
			withDefs(
				`def when:`,
				`true [...body] => {body}`,
				`false [...body] =>`,
				``,
				`def swap:`,
				`a b => b a`,
			).
			withProgram(`when true [swap 1 2] when false [9] 3`).
			expectOutputText(`2 1 3`),

		reduceTest("recursive rewrites").
			withDefs(
				`def rev:`,
				`[x ...xs] [...acc] => rev [xs] [x acc]`,
				`[] acc => acc`,
			).
			withProgram(`rev [1 2 3] []`).
			expectOutputText(`[3 2 1]`),

		reduceTest("bound words are invoked when reached").
			withDefs(`def run:`, `x => x`, ``, `def swap:`, `a b => b a`).
			withProgram(`run swap 1 2`).
			expectOutputText(`2 1`),

		reduceTest("bound unknown words fail when reached").
			withDefs(`def run:`, `x => x`).
			withProgram(`run nope`).
			expectError(expectUnknownOperator("nope")),

		reduceTest("suggestions").
			withDefs(`def swap:`, `a b => b a`, ``, `def rev:`, `x => x`).
			withProgram(`swpa 1 2`).
			expectErrorString(`unrecognized operator swpa (did you mean swap?)`).
			expectError(expectUnknownOperator("swpa", "swap")),

		reduceTest("step limit").
			withDefs(`def loop:`, `=> loop`).
			withProgram(`loop`).
			withOptions(reduce.WithStepLimit(100)).
			expectErrorString(`reduction exceeded step limit of 100`),

		reduceTest("step limit is not hit by finite programs").
			withDefs(`def swap:`, `a b => b a`).
			withProgram(`swap 1 2`).
			withOptions(reduce.WithStepLimit(3)).
			expectOutputText(`2 1`),

		reduceTest("deadline").
			withDefs(`def loop:`, `=> loop`).
			withProgram(`loop`).
			withOptions(reduce.WithLogf(nil)).
			withTimeout(20 * time.Millisecond).
			expectError(func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, context.DeadlineExceeded), "expected deadline, got %v", err)
			}),
	}.run(t)
}

func TestExecute_unboundVariable(t *testing.T) {
	var table rule.Table
	table.Define(rule.Operator{Name: "bad", Entries: []rule.Entry{{
		Pattern: []rule.Pattern{{Kind: rule.Variable, Name: "x"}},
		State:   []rule.State{{Kind: rule.Stack, Items: []rule.State{{Kind: rule.Variable, Name: "ghost"}}}},
	}}})

	reduceTestCases{
		reduceTest("unbound variable").
			withTable(&table).
			withProgram(`bad 1`).
			expectErrorString(`operator bad uses unbound variable ghost`).
			expectError(func(t *testing.T, err error) {
				var unbound reduce.UnboundVariableError
				assert.True(t, errors.As(err, &unbound))
			}),
	}.run(t)
}

func TestExecute_deterministic(t *testing.T) {
	table, err := rule.ParseSource("det", strings.Join([]string{
		`def split:`,
		`[...a ...b x] => [b] [a] x`,
	}, "\n"))
	require.NoError(t, err)
	program, err := item.ParseProgram("det", `split [1 2 3 4] split [5]`)
	require.NoError(t, err)

	first, err := reduce.Execute(context.Background(), program, table)
	require.NoError(t, err)
	assert.Equal(t, `[1 2 3] [] 4 [] [] 5`, item.Format(first))
	for i := 0; i < 10; i++ {
		again, err := reduce.Execute(context.Background(), program, table)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestExecute_programUnchanged(t *testing.T) {
	table, err := rule.ParseSource("unchanged", "def swap:\na b => b a")
	require.NoError(t, err)
	program, err := item.ParseProgram("unchanged", `swap 1 2 {swap 3 4}`)
	require.NoError(t, err)
	before := item.Format(program)

	_, err = reduce.Execute(context.Background(), program, table)
	require.NoError(t, err)
	assert.Equal(t, before, item.Format(program), "reduction must not modify its program")
}

func TestExecute_trace(t *testing.T) {
	table, err := rule.ParseSource("trace", "def swap:\na b => b a")
	require.NoError(t, err)
	program, err := item.ParseProgram("trace", `{swap 1 2}`)
	require.NoError(t, err)

	var trace []string
	_, err = reduce.Execute(context.Background(), program, table,
		reduce.WithLogf(func(mess string, args ...interface{}) {
			trace = append(trace, sprintf(mess, args...))
		}))
	require.NoError(t, err)
	assert.Equal(t, []string{
		`{ {swap 1 2}`,
		`~ swap #0 a b => b a`,
		`= 1 2 => 2 1`,
		`> 2`,
		`> 1`,
	}, trace)
}

func TestExecute_invalidItem(t *testing.T) {
	_, err := reduce.Execute(context.Background(), []item.Program{{Kind: item.Kind(42)}}, nil)
	require.Error(t, err)
	assert.True(t, panicerr.IsPanic(err), "expected a recovered panic, got %v", err)
	assert.Contains(t, err.Error(), "invalid item kind")
}

func TestExecute_nilTable(t *testing.T) {
	out, err := reduce.Execute(context.Background(), []item.Program{item.V(item.Int(1))}, nil)
	require.NoError(t, err)
	assert.Equal(t, []item.Program{item.V(item.Int(1))}, out)

	_, err = reduce.Execute(context.Background(), []item.Program{item.W("x")}, nil)
	assert.EqualError(t, err, "unrecognized operator x")
}
