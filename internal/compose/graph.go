package compose

import (
	"fmt"
	"strings"
)

// Statement is a single filter-graph line: [in...]filter[out...].
// Inputs and outputs are bare label names; String adds the brackets.
type Statement struct {
	Inputs  []string
	Filter  string
	Outputs []string
}

// String renders the statement in engine syntax.
func (s Statement) String() string {
	var b strings.Builder
	for _, in := range s.Inputs {
		b.WriteByte('[')
		b.WriteString(in)
		b.WriteByte(']')
	}
	b.WriteString(s.Filter)
	for _, out := range s.Outputs {
		b.WriteByte('[')
		b.WriteString(out)
		b.WriteByte(']')
	}
	return b.String()
}

// graph accumulates statements and owns label allocation. Labels are
// allocated from a single monotonic counter so they stay unique no
// matter which generator asked for them.
type graph struct {
	stmts   []Statement
	counter int
}

// next allocates a fresh label with the given prefix.
func (g *graph) next(prefix string) string {
	label := fmt.Sprintf("%s%d", prefix, g.counter)
	g.counter++
	return label
}

// add appends one statement.
func (g *graph) add(inputs []string, filter string, outputs []string) {
	g.stmts = append(g.stmts, Statement{Inputs: inputs, Filter: filter, Outputs: outputs})
}

// String joins all statements with the engine's statement separator.
func (g *graph) String() string {
	parts := make([]string, len(g.stmts))
	for i, s := range g.stmts {
		parts[i] = s.String()
	}
	return strings.Join(parts, ";")
}

// videoRef returns the raw video stream reference for input index i.
func videoRef(i int) string {
	return fmt.Sprintf("%d:v", i)
}

// audioRef returns the raw audio stream reference for input index i.
func audioRef(i int) string {
	return fmt.Sprintf("%d:a", i)
}

// isRawRef reports whether a label references a raw input stream
// rather than a statement output.
func isRawRef(label string) bool {
	return strings.ContainsRune(label, ':')
}
