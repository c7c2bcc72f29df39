package lazyk

import "strings"

// Style selects one of the four surface syntaxes a compiled graph can
// be rendered back into.
type Style int

const (
	StyleCombCalculus Style = iota
	StyleUnlambda
	StyleJot
	StyleIota
)

// jot/iota fixed substitutions for apply, K, S, I.
var jotToken = map[string]string{"apply": "1", "K": "11100", "S": "11111000", "I": "11111111100000"}
var iotaToken = map[string]string{"apply": "*", "K": "*i*i*ii", "S": "*i*i*i*ii", "I": "*ii"}

// printer renders a compiled graph back to source text. Recursion
// here is fine where it would not be in the evaluator: it walks an
// externally-bounded compiled term, not an unbounded reduction
// sequence.
type printer struct {
	a     *arena
	style Style
	buf   strings.Builder
}

func toSource(a *arena, root id, style Style) string {
	p := &printer{a: a, style: style}
	p.print(root, false)
	return p.buf.String()
}

// print renders n. asArgument controls whether a CombCalculus
// rendering needs to parenthesize a compound term to preserve
// left-associative juxtaposition; the prefix styles (Unlambda/Jot/
// Iota) never need parentheses at all.
func (p *printer) print(n id, asArgument bool) {
	node := p.a.get(n)
	switch node.k {
	case kindI1:
		p.print(node.l, asArgument)
		return
	}

	switch p.style {
	case StyleCombCalculus:
		p.printCombCalculus(node, asArgument)
	case StyleUnlambda:
		p.printUnlambda(node)
	case StyleJot:
		p.printSubstituted(node, jotToken)
	case StyleIota:
		p.printSubstituted(node, iotaToken)
	}
}

func (p *printer) isCompound(n id) bool {
	switch p.a.get(n).k {
	case kindApply, kindK1, kindS1, kindS2:
		return true
	case kindI1:
		return p.isCompound(p.a.get(n).l)
	default:
		return false
	}
}

func (p *printer) printCombCalculus(n node, asArgument bool) {
	switch n.k {
	case kindApply:
		if asArgument {
			p.buf.WriteByte('(')
		}
		p.print(n.l, false)
		p.printArgCC(n.r)
		if asArgument {
			p.buf.WriteByte(')')
		}
	case kindK1:
		if asArgument {
			p.buf.WriteByte('(')
		}
		p.buf.WriteByte('K')
		p.printArgCC(n.l)
		if asArgument {
			p.buf.WriteByte(')')
		}
	case kindS1:
		if asArgument {
			p.buf.WriteByte('(')
		}
		p.buf.WriteByte('S')
		p.printArgCC(n.l)
		if asArgument {
			p.buf.WriteByte(')')
		}
	case kindS2:
		if asArgument {
			p.buf.WriteByte('(')
		}
		p.buf.WriteByte('S')
		p.printArgCC(n.l)
		p.printArgCC(n.r)
		if asArgument {
			p.buf.WriteByte(')')
		}
	case kindK:
		p.buf.WriteByte('K')
	case kindS:
		p.buf.WriteByte('S')
	case kindI:
		p.buf.WriteByte('I')
	default:
		p.buf.WriteString(debugToken())
	}
}

func (p *printer) printArgCC(n id) {
	p.buf.WriteByte(' ')
	p.print(n, p.isCompound(n))
}

func (p *printer) printUnlambda(n node) {
	switch n.k {
	case kindApply:
		p.buf.WriteByte('`')
		p.print(n.l, false)
		p.print(n.r, false)
	case kindK1:
		p.buf.WriteByte('`')
		p.buf.WriteByte('k')
		p.print(n.l, false)
	case kindS1:
		p.buf.WriteByte('`')
		p.buf.WriteByte('s')
		p.print(n.l, false)
	case kindS2:
		p.buf.WriteByte('`')
		p.buf.WriteByte('`')
		p.buf.WriteByte('s')
		p.print(n.l, false)
		p.print(n.r, false)
	case kindK:
		p.buf.WriteByte('k')
	case kindS:
		p.buf.WriteByte('s')
	case kindI:
		p.buf.WriteByte('i')
	default:
		p.buf.WriteString(debugToken())
	}
}

// printSubstituted renders Jot or Iota style: every Apply becomes the
// style's apply token followed by its two operands in prefix order,
// every combinator leaf becomes its fixed substitution string. K1/S1/
// S2 desugar into the equivalent nested Apply-of-K/S form first.
func (p *printer) printSubstituted(n node, tok map[string]string) {
	switch n.k {
	case kindApply:
		p.buf.WriteString(tok["apply"])
		p.print(n.l, false)
		p.print(n.r, false)
	case kindK1:
		p.buf.WriteString(tok["apply"])
		p.buf.WriteString(tok["K"])
		p.print(n.l, false)
	case kindS1:
		p.buf.WriteString(tok["apply"])
		p.buf.WriteString(tok["S"])
		p.print(n.l, false)
	case kindS2:
		p.buf.WriteString(tok["apply"])
		p.buf.WriteString(tok["apply"])
		p.buf.WriteString(tok["S"])
		p.print(n.l, false)
		p.print(n.r, false)
	case kindK:
		p.buf.WriteString(tok["K"])
	case kindS:
		p.buf.WriteString(tok["S"])
	case kindI:
		p.buf.WriteString(tok["I"])
	default:
		p.buf.WriteString(tok["I"])
	}
}

// debugToken renders an evaluation-only node kind (Num, Inc, LazyRead,
// Free) that should never appear in an unexecuted compiled graph.
// to_source is still expected not to crash if called mid-execution, so
// this is a readable placeholder, not guaranteed re-parseable.
func debugToken() string {
	return "()"
}
