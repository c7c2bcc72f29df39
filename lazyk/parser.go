package lazyk

// parser turns source text in any mix of the four surface syntaxes
// (Combinator-Calculus, Unlambda, Iota, Jot) into a graph in the
// given arena. It is a straightforward recursive-descent reader; the
// only non-obvious piece is iotaMode, which governs whether a bare
// lowercase 'i' means the Unlambda identity combinator or the Iota
// combinator ι — see the note on parseBinaryPrefix below.
type parser struct {
	a        *arena
	p        *preamble
	src      []byte
	pos      int
	iotaMode bool
}

func newParser(a *arena, p *preamble, src string) *parser {
	return &parser{a: a, p: p, src: []byte(src)}
}

// parse consumes the whole source and returns the root id of the
// parsed expression. Trailing non-whitespace input is a parse error.
func (ps *parser) parse() (id, error) {
	root, err := ps.parseExpr()
	if err != nil {
		return 0, err
	}
	ps.skipSpace()
	if !ps.atEOF() {
		if ps.peek() == ')' {
			return 0, &ParseError{Offset: ps.pos, Message: "unmatched trailing close-parenthesis"}
		}
		return 0, &ParseError{Offset: ps.pos, Message: "invalid character"}
	}
	return root, nil
}

func (ps *parser) atEOF() bool { return ps.pos >= len(ps.src) }
func (ps *parser) peek() byte  { return ps.src[ps.pos] }
func (ps *parser) advance()    { ps.pos++ }

// skipSpace skips whitespace and '#' line comments. Bytes >= 128
// inside a comment are simply part of the skipped run.
func (ps *parser) skipSpace() {
	for !ps.atEOF() {
		c := ps.peek()
		switch {
		case c == '#':
			for !ps.atEOF() && ps.peek() != '\n' {
				ps.advance()
			}
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f':
			ps.advance()
		default:
			return
		}
	}
}

// parseExpr parses a juxtaposition-folded Combinator-Calculus style
// sequence of atoms: "S K I" is Apply(Apply(S,K),I). It terminates at
// ')' or EOF, whichever the caller's context implies. The first atom
// is mandatory; running out of input before it is a parse error.
func (ps *parser) parseExpr() (id, error) {
	first, ok, err := ps.tryAtom()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, &ParseError{Offset: ps.pos, Message: "premature end of program"}
	}
	result := first
	for {
		ps.skipSpace()
		if ps.atEOF() || ps.peek() == ')' {
			return result, nil
		}
		next, ok, err := ps.tryAtom()
		if err != nil {
			return 0, err
		}
		if !ok {
			return result, nil
		}
		result = ps.a.newApply(result, next)
	}
}

// tryAtom reads one atomic unit: a parenthesized group, a backtick-
// or star-prefixed binary application, a single combinator letter, or
// a maximal run of Jot digits. It reports ok=false (no error) when
// positioned at ')' or EOF, letting parseExpr treat that as "no more
// atoms to juxtapose" rather than a hard failure; the caller decides
// whether a missing atom there is actually an error.
func (ps *parser) tryAtom() (id, bool, error) {
	ps.skipSpace()
	if ps.atEOF() {
		return 0, false, nil
	}
	c := ps.peek()
	switch {
	case c == '(':
		ps.advance()
		inner, err := ps.parseExpr()
		if err != nil {
			return 0, false, err
		}
		ps.skipSpace()
		if ps.atEOF() {
			return 0, false, &ParseError{Offset: ps.pos, Message: "premature end of program"}
		}
		if ps.peek() != ')' {
			return 0, false, &ParseError{Offset: ps.pos, Message: "invalid character"}
		}
		ps.advance()
		return inner, true, nil
	case c == ')':
		return 0, false, nil
	case c == '`':
		ps.advance()
		return ps.parseBinaryPrefix(ps.iotaMode)
	case c == '*':
		ps.advance()
		return ps.parseBinaryPrefix(true)
	case c == 'S':
		ps.advance()
		return ps.p.s, true, nil
	case c == 'K':
		ps.advance()
		return ps.p.k, true, nil
	case c == 'I':
		ps.advance()
		return ps.p.i, true, nil
	case c == 's':
		ps.advance()
		return ps.p.s, true, nil
	case c == 'k':
		ps.advance()
		return ps.p.k, true, nil
	case c == 'i':
		ps.advance()
		if ps.iotaMode {
			return ps.p.iota, true, nil
		}
		return ps.p.i, true, nil
	case c == '0' || c == '1':
		return ps.parseJotRun(), true, nil
	default:
		return 0, false, &ParseError{Offset: ps.pos, Message: "invalid character"}
	}
}

// parseBinaryPrefix reads exactly two atoms (the operands of a
// backtick or star application), parsing them under mode, and
// returns their application. mode governs whether 'i' inside the
// operands means ι; it does not leak back out to the caller's mode.
func (ps *parser) parseBinaryPrefix(mode bool) (id, bool, error) {
	saved := ps.iotaMode
	ps.iotaMode = mode
	defer func() { ps.iotaMode = saved }()

	x, ok, err := ps.tryAtom()
	if err != nil {
		return 0, false, err
	}
	if !ok {
		return 0, false, &ParseError{Offset: ps.pos, Message: "premature end of program"}
	}
	y, ok, err := ps.tryAtom()
	if err != nil {
		return 0, false, err
	}
	if !ok {
		return 0, false, &ParseError{Offset: ps.pos, Message: "premature end of program"}
	}
	return ps.a.newApply(x, y), true, nil
}

// parseJotRun folds a maximal run of '0'/'1' characters starting from
// I: each '0' transforms e into ((e S) K), each '1' into (S (K e)).
func (ps *parser) parseJotRun() id {
	e := ps.p.i
	for !ps.atEOF() {
		c := ps.peek()
		if c == '0' {
			e = ps.a.newApply(ps.a.newApply(e, ps.p.s), ps.p.k)
		} else if c == '1' {
			e = ps.a.newApply(ps.p.s, ps.a.newApply(ps.p.k, e))
		} else {
			break
		}
		ps.advance()
	}
	return e
}
