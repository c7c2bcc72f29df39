package lazyk

// The preamble: the fixed prefix of permanent roots every program
// shares. It is built once per arena and the GC may never reclaim
// anything in it (see gc.go). The numerals 0..256 are chosen via the
// decomposition table below so the whole preamble stays small.
const numeralCount = 257 // 0..256 inclusive

type preamble struct {
	k, s, i       id
	ki, ks, kk    id
	sksk, siks    id
	iota          id
	inc, zero     id
	church        [numeralCount]id
}

func (a *arena) newBare(k kind) id { return a.newNode(node{k: k}) }

// buildPreamble installs S, K, I, the derived combinators, Inc, Zero,
// and the Church numerals 0..256 into a fixed prefix of the arena.
// Each named combinator takes exactly one node and each numeral one
// node (two for a proper product), so the resulting ids are stable and
// well known.
func buildPreamble(a *arena) *preamble {
	p := &preamble{}
	p.k = a.newBare(kindK)
	p.s = a.newBare(kindS)
	p.i = a.newBare(kindI)
	p.ki = a.newK1(p.i)
	p.ks = a.newK1(p.s)
	p.kk = a.newK1(p.k)
	p.sksk = a.newS2(p.ks, p.k)
	p.siks = a.newS2(p.i, p.ks)
	p.iota = a.newS2(p.siks, p.kk)
	p.inc = a.newBare(kindInc)
	p.zero = a.newNum(0)

	p.church[0] = p.ki
	p.church[1] = p.i
	for n := 2; n < numeralCount; n++ {
		p.church[n] = buildChurchNumeral(a, p.church[:n], p.sksk, n)
	}

	a.preambleN = id(a.len())
	return p
}

// perfectPower maps i to (base, exponent) when i = base^exponent for a
// small base/exponent pair worth special-casing.
var perfectPower = map[int][2]int{
	8: {2, 3}, 16: {2, 4}, 32: {2, 5}, 64: {2, 6}, 128: {2, 7}, 256: {2, 8},
	27: {3, 3}, 81: {3, 4}, 125: {5, 3}, 216: {6, 3},
}

// buildChurchNumeral builds the representation for Church numeral n,
// given the already-built numerals c[0..n-1] and the successor
// combinator SKSK. It takes the first case of the table that applies,
// in this order: perfect power, perfect square, proper product, else
// successor.
func buildChurchNumeral(a *arena, c []id, sksk id, n int) id {
	if ab, ok := perfectPower[n]; ok {
		base, exp := ab[0], ab[1]
		return a.newApply(c[exp], c[base])
	}
	for base := 2; base <= 14; base++ {
		if base*base == n {
			return a.newApply(c[2], c[base])
		}
	}
	for base := isqrt(n); base >= 2; base-- {
		if n%base == 0 {
			other := n / base
			return a.newS2(a.newK1(c[base]), c[other])
		}
	}
	return a.newS2(sksk, c[n-1])
}

func isqrt(n int) int {
	r := 0
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}

// churchChar clamps idx to [0, 256] and returns the corresponding
// Church numeral.
func (p *preamble) churchChar(idx int) id {
	if idx < 0 {
		idx = 0
	}
	if idx > 256 {
		idx = 256
	}
	return p.church[idx]
}

// buildPair builds the standard SKI pair encoding S(S I (K x))(K y):
// applying the result to K yields x, applying it to KI yields y. This
// is the shape both the lazy input stream (reader.go/eval.go) and any
// fixed output stream (program.go's MakePrinter) are built from.
func buildPair(a *arena, p *preamble, x, y id) id {
	inner := a.newS2(p.i, a.newK1(x))
	return a.newS2(inner, a.newK1(y))
}
