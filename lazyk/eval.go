package lazyk

import "github.com/golang/glog"

// evaluator reduces graphs stored in an arena to weak head normal
// form. One mutable back-pointer walks the left spine (via
// arena.swapLeft) instead of a recursive descent, so the host stack
// never scales with term depth.
type evaluator struct {
	a   *arena
	p   *preamble
	src *byteSource
}

func newEvaluator(a *arena, p *preamble, src *byteSource) *evaluator {
	return &evaluator{a: a, p: p, src: src}
}

// dropI1 repeatedly unwraps I1(x) -> x until the head is not I1. I1
// is a memoised "already reduced to x" marker; it is transparent to
// every rule below.
func (e *evaluator) dropI1(x id) id {
	for {
		n := e.a.get(x)
		if n.k != kindI1 {
			return x
		}
		x = n.l
	}
}

// eval reduces root to WHNF, returning the id of the resulting node.
// It may return root itself (rewritten in place) or a preamble
// constant.
func (e *evaluator) eval(root id) (id, error) {
	cur := root
	prev := nullID

	for {
		cur = e.dropI1(cur)
		for e.a.get(cur).k == kindApply {
			e.a.swapLeft(cur, &prev)
			next := e.dropI1(prev)
			prev = cur
			cur = next
		}
		if prev == nullID {
			return cur, nil
		}

		redex := e.a.get(prev)
		arg := redex.r
		up := redex.l
		head := e.a.get(cur)

		if head.k == kindLazyRead {
			if err := e.forceLazyRead(cur); err != nil {
				return 0, err
			}
			// Retry the same redex now that cur has been rewritten
			// in place into a pair. prev and arg are unchanged.
			continue
		}

		result, err := e.reduce(head, cur, arg)
		if err != nil {
			return 0, err
		}
		e.a.set(prev, result)
		cur = prev
		prev = up
	}
}

// reduce applies one primitive reduction rule: head (already at WHNF,
// not LazyRead) applied to arg. It never evaluates arg — only Inc
// forces its argument, and only because Inc's contract requires a
// concrete Num.
func (e *evaluator) reduce(head node, headID, arg id) (node, error) {
	switch head.k {
	case kindI:
		return node{k: kindI1, l: arg}, nil
	case kindK:
		return node{k: kindK1, l: arg}, nil
	case kindK1:
		return node{k: kindI1, l: head.l}, nil
	case kindS:
		return node{k: kindS1, l: arg}, nil
	case kindS1:
		return node{k: kindS2, l: head.l, r: arg}, nil
	case kindS2:
		n1 := e.a.newApply(head.l, arg)
		n2 := e.a.newApply(head.r, arg)
		return node{k: kindApply, l: n1, r: n2}, nil
	case kindInc:
		v, err := e.eval(arg)
		if err != nil {
			return node{}, err
		}
		vn := e.a.get(v)
		if vn.k != kindNum {
			return node{}, &NumeralError{Message: "Inc applied to a value that is not a Church numeral"}
		}
		if vn.l >= 65535 {
			return node{}, &NumeralError{Message: "Church numeral overflowed 16 bits"}
		}
		return node{k: kindNum, l: vn.l + 1}, nil
	default:
		return node{}, &NumeralError{
			Message: "applied a value that is not a combinator (" + head.k.String() + " at " + headID.String() + ")",
		}
	}
}

// forceLazyRead reads one byte (or hits EOF) and rewrites the
// LazyRead node at id in place into the Church pair
// S(S I (K head))(K tail). This is the single memoising side effect in
// the whole engine: every other reference to this node id will see
// the pair, never re-read the byte.
func (e *evaluator) forceLazyRead(id id) error {
	b, err := e.src.next()
	if err != nil {
		return err
	}
	if glog.V(2) {
		glog.V(2).Infof("lazyk: forced LazyRead %s -> byte %d", id, b)
	}
	tail := e.a.newLazyRead()
	pair := buildPair(e.a, e.p, e.p.churchChar(b), tail)
	e.a.set(id, e.a.get(pair))
	return nil
}
