package lazyk

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// arena is the growable, indexed pool of expression nodes. It owns all
// node storage and hands out small integer ids, like a fixed byte
// array handing out addresses — except this pool grows, and it only
// ever has one reader.
type arena struct {
	nodes     []node // nodes[0] is the unused null sentinel
	freeScan  id     // 0 means "no known free slot, append"
	preambleN id     // first id >= preambleN is reclaimable by GC
}

// newArena allocates an empty arena with the null sentinel installed
// at id 0. The preamble is not built here; buildPreamble does that
// once the arena exists (see preamble.go).
func newArena() *arena {
	a := &arena{nodes: make([]node, 1, 1024)}
	return a
}

// newNode returns a fresh id for a node of the given shape, reusing a
// Free slot at or beyond the free-scan cursor when one exists,
// otherwise appending. This keeps allocation amortised O(1) even
// across a GC sweep that leaves holes behind.
func (a *arena) newNode(n node) id {
	if a.freeScan != 0 {
		for i := a.freeScan; int(i) < len(a.nodes); i++ {
			if a.nodes[i].k == kindFree {
				a.nodes[i] = n
				a.freeScan = i + 1
				return i
			}
		}
		a.freeScan = 0
	}
	a.nodes = slices.Grow(a.nodes, 1)
	a.nodes = append(a.nodes, n)
	return id(len(a.nodes) - 1)
}

// get returns the node stored at id. id must be a live, previously
// issued id; this is not bounds-checked against liveness, only
// against the backing slice (a fatal condition indicates an
// interpreter bug, never malformed user input).
func (a *arena) get(i id) node {
	return a.nodes[i]
}

// set overwrites the contents of slot id in place. It must not be
// used to create or destroy a slot's existence, only to rewrite its
// contents — this is what lets a reduced redex memoise its result in
// place, so every other reference to the same id sees it too.
func (a *arena) set(i id, n node) {
	a.nodes[i] = n
}

// swapLeft atomically exchanges an Apply node's left field with
// *other. Defined only on Apply nodes; anything else is an
// interpreter bug, not a condition any caller can recover from, so it
// panics rather than returning an error.
func (a *arena) swapLeft(i id, other *id) {
	n := &a.nodes[i]
	if n.k != kindApply {
		panic(fmt.Sprintf("swapLeft on non-Apply node %s at %s", n, i))
	}
	n.l, *other = *other, n.l
}

// free marks a slot reclaimable. Only ever called by the GC sweep,
// never below preambleN.
func (a *arena) free(i id) {
	a.nodes[i] = node{k: kindFree}
}

// len reports the number of slots currently in the pool, live or
// free. This is what the GC watermark in gc.go compares against.
func (a *arena) len() int {
	return len(a.nodes)
}

// resetFreeScan points the allocator at the given id, so the next
// allocations fill holes left by a GC sweep before appending again.
func (a *arena) resetFreeScan(from id) {
	a.freeScan = from
}

// Node-construction helpers. Each allocates exactly one node.

func (a *arena) newApply(l, r id) id   { return a.newNode(node{k: kindApply, l: l, r: r}) }
func (a *arena) newK1(x id) id         { return a.newNode(node{k: kindK1, l: x}) }
func (a *arena) newS1(x id) id         { return a.newNode(node{k: kindS1, l: x}) }
func (a *arena) newS2(x, y id) id      { return a.newNode(node{k: kindS2, l: x, r: y}) }
func (a *arena) newI1(x id) id         { return a.newNode(node{k: kindI1, l: x}) }
func (a *arena) newNum(n uint16) id    { return a.newNode(node{k: kindNum, l: id(n)}) }
func (a *arena) newLazyRead() id       { return a.newNode(node{k: kindLazyRead}) }
