package tree

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// ostree rule validation utilities. Test helpers first of all, but
// exported so callers can audit a tree they suspect was corrupted
// through comparator misuse.

// collectNodes loads every node in-order through the real-child
// structure only, deliberately not trusting threads.
func collectNodes[K any](t *OSTree[K]) []*node[K] {
	aux := t.rootNode()
	if aux == nil {
		return nil
	}

	nodes := make([]*node[K], 0, t.Len())
	stack := make([]*node[K], 0, t.Len()>>1+1)

	for ; aux != nil; aux = aux.getLeft() {
		stack = append(stack, aux)
	}
	for len(stack) > 0 {
		aux = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		nodes = append(nodes, aux)
		if r := aux.getRight(); r != nil {
			for aux = r; aux != nil; aux = aux.getLeft() {
				stack = append(stack, aux)
			}
		}
	}
	return nodes
}

// RedViolationValidate checks that the root is black and that no red
// node has a red child.
func RedViolationValidate[K any](t *OSTree[K]) error {
	root := t.rootNode()
	if root == nil {
		return nil
	}
	if root.isRed() {
		return errors.New("ostree red violation: root is not black")
	}
	for _, n := range collectNodes(t) {
		if n.isRed() && (n.getLeft().isRed() || n.getRight().isRed()) {
			return errors.New("ostree red violation: red node with a red child")
		}
	}
	return nil
}

func blackDepthTo[K any](target, to *node[K]) int {
	depth := 0
	for aux := target; aux != to; aux = aux.parent {
		if aux.isBlack() {
			depth++
		}
	}
	return depth
}

// BlackViolationValidate checks that every path from the root to a nil
// descendant goes through the same number of black nodes. Every node
// missing at least one real child fronts such a path.
func BlackViolationValidate[K any](t *OSTree[K]) error {
	root := t.rootNode()
	if root == nil {
		return nil
	}

	blackDepth := -1
	for _, n := range collectNodes(t) {
		if n.hasLeft() && n.hasRight() {
			continue
		}
		if depth := blackDepthTo(n, root.parent); blackDepth < 0 {
			blackDepth = depth
		} else if depth != blackDepth {
			return errors.New("ostree black violation")
		}
	}
	return nil
}

// SizeViolationValidate checks the subtree size augmentation on every
// node.
func SizeViolationValidate[K any](t *OSTree[K]) error {
	nodes := collectNodes(t)
	if root := t.rootNode(); root != nil && root.size != int64(len(nodes)) {
		return fmt.Errorf("ostree size violation: root caches %d, tree holds %d", root.size, len(nodes))
	}
	for _, n := range nodes {
		if want := 1 + subtreeSize(n.getLeft()) + subtreeSize(n.getRight()); n.size != want {
			return fmt.Errorf("ostree size violation: node caches %d, children say %d", n.size, want)
		}
	}
	return nil
}

// ThreadViolationValidate checks that every vacated slot threads to the
// in-order neighbor, that parent links are consistent and that the
// leftmost/rightmost cursors name the extremes.
func ThreadViolationValidate[K any](t *OSTree[K]) error {
	root := t.rootNode()
	if root == nil {
		if t.leftmost != t.end || t.rightmost != t.end {
			return errors.New("ostree thread violation: empty tree with dangling cursors")
		}
		return nil
	}
	if root.parent != t.end {
		return errors.New("ostree thread violation: root is not parented to the sentinel")
	}

	for _, n := range collectNodes(t) {
		if l := n.getLeft(); l != nil && l.parent != n {
			return errors.New("ostree thread violation: left child with a foreign parent")
		}
		if r := n.getRight(); r != nil && r.parent != n {
			return errors.New("ostree thread violation: right child with a foreign parent")
		}
		if !n.hasLeft() {
			if !n.leftIsThread {
				return errors.New("ostree thread violation: vacated left slot without a thread")
			}
			if n.getLeftThread() != n.prev() {
				return errors.New("ostree thread violation: left thread misses the predecessor")
			}
		}
		if !n.hasRight() {
			if !n.rightIsThread {
				return errors.New("ostree thread violation: vacated right slot without a thread")
			}
			if n.getRightThread() != n.next() {
				return errors.New("ostree thread violation: right thread misses the successor")
			}
		}
	}

	if t.leftmost != root.minimum() {
		return errors.New("ostree thread violation: leftmost cursor misses the minimum")
	}
	if t.rightmost != root.maximum() {
		return errors.New("ostree thread violation: rightmost cursor misses the maximum")
	}
	return nil
}

// OrderViolationValidate walks the threads from Begin to End and checks
// a strictly increasing key sequence of exactly Len steps.
func OrderViolationValidate[K any](t *OSTree[K]) error {
	var (
		steps int64
		last  K
	)
	for it := t.Begin(); it != t.End(); it = it.Next() {
		if steps > 0 && !t.less(last, it.Key()) {
			return errors.New("ostree order violation: in-order walk is not strictly increasing")
		}
		last = it.Key()
		if steps++; steps > t.Len() {
			return errors.New("ostree order violation: in-order walk overruns the tree size")
		}
	}
	if steps != t.Len() {
		return fmt.Errorf("ostree order violation: in-order walk took %d steps over %d keys", steps, t.Len())
	}
	return nil
}

// InvariantValidate runs every validator and combines their findings.
func InvariantValidate[K any](t *OSTree[K]) error {
	return multierr.Combine(
		RedViolationValidate(t),
		BlackViolationValidate(t),
		SizeViolationValidate(t),
		ThreadViolationValidate(t),
		OrderViolationValidate(t),
	)
}
