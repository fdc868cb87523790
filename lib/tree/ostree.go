package tree

import (
	"github.com/ostat/ordset/lib/infra"
)

// OSTree is an order-statistic red-black tree over unique keys.
//
// On top of the textbook red-black structure every node caches the size
// of its subtree, which turns rank queries (LessThan, Distance) into
// O(log n) walks, and every vacated child slot carries a thread to the
// in-order neighbor, which makes iterator stepping amortized O(1)
// without parent chasing.
//
// References:
// https://en.wikipedia.org/wiki/Red%E2%80%93black_tree#Properties
// https://en.wikipedia.org/wiki/Threaded_binary_tree
// https://en.wikipedia.org/wiki/Order_statistic_tree
// rbtree properties:
// p1. Every node is either red or black.
// p2. All NIL nodes are considered black.
// p3. A red node does not have a red child. (red-violation)
// p4. Every path from a given node to any of its descendant
//
//	NIL nodes goes through the same number of black nodes. (black-violation)
//
// p5. The root is black.
// Augmentations maintained on every mutation:
// p6. node.size == 1 + size(real left child) + size(real right child).
// p7. A slot without a real child threads to the in-order neighbor;
//
//	the two outermost threads target the past-end sentinel.
//
// The tree is single-threaded: no internal locking, concurrent readers
// are only safe in the absence of writers.
type OSTree[K any] struct {
	// end is the past-end sentinel; its left slot holds the real root.
	end *node[K]
	// leftmost and rightmost point to the current minimum and maximum,
	// or to the sentinel when the tree is empty.
	leftmost  *node[K]
	rightmost *node[K]
	less      infra.LessFunc[K]
}

// NewOSTree builds an empty set ordered by the natural ascending order
// of K.
func NewOSTree[K infra.OrderedKey]() *OSTree[K] {
	return NewOSTreeFromLess[K](infra.OrderedLess[K])
}

// NewOSTreeFromLess builds an empty set ordered by the given strict weak
// order.
func NewOSTreeFromLess[K any](less infra.LessFunc[K]) *OSTree[K] {
	if less == nil {
		panic( /* debug assertion */ "[ostree] nil less func")
	}
	end := newSentinel[K]()
	return &OSTree[K]{
		end:       end,
		leftmost:  end,
		rightmost: end,
		less:      less,
	}
}

// NewOSTreeOf builds a set holding the given keys.
func NewOSTreeOf[K infra.OrderedKey](keys ...K) *OSTree[K] {
	t := NewOSTree[K]()
	t.InsertAll(keys...)
	return t
}

func (t *OSTree[K]) rootNode() *node[K] {
	return t.end.getLeft()
}

func (t *OSTree[K]) isRoot(n *node[K]) bool {
	return n == t.rootNode()
}

// equiv is the equivalence relation deduced from the less func.
func (t *OSTree[K]) equiv(a, b K) bool {
	return !t.less(a, b) && !t.less(b, a)
}

func (t *OSTree[K]) Empty() bool {
	return t.rootNode() == nil
}

func (t *OSTree[K]) Len() int64 {
	return subtreeSize(t.rootNode())
}

// KeyComp returns the less func the tree orders by.
func (t *OSTree[K]) KeyComp() infra.LessFunc[K] {
	return t.less
}

// Begin returns an iterator to the least key; O(1) via the leftmost
// cursor. Equal to End when the tree is empty.
func (t *OSTree[K]) Begin() Iterator[K] {
	return Iterator[K]{n: t.leftmost}
}

// End returns the past-end iterator.
func (t *OSTree[K]) End() Iterator[K] {
	return Iterator[K]{n: t.end}
}

// RBegin returns an iterator to the greatest key; O(1) via the rightmost
// cursor. Equal to End when the tree is empty.
func (t *OSTree[K]) RBegin() Iterator[K] {
	return Iterator[K]{n: t.rightmost}
}

// REnd returns the past-end iterator of the reverse walk. Both sweep
// directions terminate on the sentinel: the leftmost node's left thread
// and the rightmost node's right thread target the same past-end node.
func (t *OSTree[K]) REnd() Iterator[K] {
	return Iterator[K]{n: t.end}
}

// findEquiv descends from the root to the node equivalent to key, or to
// the sentinel when no such node exists.
func (t *OSTree[K]) findEquiv(key K) *node[K] {
	for cur := t.rootNode(); cur != nil; {
		if t.less(key, cur.key) {
			cur = cur.getLeft()
		} else if t.less(cur.key, key) {
			cur = cur.getRight()
		} else {
			return cur
		}
	}
	return t.end
}

// findLowerBound tracks the best not-less candidate while descending.
func (t *OSTree[K]) findLowerBound(key K) *node[K] {
	res := t.end
	for cur := t.rootNode(); cur != nil; {
		if !t.less(cur.key, key) {
			res = cur
			cur = cur.getLeft()
		} else {
			cur = cur.getRight()
		}
	}
	return res
}

func (t *OSTree[K]) findUpperBound(key K) *node[K] {
	res := t.end
	for cur := t.rootNode(); cur != nil; {
		if t.less(key, cur.key) {
			res = cur
			cur = cur.getLeft()
		} else {
			cur = cur.getRight()
		}
	}
	return res
}

// Find returns an iterator to the key equivalent to the given one, or
// End when absent.
func (t *OSTree[K]) Find(key K) Iterator[K] {
	return Iterator[K]{n: t.findEquiv(key)}
}

func (t *OSTree[K]) Contains(key K) bool {
	return t.findEquiv(key) != t.end
}

// LowerBound returns an iterator to the first key not less than the
// given one.
func (t *OSTree[K]) LowerBound(key K) Iterator[K] {
	return Iterator[K]{n: t.findLowerBound(key)}
}

// UpperBound returns an iterator to the first key greater than the
// given one.
func (t *OSTree[K]) UpperBound(key K) Iterator[K] {
	return Iterator[K]{n: t.findUpperBound(key)}
}

// EqualRange returns (LowerBound(key), UpperBound(key)) whether or not
// the key is present.
func (t *OSTree[K]) EqualRange(key K) (Iterator[K], Iterator[K]) {
	return t.LowerBound(key), t.UpperBound(key)
}

// LessThan returns the number of keys in the tree strictly less than
// the given key, which need not be present. O(log n): a lower-bound
// descent followed by one walk back to the root accumulating the left
// sibling subtree sizes of every right-child step.
func (t *OSTree[K]) LessThan(key K) int64 {
	cur := t.findLowerBound(key)
	if cur == t.end {
		return t.Len()
	}

	rank := subtreeSize(cur.getLeft())
	for !cur.isSentinel {
		if cur.onRight() {
			rank += 1 + subtreeSize(cur.parent.getLeft())
		}
		cur = cur.parent
	}
	return rank
}

// Distance returns LessThan(second) - LessThan(first). The keys need not
// be present; when second sorts before first the result is minus the
// number of keys in [second, first), so it is zero when that range holds
// no key.
func (t *OSTree[K]) Distance(first, second K) int64 {
	return t.LessThan(second) - t.LessThan(first)
}

// DistanceIters is Distance over the keys of two dereferenceable
// iterators of this tree.
func (t *OSTree[K]) DistanceIters(first, second Iterator[K]) int64 {
	return t.LessThan(second.Key()) - t.LessThan(first.Key())
}

// Insert adds the key to the set. When an equivalent key is already
// present it returns (End, false) and the tree is unchanged.
func (t *OSTree[K]) Insert(key K) (Iterator[K], bool) {
	if nd := t.findEquiv(key); nd != t.end {
		return t.End(), false
	}
	n := newNode(key)
	t.insertNode(n)
	return Iterator[K]{n: n}, true
}

func (t *OSTree[K]) InsertAll(keys ...K) {
	for _, key := range keys {
		t.Insert(key)
	}
}

// Emplace constructs the key through ctor and inserts it. When the
// constructed key duplicates an existing one the fresh node is discarded
// and (End, false) is returned.
func (t *OSTree[K]) Emplace(ctor func() K) (Iterator[K], bool) {
	n := newNode(ctor())
	if !t.insertNode(n) {
		return t.End(), false
	}
	return Iterator[K]{n: n}, true
}

// i1: Empty tree, the new node becomes the black root and both its slots
// thread to the sentinel.
func (t *OSTree[K]) insertNode(n *node[K]) bool {
	if /* i1 */ t.Empty() {
		t.end.tieLeft(n)
		t.leftmost, t.rightmost = n, n
		n.paint(Black)
	} else {
		if !t.insertNodeBST(n) {
			return false
		}

		incrSubtreeSizes(n.parent)

		if n == t.leftmost.getLeft() {
			t.leftmost = n
		}
		if n == t.rightmost.getRight() {
			t.rightmost = n
		}
	}

	n.stitch()
	t.insertRBFix(n)
	return true
}

// insertNodeBST splices the node as in a plain BST, replacing the thread
// that occupied the chosen slot with a real child. Returns false on an
// equivalent key.
func (t *OSTree[K]) insertNodeBST(n *node[K]) bool {
	cur := t.rootNode()
	parent := cur.parent
	onRight := false

	for cur != nil {
		parent = cur
		if t.less(cur.key, n.key) {
			onRight = true
			cur = cur.getRight()
		} else if t.less(n.key, cur.key) {
			onRight = false
			cur = cur.getLeft()
		} else {
			return false
		}
	}

	if onRight {
		parent.tieRight(n)
	} else {
		parent.tieLeft(n)
	}
	return true
}

/*
New node X is red by default.

<X> is a RED node.
[X] is a BLACK node (or NIL).

im1: Both the parent P and the uncle U are red, grandpa G is black.
(red-violation) Repaint and recurse from G, which may be red-violating in
turn.

	    [G]             <G>
	    / \             / \
	  <P> <U>  ====>  [P] [U]
	  /               /
	<X>             <X>

im2: The parent P is red but the uncle U is black, X is the opposite
direction to P. Rotate P towards the outside so im3 applies.

	  [G]                 [G]
	  / \    rotate(P)    / \
	<P> [U]  ========>  <X> [U]
	  \                 /
	  <X>             <P>

im3: The parent P is red, the uncle U is black, X is the same direction
as P. Rotate G against X and repaint.

	    [G]                 <P>               [P]
	    / \    rotate(G)    / \    repaint    / \
	  <P> [U]  ========>  <X> [G]  ======>  <X> <G>
	  /                         \                 \
	<X>                         [U]               [U]
*/
func (t *OSTree[K]) insertRBFix(n *node[K]) {
	parent := n.parent
	for !t.isRoot(n) && parent.isRed() {
		if parent.onLeft() {
			if uncle := n.uncle(); uncle.isRed() {
				/* im1 */
				n = t.uncleParentGrandRecolor(uncle, parent)
			} else {
				if /* im2 */ n.onRight() {
					t.leftRotate(parent)
					parent = n
				}
				/* im3 */
				t.rightRotate(t.parentGrandRecolor(parent))
				break
			}
		} else {
			if uncle := n.uncle(); uncle.isRed() {
				/* im1 */
				n = t.uncleParentGrandRecolor(uncle, parent)
			} else {
				if /* im2 */ n.onLeft() {
					t.rightRotate(parent)
					parent = n
				}
				/* im3 */
				t.leftRotate(t.parentGrandRecolor(parent))
				break
			}
		}
		parent = n.parent
	}

	t.rootNode().paint(Black)
}

func (t *OSTree[K]) parentGrandRecolor(parent *node[K]) *node[K] {
	parent.paint(Black)
	grand := parent.parent
	if !t.isRoot(parent) {
		grand.paint(Red)
	}
	return grand
}

func (t *OSTree[K]) uncleParentGrandRecolor(uncle, parent *node[K]) *node[K] {
	uncle.paint(Black)
	parent.paint(Black)
	grand := parent.parent
	if !t.isRoot(parent) {
		grand.paint(Red)
	}
	return grand
}

/*
		 |                         |
		 X                         Y
		/ \     leftRotate(X)     / \
	   A   Y    ============>    X   C
	      / \                   / \
	     B   C                 A   B

When B is absent, X's vacated right slot threads to its new in-order
successor, which is Y itself. The rotated pair's cached sizes are
recomputed from their children; nothing outside the pair changes.
*/
func (t *OSTree[K]) leftRotate(x *node[K]) {
	if x == nil || !x.hasRight() {
		panic( /* debug assertion */ "[ostree] left rotate without a real right child")
	}

	y := x.right

	if t.isRoot(x) {
		t.end.tieLeft(y)
	} else if x.onLeft() {
		x.parent.tieLeft(y)
	} else {
		x.parent.tieRight(y)
	}

	if y.hasLeft() {
		x.tieRight(y.left)
	} else {
		x.stitchRight(x.next())
	}
	y.tieLeft(x)

	x.size -= 1 + subtreeSize(y.getRight())
	y.size += 1 + subtreeSize(x.getLeft())
}

func (t *OSTree[K]) rightRotate(x *node[K]) {
	if x == nil || !x.hasLeft() {
		panic( /* debug assertion */ "[ostree] right rotate without a real left child")
	}

	y := x.left

	if t.isRoot(x) {
		t.end.tieLeft(y)
	} else if x.onLeft() {
		x.parent.tieLeft(y)
	} else {
		x.parent.tieRight(y)
	}

	if y.hasRight() {
		x.tieLeft(y.right)
	} else {
		x.stitchLeft(x.prev())
	}
	y.tieRight(x)

	x.size -= 1 + subtreeSize(y.getLeft())
	y.size += 1 + subtreeSize(x.getRight())
}

// Remove erases the key when present and reports whether it did.
func (t *OSTree[K]) Remove(key K) bool {
	nd := t.findEquiv(key)
	if nd == t.end {
		return false
	}
	t.deleteNode(nd)
	return true
}

// RemoveAt erases the node the iterator references and returns an
// iterator to its in-order successor, which may be End.
func (t *OSTree[K]) RemoveAt(pos Iterator[K]) Iterator[K] {
	next := pos.Next()
	t.deleteNode(pos.n)
	return next
}

// RemoveRange erases [first, last). Erasure proceeds through successor
// iterators, so last stays valid throughout.
func (t *OSTree[K]) RemoveRange(first, last Iterator[K]) Iterator[K] {
	for first != last {
		first = t.RemoveAt(first)
	}
	return first
}

func (t *OSTree[K]) deleteNode(z *node[K]) {
	t.deleteRBFix(z)
	z.parent, z.left, z.right = nil, nil, nil
	z.leftIsThread, z.rightIsThread = false, false
	z.size = 1
}

// spliceTarget picks the node Y actually unlinked from the tree and its
// single-or-nil replacement X. When z has two real children Y is the
// in-order successor.
func spliceTarget[K any](z *node[K]) (y, x *node[K]) {
	if !z.hasLeft() {
		return z, z.getRight()
	}
	if !z.hasRight() {
		return z, z.getLeft()
	}
	y = z.right.minimum()
	return y, y.getRight()
}

// transplant links v into u's place; v's own children are untouched.
func (t *OSTree[K]) transplant(u, v *node[K]) {
	if t.isRoot(u) {
		t.end.tieLeft(v)
	} else if u.onLeft() {
		u.parent.tieLeft(v)
	} else {
		u.parent.tieRight(v)
	}
}

func (t *OSTree[K]) deleteRBFix(z *node[K]) {
	prev := z.prev()
	next := z.next()

	y, x := spliceTarget(z)
	var parentOfX *node[K]

	if y != z {
		// z has two real children: move its successor y into z's place,
		// carrying over z's color and cached subtree size.
		zLeft := z.left
		zLeft.parent = y
		y.setLeft(zLeft)

		zRight := z.getRight()
		if y != zRight {
			parentOfX = y.parent
			if x != nil {
				x.parent = y.parent
			}
			y.parent.setLeft(x)
			y.setRight(zRight)
			zRight.parent = y
		} else {
			parentOfX = y
		}

		t.transplant(z, y)
		y.color, z.color = z.color, y.color
		y.size = z.size

		if !parentOfX.isSentinel {
			parentOfX.stitch()
		}

		y = z
	} else {
		parentOfX = y.parent
		if x != nil {
			x.parent = y.parent
		}
		t.transplant(z, x)

		if !parentOfX.isSentinel {
			parentOfX.stitch()
		}

		if t.leftmost == z {
			t.deleteUpdateLeftmost(z, x)
		}
		if t.rightmost == z {
			t.deleteUpdateRightmost(z, x)
		}
	}

	t.updateStitches(prev, next)
	decrSubtreeSizes(parentOfX)

	if y.isBlack() {
		t.deleteRBRebalance(x, parentOfX)
	}
}

// z was the minimum; its parent pointer still names its pre-splice slot.
func (t *OSTree[K]) deleteUpdateLeftmost(z, x *node[K]) {
	if !z.hasRight() {
		t.leftmost = z.parent
	} else {
		t.leftmost = x.minimum()
	}
}

func (t *OSTree[K]) deleteUpdateRightmost(z, x *node[K]) {
	if !z.hasLeft() {
		t.rightmost = z.parent
	} else {
		t.rightmost = x.maximum()
	}
}

// updateStitches rejoins the erased node's former neighbors: after the
// splice they are in-order adjacent, so any vacated facing slot must
// thread across the gap.
func (t *OSTree[K]) updateStitches(prev, next *node[K]) {
	if !prev.isSentinel && !prev.hasRight() {
		prev.stitchRight(prev.next())
	}
	if !next.isSentinel && !next.hasLeft() {
		next.stitchLeft(next.prev())
	}
}

/*
<X> is a RED node, [X] a BLACK node (or NIL), {X} either.

W is X's sibling, Wn the nephew on X's side, Wf the far nephew.

rm1: W is red, so P, Wn and Wf must be black. Rotate P towards X and
repaint so one of the following cases applies to the new sibling.

	  [P]                   <W>               [W]
	  / \    l-rotate(P)    / \    repaint    / \
	[X] <W>  ==========>  [P] [Wf]  ======>  <P> [Wf]
	    / \               / \               / \
	 [Wn] [Wf]          [X] [Wn]          [X] [Wn]

rm2: Both nephews are black. Paint W red, pushing the missing black up:
either P absorbs it (P red, terminate) or the deficit recurses at P.

	  {P}             {P}
	  / \             / \
	[X] [W]  ====>  [X] <W>
	    / \             / \
	 [Wn] [Wf]       [Wn] [Wf]

rm3: The near nephew is red, the far one black. Rotate W away from X and
repaint, turning the configuration into rm4.

	                        {P}                {P}
	  {P}                   / \                / \
	  / \    r-rotate(W)  [X] <Wn>   repaint  [X] [Wn]
	[X] [W]  ==========>        \    ======>       \
	    / \                     [W]                <W>
	  <Wn> [Wf]                   \                  \
	                              [Wf]               [Wf]

rm4: The far nephew is red. Rotate P towards X, move P's color onto W,
paint P and Wf black; the deficit is resolved, terminate.

	  {P}                   [W]                {W}
	  / \    l-rotate(P)    / \     repaint    / \
	[X] [W]  ==========>  {P} <Wf>  ======>  [P] [Wf]
	    / \               / \                / \
	 [Wn] <Wf>          [X] [Wn]           [X] [Wn]
*/
func (t *OSTree[K]) deleteRBRebalance(x, parentOfX *node[K]) {
	for !t.isRoot(x) && x.isBlack() {
		parentLeft := parentOfX.getLeft()
		xOnLeft := x == parentLeft

		var w *node[K]
		if xOnLeft {
			w = parentOfX.getRight()
		} else {
			w = parentLeft
		}
		if w == nil {
			break
		}

		if /* rm1 */ w.isRed() {
			w = t.deleteRebalanceRedSibling(w, xOnLeft, parentOfX)
		}
		if w == nil {
			break
		}

		if w.getLeft().isBlack() && w.getRight().isBlack() {
			/* rm2 */
			w.paint(Red)
			x = parentOfX
			parentOfX = parentOfX.parent
			continue
		}

		if xOnLeft {
			if /* rm3 */ w.getRight().isBlack() {
				w.getLeft().paint(Black)
				w.paint(Red)
				t.rightRotate(w)
				w = parentOfX.getRight()
			}
		} else {
			if /* rm3 */ w.getLeft().isBlack() {
				w.getRight().paint(Black)
				w.paint(Red)
				t.leftRotate(w)
				w = parentOfX.getLeft()
			}
		}

		/* rm4 */
		w.paint(parentOfX.color)
		parentOfX.paint(Black)

		var far *node[K]
		if xOnLeft {
			far = w.getRight()
		} else {
			far = w.getLeft()
		}
		if far != nil {
			far.paint(Black)
		}

		if xOnLeft {
			t.leftRotate(parentOfX)
		} else {
			t.rightRotate(parentOfX)
		}
		break
	}

	if x != nil {
		x.paint(Black)
	}
}

func (t *OSTree[K]) deleteRebalanceRedSibling(w *node[K], xOnLeft bool, parentOfX *node[K]) *node[K] {
	w.paint(Black)
	parentOfX.paint(Red)
	if xOnLeft {
		t.leftRotate(parentOfX)
		return parentOfX.getRight()
	}
	t.rightRotate(parentOfX)
	return parentOfX.getLeft()
}

// Clear unlinks every node by iterative parent chasing and resets the
// tree to empty. Infallible.
func (t *OSTree[K]) Clear() {
	freeSubtree(t.rootNode(), t.end)
	t.end.setLeft(nil)
	t.leftmost, t.rightmost = t.end, t.end
}

// Clone builds an independent structural copy: same keys, colors, sizes
// and shape. The traversal is iterative parent chasing; the copy's
// leftmost/rightmost cursors are recognized on the way and its threads
// are stitched in a second pass against the copy's own sentinel.
func (t *OSTree[K]) Clone() *OSTree[K] {
	cp := NewOSTreeFromLess[K](t.less)
	if t.Empty() {
		return cp
	}

	src := t.rootNode()
	dst := cloneNode(src)
	cp.end.tieLeft(dst)

	for {
		if src.hasLeft() && !dst.hasLeft() {
			src = src.left
			dst.tieLeft(cloneNode(src))
			dst = dst.left
		} else if src.hasRight() && !dst.hasRight() {
			src = src.right
			dst.tieRight(cloneNode(src))
			dst = dst.right
		} else {
			if src == t.leftmost {
				cp.leftmost = dst
			}
			if src == t.rightmost {
				cp.rightmost = dst
			}
			dst = dst.parent
			parent := src.parent
			src = parent
			if parent == t.end {
				break
			}
		}
	}

	stitchSubtree(cp.rootNode())
	return cp
}

func cloneNode[K any](src *node[K]) *node[K] {
	return &node[K]{
		key:   src.key,
		size:  src.size,
		color: src.color,
	}
}

// Swap exchanges the contents of the two trees without copying elements.
// Each sentinel keeps its identity, so the extreme threads of both node
// graphs are re-anchored to their new owner's sentinel.
func (t *OSTree[K]) Swap(that *OSTree[K]) {
	if t == that {
		return
	}

	tRoot, thatRoot := t.rootNode(), that.rootNode()
	t.end.tieLeft(thatRoot)
	that.end.tieLeft(tRoot)

	t.leftmost, that.leftmost = that.leftmost, t.leftmost
	t.relinkLeftmost(that)
	that.relinkLeftmost(t)

	t.rightmost, that.rightmost = that.rightmost, t.rightmost
	t.relinkRightmost(that)
	that.relinkRightmost(t)

	t.less, that.less = that.less, t.less
}

func (t *OSTree[K]) relinkLeftmost(that *OSTree[K]) {
	if t.leftmost == that.end {
		t.leftmost = t.end
	} else {
		t.leftmost.stitchLeft(t.end)
	}
}

func (t *OSTree[K]) relinkRightmost(that *OSTree[K]) {
	if t.rightmost == that.end {
		t.rightmost = t.end
	} else {
		t.rightmost.stitchRight(t.end)
	}
}

// Equal reports whether both trees hold element-wise equivalent keys in
// order. The comparison uses the receiver's less func.
func (t *OSTree[K]) Equal(that *OSTree[K]) bool {
	if t.Len() != that.Len() {
		return false
	}
	it, jt := t.Begin(), that.Begin()
	for it != t.End() {
		if !t.equiv(it.Key(), jt.Key()) {
			return false
		}
		it, jt = it.Next(), jt.Next()
	}
	return true
}

// Foreach walks the keys in order until action returns false.
func (t *OSTree[K]) Foreach(action func(idx int64, color RBColor, key K) bool) {
	idx := int64(0)
	for it := t.Begin(); it != t.End(); it = it.Next() {
		if !action(idx, it.n.color, it.n.key) {
			return
		}
		idx++
	}
}

// Keys returns the keys in ascending order.
func (t *OSTree[K]) Keys() []K {
	keys := make([]K, 0, t.Len())
	for it := t.Begin(); it != t.End(); it = it.Next() {
		keys = append(keys, it.n.key)
	}
	return keys
}

var _ OrderedSet[int] = (*OSTree[int])(nil)
