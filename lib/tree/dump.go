package tree

import (
	"fmt"
	"io"
)

// WriteDot renders the tree in GraphViz dot format: real child edges
// solid, parent edges dashed, threads dotted. Debugging aid; pipe the
// output through `dot -Tpng`.
func (t *OSTree[K]) WriteDot(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "digraph G{\n rankdir=TB;\n node[ shape = doubleoctagon; style = filled ];\n edge[ arrowhead = vee ];\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "NODE%p [ label = \"PAST-END\" color = \"#00FFFF\" fontcolor = \"#000000\" fontsize = \"10\" shape = \"diamond\" ];\n", t.end); err != nil {
		return err
	}

	if root := t.rootNode(); root != nil {
		if _, err := fmt.Fprintf(w, "NODE%p -> NODE%p [ label = \"L\" ];\n", t.end, root); err != nil {
			return err
		}
	}

	for _, n := range collectNodes(t) {
		if err := writeNodeDot(w, n); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "\n}\n")
	return err
}

func writeNodeDot[K any](w io.Writer, n *node[K]) error {
	color, fontColor := "#000000", "#FFFFFF"
	if n.isRed() {
		color, fontColor = "#FD0000", "#000000"
	}
	if _, err := fmt.Fprintf(w,
		"NODE%p [ label = < %v <BR /> <FONT POINT-SIZE=\"10\"> size: %d </FONT>> color = \"%s\" fontcolor = \"%s\" ];\n",
		n, n.key, n.size, color, fontColor); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "NODE%p -> NODE%p [ style = \"dashed\" label = \"P\" ];\n", n, n.parent); err != nil {
		return err
	}

	if l := n.getLeft(); l != nil {
		if _, err := fmt.Fprintf(w, "NODE%p -> NODE%p [ label = \"L\" ];\n", n, l); err != nil {
			return err
		}
	} else if thread := n.getLeftThread(); thread != nil {
		if _, err := fmt.Fprintf(w, "NODE%p -> NODE%p [ label = \"PREV\" style = \"dotted\" fontcolor = \"#a3a3c2\" color = \"#a3a3c2\" ];\n", n, thread); err != nil {
			return err
		}
	}

	if r := n.getRight(); r != nil {
		if _, err := fmt.Fprintf(w, "NODE%p -> NODE%p [ label = \"R\" ];\n", n, r); err != nil {
			return err
		}
	} else if thread := n.getRightThread(); thread != nil {
		if _, err := fmt.Fprintf(w, "NODE%p -> NODE%p [ label = \"NEXT\" style = \"dotted\" fontcolor = \"#a3a3c2\" color = \"#a3a3c2\" ];\n", n, thread); err != nil {
			return err
		}
	}
	return nil
}
