package printer

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/repr"
	"github.com/emicklei/dot"

	"github.com/sandrolain/gocalc/pkg/types"
)

// Dump writes a Go-syntax representation of the tree to w.
func Dump(w io.Writer, node types.Node) {
	repr.New(w, repr.Indent("  "), repr.OmitEmpty(true)).Println(node)
}

// WriteDot writes the tree as a Graphviz digraph. Nodes are numbered n0, n1,
// ... in pre-order.
func WriteDot(w io.Writer, node types.Node) error {
	g := dot.NewGraph(dot.Directed)
	g.ID("expression")

	b := &dotBuilder{g: g}
	b.add(node)

	_, err := io.WriteString(w, g.String())
	return err
}

type dotBuilder struct {
	g *dot.Graph
	n int
}

// add emits n and its children and returns n's graph node.
func (b *dotBuilder) add(n types.Node) dot.Node {
	id := "n" + strconv.Itoa(b.n)
	b.n++

	var label string
	var children []types.Node
	switch n := n.(type) {
	case *types.Constant:
		label = strconv.FormatInt(n.Value, 10)
	case *types.Negate:
		label, children = "neg", []types.Node{n.Operand}
	case *types.Add:
		label, children = "+", []types.Node{n.Left, n.Right}
	case *types.Subtract:
		label, children = "-", []types.Node{n.Left, n.Right}
	case *types.Parenthesized:
		label, children = "( )", []types.Node{n.Inner}
	default:
		label = fmt.Sprintf("%T", n)
	}

	gn := b.g.Node(id).Label(label)
	gn.Attr("shape", "box")
	gn.Attr("fontname", "monospace")
	for _, c := range children {
		b.g.Edge(gn, b.add(c))
	}
	return gn
}
