// Package printer turns expression trees back into text.
//
// Render produces the canonical source form: every binary operator and
// every parenthesis is surrounded by single spaces, and a unary minus is
// written directly in front of its literal.
//
//	5 +6 -   ( 7+ 4)    →   5 + 6 - ( 7 + 4 )
//
// Parsing a canonical rendering yields a tree that renders identically.
package printer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandrolain/gocalc/pkg/types"
)

// Render returns the canonical text of a tree.
func Render(node types.Node) string {
	var sb strings.Builder
	render(&sb, node)
	return sb.String()
}

func render(sb *strings.Builder, node types.Node) {
	switch n := node.(type) {
	case *types.Constant:
		sb.WriteString(strconv.FormatInt(n.Value, 10))
	case *types.Negate:
		sb.WriteByte('-')
		render(sb, n.Operand)
	case *types.Add:
		render(sb, n.Left)
		sb.WriteString(" + ")
		render(sb, n.Right)
	case *types.Subtract:
		render(sb, n.Left)
		sb.WriteString(" - ")
		render(sb, n.Right)
	case *types.Parenthesized:
		sb.WriteString("( ")
		render(sb, n.Inner)
		sb.WriteString(" )")
	default:
		panic(fmt.Sprintf("printer: unknown node %T", node))
	}
}
