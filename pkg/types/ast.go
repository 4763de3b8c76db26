package types

// Node is a node of the expression tree.
//
// The set of node kinds is closed: only the types declared in this file
// implement Node. Consumers switch on the concrete type and can rely on
// every case being one of Constant, Negate, Add, Subtract or Parenthesized.
//
// Nodes are built bottom-up by the parser and never mutated afterwards.
// A child belongs to exactly one parent.
type Node interface {
	// Pos returns the byte offset in the source where the node starts.
	Pos() int

	node()
}

// Constant is an integer literal.
type Constant struct {
	Value    int64
	Position int
}

// Negate is a unary minus. The grammar only allows it directly in front
// of a literal, so Operand is always a *Constant when built by the parser.
type Negate struct {
	Operand  Node
	Position int
}

// Add is a binary '+'.
type Add struct {
	Left, Right Node
	Position    int
}

// Subtract is a binary '-'.
type Subtract struct {
	Left, Right Node
	Position    int
}

// Parenthesized wraps a bracketed sub-expression. It does not change the
// value, only the canonical rendering.
type Parenthesized struct {
	Inner    Node
	Position int
}

// NewConstant returns a literal node.
func NewConstant(value int64, position int) *Constant {
	return &Constant{Value: value, Position: position}
}

// NewNegate returns a unary minus node.
func NewNegate(operand Node, position int) *Negate {
	return &Negate{Operand: operand, Position: position}
}

// NewAdd returns an addition node positioned at its left operand.
func NewAdd(left, right Node) *Add {
	return &Add{Left: left, Right: right, Position: left.Pos()}
}

// NewSubtract returns a subtraction node positioned at its left operand.
func NewSubtract(left, right Node) *Subtract {
	return &Subtract{Left: left, Right: right, Position: left.Pos()}
}

// NewParenthesized returns a node for "( inner )" opening at position.
func NewParenthesized(inner Node, position int) *Parenthesized {
	return &Parenthesized{Inner: inner, Position: position}
}

func (n *Constant) Pos() int      { return n.Position }
func (n *Negate) Pos() int        { return n.Position }
func (n *Add) Pos() int           { return n.Position }
func (n *Subtract) Pos() int      { return n.Position }
func (n *Parenthesized) Pos() int { return n.Position }

func (*Constant) node()      {}
func (*Negate) node()        {}
func (*Add) node()           {}
func (*Subtract) node()      {}
func (*Parenthesized) node() {}

// NodeType identifies the kind of a node, mostly for diagnostics.
type NodeType string

const (
	NodeConstant      NodeType = "constant"
	NodeNegate        NodeType = "negate"
	NodeAdd           NodeType = "add"
	NodeSubtract      NodeType = "subtract"
	NodeParenthesized NodeType = "parenthesized"
)

// TypeOf returns the NodeType of n, or "" for nil.
func TypeOf(n Node) NodeType {
	switch n.(type) {
	case *Constant:
		return NodeConstant
	case *Negate:
		return NodeNegate
	case *Add:
		return NodeAdd
	case *Subtract:
		return NodeSubtract
	case *Parenthesized:
		return NodeParenthesized
	default:
		return ""
	}
}
