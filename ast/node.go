package ast

type NodeType int

const (
	NodeSelect NodeType = iota
	NodeInsert
	NodeUpdate
	NodeDelete
	NodeColumn
	NodeTable
	NodeValue
	NodeArray
	NodeLiteral
	NodeRaw
	NodeFunction
	NodeBinaryExpr
	NodeUnaryExpr
	NodeAssignment
	NodeWhere
	NodeJoin
)

type Node interface {
	Type() NodeType
	Accept(v Visitor) error
	// Fingerprint identifies the shape of the node. Bound values are not
	// part of it, so two statements that differ only in their arguments
	// render to the same SQL text and share a fingerprint.
	Fingerprint() uint64
}

// Releaser is implemented by nodes that come from a pool.
type Releaser interface {
	Release()
}

// Release returns n and its pooled children to their pools. Nodes must not
// be used after release.
func Release(n Node) {
	if n == nil {
		return
	}
	if r, ok := n.(Releaser); ok {
		r.Release()
	}
}
