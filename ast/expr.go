package ast

import "github.com/Konsultn-Engineering/sqlqb/utils"

// Literal is a boolean constant written inline, never bound.
type Literal struct {
	Val bool
}

func (l *Literal) Type() NodeType         { return NodeLiteral }
func (l *Literal) Accept(v Visitor) error { return v.VisitLiteral(l) }
func (l *Literal) Fingerprint() uint64 {
	if l.Val {
		return utils.U64("lit:true")
	}
	return utils.U64("lit:false")
}

// Raw is SQL text written verbatim.
type Raw struct {
	SQL string
}

func (r *Raw) Type() NodeType         { return NodeRaw }
func (r *Raw) Accept(v Visitor) error { return v.VisitRaw(r) }
func (r *Raw) Fingerprint() uint64    { return utils.Strings("raw", r.SQL) }

type BinaryExpr struct {
	Left     Node
	Operator string
	Right    Node
}

func NewBinaryExpr(left Node, op string, right Node) *BinaryExpr {
	b := binaryExprPool.Get().(*BinaryExpr)
	b.Left = left
	b.Operator = op
	b.Right = right
	return b
}

func (b *BinaryExpr) Type() NodeType         { return NodeBinaryExpr }
func (b *BinaryExpr) Accept(v Visitor) error { return v.VisitBinaryExpr(b) }
func (b *BinaryExpr) Fingerprint() uint64 {
	return utils.Chain("bin:"+b.Operator, fingerprintOf(b.Left), fingerprintOf(b.Right))
}

func (b *BinaryExpr) Release() {
	Release(b.Left)
	Release(b.Right)
	b.Left, b.Right, b.Operator = nil, nil, ""
	binaryExprPool.Put(b)
}

// UnaryExpr is a postfix operator such as IS NULL.
type UnaryExpr struct {
	Operand  Node
	Operator string
}

func NewUnaryExpr(operand Node, op string) *UnaryExpr {
	u := unaryExprPool.Get().(*UnaryExpr)
	u.Operand = operand
	u.Operator = op
	return u
}

func (u *UnaryExpr) Type() NodeType         { return NodeUnaryExpr }
func (u *UnaryExpr) Accept(v Visitor) error { return v.VisitUnaryExpr(u) }
func (u *UnaryExpr) Fingerprint() uint64 {
	return utils.Chain("unary:"+u.Operator, fingerprintOf(u.Operand))
}

func (u *UnaryExpr) Release() {
	Release(u.Operand)
	u.Operand, u.Operator = nil, ""
	unaryExprPool.Put(u)
}

func fingerprintOf(n Node) uint64 {
	if n == nil {
		return 0
	}
	return n.Fingerprint()
}

func fingerprints(nodes []Node) []uint64 {
	fps := make([]uint64, len(nodes))
	for i, n := range nodes {
		fps[i] = fingerprintOf(n)
	}
	return fps
}
