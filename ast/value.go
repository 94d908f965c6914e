package ast

import "github.com/Konsultn-Engineering/sqlqb/utils"

// Value is a bound parameter.
type Value struct {
	Val any
}

var valueFingerprint = utils.U64("val")

func NewValue(val any) *Value {
	v := valuePool.Get().(*Value)
	v.Val = val
	return v
}

func (v *Value) Type() NodeType           { return NodeValue }
func (v *Value) Accept(vis Visitor) error { return vis.VisitValue(v) }
func (v *Value) Fingerprint() uint64      { return valueFingerprint }

func (v *Value) Release() {
	v.Val = nil
	valuePool.Put(v)
}
