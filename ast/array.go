package ast

import "github.com/Konsultn-Engineering/sqlqb/utils"

// Array is a parenthesised list of bound parameters, as used by IN.
type Array struct {
	Values []Value
}

func NewArray(values []any) *Array {
	a := arrayPool.Get().(*Array)
	a.Values = a.Values[:0]

	for _, val := range values {
		a.Values = append(a.Values, Value{Val: val})
	}
	return a
}

func (a *Array) Type() NodeType {
	return NodeArray
}

func (a *Array) Accept(v Visitor) error {
	return v.VisitArray(a)
}

// Fingerprint depends on the element count only.
func (a *Array) Fingerprint() uint64 {
	return utils.Chain("array", uint64(len(a.Values)))
}

func (a *Array) Release() {
	for i := range a.Values {
		a.Values[i].Val = nil
	}
	a.Values = a.Values[:0]
	arrayPool.Put(a)
}
