package ast

import "github.com/Konsultn-Engineering/sqlqb/utils"

// Function is a call such as COUNT(*). Alias is written as-is.
type Function struct {
	Name  string
	Args  []Node
	Alias string
}

func (f *Function) Type() NodeType         { return NodeFunction }
func (f *Function) Accept(v Visitor) error { return v.VisitFunction(f) }
func (f *Function) Fingerprint() uint64 {
	return utils.Mix64(utils.Chain("func:"+f.Name, fingerprints(f.Args)...), utils.U64(f.Alias))
}

func (f *Function) Release() {
	releaseAll(f.Args)
	f.Args = nil
}
