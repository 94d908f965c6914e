package ast

import (
	"strconv"

	"github.com/Konsultn-Engineering/sqlqb/utils"
)

type JoinType int

const (
	JoinInner JoinType = iota
	JoinLeft
)

// Keyword returns the SQL spelling of the join.
func (t JoinType) Keyword() string {
	switch t {
	case JoinLeft:
		return "LEFT JOIN"
	default:
		return "JOIN" // INNER JOIN → JOIN
	}
}

// JoinClause is one JOIN with its ON predicate. Conditions are joined with
// AND.
type JoinClause struct {
	JoinType   JoinType
	Table      *Table
	Conditions []Node
}

func NewJoinClause(joinType JoinType, table *Table, conditions ...Node) *JoinClause {
	j := joinClausePool.Get().(*JoinClause)
	j.JoinType = joinType
	j.Table = table
	j.Conditions = append(j.Conditions[:0], conditions...)
	return j
}

func (j *JoinClause) Type() NodeType         { return NodeJoin }
func (j *JoinClause) Accept(v Visitor) error { return v.VisitJoinClause(j) }

func (j *JoinClause) Fingerprint() uint64 {
	fp := utils.Chain("join:"+strconv.Itoa(int(j.JoinType)), fingerprints(j.Conditions)...)
	if j.Table != nil {
		fp = utils.Mix64(fp, j.Table.Fingerprint())
	}
	return fp
}

func (j *JoinClause) Release() {
	if j == nil {
		return
	}
	if j.Table != nil {
		j.Table.Release()
		j.Table = nil
	}
	releaseAll(j.Conditions)
	j.Conditions = j.Conditions[:0]
	j.JoinType = 0
	joinClausePool.Put(j)
}

func joinFingerprints(joins []*JoinClause) []uint64 {
	fps := make([]uint64, len(joins))
	for i, j := range joins {
		fps[i] = j.Fingerprint()
	}
	return fps
}

func releaseJoins(joins []*JoinClause) {
	for i, j := range joins {
		j.Release()
		joins[i] = nil
	}
}
