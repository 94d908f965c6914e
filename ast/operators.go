package ast

// Comparison
const (
	OpEqual    = "="
	OpNotEqual = "!="
)

// Logical Operators
const (
	OpAnd = "AND"
)

// Set Operations
const (
	OpIn    = "in"
	OpNotIn = "not in"
)

// Null Operations
const (
	OpIsNull    = "IS NULL"
	OpIsNotNull = "IS NOT NULL"
)
