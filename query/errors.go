package query

import (
	"errors"
	"fmt"
)

// ErrQueryBuilder is the root of every error raised while configuring or
// resolving a query. Match specific failures with errors.Is.
var ErrQueryBuilder = errors.New("query builder")

var (
	ErrInvalidTableName = fmt.Errorf("%w: invalid table name", ErrQueryBuilder)
	ErrUnknownJoinType  = fmt.Errorf("%w: unknown join type", ErrQueryBuilder)
	ErrUnsupportedValue = fmt.Errorf("%w: unsupported condition value", ErrQueryBuilder)
	ErrInvalidColumn    = fmt.Errorf("%w: invalid column", ErrQueryBuilder)
	ErrNoColumns        = fmt.Errorf("%w: no columns selected", ErrQueryBuilder)
	ErrNoValues         = fmt.Errorf("%w: no values given", ErrQueryBuilder)
	ErrNoJoin           = fmt.Errorf("%w: no join declared", ErrQueryBuilder)
	ErrJoinNotSupported = fmt.Errorf("%w: statement does not take joins", ErrQueryBuilder)
	ErrNoStatement      = fmt.Errorf("%w: no statement configured", ErrQueryBuilder)
	ErrArgCount         = fmt.Errorf("%w: placeholder and argument count differ", ErrQueryBuilder)
)
