package query

import (
	"database/sql/driver"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"
)

// ColumnRef marks a value as a reference to another column instead of a
// bound parameter: Where(M("t.owner_id", Col("u.id"))).
type ColumnRef string

func Col(name string) ColumnRef {
	return ColumnRef(name)
}

// Ident is a column name, optionally qualified by a table name or alias.
type Ident struct {
	Table string
	Name  string
}

// ParseIdent splits "alias.column" or "column".
func ParseIdent(s string) (Ident, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Ident{}, fmt.Errorf("%w: empty name", ErrInvalidColumn)
	}

	parts := strings.Split(s, ".")
	switch len(parts) {
	case 1:
		return Ident{Name: parts[0]}, nil
	case 2:
		if parts[0] == "" || parts[1] == "" {
			return Ident{}, fmt.Errorf("%w: %q", ErrInvalidColumn, s)
		}
		return Ident{Table: parts[0], Name: parts[1]}, nil
	default:
		return Ident{}, fmt.Errorf("%w: %q has more than two parts", ErrInvalidColumn, s)
	}
}

func (i Ident) String() string {
	if i.Table == "" {
		return i.Name
	}
	return i.Table + "." + i.Name
}

// identPattern matches the bare `column` and `alias.column` forms that are
// read as column references inside ON conditions.
var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

func looksLikeIdent(s string) bool {
	return identPattern.MatchString(s)
}

type valueKind int

const (
	kindScalar valueKind = iota
	kindNull
	kindList
	kindColumn
)

var (
	timeType   = reflect.TypeOf(time.Time{})
	valuerType = reflect.TypeOf((*driver.Valuer)(nil)).Elem()
)

// classify sorts a condition or assignment value. Scalars come back with
// pointers dereferenced; lists come back flattened into []any.
func classify(v any) (valueKind, any, []any, error) {
	switch val := v.(type) {
	case nil:
		return kindNull, nil, nil, nil
	case ColumnRef:
		return kindColumn, val, nil, nil
	case driver.Valuer, []byte, time.Time,
		string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return kindScalar, v, nil, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return kindNull, nil, nil, nil
		}
		return classify(rv.Elem().Interface())
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return kindScalar, v, nil, nil
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return kindScalar, v, nil, nil
		}
		list, err := flatten(rv)
		if err != nil {
			return 0, nil, nil, err
		}
		return kindList, nil, list, nil
	case reflect.Struct:
		if rv.Type().ConvertibleTo(timeType) || rv.Type().Implements(valuerType) {
			return kindScalar, v, nil, nil
		}
	}

	return 0, nil, nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
}

func flatten(rv reflect.Value) ([]any, error) {
	list := make([]any, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		kind, scalar, _, err := classify(rv.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		if kind != kindScalar {
			return nil, fmt.Errorf("%w: element %d of %s must be a scalar", ErrUnsupportedValue, i, rv.Type())
		}
		list = append(list, scalar)
	}
	return list, nil
}
