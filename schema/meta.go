package schema

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/Konsultn-Engineering/sqlqb/query"
	lru "github.com/hashicorp/golang-lru/v2"
)

// ErrInvalidModel is returned for anything that is not a struct or a
// pointer to one.
var ErrInvalidModel = errors.New("schema: invalid model")

// ErrNoPrimaryKey is returned by statements that locate a row by its key
// when the model declares none.
var ErrNoPrimaryKey = errors.New("schema: model has no primary key")

// TableNamer overrides the derived table name.
type TableNamer interface {
	TableName() string
}

type Column struct {
	Field    string
	Name     string
	Index    []int
	Primary  bool
	ReadOnly bool
}

// Meta maps a struct type onto a table. Columns follow field order.
type Meta struct {
	Type    reflect.Type
	Table   string
	Columns []Column
}

const metaCacheSize = 256

// Describer builds and caches Meta values. Safe for concurrent use.
type Describer struct {
	naming NamingStrategy
	cache  *lru.Cache[reflect.Type, *Meta]
}

func NewDescriber(naming NamingStrategy, size int) (*Describer, error) {
	if naming == nil {
		naming = SnakeCase{}
	}
	c, err := lru.New[reflect.Type, *Meta](size)
	if err != nil {
		return nil, fmt.Errorf("schema: meta cache: %w", err)
	}
	return &Describer{naming: naming, cache: c}, nil
}

var defaultDescriber = func() *Describer {
	d, err := NewDescriber(SnakeCase{}, metaCacheSize)
	if err != nil {
		panic(err)
	}
	return d
}()

// Describe returns the table mapping of model with the default naming.
func Describe(model any) (*Meta, error) {
	return defaultDescriber.Describe(model)
}

func (d *Describer) Describe(model any) (*Meta, error) {
	t := reflect.TypeOf(model)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %T", ErrInvalidModel, model)
	}

	if meta, ok := d.cache.Get(t); ok {
		return meta, nil
	}

	meta, err := d.build(t)
	if err != nil {
		return nil, err
	}
	d.cache.Add(t, meta)
	return meta, nil
}

func (d *Describer) build(t reflect.Type) (*Meta, error) {
	meta := &Meta{
		Type:    t,
		Columns: make([]Column, 0, t.NumField()),
	}

	if tn, ok := reflect.New(t).Interface().(TableNamer); ok {
		meta.Table = tn.TableName()
	} else {
		meta.Table = d.naming.TableName(t.Name())
	}

	seen := make(map[string]string, t.NumField())
	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() || f.Anonymous || !reachable(t, f.Index) {
			continue
		}

		tag, err := parseTag(f, d.naming)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidModel, t, err)
		}
		if tag.Skip {
			continue
		}
		if prev, dup := seen[tag.Column]; dup {
			return nil, fmt.Errorf("%w: %s: fields %s and %s both map to column %q", ErrInvalidModel, t, prev, f.Name, tag.Column)
		}
		seen[tag.Column] = f.Name

		meta.Columns = append(meta.Columns, Column{
			Field:    f.Name,
			Name:     tag.Column,
			Index:    f.Index,
			Primary:  tag.Primary,
			ReadOnly: tag.ReadOnly,
		})
	}

	if len(meta.Columns) == 0 {
		return nil, fmt.Errorf("%w: %s has no mapped fields", ErrInvalidModel, t)
	}
	return meta, nil
}

func (m *Meta) ColumnNames() []string {
	names := make([]string, len(m.Columns))
	for i, c := range m.Columns {
		names[i] = c.Name
	}
	return names
}

func (m *Meta) TableRef() query.TableRef {
	return query.Table(m.Table)
}

// Select starts a SELECT of every mapped column.
func (m *Meta) Select(c *query.Compiler) *query.Builder {
	return compiler(c).Select(m.TableRef(), m.ColumnNames()...)
}

// Insert starts an INSERT of model's writable columns.
func (m *Meta) Insert(c *query.Compiler, model any, ignore bool) (*query.Builder, error) {
	values, err := m.values(model, func(col Column) bool { return !col.ReadOnly })
	if err != nil {
		return nil, err
	}
	return compiler(c).Insert(m.TableRef(), values, ignore), nil
}

// Update starts an UPDATE of model's writable non-key columns, matched by
// its primary key.
func (m *Meta) Update(c *query.Compiler, model any) (*query.Builder, error) {
	where, err := m.key(model)
	if err != nil {
		return nil, err
	}
	values, err := m.values(model, func(col Column) bool { return !col.ReadOnly && !col.Primary })
	if err != nil {
		return nil, err
	}
	return compiler(c).Update(m.TableRef(), values).Where(where), nil
}

// Delete starts a DELETE of the row holding model's primary key.
func (m *Meta) Delete(c *query.Compiler, model any) (*query.Builder, error) {
	where, err := m.key(model)
	if err != nil {
		return nil, err
	}
	return compiler(c).Delete(m.TableRef(), where), nil
}

func (m *Meta) key(model any) (query.Map, error) {
	key, err := m.values(model, func(col Column) bool { return col.Primary })
	if err != nil {
		return nil, err
	}
	if len(key) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoPrimaryKey, m.Type)
	}
	return key, nil
}

func (m *Meta) values(model any, keep func(Column) bool) (query.Map, error) {
	rv := reflect.ValueOf(model)
	if !rv.IsValid() {
		return nil, fmt.Errorf("%w: nil model", ErrInvalidModel)
	}
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("%w: nil %s", ErrInvalidModel, rv.Type())
		}
		rv = rv.Elem()
	}
	if rv.Type() != m.Type {
		return nil, fmt.Errorf("%w: got %s, want %s", ErrInvalidModel, rv.Type(), m.Type)
	}

	values := make(query.Map, 0, len(m.Columns))
	for _, col := range m.Columns {
		if !keep(col) {
			continue
		}
		var v any
		// A nil embedded pointer leaves its promoted fields NULL.
		if fv, err := rv.FieldByIndexErr(col.Index); err == nil {
			v = fv.Interface()
		}
		values = append(values, query.Entry{Key: col.Name, Value: v})
	}
	return values, nil
}

// reachable reports whether every struct embedded on the way to a promoted
// field is exported.
func reachable(t reflect.Type, index []int) bool {
	for _, i := range index[:len(index)-1] {
		f := t.Field(i)
		if !f.IsExported() {
			return false
		}
		t = f.Type
		if t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
	}
	return true
}

func compiler(c *query.Compiler) *query.Compiler {
	if c == nil {
		return query.Default()
	}
	return c
}
