package schema

import (
	"fmt"
	"reflect"
	"strings"
)

const tagName = "db"

// fieldTag is the parsed form of `db:"name,pk,readonly"`.
type fieldTag struct {
	Column   string
	Skip     bool
	Primary  bool
	ReadOnly bool
}

func parseTag(f reflect.StructField, naming NamingStrategy) (fieldTag, error) {
	raw, ok := f.Tag.Lookup(tagName)
	if raw == "-" {
		return fieldTag{Skip: true}, nil
	}

	var tag fieldTag
	parts := strings.Split(raw, ",")
	if ok {
		tag.Column = strings.TrimSpace(parts[0])
	}
	if tag.Column == "" {
		tag.Column = naming.ColumnName(f.Name)
	}

	for _, opt := range parts[1:] {
		switch strings.TrimSpace(opt) {
		case "":
		case "pk", "primary":
			tag.Primary = true
		case "readonly":
			tag.ReadOnly = true
		default:
			return fieldTag{}, fmt.Errorf("unknown option %q in tag of field %s", opt, f.Name)
		}
	}
	return tag, nil
}
