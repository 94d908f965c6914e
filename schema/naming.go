package schema

import (
	"strings"
	"unicode"

	pluralizer "github.com/gertd/go-pluralize"
)

// pluralizeClient is shared; the client is safe for concurrent use.
var pluralizeClient = pluralizer.NewClient()

// NamingStrategy derives table and column names from Go identifiers.
type NamingStrategy interface {
	TableName(structName string) string
	ColumnName(fieldName string) string
}

// SnakeCase names tables as plural snake_case (BlogPost → blog_posts) and
// columns as snake_case (UserID → user_id). With Singular set tables keep
// the singular form.
type SnakeCase struct {
	Singular bool
}

func (s SnakeCase) TableName(structName string) string {
	name := toSnakeCase(structName)
	if s.Singular {
		return name
	}
	return pluralize(name)
}

func (s SnakeCase) ColumnName(fieldName string) string {
	return toSnakeCase(fieldName)
}

// toSnakeCase handles acronyms and digits: HTTPServer → http_server,
// OAuth2Token → o_auth2_token.
func toSnakeCase(name string) string {
	if name == "" {
		return ""
	}

	if strings.Contains(name, "_") && !hasUpperCase(name) {
		return name
	}

	var result strings.Builder
	result.Grow(len(name) + 4)

	runes := []rune(name)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			// aB → a_b, a1B → a1_b, ABc → a_bc
			if unicode.IsLower(prev) || unicode.IsDigit(prev) ||
				(unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])) {
				result.WriteByte('_')
			}
		}
		result.WriteRune(unicode.ToLower(r))
	}

	return result.String()
}

// pluralize works on the last word of a snake_case name so that
// blog_post becomes blog_posts rather than a pluralized compound.
func pluralize(name string) string {
	if name == "" {
		return ""
	}
	head, last := "", name
	if i := strings.LastIndexByte(name, '_'); i >= 0 {
		head, last = name[:i+1], name[i+1:]
	}
	if last == "" {
		return name
	}
	return head + strings.ToLower(pluralizeClient.Plural(last))
}

func hasUpperCase(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}
