package query

import (
	"fmt"
	"strings"

	"github.com/Konsultn-Engineering/sqlqb/dialect"
)

// Interpolate writes the literal form of every argument in place of its
// placeholder. The output is meant for people reading logs, not for a
// database. Placeholders inside quoted strings and identifiers are left
// alone.
func Interpolate(d dialect.Dialect, sql string, args []any) (string, error) {
	numbered := strings.HasPrefix(d.Placeholder(1), "$")

	var sb strings.Builder
	sb.Grow(len(sql) + 8*len(args))

	var (
		quote byte
		next  int
		used  = make([]bool, len(args))
	)

	for i := 0; i < len(sql); i++ {
		c := sql[i]

		if quote != 0 {
			if c == quote {
				quote = 0
			}
			sb.WriteByte(c)
			continue
		}

		switch {
		case c == '\'' || c == '"' || c == '`':
			quote = c
			sb.WriteByte(c)

		case c == '?' && !numbered:
			if next >= len(args) {
				return "", fmt.Errorf("%w: more than %d placeholders", ErrArgCount, len(args))
			}
			sb.WriteString(d.RenderValue(args[next]))
			used[next] = true
			next++

		case c == '$' && numbered && i+1 < len(sql) && isDigit(sql[i+1]):
			j := i + 1
			n := 0
			for j < len(sql) && isDigit(sql[j]) {
				n = n*10 + int(sql[j]-'0')
				j++
			}
			if n < 1 || n > len(args) {
				return "", fmt.Errorf("%w: $%d with %d arguments", ErrArgCount, n, len(args))
			}
			sb.WriteString(d.RenderValue(args[n-1]))
			used[n-1] = true
			i = j - 1

		default:
			sb.WriteByte(c)
		}
	}

	for i, ok := range used {
		if !ok {
			return "", fmt.Errorf("%w: argument %d is never referenced", ErrArgCount, i+1)
		}
	}
	return sb.String(), nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
