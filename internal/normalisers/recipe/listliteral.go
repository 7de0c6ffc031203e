package recipe

import (
	"fmt"
	"strings"
)

// parseListLiteral parses the Python-style list-of-strings syntax used by the
// recipe dataset, e.g. `["flour", "sugar"]` or `['Boil pasta', 'Mix sauce']`.
// Only flat lists of single- or double-quoted strings are accepted. An empty
// input parses as an empty list; anything else that deviates from the syntax
// is an error, which callers degrade to an empty list.
func parseListLiteral(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, fmt.Errorf("not a list literal: %.20q", s)
	}

	inner := []rune(s[1 : len(s)-1])
	var items []string

	i := 0
	skipSpace := func() {
		for i < len(inner) && (inner[i] == ' ' || inner[i] == '\t' || inner[i] == '\n') {
			i++
		}
	}

	for {
		skipSpace()
		if i >= len(inner) {
			break
		}

		quote := inner[i]
		if quote != '\'' && quote != '"' {
			return nil, fmt.Errorf("expected quoted string at offset %d", i)
		}
		i++

		var item strings.Builder
		closed := false
		for i < len(inner) {
			r := inner[i]
			if r == '\\' && i+1 < len(inner) {
				// Unescape the common cases; leave the rest as-is.
				next := inner[i+1]
				switch next {
				case '\'', '"', '\\':
					item.WriteRune(next)
				case 'n':
					item.WriteRune('\n')
				case 't':
					item.WriteRune('\t')
				default:
					item.WriteRune(r)
					item.WriteRune(next)
				}
				i += 2
				continue
			}
			if r == quote {
				closed = true
				i++
				break
			}
			item.WriteRune(r)
			i++
		}
		if !closed {
			return nil, fmt.Errorf("unterminated string in list literal")
		}

		items = append(items, item.String())

		skipSpace()
		if i >= len(inner) {
			break
		}
		if inner[i] != ',' {
			return nil, fmt.Errorf("expected ',' at offset %d", i)
		}
		i++
	}

	return items, nil
}
