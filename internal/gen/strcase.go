package gen

import "strings"

// toCamel converts a snake_case name to UpperCamelCase.
func toCamel(name string) string {
	var b strings.Builder
	upper := true
	for _, r := range name {
		if r == '_' {
			upper = true
			continue
		}
		if upper {
			if r >= 'a' && r <= 'z' {
				r -= 'a' - 'A'
			}
			b.WriteRune(r)
			upper = false
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// toLowerCamel converts a snake_case name to lowerCamelCase, the spelling
// used for generated query-struct fields.
func toLowerCamel(name string) string {
	c := toCamel(name)
	if c == "" {
		return c
	}
	return strings.ToLower(c[:1]) + c[1:]
}
