package translate

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
)

var (
	rules    = ruleset()
	acronyms = make(map[string]struct{})
)

func ruleset() *inflect.Ruleset {
	rules := inflect.NewDefaultRuleset()
	for _, w := range []string{"ACL", "API", "ASCII", "CPU", "CSS", "DNS", "GUID", "HTML", "HTTP", "HTTPS", "ID", "IP", "JSON", "SQL", "TLS", "URI", "URL", "UUID", "XML"} {
		acronyms[w] = struct{}{}
		rules.AddAcronym(w)
	}
	return rules
}

// words splits a table or column name on underscores, dashes, spaces and
// lower-to-upper case transitions.
func words(s string) []string {
	var (
		out []string
		cur []rune
	)
	flush := func() {
		if len(cur) > 0 {
			out = append(out, string(cur))
			cur = cur[:0]
		}
	}
	rs := []rune(s)
	for i, r := range rs {
		switch {
		case r == '_' || r == '-' || r == ' ':
			flush()
		case unicode.IsUpper(r) && i > 0 && unicode.IsLower(rs[i-1]):
			flush()
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
	}
	flush()
	return out
}

// pascal converts a name to PascalCase, e.g. "user_info" => "UserInfo".
func pascal(s string) string {
	ws := words(s)
	for i, w := range ws {
		upper := strings.ToUpper(w)
		if _, ok := acronyms[upper]; ok {
			ws[i] = upper
		} else {
			ws[i] = rules.Capitalize(strings.ToLower(w))
		}
	}
	return strings.Join(ws, "")
}

// camel converts a name to camelCase, e.g. "user_info" => "userInfo".
func camel(s string) string {
	ws := words(s)
	if len(ws) == 0 {
		return ""
	}
	return strings.ToLower(ws[0]) + pascal(strings.Join(ws[1:], "_"))
}

// snake converts a name to lower snake_case, e.g. "UserInfo" => "user_info".
func snake(s string) string {
	return strings.ToLower(strings.Join(words(s), "_"))
}

// modelName returns the model name of a table, e.g. "blog_posts" => "BlogPost".
func modelName(table string) string {
	return pascal(rules.Singularize(snake(table)))
}

// backFieldName returns the name of a back-relation list field pointing at
// the model, e.g. "Post" => "posts".
func backFieldName(model string, list bool) string {
	name := snake(model)
	if list {
		name = rules.Pluralize(name)
	}
	return camel(name)
}

// uniqueName returns base, or base followed by the smallest numeric suffix
// starting at 2 that is not taken.
func uniqueName(base string, taken func(string) bool) string {
	if !taken(base) {
		return base
	}
	for i := 2; ; i++ {
		if name := base + strconv.Itoa(i); !taken(name) {
			return name
		}
	}
}
