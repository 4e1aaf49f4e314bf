// PostgREST filter construction. The search query is caller-supplied text
// and must never be interpreted as filter grammar, so pattern values are
// escaped at two layers: SQL LIKE wildcards get backslash escapes, and the
// whole value is double-quoted whenever it contains characters reserved by
// the PostgREST filter syntax.
package supabase

import "strings"

// orFilter builds the value of the or= query parameter: one case-insensitive
// substring condition per column, e.g. (title.ilike.%cats%,content.ilike.%cats%).
func orFilter(columns []string, query string) string {
	pattern := quoteFilterValue("%" + likeEscape(query) + "%")
	conditions := make([]string, len(columns))
	for i, col := range columns {
		conditions[i] = col + ".ilike." + pattern
	}
	return "(" + strings.Join(conditions, ",") + ")"
}

// likeEscape backslash-escapes the SQL LIKE wildcards so they match
// literally inside an ILIKE pattern. PostgREST rewrites `*` to `%` before
// the pattern reaches Postgres and offers no escape for it, so a literal
// `*` in the query degrades to a wildcard (a superset match) rather than
// a malformed request.
func likeEscape(q string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`%`, `\%`,
		`_`, `\_`,
	)
	return r.Replace(q)
}

// filterReserved are the characters that require double-quoting a value in
// the PostgREST filter grammar.
const filterReserved = ",()\" \t"

// quoteFilterValue wraps v in double quotes when it contains grammar
// metacharacters, escaping embedded quotes and backslashes. Plain values
// pass through untouched.
func quoteFilterValue(v string) string {
	if !strings.ContainsAny(v, filterReserved) {
		return v
	}
	var b strings.Builder
	b.Grow(len(v) + 2)
	b.WriteByte('"')
	for _, r := range v {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}
