package gorules

import "github.com/quasilyte/go-ruleguard/dsl"

func rules(m dsl.Matcher) {
	// Wrapping with %v loses the error chain; errors.Is checks downstream
	// depend on %w.
	m.Match(`fmt.Errorf($fmt, $*_, $err)`).
		Where(m["err"].Type.Is(`error`) && !m["fmt"].Text.Matches(`.*%w.*`)).
		Report(`error wrapped without %w; errors.Is/As will not see the cause`)

	// Two consecutive guards returning the same value are mergeable.
	m.Match(`if $c1 { return $ret }; if $c2 { return $ret }`).
		Report(`two consecutive guards return the same value; consider merging conditions with ||`).
		Suggest(`if $c1 || $c2 { return $ret }`)

	// Outbound HTTP calls must carry a context for timeout/cancellation.
	m.Match(`http.NewRequest($method, $url, $body)`).
		Report(`use http.NewRequestWithContext so the request honors deadlines`)
}
