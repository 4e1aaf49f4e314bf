package supabase

import "testing"

func TestOrFilter_PlainQuery(t *testing.T) {
	t.Parallel()

	got := orFilter([]string{"title", "content"}, "cats")
	want := "(title.ilike.%cats%,content.ilike.%cats%)"
	if got != want {
		t.Errorf("orFilter = %q, want %q", got, want)
	}
}

func TestOrFilter_SingleColumn(t *testing.T) {
	t.Parallel()

	got := orFilter([]string{"body"}, "dogs")
	want := "(body.ilike.%dogs%)"
	if got != want {
		t.Errorf("orFilter = %q, want %q", got, want)
	}
}

func TestOrFilter_CommaInQuery_QuotesValue(t *testing.T) {
	t.Parallel()

	got := orFilter([]string{"title"}, "a,b")
	want := `(title.ilike."%a,b%")`
	if got != want {
		t.Errorf("orFilter = %q, want %q", got, want)
	}
}

func TestOrFilter_ParensInQuery_QuotesValue(t *testing.T) {
	t.Parallel()

	got := orFilter([]string{"title"}, "f(x)")
	want := `(title.ilike."%f(x)%")`
	if got != want {
		t.Errorf("orFilter = %q, want %q", got, want)
	}
}

func TestLikeEscape(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, want string
	}{
		{"cats", "cats"},
		{"100%", `100\%`},
		{"under_score", `under\_score`},
		{`back\slash`, `back\\slash`},
		{"", ""},
	}
	for _, tc := range cases {
		if got := likeEscape(tc.in); got != tc.want {
			t.Errorf("likeEscape(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestQuoteFilterValue_Plain_Unquoted(t *testing.T) {
	t.Parallel()

	if got := quoteFilterValue("%cats%"); got != "%cats%" {
		t.Errorf("plain value should pass through, got %q", got)
	}
}

func TestQuoteFilterValue_EmbeddedQuote_Escaped(t *testing.T) {
	t.Parallel()

	got := quoteFilterValue(`%say "hi"%`)
	want := `"%say \"hi\"%"`
	if got != want {
		t.Errorf("quoteFilterValue = %q, want %q", got, want)
	}
}

func TestQuoteFilterValue_Whitespace_Quoted(t *testing.T) {
	t.Parallel()

	got := quoteFilterValue("%two words%")
	want := `"%two words%"`
	if got != want {
		t.Errorf("quoteFilterValue = %q, want %q", got, want)
	}
}
