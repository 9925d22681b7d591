package pattern

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		raw   string
		kind  Kind
		body  string
		flags string
	}{
		{"fix", KindPlain, "fix", ""},
		{"^fix", KindPlain, "^fix", ""},
		{"^fix/", KindPlain, "^fix/", ""},
		{"/^fix/", KindDelimited, "^fix", ""},
		{`/^fix\//`, KindDelimited, `^fix\/`, ""},
		{"/^fix/gi", KindDelimited, "^fix", "gi"},
		{"/a/b/", KindDelimited, "a/b", ""},
		{"/a/b/im", KindDelimited, "a/b", "im"},
		{"//", KindDelimited, "", ""},
		{"/", KindPlain, "/", ""},
		{"/fix/x", KindPlain, "/fix/x", ""},
		{"", KindPlain, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			s := Parse(tt.raw)
			require.Equal(t, tt.kind, s.Kind)
			require.Equal(t, tt.body, s.Body)
			require.Equal(t, tt.flags, s.Flags)
			require.Equal(t, tt.raw, s.String())
		})
	}
}

func TestKind_String(t *testing.T) {
	require.Equal(t, "Plain", KindPlain.String())
	require.Equal(t, "Delimited", KindDelimited.String())
	require.Equal(t, "Unknown", Kind(42).String())
}

func TestCompile_Matching(t *testing.T) {
	tests := []struct {
		name   string
		config string
		input  string
		want   bool
	}{
		{"plain substring", "fix", "not fix", true},
		{"plain is case sensitive", "fix", "Fix", false},
		{"plain keeps metacharacters", "a.b", "axb", true},
		{"plain literal dot", "a.b", "a.b", true},
		{"plain anchored", "^feat/", "feat/", true},
		{"plain anchored miss", "^feat/", "a feat/", false},
		{"plain anchor blocks feature", "^feat/", "feature", false},
		{"delimited anchored", "/^fix/", "fix/sometitle", true},
		{"delimited miss", "/^fix/", "not fix", false},
		{"delimited escaped slash", `/^feat\//i`, "Feat/ure", true},
		{"delimited case sensitive", `/^feat\//`, "Feat/ure", false},
		{"delimited internal slash", "/a/b/", "xa/by", true},
		{"alternation", "/^(major|release)/i", "Release 2", true},
		{"global flag is irrelevant", "/fix/g", "a fix", true},
		{"empty body", "//", "anything", true},
		{"empty body empty input", "//", "", true},
		{"multiline", "/^fix/m", "title\nfix", true},
		{"no multiline", "/^fix/", "title\nfix", false},
		{"sticky at start", "/fix/y", "fix it", true},
		{"sticky elsewhere", "/fix/y", "a fix", false},
		{"lookahead", "/^feat(?!ure)/", "feature", false},
		{"lookahead match", "/^feat(?!ure)/", "feat: x", true},
		{"backreference", `/^(\w)\1/`, "aab", true},
		{"ignore case with multiline", "/^FIX/im", "title\nfix", true},
		{"ignore case non-ascii", "/é/i", "É", true},
		{"lookbehind", "/(?<=v)1/", "v1", true},
		{"lookbehind miss", "/(?<=v)1/", "x1", false},
		{"named group", "/^(?<kind>feat|fix):/", "fix: x", true},
		{"lone closing bracket", "a]", "a]", true},
		{"negated empty class", "/^[^]/", "x", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile(tt.config)
			require.NoError(t, err)
			ok, err := p.MatchString(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.want, ok)
		})
	}
}

func TestCompile_DelimitedEqualsBody(t *testing.T) {
	// "/body/flags" behaves like compiling the body with the same flags directly.
	inputs := []string{"Fix/a", "fix", "prefix fix", "FIX\nfix", ""}
	for _, flags := range []string{"", "g", "i", "m", "gi", "im", "gim"} {
		delimited := MustCompile("/^fix/" + flags)
		direct, err := Spec{Kind: KindDelimited, Body: "^fix", Flags: flags}.Compile()
		require.NoError(t, err)
		for _, in := range inputs {
			a, err := delimited.MatchString(in)
			require.NoError(t, err)
			b, err := direct.MatchString(in)
			require.NoError(t, err)
			require.Equal(t, b, a, "flags %q input %q", flags, in)
		}
	}
}

func TestCompile_InvalidBody(t *testing.T) {
	_, err := Compile("/feat(/")
	require.Error(t, err)

	var compErr *CompilationError
	require.True(t, errors.As(err, &compErr))
	require.Equal(t, "/feat(/", compErr.Config)
	require.NotNil(t, compErr.Unwrap())
	require.Contains(t, err.Error(), `invalid pattern "/feat(/"`)
}

func TestCompile_InvalidPlain(t *testing.T) {
	_, err := Compile("feat(")
	var compErr *CompilationError
	require.ErrorAs(t, err, &compErr)
}

func TestCompile_DuplicateFlag(t *testing.T) {
	_, err := Compile("/fix/ii")
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicate flag")
}

func TestMustCompile_Panics(t *testing.T) {
	require.Panics(t, func() { MustCompile("(") })
}

func TestPattern_Spec(t *testing.T) {
	p := MustCompile("/^fix/i")
	require.Equal(t, Spec{Kind: KindDelimited, Body: "^fix", Flags: "i"}, p.Spec())
}
