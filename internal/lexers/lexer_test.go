package lexers

import (
	"testing"

	"log-analyzer/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLine = `1.196.116.32 -  - [29/Jun/2017:03:50:22 +0300] "GET /api/v2/banner/25019354 HTTP/1.1" 200 927 "-" "Lynx/2.8.8dev.9 libwww-FM/2.14 SSL-MM/1.4.1 GNUTLS/2.10.5" "-" "1498697422-2190034393-4708-9752759" "dc7161be3" 0.390`

func collect(t *testing.T, l Lexer, line string) ([]Lexeme, error) {
	t.Helper()
	var lexemes []Lexeme
	for lexeme, err := range l.Tokenize(line) {
		if err != nil {
			return lexemes, err
		}
		lexemes = append(lexemes, lexeme)
	}
	return lexemes, nil
}

func withoutWhitespace(lexemes []Lexeme) []Lexeme {
	var out []Lexeme
	for _, lexeme := range lexemes {
		if lexeme.Kind != Whitespace {
			out = append(out, lexeme)
		}
	}
	return out
}

func TestTokenize_SampleLine(t *testing.T) {
	t.Parallel()

	lexemes, err := collect(t, NewDefaultLexer(), sampleLine)
	require.NoError(t, err)

	want := []Lexeme{
		{Kind: Raw, Text: "1.196.116.32"},
		{Kind: NoData, Text: "-"},
		{Kind: NoData, Text: "-"},
		{Kind: Date, Text: "29/Jun/2017:03:50:22 +0300"},
		{Kind: QuotedString, Text: "GET /api/v2/banner/25019354 HTTP/1.1"},
		{Kind: Raw, Text: "200"},
		{Kind: Raw, Text: "927"},
		{Kind: NoData, Text: `"-"`},
		{Kind: QuotedString, Text: "Lynx/2.8.8dev.9 libwww-FM/2.14 SSL-MM/1.4.1 GNUTLS/2.10.5"},
		{Kind: NoData, Text: `"-"`},
		{Kind: QuotedString, Text: "1498697422-2190034393-4708-9752759"},
		{Kind: QuotedString, Text: "dc7161be3"},
		{Kind: Raw, Text: "0.390"},
	}
	assert.Equal(t, want, withoutWhitespace(lexemes))
}

func TestTokenize_WhitespaceIsEmitted(t *testing.T) {
	t.Parallel()

	lexemes, err := collect(t, NewDefaultLexer(), "a  \tb")
	require.NoError(t, err)
	assert.Equal(t, []Lexeme{
		{Kind: Raw, Text: "a"},
		{Kind: Whitespace, Text: "  \t"},
		{Kind: Raw, Text: "b"},
	}, lexemes)
}

func TestTokenize_RuleOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		want []Lexeme
	}{
		{
			name: "bare dash is no data",
			line: "-",
			want: []Lexeme{{Kind: NoData, Text: "-"}},
		},
		{
			name: "quoted dash is no data, not a quoted string",
			line: `"-"`,
			want: []Lexeme{{Kind: NoData, Text: `"-"`}},
		},
		{
			name: "quoted string starting with a dash is a quoted string",
			line: `"-x"`,
			want: []Lexeme{{Kind: QuotedString, Text: "-x"}},
		},
		{
			name: "dash prefix splits a raw token",
			line: "-12",
			want: []Lexeme{{Kind: NoData, Text: "-"}, {Kind: Raw, Text: "12"}},
		},
		{
			name: "bracketed span is a date",
			line: "[29/Jun/2017:03:50:22 +0300]",
			want: []Lexeme{{Kind: Date, Text: "29/Jun/2017:03:50:22 +0300"}},
		},
		{
			name: "empty quotes fall through to raw",
			line: `""`,
			want: []Lexeme{{Kind: Raw, Text: `""`}},
		},
		{
			name: "unterminated quote falls through to raw",
			line: `"GET`,
			want: []Lexeme{{Kind: Raw, Text: `"GET`}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			lexemes, err := collect(t, NewDefaultLexer(), tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, lexemes)
		})
	}
}

func TestTokenize_EmptyLine(t *testing.T) {
	t.Parallel()

	lexemes, err := collect(t, NewDefaultLexer(), "")
	require.NoError(t, err)
	assert.Empty(t, lexemes)
}

func TestTokenize_Restartable(t *testing.T) {
	t.Parallel()

	seq := NewDefaultLexer().Tokenize(sampleLine)

	var first, second []Lexeme
	for lexeme, err := range seq {
		require.NoError(t, err)
		first = append(first, lexeme)
	}
	for lexeme, err := range seq {
		require.NoError(t, err)
		second = append(second, lexeme)
	}
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}

func TestTokenize_StopsWhenConsumerBreaks(t *testing.T) {
	t.Parallel()

	count := 0
	for range NewDefaultLexer().Tokenize(sampleLine) {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestTokenize_NoRuleMatches(t *testing.T) {
	t.Parallel()

	l, err := NewLexer([]Rule{
		{Pattern: `\s+`, Kind: Whitespace},
		{Pattern: `[a-z]+`, Kind: Raw},
	})
	require.NoError(t, err)

	lexemes, err := collect(t, l, "abc 42")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrMalformedLine)
	assert.Contains(t, err.Error(), "offset 4")
	assert.Equal(t, []Lexeme{{Kind: Raw, Text: "abc"}, {Kind: Whitespace, Text: " "}}, lexemes)
}

func TestTokenize_EmptyMatchDoesNotLoop(t *testing.T) {
	t.Parallel()

	l, err := NewLexer([]Rule{{Pattern: `x*`, Kind: Raw}})
	require.NoError(t, err)

	_, err = collect(t, l, "y")
	assert.ErrorIs(t, err, models.ErrMalformedLine)
}

func TestNewLexer_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := NewLexer([]Rule{{Pattern: `(`, Kind: Raw}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rule 0 (raw)")
}

func BenchmarkTokenize(b *testing.B) {
	l := NewDefaultLexer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		for range l.Tokenize(sampleLine) {
		}
	}
}
