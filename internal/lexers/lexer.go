package lexers

import (
	"fmt"
	"iter"
	"regexp"

	"log-analyzer/internal/models"
)

// Rule pairs a pattern with the kind of lexeme it produces.
type Rule struct {
	Pattern string
	Kind    Kind
}

// DefaultRules returns the access-log rules. Order is load-bearing: the first rule matching
// at the current offset wins, so the quoted dash must come before the generic quoted string
// and the bracketed date before the raw token.
func DefaultRules() []Rule {
	return []Rule{
		{Pattern: `\s+`, Kind: Whitespace},
		{Pattern: `-|"-"`, Kind: NoData},
		{Pattern: `"([^"]+)"`, Kind: QuotedString},
		{Pattern: `\[([^\]]+)\]`, Kind: Date},
		{Pattern: `([^\s]+)`, Kind: Raw},
	}
}

type Lexer interface {
	// Tokenize lazily scans line from offset 0. Each range over the result rescans.
	// When no rule matches, the sequence ends with an error wrapping models.ErrMalformedLine.
	Tokenize(line string) iter.Seq2[Lexeme, error]
}

type compiledRule struct {
	pattern *regexp.Regexp
	kind    Kind
}

type lexer struct {
	rules []compiledRule
}

// NewLexer compiles rules, anchoring each one so it only matches at the scan offset.
func NewLexer(rules []Rule) (Lexer, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for i, rule := range rules {
		re, err := regexp.Compile(`^(?:` + rule.Pattern + `)`)
		if err != nil {
			return nil, fmt.Errorf("rule %d (%s): %w", i, rule.Kind, err)
		}
		compiled = append(compiled, compiledRule{pattern: re, kind: rule.Kind})
	}
	return &lexer{rules: compiled}, nil
}

// NewDefaultLexer returns a Lexer over DefaultRules.
func NewDefaultLexer() Lexer {
	l, err := NewLexer(DefaultRules())
	if err != nil {
		panic(fmt.Sprintf("default lexer rules do not compile: %v", err))
	}
	return l
}

func (l *lexer) Tokenize(line string) iter.Seq2[Lexeme, error] {
	return func(yield func(Lexeme, error) bool) {
		offset := 0
		for offset < len(line) {
			lexeme, end, ok := l.next(line, offset)
			if !ok {
				yield(Lexeme{}, fmt.Errorf("%w: no rule matches at offset %d", models.ErrMalformedLine, offset))
				return
			}
			offset = end
			if !yield(lexeme, nil) {
				return
			}
		}
	}
}

// next tries the rules in order at offset. An empty match counts as no match, so the
// scan always advances.
func (l *lexer) next(line string, offset int) (Lexeme, int, bool) {
	rest := line[offset:]
	for _, rule := range l.rules {
		loc := rule.pattern.FindStringSubmatchIndex(rest)
		if loc == nil || loc[1] == 0 {
			continue
		}
		text := rest[:loc[1]]
		if len(loc) >= 4 && loc[2] >= 0 {
			text = rest[loc[2]:loc[3]]
		}
		return Lexeme{Kind: rule.kind, Text: text}, offset + loc[1], true
	}
	return Lexeme{}, offset, false
}
