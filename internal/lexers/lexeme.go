package lexers

import "fmt"

// Kind classifies a lexeme.
type Kind int

const (
	Whitespace Kind = iota
	NoData
	QuotedString
	Date
	Raw
)

func (k Kind) String() string {
	switch k {
	case Whitespace:
		return "whitespace"
	case NoData:
		return "no_data"
	case QuotedString:
		return "quoted_string"
	case Date:
		return "date"
	case Raw:
		return "raw"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Lexeme is one classified span of a line. Text is the rule's first capture group when
// the rule has one, otherwise the whole match.
type Lexeme struct {
	Kind Kind
	Text string
}
