package records

import (
	"fmt"
	"iter"
	"time"

	"log-analyzer/internal/lexers"
	"log-analyzer/internal/models"
)

// TimeLocalLayout parses $time_local once its trailing " +0300" offset is stripped.
const TimeLocalLayout = "02/Jan/2006:15:04:05"

const timezoneSuffixLen = len(" +0300")

// RecordBuilder assigns lexemes positionally to the LogRecord schema.
type RecordBuilder interface {
	// Build consumes lexemes and returns a complete record, or an error wrapping
	// models.ErrMalformedLine. It never returns a partially populated record.
	Build(lexemes iter.Seq2[lexers.Lexeme, error]) (*models.LogRecord, error)
}

type recordBuilder struct{}

func NewRecordBuilder() RecordBuilder {
	return &recordBuilder{}
}

func (b *recordBuilder) Build(lexemes iter.Seq2[lexers.Lexeme, error]) (*models.LogRecord, error) {
	record := &models.LogRecord{}
	slots := record.Slots()

	fieldIdx := 0
	for lexeme, err := range lexemes {
		if err != nil {
			return nil, err
		}
		if lexeme.Kind == lexers.Whitespace {
			continue
		}
		if fieldIdx >= models.LogRecordArity {
			return nil, fmt.Errorf("%w: more than %d fields", models.ErrMalformedLine, models.LogRecordArity)
		}

		value, err := fieldValue(lexeme)
		if err != nil {
			return nil, fmt.Errorf("%w: field %s: %v", models.ErrMalformedLine, models.LogRecordSchema[fieldIdx], err)
		}
		*slots[fieldIdx] = value
		fieldIdx++
	}

	if fieldIdx != models.LogRecordArity {
		return nil, fmt.Errorf("%w: got %d fields, want %d", models.ErrMalformedLine, fieldIdx, models.LogRecordArity)
	}
	return record, nil
}

func fieldValue(lexeme lexers.Lexeme) (models.FieldValue, error) {
	switch lexeme.Kind {
	case lexers.NoData:
		return models.NullValue(), nil
	case lexers.Raw:
		return models.RawValue(lexeme.Text), nil
	case lexers.QuotedString:
		return models.QuotedValue(lexeme.Text), nil
	case lexers.Date:
		t, err := parseTimeLocal(lexeme.Text)
		if err != nil {
			return models.FieldValue{}, err
		}
		return models.TimestampValue(t), nil
	default:
		// the lexer only emits the kinds above; anything else is a bug, not bad input
		panic(fmt.Sprintf("records: unexpected lexeme kind %s", lexeme.Kind))
	}
}

func parseTimeLocal(text string) (time.Time, error) {
	if len(text) < timezoneSuffixLen {
		return time.Time{}, fmt.Errorf("time %q too short", text)
	}
	return time.Parse(TimeLocalLayout, text[:len(text)-timezoneSuffixLen])
}
