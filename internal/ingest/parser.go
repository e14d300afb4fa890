package ingest

import "errors"

// ErrNoScorableContent is returned when a parser extracts zero entries from
// its input. Callers must not mutate any state in that case.
var ErrNoScorableContent = errors.New("no scorable content found")

// ContentType declares the format of a raw event payload. The caller picks
// the parser; nothing sniffs the content.
type ContentType string

const (
	ContentTypeText ContentType = "text"
	ContentTypeHTML ContentType = "html"
)

// ScoreEntry is one unaggregated scoring line extracted from an event. The
// same wrestler may appear multiple times; summation is the applier's job.
type ScoreEntry struct {
	WrestlerName string
	Points       int
	Description  string
}

// Parser converts a raw event payload into scoring entries.
type Parser interface {
	Parse(raw string) ([]ScoreEntry, error)
}

// ParserFor returns the parser registered for the given content type.
func ParserFor(contentType ContentType) (Parser, bool) {
	switch contentType {
	case ContentTypeText:
		return NewTextParser(), true
	case ContentTypeHTML:
		return NewHTMLParser(), true
	default:
		return nil, false
	}
}
