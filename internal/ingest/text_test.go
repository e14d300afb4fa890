package ingest

import (
	"errors"
	"testing"
)

func TestTextParserMatchesSection(t *testing.T) {
	raw := "Matches\nBecky Lynch 10 pts defeated Bayley\n"

	entries, err := NewTextParser().Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].WrestlerName != "Becky Lynch" {
		t.Fatalf("unexpected wrestler name %q", entries[0].WrestlerName)
	}
	if entries[0].Points != 10 {
		t.Fatalf("expected 10 points, got %d", entries[0].Points)
	}
	if entries[0].Description != "defeated Bayley" {
		t.Fatalf("unexpected description %q", entries[0].Description)
	}
}

func TestTextParserBonusSection(t *testing.T) {
	raw := "Bonus Points\nSami Zayn — 5 pts — Cash-in\n"

	entries, err := NewTextParser().Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].WrestlerName != "Sami Zayn" {
		t.Fatalf("unexpected wrestler name %q", entries[0].WrestlerName)
	}
	if entries[0].Points != 5 {
		t.Fatalf("expected 5 points, got %d", entries[0].Points)
	}
	if entries[0].Description != "Cash-in" {
		t.Fatalf("unexpected description %q", entries[0].Description)
	}
}

func TestTextParserMixedSections(t *testing.T) {
	raw := `Preamble noise before any section

Matches
Becky Lynch 10 pts defeated Bayley
Rey Mysterio -2 pts lost to Dominik
this line does not match anything

Bonus Points
Sami Zayn — 5 pts — Cash-in
Seth Rollins – 4 pts – Promo of the night
`

	entries, err := NewTextParser().Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}
	if entries[1].WrestlerName != "Rey Mysterio" || entries[1].Points != -2 {
		t.Fatalf("unexpected negative-score entry %+v", entries[1])
	}
	if entries[3].WrestlerName != "Seth Rollins" || entries[3].Points != 4 {
		t.Fatalf("unexpected en-dash bonus entry %+v", entries[3])
	}
}

func TestTextParserSameWrestlerTwice(t *testing.T) {
	raw := `Matches
Becky Lynch 10 pts defeated Bayley
Becky Lynch 3 pts pinfall
`

	entries, err := NewTextParser().Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected separate entries, got %d", len(entries))
	}
}

func TestTextParserNoScorableContent(t *testing.T) {
	for _, raw := range []string{
		"",
		"just some prose with no sections",
		"Matches\nno points on this line\n",
	} {
		_, err := NewTextParser().Parse(raw)
		if !errors.Is(err, ErrNoScorableContent) {
			t.Fatalf("raw %q: expected ErrNoScorableContent, got %v", raw, err)
		}
	}
}

func TestTextParserSectionHeadersAreCaseInsensitive(t *testing.T) {
	raw := "MATCHES\nBecky Lynch 10 pts defeated Bayley\n"

	entries, err := NewTextParser().Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
}

func TestTextParserBonusPatternNotSpecialInMatchesSection(t *testing.T) {
	// Inside Matches only the match shape applies. A dash-delimited line
	// still parses because it carries "<points> pts", but the dashes are
	// treated as ordinary text, not delimiters.
	raw := "Matches\nSami Zayn — 5 pts — Cash-in\n"

	entries, err := NewTextParser().Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entries[0].Points != 5 {
		t.Fatalf("expected 5 points, got %d", entries[0].Points)
	}
	if entries[0].WrestlerName != "Sami Zayn —" {
		t.Fatalf("unexpected wrestler name %q", entries[0].WrestlerName)
	}
}
