package ingest

import (
	"regexp"
	"strconv"
	"strings"
)

// TextParser handles line-oriented result sheets with two sections
// introduced by literal "Matches" and "Bonus Points" header lines. Lines
// outside both sections, or not matching the active section's shape, are
// skipped without error: the sheets are pasted by hand and always carry
// some noise.
type TextParser struct{}

func NewTextParser() *TextParser {
	return &TextParser{}
}

var (
	// "<name> <points> pts <description...>"
	matchLineRegex = regexp.MustCompile(`^(.+?)\s+(-?\d+)\s*pts\b\.?\s*(.*)$`)
	// "<name> — <points> pts — <description>", em-dash, en-dash or hyphen.
	bonusLineRegex = regexp.MustCompile(`^(.+?)\s*[—–-]\s*(-?\d+)\s*pts\b\.?\s*[—–-]\s*(.*)$`)
)

type textSection int

const (
	sectionNone textSection = iota
	sectionMatches
	sectionBonus
)

func (p *TextParser) Parse(raw string) ([]ScoreEntry, error) {
	section := sectionNone
	out := make([]ScoreEntry, 0)

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch normalizeHeader(line) {
		case "matches":
			section = sectionMatches
			continue
		case "bonus points":
			section = sectionBonus
			continue
		}

		switch section {
		case sectionMatches:
			if entry, ok := parseMatchLine(line); ok {
				out = append(out, entry)
			}
		case sectionBonus:
			if entry, ok := parseBonusLine(line); ok {
				out = append(out, entry)
			}
		}
	}

	if len(out) == 0 {
		return nil, ErrNoScorableContent
	}

	return out, nil
}

func normalizeHeader(line string) string {
	return strings.ToLower(strings.Join(strings.Fields(line), " "))
}

func parseMatchLine(line string) (ScoreEntry, bool) {
	m := matchLineRegex.FindStringSubmatch(line)
	if m == nil {
		return ScoreEntry{}, false
	}

	points, err := strconv.Atoi(m[2])
	if err != nil {
		return ScoreEntry{}, false
	}

	name := strings.TrimSpace(m[1])
	if name == "" {
		return ScoreEntry{}, false
	}

	return ScoreEntry{
		WrestlerName: name,
		Points:       points,
		Description:  strings.TrimSpace(m[3]),
	}, true
}

func parseBonusLine(line string) (ScoreEntry, bool) {
	m := bonusLineRegex.FindStringSubmatch(line)
	if m == nil {
		return ScoreEntry{}, false
	}

	points, err := strconv.Atoi(m[2])
	if err != nil {
		return ScoreEntry{}, false
	}

	name := strings.TrimSpace(m[1])
	if name == "" {
		return ScoreEntry{}, false
	}

	return ScoreEntry{
		WrestlerName: name,
		Points:       points,
		Description:  strings.TrimSpace(m[3]),
	}, true
}
