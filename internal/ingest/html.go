package ingest

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// HTMLParser extracts results from a markup fragment by structural phrases
// ("X defeated Y via ...", "X fought Y to a draw") and scores them with the
// closed table in scoretable.go. It never fetches anything; the fragment
// arrives pre-downloaded.
type HTMLParser struct{}

func NewHTMLParser() *HTMLParser {
	return &HTMLParser{}
}

var (
	defeatedRegex    = regexp.MustCompile(`(?i)^(.+?)\s+defeated\s+(.+?)(?:\s+via\s+(.+?))?(?:\s+(?:in|after|to)\b[^.!]*)?[.!]?$`)
	drawRegex        = regexp.MustCompile(`(?i)^(.+?)\s+fought\s+(.+?)\s+to\s+a\s+draw[.!]?$`)
	eliminationRegex = regexp.MustCompile(`(?i)\b(.+?)\s+eliminated\s+`)

	titleChangeRegex   = regexp.MustCompile(`(?i)\b(?:new champion|title change[sd]?)\b`)
	titleMatchRegex    = regexp.MustCompile(`(?i)\btitle match\b|\bchampionship match\b`)
	decisiveRegex      = regexp.MustCompile(`(?i)\bpin(?:fall)?\b|\bsubmission\b`)
	signatureMoveRegex = regexp.MustCompile(`(?i)\bsignature move\b|\bfinisher\b`)
	appearanceRegex    = regexp.MustCompile(`(?i)\bspecial appearance\b|\bsurprise return\b`)
)

func (p *HTMLParser) Parse(raw string) ([]ScoreEntry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return nil, err
	}

	out := make([]ScoreEntry, 0)
	doc.Find("p, li, div.match, div.result").Each(func(_ int, sel *goquery.Selection) {
		// Leaf blocks only; container divs repeat their children's text.
		if sel.Children().Length() > 0 && !sel.Is("div.match, div.result") {
			return
		}
		out = append(out, parseResultBlock(sel.Text())...)
	})

	if len(out) == 0 {
		return nil, ErrNoScorableContent
	}

	return out, nil
}

func parseResultBlock(text string) []ScoreEntry {
	out := make([]ScoreEntry, 0)
	for _, sentence := range splitSentences(text) {
		out = append(out, parseResultSentence(sentence)...)
	}
	return out
}

func parseResultSentence(sentence string) []ScoreEntry {
	sentence = strings.Join(strings.Fields(sentence), " ")
	if sentence == "" {
		return nil
	}

	if m := drawRegex.FindStringSubmatch(sentence); m != nil {
		out := make([]ScoreEntry, 0, 2)
		for _, side := range []string{m[1], m[2]} {
			for _, name := range splitNames(side) {
				out = append(out, ScoreEntry{WrestlerName: name, Points: pointsDraw, Description: descDraw})
			}
		}
		return out
	}

	if m := defeatedRegex.FindStringSubmatch(sentence); m != nil {
		return parseDecision(sentence, m[1], m[2], m[3])
	}

	if m := eliminationRegex.FindStringSubmatch(sentence); m != nil {
		out := make([]ScoreEntry, 0, 1)
		for _, name := range splitNames(m[1]) {
			out = append(out, ScoreEntry{WrestlerName: name, Points: pointsPerElimination, Description: descEliminations})
		}
		return out
	}

	if appearanceRegex.MatchString(sentence) {
		// "Special appearance by X" / "Surprise return by X".
		if name := nameAfterBy(sentence); name != "" {
			return []ScoreEntry{{WrestlerName: name, Points: pointsSpecialAppearance, Description: descSpecialAppearance}}
		}
	}

	return nil
}

func parseDecision(sentence, winnerSide, loserSide, method string) []ScoreEntry {
	out := make([]ScoreEntry, 0, 4)

	winners := splitNames(winnerSide)
	for _, name := range winners {
		out = append(out, ScoreEntry{WrestlerName: name, Points: pointsWin, Description: descWin})
	}
	for _, name := range splitNames(loserSide) {
		out = append(out, ScoreEntry{WrestlerName: name, Points: pointsLoss, Description: descLoss})
	}

	for _, name := range winners {
		if titleChangeRegex.MatchString(sentence) {
			out = append(out, ScoreEntry{WrestlerName: name, Points: pointsTitleChange, Description: descTitleChange})
		} else if titleMatchRegex.MatchString(sentence) {
			out = append(out, ScoreEntry{WrestlerName: name, Points: pointsTitleMatchBonus, Description: descTitleMatchBonus})
		}
		if method != "" && decisiveRegex.MatchString(method) {
			out = append(out, ScoreEntry{WrestlerName: name, Points: pointsDecisiveFinish, Description: descDecisiveFinish})
		}
		if n := len(signatureMoveRegex.FindAllString(sentence, -1)); n > 0 {
			out = append(out, ScoreEntry{WrestlerName: name, Points: n * pointsPerSignatureMove, Description: descSignatureMoves})
		}
	}

	return out
}

func splitSentences(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == ';' || r == '\n'
	})
}

// splitNames breaks one side of a result into individual wrestlers:
// "A, B and C" yields three names.
func splitNames(side string) []string {
	side = strings.TrimSpace(side)
	if side == "" {
		return nil
	}

	replaced := strings.NewReplacer(" and ", ",", " & ", ",").Replace(side)
	parts := strings.Split(replaced, ",")

	out := make([]string, 0, len(parts))
	for _, part := range parts {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		out = append(out, name)
	}
	return out
}

var byRegex = regexp.MustCompile(`(?i)\bby\s+(.+?)[.!]?$`)

func nameAfterBy(sentence string) string {
	m := byRegex.FindStringSubmatch(sentence)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
