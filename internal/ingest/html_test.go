package ingest

import (
	"errors"
	"testing"
)

func findEntry(t *testing.T, entries []ScoreEntry, name, desc string) ScoreEntry {
	t.Helper()
	for _, e := range entries {
		if e.WrestlerName == name && e.Description == desc {
			return e
		}
	}
	t.Fatalf("no entry for %q / %q in %+v", name, desc, entries)
	return ScoreEntry{}
}

func TestHTMLParserSinglesMatch(t *testing.T) {
	raw := `<div class="results">
		<p>Roman Reigns defeated Cody Rhodes via pinfall.</p>
	</div>`

	entries, err := NewHTMLParser().Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	win := findEntry(t, entries, "Roman Reigns", descWin)
	if win.Points != 5 {
		t.Fatalf("expected win worth 5, got %d", win.Points)
	}
	finish := findEntry(t, entries, "Roman Reigns", descDecisiveFinish)
	if finish.Points != 3 {
		t.Fatalf("expected pinfall bonus of 3, got %d", finish.Points)
	}
	loss := findEntry(t, entries, "Cody Rhodes", descLoss)
	if loss.Points != -2 {
		t.Fatalf("expected loss worth -2, got %d", loss.Points)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d: %+v", len(entries), entries)
	}
}

func TestHTMLParserDraw(t *testing.T) {
	raw := `<p>Becky Lynch fought Bayley to a draw.</p>`

	entries, err := NewHTMLParser().Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	for _, name := range []string{"Becky Lynch", "Bayley"} {
		e := findEntry(t, entries, name, descDraw)
		if e.Points != 2 {
			t.Fatalf("expected draw worth 2 for %s, got %d", name, e.Points)
		}
	}
}

func TestHTMLParserMultiWrestlerSides(t *testing.T) {
	raw := `<li>The Usos defeated Kevin Owens and Sami Zayn via submission</li>`

	entries, err := NewHTMLParser().Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	findEntry(t, entries, "The Usos", descWin)
	findEntry(t, entries, "The Usos", descDecisiveFinish)
	findEntry(t, entries, "Kevin Owens", descLoss)
	findEntry(t, entries, "Sami Zayn", descLoss)
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d: %+v", len(entries), entries)
	}
}

func TestHTMLParserTitleChange(t *testing.T) {
	raw := `<p>Seth Rollins defeated Roman Reigns via pinfall to become the new champion!</p>`

	entries, err := NewHTMLParser().Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	change := findEntry(t, entries, "Seth Rollins", descTitleChange)
	if change.Points != 10 {
		t.Fatalf("expected title change worth 10, got %d", change.Points)
	}
	for _, e := range entries {
		if e.Description == descTitleMatchBonus {
			t.Fatalf("title change must replace the retention bonus, got %+v", e)
		}
	}
}

func TestHTMLParserTitleRetained(t *testing.T) {
	raw := `<p>Gunther defeated Chad Gable in a title match</p>`

	entries, err := NewHTMLParser().Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bonus := findEntry(t, entries, "Gunther", descTitleMatchBonus)
	if bonus.Points != 7 {
		t.Fatalf("expected title match bonus of 7, got %d", bonus.Points)
	}
	// Trailing qualifier clauses must not leak into the loser's name.
	findEntry(t, entries, "Chad Gable", descLoss)
}

func TestHTMLParserEliminationAndAppearance(t *testing.T) {
	raw := `<ul>
		<li>Roman Reigns eliminated Randy Orton</li>
		<li>Special appearance by The Rock!</li>
	</ul>`

	entries, err := NewHTMLParser().Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	elim := findEntry(t, entries, "Roman Reigns", descEliminations)
	if elim.Points != 3 {
		t.Fatalf("expected elimination worth 3, got %d", elim.Points)
	}
	appearance := findEntry(t, entries, "The Rock", descSpecialAppearance)
	if appearance.Points != 5 {
		t.Fatalf("expected special appearance worth 5, got %d", appearance.Points)
	}
}

func TestHTMLParserSignatureMove(t *testing.T) {
	raw := `<p>Becky Lynch defeated Bayley after hitting her signature move</p>`

	entries, err := NewHTMLParser().Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sig := findEntry(t, entries, "Becky Lynch", descSignatureMoves)
	if sig.Points != 2 {
		t.Fatalf("expected signature move worth 2, got %d", sig.Points)
	}
}

func TestHTMLParserNoScorableContent(t *testing.T) {
	for _, raw := range []string{
		"",
		"<p>Just commentary about the show.</p>",
		"<div><span>nested but not a result</span></div>",
	} {
		_, err := NewHTMLParser().Parse(raw)
		if !errors.Is(err, ErrNoScorableContent) {
			t.Fatalf("raw %q: expected ErrNoScorableContent, got %v", raw, err)
		}
	}
}
