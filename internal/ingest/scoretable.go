package ingest

// The match scoring table is a closed, versioned lookup: changing any value
// or keyword is a scoring-policy change and must bump ScoreTableVersion.
const ScoreTableVersion = 1

const (
	pointsWin               = 5
	pointsLoss              = -2
	pointsDraw              = 2
	pointsTitleMatchBonus   = 7
	pointsTitleChange       = 10
	pointsDecisiveFinish    = 3 // pinfall or submission
	pointsPerSignatureMove  = 2
	pointsPerElimination    = 3
	pointsSpecialAppearance = 5
)

const (
	descWin               = "Win"
	descLoss              = "Loss"
	descDraw              = "Draw"
	descTitleMatchBonus   = "Title match bonus"
	descTitleChange       = "Title change"
	descDecisiveFinish    = "Decisive finish"
	descSignatureMoves    = "Signature moves"
	descEliminations      = "Eliminations"
	descSpecialAppearance = "Special appearance"
)
