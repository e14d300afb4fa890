package memory

import (
	"github.com/riskibarqy/fantasy-wrestling/internal/domain/team"
	"github.com/riskibarqy/fantasy-wrestling/internal/domain/window"
	"github.com/riskibarqy/fantasy-wrestling/internal/domain/wrestler"
)

const (
	TeamIDHeavyweights  = "team-heavyweights"
	TeamIDRingGenerals  = "team-ring-generals"
	TeamIDMainEventers  = "team-main-eventers"
	TeamIDSquaredCircle = "team-squared-circle"
)

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: TeamIDHeavyweights, Name: "The Heavyweights"},
		{ID: TeamIDRingGenerals, Name: "Ring Generals"},
		{ID: TeamIDMainEventers, Name: "Main Eventers"},
		{ID: TeamIDSquaredCircle, Name: "Squared Circle Club"},
	}
}

func SeedWrestlers() []wrestler.Wrestler {
	heavyweights := TeamIDHeavyweights
	ringGenerals := TeamIDRingGenerals

	return []wrestler.Wrestler{
		{ID: "wr-roman-reigns", Name: "Roman Reigns", Brand: "SmackDown", TeamID: &heavyweights, IsStarter: true},
		{ID: "wr-cody-rhodes", Name: "Cody Rhodes", Brand: "Raw", TeamID: &heavyweights, IsStarter: true},
		{ID: "wr-seth-rollins", Name: "Seth Rollins", Brand: "Raw", TeamID: &heavyweights, IsStarter: false},
		{ID: "wr-becky-lynch", Name: "Becky Lynch", Brand: "Raw", TeamID: &ringGenerals, IsStarter: true},
		{ID: "wr-bayley", Name: "Bayley", Brand: "SmackDown", TeamID: &ringGenerals, IsStarter: true},
		{ID: "wr-sami-zayn", Name: "Sami Zayn", Brand: "Raw", TeamID: &ringGenerals, IsStarter: false},
		{ID: "wr-gunther", Name: "Gunther", Brand: "Raw"},
		{ID: "wr-chad-gable", Name: "Chad Gable", Brand: "Raw"},
		{ID: "wr-kevin-owens", Name: "Kevin Owens", Brand: "SmackDown"},
		{ID: "wr-rey-mysterio", Name: "Rey Mysterio", Brand: "SmackDown"},
		{ID: "wr-dominik-mysterio", Name: "Dominik Mysterio", Brand: "Raw"},
		{ID: "wr-bianca-belair", Name: "Bianca Belair", Brand: "SmackDown"},
		{ID: "wr-rhea-ripley", Name: "Rhea Ripley", Brand: "Raw"},
		{ID: "wr-la-knight", Name: "LA Knight", Brand: "SmackDown"},
		{ID: "wr-drew-mcintyre", Name: "Drew McIntyre", Brand: "Raw"},
		{ID: "wr-jey-uso", Name: "Jey Uso", Brand: "Raw"},
	}
}

// SeedWindows blocks roster moves during the weekly shows: Monday, Friday and
// Saturday nights, 20:00-23:00 league time.
func SeedWindows() []window.Window {
	return []window.Window{
		{ID: "win-monday-show", Day: 1, StartHour: 20, EndHour: 23},
		{ID: "win-friday-show", Day: 5, StartHour: 20, EndHour: 23},
		{ID: "win-saturday-show", Day: 6, StartHour: 20, EndHour: 23},
	}
}
