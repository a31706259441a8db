package league

import "fmt"

const (
	topCourtName    = "Royalty Court"
	bottomCourtName = "Foundation Court"
)

// DefaultCourtName returns the ladder name for a court position.
// The first court is the top tier and the last court the bottom tier.
func DefaultCourtName(index, totalCourts int) string {
	switch {
	case index == 0:
		return topCourtName
	case index == totalCourts-1:
		return bottomCourtName
	default:
		return fmt.Sprintf("Challenger Court %d", index)
	}
}

// AllCourtNames returns the league's court names in ranking order.
// A custom override is used only when it names exactly NumCourts courts.
func AllCourtNames(cfg Config) []string {
	if cfg.NumCourts <= 0 {
		return []string{}
	}
	if len(cfg.CourtNames) == cfg.NumCourts {
		return append([]string{}, cfg.CourtNames...)
	}

	names := make([]string, 0, cfg.NumCourts)
	for i := 0; i < cfg.NumCourts; i++ {
		names = append(names, DefaultCourtName(i, cfg.NumCourts))
	}
	return names
}
