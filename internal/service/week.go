package service

import (
	"context"
	"fmt"
	"time"

	"github.com/omarshaarawi/sleeperbot/internal/models"
)

// MatchupFetcher is the slice of the league API the week resolver needs.
type MatchupFetcher interface {
	GetMatchups(ctx context.Context, week int) ([]models.MatchupEntry, error)
}

// MaxWeeksForMonth bounds the week probe assuming a September kickoff.
func MaxWeeksForMonth(month time.Month) int {
	switch month {
	case time.September:
		return 6
	case time.October:
		return 10
	case time.November:
		return 14
	default:
		return 18
	}
}

// ResolveLastPlayedWeek scans from maxWeeks down to 1 and returns the first
// week where any team scored. It returns 1 when no week has points.
func ResolveLastPlayedWeek(ctx context.Context, league MatchupFetcher, maxWeeks int) (int, error) {
	for week := maxWeeks; week >= 1; week-- {
		entries, err := league.GetMatchups(ctx, week)
		if err != nil {
			return 0, fmt.Errorf("resolving last played week: %w", err)
		}
		for _, e := range entries {
			if e.Points > 0 {
				return week, nil
			}
		}
	}
	return 1, nil
}

// LastPlayedWeek resolves the last played week using the clock's month as
// the probe ceiling.
func (s *FantasyService) LastPlayedWeek(ctx context.Context) (int, error) {
	maxWeeks := MaxWeeksForMonth(s.clock.Now().Month())
	week, err := ResolveLastPlayedWeek(ctx, s.league, maxWeeks)
	if err != nil {
		return 0, err
	}

	s.logger.Info("Last played week", "week", week, "max_weeks", maxWeeks)
	return week, nil
}
