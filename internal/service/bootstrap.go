package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sam-maryland/court-league-server/internal/store"
	"github.com/sirupsen/logrus"
)

// Bootstrap creates each league that does not exist yet and returns how many were created.
// Leagues without an ID are skipped since they could not be matched on the next start.
func (s *LeagueService) Bootstrap(ctx context.Context, leagues []store.League) (int, error) {
	created := 0
	for _, l := range leagues {
		logger := s.logger.WithField("league_id", l.ID)
		if l.ID == "" {
			logger.WithField("title", l.Title).Warn("Skipping bootstrap league without an id")
			continue
		}
		_, err := s.store.GetLeague(ctx, l.ID)
		if err == nil {
			logger.Debug("Bootstrap league already exists")
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			return created, fmt.Errorf("lookup league %s: %w", l.ID, err)
		}
		if _, err := s.CreateLeague(ctx, l); err != nil {
			return created, fmt.Errorf("bootstrap league %s: %w", l.ID, err)
		}
		created++
	}
	s.logger.WithFields(logrus.Fields{"created": created, "configured": len(leagues)}).Info("Bootstrapped leagues")
	return created, nil
}
