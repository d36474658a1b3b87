package leave

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// TeamConflictThreshold is the share of the team already away at which an
// applicant is warned.
const TeamConflictThreshold = 0.30

// TeamConflictWarning is advisory only. A team with no active members never warns.
func TeamConflictWarning(overlapping, teamSize int64) (string, bool) {
	if teamSize <= 0 {
		return "", false
	}
	fraction := float64(overlapping) / float64(teamSize)
	if fraction < TeamConflictThreshold {
		return "", false
	}
	return fmt.Sprintf("%d other team member(s) (%d%% of your team) are already on leave during this period.",
		overlapping, int64(math.Round(fraction*100))), true
}

type teamConflictEstimator struct {
	users  UserStore
	leaves Repository
}

// estimate counts active team members and other members' live requests in the
// day range concurrently. Either store error aborts the estimate.
func (e teamConflictEstimator) estimate(ctx context.Context, teamID, userID uuid.UUID, from, to time.Time) (*string, error) {
	var teamSize, overlapping int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := e.users.CountActiveByTeam(gctx, teamID)
		if err != nil {
			return fmt.Errorf("count active team members: %w", err)
		}
		teamSize = n
		return nil
	})
	g.Go(func() error {
		n, err := e.leaves.CountOverlappingForTeam(gctx, teamID, userID, from, to, terminalForOverlap)
		if err != nil {
			return fmt.Errorf("count overlapping team leave: %w", err)
		}
		overlapping = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if warning, ok := TeamConflictWarning(overlapping, teamSize); ok {
		return &warning, nil
	}
	return nil, nil
}
