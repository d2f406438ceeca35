package scheduling

import (
	"context"
	"fmt"
	"time"

	"rotacare/models"
)

// FindSiblings returns every row of the logical appointment matching
// client + exact interval + service. The result feeds the exclusion set for
// edits and the one-row-or-all choice for deletes and cancellations.
func (v *DefaultConflictValidator) FindSiblings(ctx context.Context, clientID string, start, end time.Time, serviceID string) ([]models.Booking, error) {
	if clientID == "" {
		return nil, fmt.Errorf("client id is required for sibling discovery")
	}
	siblings, err := v.Bookings.ListSiblings(ctx, clientID, start, end, serviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sibling bookings: %w", err)
	}
	return siblings, nil
}

// SiblingIDs extracts the booking IDs from a sibling set.
func SiblingIDs(siblings []models.Booking) []string {
	ids := make([]string, 0, len(siblings))
	for _, s := range siblings {
		ids = append(ids, s.ID)
	}
	return ids
}
