package scheduling

import (
	"context"
	"fmt"
	"time"

	"rotacare/models"
	"rotacare/utils"

	"go.uber.org/zap"
)

// ValidateAssignment resolves the proposed wall-clock interval to UTC
// instants, fetches the carer's same-day non-cancelled bookings minus the
// exclusion set, and applies the half-open overlap rule. When conflicts are
// found and candidate carers were supplied, each candidate is probed with the
// same rules (including the cancelled filter) and reported if free.
func (v *DefaultConflictValidator) ValidateAssignment(ctx context.Context, req AssignmentRequest) models.ValidationResult {
	logger := utils.GetLogger()

	if req.CarerID == "" || req.Date == "" || req.StartTime == "" || req.EndTime == "" {
		return models.ValidationResult{
			ErrKind:    models.ValidationErrInput,
			ErrMessage: "carer, date, start time and end time are all required",
		}
	}

	start, end, err := utils.ResolveInterval(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return models.ValidationResult{
			ErrKind:    models.ValidationErrInput,
			ErrMessage: err.Error(),
		}
	}

	dayStart, dayEnd, err := utils.DayWindow(req.Date)
	if err != nil {
		return models.ValidationResult{
			ErrKind:    models.ValidationErrInput,
			ErrMessage: err.Error(),
		}
	}

	logger.Debug("validating assignment",
		zap.String("carerID", req.CarerID),
		zap.String("date", req.Date),
		zap.Time("start", start),
		zap.Time("end", end),
		zap.Int("excluded", len(req.ExcludeBookingIDs)))

	existing, err := v.Bookings.ListForCarerInWindow(ctx, req.CarerID, dayStart, dayEnd, req.ExcludeBookingIDs, false)
	if err != nil {
		logger.Error("conflict check read failed", zap.String("carerID", req.CarerID), zap.Error(err))
		return models.ValidationResult{
			ErrKind:    models.ValidationErrBackend,
			ErrMessage: fmt.Sprintf("failed to fetch existing bookings: %v", err),
		}
	}

	conflicts := collectConflicts(existing, start, end)
	logger.Debug("overlap computation done",
		zap.Int("fetched", len(existing)),
		zap.Int("conflicts", len(conflicts)))

	result := models.ValidationResult{
		Valid:     len(conflicts) == 0,
		Conflicts: conflicts,
		Warning:   v.carerStatusWarning(ctx, req.CarerID),
	}
	if result.Valid {
		return result
	}

	v.decorateConflicts(ctx, result.Conflicts)
	first := result.Conflicts[0]
	result.ErrMessage = fmt.Sprintf("carer already has a booking for %s from %s to %s (%s)",
		clientLabel(first),
		utils.FormatTimeOfDay(first.Start),
		utils.FormatTimeOfDay(first.End),
		first.Status)

	if len(req.CandidateCarerIDs) > 0 {
		result.AvailableCarers = v.probeCandidates(ctx, req, dayStart, dayEnd, start, end)
	}
	return result
}

// collectConflicts applies the overlap rule. The repository already filters
// cancelled rows and exclusions; the status guard keeps the invariant even
// when a caller hands in a wider set.
func collectConflicts(existing []models.Booking, start, end time.Time) []models.ConflictSummary {
	var conflicts []models.ConflictSummary
	for i := range existing {
		b := &existing[i]
		if !b.IsActive() {
			continue
		}
		if Overlaps(start, end, b.Start, b.End) {
			conflicts = append(conflicts, models.ConflictSummary{
				BookingID: b.ID,
				ClientID:  b.ClientID,
				Date:      b.Date,
				Start:     b.Start,
				End:       b.End,
				Status:    b.Status,
			})
		}
	}
	return conflicts
}

// probeCandidates re-runs the conflict check for each alternate carer and
// returns those with no overlapping booking. Probe reads use the same
// exclusion set and the same cancelled filter as the primary check. A probe
// read failure drops the candidate rather than reporting it free.
func (v *DefaultConflictValidator) probeCandidates(ctx context.Context, req AssignmentRequest, dayStart, dayEnd, start, end time.Time) []models.CarerSummary {
	logger := utils.GetLogger()

	var free []string
	for _, candidateID := range req.CandidateCarerIDs {
		if candidateID == "" || candidateID == req.CarerID {
			continue
		}
		existing, err := v.Bookings.ListForCarerInWindow(ctx, candidateID, dayStart, dayEnd, req.ExcludeBookingIDs, false)
		if err != nil {
			logger.Warn("candidate probe read failed", zap.String("carerID", candidateID), zap.Error(err))
			continue
		}
		if len(collectConflicts(existing, start, end)) == 0 {
			free = append(free, candidateID)
		}
	}
	if len(free) == 0 {
		return nil
	}

	summaries := make([]models.CarerSummary, 0, len(free))
	names := map[string]models.Carer{}
	if carers, err := v.Carers.GetByIDs(ctx, free); err == nil {
		for _, c := range carers {
			names[c.ID] = c
		}
	} else {
		logger.Debug("carer name lookup failed", zap.Error(err))
	}
	for _, id := range free {
		s := models.CarerSummary{CarerID: id}
		if c, ok := names[id]; ok {
			s.Name = c.Name
			s.Status = c.Status
		}
		summaries = append(summaries, s)
	}
	return summaries
}

// decorateConflicts attaches client display names. Lookup failures leave the
// summaries bare; they never fail the validation.
func (v *DefaultConflictValidator) decorateConflicts(ctx context.Context, conflicts []models.ConflictSummary) {
	ids := make([]string, 0, len(conflicts))
	seen := map[string]bool{}
	for _, c := range conflicts {
		if c.ClientID != "" && !seen[c.ClientID] {
			seen[c.ClientID] = true
			ids = append(ids, c.ClientID)
		}
	}
	if len(ids) == 0 {
		return
	}
	clients, err := v.Clients.GetByIDs(ctx, ids)
	if err != nil {
		utils.GetLogger().Debug("client name lookup failed", zap.Error(err))
		return
	}
	names := map[string]string{}
	for _, cl := range clients {
		names[cl.ID] = cl.Name
	}
	for i := range conflicts {
		conflicts[i].ClientName = names[conflicts[i].ClientID]
	}
}

// carerStatusWarning surfaces a non-active carer as a warning, never a block.
func (v *DefaultConflictValidator) carerStatusWarning(ctx context.Context, carerID string) string {
	carer, err := v.Carers.GetByID(ctx, carerID)
	if err != nil || carer.Status == models.CarerActive {
		return ""
	}
	return fmt.Sprintf("carer %s is %s", carer.Name, carer.Status)
}

func clientLabel(c models.ConflictSummary) string {
	if c.ClientName != "" {
		return c.ClientName
	}
	return "client " + c.ClientID
}
