package scheduling

import (
	"context"
	"fmt"
	"testing"
	"time"

	"rotacare/models"
)

// fakeBookingRepo is an in-memory BookingRepository. readCalls counts
// ListForCarerInWindow invocations; failFor injects per-carer read errors.
type fakeBookingRepo struct {
	store     []models.Booking
	readCalls int
	failFor   map[string]error
}

func (r *fakeBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	r.store = append(r.store, *b)
	return nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	for i := range r.store {
		if r.store[i].ID == id {
			b := r.store[i]
			return &b, nil
		}
	}
	return nil, fmt.Errorf("booking %s not found", id)
}

func (r *fakeBookingRepo) Update(ctx context.Context, b *models.Booking) error {
	for i := range r.store {
		if r.store[i].ID == b.ID {
			r.store[i] = *b
			return nil
		}
	}
	return fmt.Errorf("booking %s not found", b.ID)
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, id, status string) error {
	for i := range r.store {
		if r.store[i].ID == id {
			r.store[i].Status = status
			return nil
		}
	}
	return fmt.Errorf("booking %s not found", id)
}

func (r *fakeBookingRepo) Delete(ctx context.Context, id string) error {
	for i := range r.store {
		if r.store[i].ID == id {
			r.store = append(r.store[:i], r.store[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("booking %s not found", id)
}

func (r *fakeBookingRepo) ListForCarerInWindow(ctx context.Context, carerID string, dayStart, dayEnd time.Time, excludeIDs []string, includeCancelled bool) ([]models.Booking, error) {
	r.readCalls++
	if err := r.failFor[carerID]; err != nil {
		return nil, err
	}
	excluded := map[string]bool{}
	for _, id := range excludeIDs {
		excluded[id] = true
	}
	var out []models.Booking
	for _, b := range r.store {
		if b.CarerID != carerID || excluded[b.ID] {
			continue
		}
		if !b.Start.Before(dayEnd) || !b.End.After(dayStart) {
			continue
		}
		if !includeCancelled && b.Status == models.StatusCancelled {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeBookingRepo) ListSiblings(ctx context.Context, clientID string, start, end time.Time, serviceID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.store {
		if b.ClientID == clientID && b.ServiceID == serviceID && b.Start.Equal(start) && b.End.Equal(end) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListInRange(ctx context.Context, from, to time.Time) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.store {
		if !b.Start.Before(from) && b.Start.Before(to) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) CarerHoursInRange(ctx context.Context, from, to time.Time) ([]models.CarerHours, error) {
	totals := map[string]*models.CarerHours{}
	for _, b := range r.store {
		if b.CarerID == "" || b.Status == models.StatusCancelled {
			continue
		}
		if b.Start.Before(from) || !b.Start.Before(to) {
			continue
		}
		row, ok := totals[b.CarerID]
		if !ok {
			row = &models.CarerHours{CarerID: b.CarerID}
			totals[b.CarerID] = row
		}
		row.TotalMinutes += int(b.End.Sub(b.Start).Minutes())
		row.Bookings++
	}
	var out []models.CarerHours
	for _, row := range totals {
		out = append(out, *row)
	}
	return out, nil
}

type fakeCarerRepo struct {
	carers map[string]models.Carer
}

func (r *fakeCarerRepo) Create(ctx context.Context, c *models.Carer) error {
	r.carers[c.ID] = *c
	return nil
}

func (r *fakeCarerRepo) GetByID(ctx context.Context, id string) (*models.Carer, error) {
	if c, ok := r.carers[id]; ok {
		return &c, nil
	}
	return nil, fmt.Errorf("carer %s not found", id)
}

func (r *fakeCarerRepo) GetByIDs(ctx context.Context, ids []string) ([]models.Carer, error) {
	var out []models.Carer
	for _, id := range ids {
		if c, ok := r.carers[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCarerRepo) List(ctx context.Context, status string) ([]models.Carer, error) {
	var out []models.Carer
	for _, c := range r.carers {
		if status == "" || c.Status == status {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCarerRepo) Update(ctx context.Context, c *models.Carer) error {
	r.carers[c.ID] = *c
	return nil
}

func (r *fakeCarerRepo) Delete(ctx context.Context, id string) error {
	delete(r.carers, id)
	return nil
}

type fakeClientRepo struct {
	clients map[string]models.Client
}

func (r *fakeClientRepo) Create(ctx context.Context, c *models.Client) error {
	r.clients[c.ID] = *c
	return nil
}

func (r *fakeClientRepo) GetByID(ctx context.Context, id string) (*models.Client, error) {
	if c, ok := r.clients[id]; ok {
		return &c, nil
	}
	return nil, fmt.Errorf("client %s not found", id)
}

func (r *fakeClientRepo) GetByIDs(ctx context.Context, ids []string) ([]models.Client, error) {
	var out []models.Client
	for _, id := range ids {
		if c, ok := r.clients[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeClientRepo) List(ctx context.Context) ([]models.Client, error) {
	var out []models.Client
	for _, c := range r.clients {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeClientRepo) Update(ctx context.Context, c *models.Client) error {
	r.clients[c.ID] = *c
	return nil
}

func (r *fakeClientRepo) Delete(ctx context.Context, id string) error {
	delete(r.clients, id)
	return nil
}

func newTestValidator() (*DefaultConflictValidator, *fakeBookingRepo) {
	bookings := &fakeBookingRepo{failFor: map[string]error{}}
	carers := &fakeCarerRepo{carers: map[string]models.Carer{
		"c1": {ID: "c1", Name: "Alice", Status: models.CarerActive},
		"c2": {ID: "c2", Name: "Bola", Status: models.CarerActive},
		"c3": {ID: "c3", Name: "Cora", Status: models.CarerOnLeave},
	}}
	clients := &fakeClientRepo{clients: map[string]models.Client{
		"cl1": {ID: "cl1", Name: "Mrs Hughes"},
	}}
	return &DefaultConflictValidator{Bookings: bookings, Carers: carers, Clients: clients}, bookings
}

func seedBooking(repo *fakeBookingRepo, id, carerID, date, startTime, endTime, status string) models.Booking {
	start := mustInstant(date, startTime)
	end := mustInstant(date, endTime)
	if !end.After(start) {
		end = end.Add(24 * time.Hour)
	}
	b := models.Booking{
		ID:       id,
		CarerID:  carerID,
		ClientID: "cl1",
		Date:     date,
		Start:    start,
		End:      end,
		Status:   status,
	}
	repo.store = append(repo.store, b)
	return b
}

func mustInstant(date, timeOfDay string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", date+" "+timeOfDay)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func TestValidateMissingInputReadsNothing(t *testing.T) {
	v, repo := newTestValidator()
	reqs := []AssignmentRequest{
		{Date: "2026-03-14", StartTime: "09:00", EndTime: "10:00"},
		{CarerID: "c1", StartTime: "09:00", EndTime: "10:00"},
		{CarerID: "c1", Date: "2026-03-14", EndTime: "10:00"},
		{CarerID: "c1", Date: "2026-03-14", StartTime: "09:00"},
	}
	for i, req := range reqs {
		res := v.ValidateAssignment(context.Background(), req)
		if res.ErrKind != models.ValidationErrInput {
			t.Errorf("case %d: want input error kind, got %q", i, res.ErrKind)
		}
		if res.Valid {
			t.Errorf("case %d: failed check must not report valid", i)
		}
	}
	if repo.readCalls != 0 {
		t.Errorf("missing input must not touch the store, got %d reads", repo.readCalls)
	}
}

func TestValidateMalformedInterval(t *testing.T) {
	v, repo := newTestValidator()
	res := v.ValidateAssignment(context.Background(), AssignmentRequest{
		CarerID: "c1", Date: "14/03/2026", StartTime: "09:00", EndTime: "10:00",
	})
	if res.ErrKind != models.ValidationErrInput {
		t.Errorf("want input error kind, got %q", res.ErrKind)
	}
	res = v.ValidateAssignment(context.Background(), AssignmentRequest{
		CarerID: "c1", Date: "2026-03-14", StartTime: "9am", EndTime: "10:00",
	})
	if res.ErrKind != models.ValidationErrInput {
		t.Errorf("want input error kind for bad time, got %q", res.ErrKind)
	}
	if repo.readCalls != 0 {
		t.Errorf("malformed input must not touch the store, got %d reads", repo.readCalls)
	}
}

func TestValidateCleanSlot(t *testing.T) {
	v, repo := newTestValidator()
	seedBooking(repo, "b1", "c1", "2026-03-14", "07:00", "08:00", models.StatusAssigned)

	res := v.ValidateAssignment(context.Background(), AssignmentRequest{
		CarerID: "c1", Date: "2026-03-14", StartTime: "09:00", EndTime: "10:00",
	})
	if !res.Valid || res.Failed() {
		t.Fatalf("expected clean result, got %+v", res)
	}
	if len(res.Conflicts) != 0 {
		t.Errorf("expected no conflicts, got %d", len(res.Conflicts))
	}
}

func TestValidateTouchingBoundaryIsClean(t *testing.T) {
	v, repo := newTestValidator()
	seedBooking(repo, "b1", "c1", "2026-03-14", "09:00", "10:00", models.StatusAssigned)

	res := v.ValidateAssignment(context.Background(), AssignmentRequest{
		CarerID: "c1", Date: "2026-03-14", StartTime: "10:00", EndTime: "11:00",
	})
	if !res.Valid {
		t.Fatalf("back-to-back visit must be valid, got %+v", res)
	}
}

func TestValidateScenarioBattery(t *testing.T) {
	cases := []struct {
		name  string
		req   AssignmentRequest
		valid bool
	}{
		{"half hour overlap", AssignmentRequest{CarerID: "c1", Date: "2026-03-14", StartTime: "09:30", EndTime: "10:30"}, false},
		{"back to back", AssignmentRequest{CarerID: "c1", Date: "2026-03-14", StartTime: "10:00", EndTime: "11:00"}, true},
		{"same slot next day", AssignmentRequest{CarerID: "c1", Date: "2026-03-15", StartTime: "09:00", EndTime: "10:00"}, true},
		{"same slot other carer", AssignmentRequest{CarerID: "c2", Date: "2026-03-14", StartTime: "09:00", EndTime: "10:00"}, true},
		{"identical slot", AssignmentRequest{CarerID: "c1", Date: "2026-03-14", StartTime: "09:00", EndTime: "10:00"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, repo := newTestValidator()
			seedBooking(repo, "b1", "c1", "2026-03-14", "09:00", "10:00", models.StatusAssigned)
			res := v.ValidateAssignment(context.Background(), tc.req)
			if res.Failed() {
				t.Fatalf("unexpected failure: %+v", res)
			}
			if res.Valid != tc.valid {
				t.Errorf("valid = %v, want %v", res.Valid, tc.valid)
			}
		})
	}
}

func TestValidateOverlapConflict(t *testing.T) {
	v, repo := newTestValidator()
	seedBooking(repo, "b1", "c1", "2026-03-14", "09:00", "10:00", models.StatusAssigned)

	res := v.ValidateAssignment(context.Background(), AssignmentRequest{
		CarerID: "c1", Date: "2026-03-14", StartTime: "09:30", EndTime: "10:30",
	})
	if res.Valid {
		t.Fatal("overlapping visit must be invalid")
	}
	if res.Failed() {
		t.Fatalf("a conflict is not a failure, got kind %q", res.ErrKind)
	}
	if len(res.Conflicts) != 1 || res.Conflicts[0].BookingID != "b1" {
		t.Fatalf("expected one conflict with b1, got %+v", res.Conflicts)
	}
	if res.Conflicts[0].ClientName != "Mrs Hughes" {
		t.Errorf("conflict should carry the client name, got %q", res.Conflicts[0].ClientName)
	}
	if res.ErrMessage == "" {
		t.Error("conflict result should carry a human-readable message")
	}
}

func TestValidateCancelledExcluded(t *testing.T) {
	v, repo := newTestValidator()
	seedBooking(repo, "b1", "c1", "2026-03-14", "09:00", "10:00", models.StatusCancelled)

	res := v.ValidateAssignment(context.Background(), AssignmentRequest{
		CarerID: "c1", Date: "2026-03-14", StartTime: "09:00", EndTime: "10:00",
	})
	if !res.Valid {
		t.Fatalf("cancelled booking must not block the slot, got %+v", res)
	}
}

func TestValidateExclusionForSelfEdit(t *testing.T) {
	v, repo := newTestValidator()
	seedBooking(repo, "b1", "c1", "2026-03-14", "09:00", "10:00", models.StatusAssigned)
	seedBooking(repo, "b2", "c1", "2026-03-14", "13:00", "14:00", models.StatusAssigned)

	// Without exclusion the slot is its own conflict.
	res := v.ValidateAssignment(context.Background(), AssignmentRequest{
		CarerID: "c1", Date: "2026-03-14", StartTime: "09:00", EndTime: "10:30",
	})
	if res.Valid {
		t.Fatal("expected conflict without exclusion")
	}

	res = v.ValidateAssignment(context.Background(), AssignmentRequest{
		CarerID: "c1", Date: "2026-03-14", StartTime: "09:00", EndTime: "10:30",
		ExcludeBookingIDs: []string{"b1"},
	})
	if !res.Valid {
		t.Fatalf("excluded booking must not conflict with its own edit, got %+v", res)
	}
}

func TestValidateOvernightInterval(t *testing.T) {
	v, repo := newTestValidator()
	seedBooking(repo, "b1", "c1", "2026-03-14", "23:00", "23:30", models.StatusAssigned)

	res := v.ValidateAssignment(context.Background(), AssignmentRequest{
		CarerID: "c1", Date: "2026-03-14", StartTime: "22:00", EndTime: "06:00",
	})
	if res.Valid {
		t.Fatal("overnight visit must conflict with a late-evening booking")
	}
}

func TestValidateBackendFailure(t *testing.T) {
	v, repo := newTestValidator()
	repo.failFor["c1"] = fmt.Errorf("connection reset")

	res := v.ValidateAssignment(context.Background(), AssignmentRequest{
		CarerID: "c1", Date: "2026-03-14", StartTime: "09:00", EndTime: "10:00",
	})
	if res.ErrKind != models.ValidationErrBackend {
		t.Fatalf("want backend error kind, got %q", res.ErrKind)
	}
	if res.Valid {
		t.Fatal("a failed check must never report valid")
	}
}

func TestValidateCarerStatusWarning(t *testing.T) {
	v, _ := newTestValidator()
	res := v.ValidateAssignment(context.Background(), AssignmentRequest{
		CarerID: "c3", Date: "2026-03-14", StartTime: "09:00", EndTime: "10:00",
	})
	if !res.Valid {
		t.Fatalf("on-leave carer is a warning, not a block: %+v", res)
	}
	if res.Warning == "" {
		t.Error("expected a warning for a non-active carer")
	}
}

func TestValidateCandidateProbe(t *testing.T) {
	v, repo := newTestValidator()
	seedBooking(repo, "b1", "c1", "2026-03-14", "09:00", "10:00", models.StatusAssigned)
	// c2 busy at the same time, c3 only has a cancelled row there.
	seedBooking(repo, "b2", "c2", "2026-03-14", "09:00", "10:00", models.StatusAssigned)
	seedBooking(repo, "b3", "c3", "2026-03-14", "09:00", "10:00", models.StatusCancelled)

	res := v.ValidateAssignment(context.Background(), AssignmentRequest{
		CarerID: "c1", Date: "2026-03-14", StartTime: "09:30", EndTime: "10:30",
		CandidateCarerIDs: []string{"c1", "c2", "c3", ""},
	})
	if res.Valid {
		t.Fatal("expected primary conflict")
	}
	if len(res.AvailableCarers) != 1 || res.AvailableCarers[0].CarerID != "c3" {
		t.Fatalf("expected only c3 free, got %+v", res.AvailableCarers)
	}
	if res.AvailableCarers[0].Name != "Cora" {
		t.Errorf("free carer should carry a name, got %q", res.AvailableCarers[0].Name)
	}
}

func TestValidateCandidateProbeReadFailureDropsCandidate(t *testing.T) {
	v, repo := newTestValidator()
	seedBooking(repo, "b1", "c1", "2026-03-14", "09:00", "10:00", models.StatusAssigned)
	repo.failFor["c2"] = fmt.Errorf("timeout")

	res := v.ValidateAssignment(context.Background(), AssignmentRequest{
		CarerID: "c1", Date: "2026-03-14", StartTime: "09:30", EndTime: "10:30",
		CandidateCarerIDs: []string{"c2", "c3"},
	})
	if res.Failed() {
		t.Fatalf("a probe failure must not fail the whole check: %+v", res)
	}
	for _, c := range res.AvailableCarers {
		if c.CarerID == "c2" {
			t.Fatal("unreadable candidate must not be reported free")
		}
	}
	if len(res.AvailableCarers) != 1 || res.AvailableCarers[0].CarerID != "c3" {
		t.Fatalf("expected c3 free, got %+v", res.AvailableCarers)
	}
}

func TestFindSiblingsRequiresClient(t *testing.T) {
	v, _ := newTestValidator()
	if _, err := v.FindSiblings(context.Background(), "", time.Now(), time.Now().Add(time.Hour), "svc"); err == nil {
		t.Fatal("expected error for missing client id")
	}
}

func TestFindSiblingsExactIntervalMatch(t *testing.T) {
	v, repo := newTestValidator()
	a := seedBooking(repo, "b1", "c1", "2026-03-14", "09:00", "10:00", models.StatusAssigned)
	seedBooking(repo, "b2", "c2", "2026-03-14", "09:00", "10:00", models.StatusAssigned)
	seedBooking(repo, "b3", "c3", "2026-03-14", "09:00", "10:30", models.StatusAssigned)
	seedBooking(repo, "b4", "", "2026-03-14", "09:00", "10:00", models.StatusCancelled)

	siblings, err := v.FindSiblings(context.Background(), "cl1", a.Start, a.End, "")
	if err != nil {
		t.Fatal(err)
	}
	ids := SiblingIDs(siblings)
	if len(ids) != 3 {
		t.Fatalf("expected b1, b2 and the cancelled b4, got %v", ids)
	}
}
