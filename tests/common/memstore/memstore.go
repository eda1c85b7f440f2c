//go:build unit || e2e

// Package memstore is an in-memory unit of work for use-case tests. It enforces the same
// overlap exclusion and version checks as the Postgres schema.
package memstore

import (
	"bytes"
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"carwash-scheduler/internal/domain/booking"
	"carwash-scheduler/internal/domain/resource"
	"carwash-scheduler/internal/domain/scheduling"
	"carwash-scheduler/internal/infra"
	"carwash-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Store struct {
	mu          sync.Mutex
	bookings    map[uuid.UUID]booking.Snapshot
	constraints []scheduling.Constraints
	bays        map[uuid.UUID]*resource.WashBay
	teams       map[uuid.UUID]*resource.MobileTeam
	effects     []shared.SideEffect

	// FailNextCommit makes the next read-write transaction fail with this error after fn ran.
	FailNextCommit error
	logger         *zap.Logger
}

func New(c scheduling.Constraints) *Store {
	return &Store{
		bookings:    make(map[uuid.UUID]booking.Snapshot),
		constraints: []scheduling.Constraints{c},
		bays:        make(map[uuid.UUID]*resource.WashBay),
		teams:       make(map[uuid.UUID]*resource.MobileTeam),
		logger:      zap.NewNop(),
	}
}

var _ shared.UnitOfWork = (*Store)(nil)

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := s.copyState()
	err := fn(ctx, &tx{s: s})
	if err == nil && s.FailNextCommit != nil {
		err, s.FailNextCommit = s.FailNextCommit, nil
	}
	if err != nil {
		s.restore(saved)
	}
	return err
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ctx, &tx{s: s, readOnly: true})
}

type state struct {
	bookings    map[uuid.UUID]booking.Snapshot
	constraints []scheduling.Constraints
	bays        map[uuid.UUID]*resource.WashBay
	teams       map[uuid.UUID]*resource.MobileTeam
	effects     []shared.SideEffect
}

func (s *Store) copyState() state {
	return state{
		bookings:    maps.Clone(s.bookings),
		constraints: slices.Clone(s.constraints),
		bays:        maps.Clone(s.bays),
		teams:       maps.Clone(s.teams),
		effects:     slices.Clone(s.effects),
	}
}

func (s *Store) restore(st state) {
	s.bookings, s.constraints, s.bays, s.teams, s.effects = st.bookings, st.constraints, st.bays, st.teams, st.effects
}

// Seeding and inspection helpers; they bypass transactions.

func (s *Store) AddWashBay(b *resource.WashBay) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bays[b.ID()] = b
}

func (s *Store) AddMobileTeam(t *resource.MobileTeam) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teams[t.ID()] = t
}

func (s *Store) PutBooking(b *booking.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[b.ID()] = b.Snapshot()
}

func (s *Store) Booking(id uuid.UUID) (*booking.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.bookings[id]
	if !ok {
		return nil, false
	}
	return booking.Reconstruct(snap), true
}

func (s *Store) Bookings() []*booking.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*booking.Booking, 0, len(s.bookings))
	for _, snap := range s.bookings {
		out = append(out, booking.Reconstruct(snap))
	}
	return out
}

func (s *Store) SideEffects() []shared.SideEffect {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.effects)
}

type tx struct {
	s        *Store
	readOnly bool
}

func (t *tx) Bookings() shared.BookingRepository        { return bookingRepo{t} }
func (t *tx) Constraints() shared.ConstraintsRepository { return constraintsRepo{t} }
func (t *tx) Resources() shared.ResourceRepository      { return resourceRepo{t} }
func (t *tx) SideEffects() shared.SideEffectRepository  { return sideEffectRepo{t} }

func (t *tx) fail(kind infra.RepositoryErrorKind, msg string) error {
	return infra.WrapRepoErr(t.s.logger, kind, msg, nil)
}

func (t *tx) writable() error {
	if t.readOnly {
		return t.fail(infra.KindDBFailure, "cannot execute in a read-only transaction")
	}
	return nil
}

type bookingRepo struct{ t *tx }

func occupancyOf(snap booking.Snapshot) (scheduling.Occupancy, bool) {
	return booking.Reconstruct(snap).Occupancy()
}

// checkExclusion mirrors the bookings_no_overlap constraint.
func (r bookingRepo) checkExclusion(b *booking.Booking) error {
	occ, ok := b.Occupancy()
	if !ok {
		return nil
	}
	for id, other := range r.t.s.bookings {
		if id == b.ID() {
			continue
		}
		o, ok := occupancyOf(other)
		if ok && o.ResourceID == occ.ResourceID && scheduling.Overlaps(o, occ) {
			return r.t.fail(infra.KindConflict, "conflicting key value violates exclusion constraint")
		}
	}
	return nil
}

func (r bookingRepo) Create(_ context.Context, b *booking.Booking) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	if _, exists := r.t.s.bookings[b.ID()]; exists {
		return r.t.fail(infra.KindDuplicateKey, "booking exists")
	}
	if err := r.checkExclusion(b); err != nil {
		return err
	}
	r.t.s.bookings[b.ID()] = b.Snapshot()
	return nil
}

func (r bookingRepo) Update(_ context.Context, b *booking.Booking) (*booking.Booking, error) {
	if err := r.t.writable(); err != nil {
		return nil, err
	}
	stored, ok := r.t.s.bookings[b.ID()]
	if !ok || stored.Version != b.Version() {
		return nil, r.t.fail(infra.KindStaleVersion, "booking version changed")
	}
	if err := r.checkExclusion(b); err != nil {
		return nil, err
	}
	next := b.Snapshot()
	next.Version++
	r.t.s.bookings[b.ID()] = next
	return booking.Reconstruct(next), nil
}

func (r bookingRepo) UpdatePayment(_ context.Context, id uuid.UUID, p booking.Payment) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	stored, ok := r.t.s.bookings[id]
	if !ok {
		return r.t.fail(infra.KindNotFound, "booking not found")
	}
	if p.IntentID == nil {
		p.IntentID = stored.Payment.IntentID
	}
	stored.Payment = p
	r.t.s.bookings[id] = stored
	return nil
}

func (r bookingRepo) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	stored, ok := r.t.s.bookings[id]
	if !ok {
		return nil, r.t.fail(infra.KindNotFound, "booking not found")
	}
	return booking.Reconstruct(stored), nil
}

func (r bookingRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.FindByID(ctx, id)
}

func (r bookingRepo) ListOccupancies(_ context.Context, resourceIDs []uuid.UUID, from, to time.Time) ([]scheduling.Occupancy, error) {
	var out []scheduling.Occupancy
	for _, snap := range r.t.s.bookings {
		o, ok := occupancyOf(snap)
		if !ok || !slices.Contains(resourceIDs, o.ResourceID) {
			continue
		}
		if o.Start.Add(-o.Buffer).Before(to) && o.End.Add(o.Buffer).After(from) {
			out = append(out, o)
		}
	}
	slices.SortFunc(out, func(a, b scheduling.Occupancy) int { return a.Start.Compare(b.Start) })
	return out, nil
}

func (r bookingRepo) ListByCustomer(_ context.Context, f shared.BookingFilter) ([]*booking.Booking, error) {
	var out []*booking.Booking
	for _, snap := range r.t.s.bookings {
		switch {
		case snap.CustomerID != f.CustomerID:
			continue
		case len(f.Statuses) > 0 && !slices.Contains(f.Statuses, snap.Status):
			continue
		case f.From != nil && snap.ScheduledAt.Before(*f.From):
			continue
		case f.To != nil && !snap.ScheduledAt.Before(*f.To):
			continue
		case f.AfterScheduledAt != nil && !after(snap, *f.AfterScheduledAt, *f.AfterID):
			continue
		}
		out = append(out, booking.Reconstruct(snap))
	}
	slices.SortFunc(out, func(a, b *booking.Booking) int {
		if c := a.ScheduledAt().Compare(b.ScheduledAt()); c != 0 {
			return c
		}
		return compareIDs(a.ID(), b.ID())
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func after(snap booking.Snapshot, at time.Time, id uuid.UUID) bool {
	if c := snap.ScheduledAt.Compare(at); c != 0 {
		return c > 0
	}
	return compareIDs(snap.ID, id) > 0
}

// compareIDs orders like Postgres compares uuid values.
func compareIDs(a, b uuid.UUID) int {
	return bytes.Compare(a[:], b[:])
}

func (r bookingRepo) ListDueNoShows(_ context.Context, cutoff time.Time, limit int) ([]uuid.UUID, error) {
	var due []booking.Snapshot
	for _, snap := range r.t.s.bookings {
		if snap.Status == booking.StatusConfirmed && !snap.ScheduledAt.After(cutoff) {
			due = append(due, snap)
		}
	}
	slices.SortFunc(due, func(a, b booking.Snapshot) int { return a.ScheduledAt.Compare(b.ScheduledAt) })
	ids := make([]uuid.UUID, 0, len(due))
	for _, snap := range due {
		if len(ids) == limit {
			break
		}
		ids = append(ids, snap.ID)
	}
	return ids, nil
}

type constraintsRepo struct{ t *tx }

func (r constraintsRepo) Active(context.Context) (scheduling.Constraints, error) {
	for _, c := range r.t.s.constraints {
		if c.IsActive() {
			return c, nil
		}
	}
	return scheduling.Constraints{}, r.t.fail(infra.KindNotFound, "no active constraints")
}

func (r constraintsRepo) Insert(_ context.Context, c scheduling.Constraints) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	if c.IsActive() {
		if _, err := r.Active(context.Background()); err == nil {
			return r.t.fail(infra.KindDuplicateKey, "another constraints version is active")
		}
	}
	r.t.s.constraints = append(r.t.s.constraints, c)
	return nil
}

func (r constraintsRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	for i, c := range r.t.s.constraints {
		if c.ID() == id && c.IsActive() {
			retired, err := scheduling.ReconstructConstraints(c.ID(), c.Version(), c.Params(), false, c.CreatedAt())
			if err != nil {
				return err
			}
			r.t.s.constraints[i] = retired
			return nil
		}
	}
	return r.t.fail(infra.KindStaleVersion, "constraints already replaced")
}

type resourceRepo struct{ t *tx }

func (r resourceRepo) Catalog(context.Context) (resource.Catalog, error) {
	cat := resource.Catalog{}
	for _, b := range r.t.s.bays {
		cat.Bays = append(cat.Bays, b)
	}
	for _, t := range r.t.s.teams {
		cat.Teams = append(cat.Teams, t)
	}
	return cat, nil
}

func (r resourceRepo) FindWashBay(_ context.Context, id uuid.UUID) (*resource.WashBay, error) {
	if b, ok := r.t.s.bays[id]; ok {
		return b, nil
	}
	return nil, r.t.fail(infra.KindNotFound, "wash bay not found")
}

func (r resourceRepo) FindMobileTeam(_ context.Context, id uuid.UUID) (*resource.MobileTeam, error) {
	if t, ok := r.t.s.teams[id]; ok {
		return t, nil
	}
	return nil, r.t.fail(infra.KindNotFound, "mobile team not found")
}

func (r resourceRepo) CreateWashBay(_ context.Context, b *resource.WashBay) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	for _, other := range r.t.s.bays {
		if other.BayNumber() == b.BayNumber() {
			return r.t.fail(infra.KindDuplicateKey, "bay number taken")
		}
	}
	r.t.s.bays[b.ID()] = b
	return nil
}

func (r resourceRepo) CreateMobileTeam(_ context.Context, t *resource.MobileTeam) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	r.t.s.teams[t.ID()] = t
	return nil
}

func (r resourceRepo) UpdateWashBayStatus(_ context.Context, b *resource.WashBay) error {
	if _, ok := r.t.s.bays[b.ID()]; !ok {
		return r.t.fail(infra.KindNotFound, "wash bay not found")
	}
	r.t.s.bays[b.ID()] = b
	return nil
}

func (r resourceRepo) UpdateMobileTeamStatus(_ context.Context, t *resource.MobileTeam) error {
	if _, ok := r.t.s.teams[t.ID()]; !ok {
		return r.t.fail(infra.KindNotFound, "mobile team not found")
	}
	r.t.s.teams[t.ID()] = t
	return nil
}

type sideEffectRepo struct{ t *tx }

func (r sideEffectRepo) Record(_ context.Context, e shared.SideEffect) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	r.t.s.effects = append(r.t.s.effects, e)
	return nil
}
