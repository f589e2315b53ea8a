package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"turfbook/internal/payments"
	"turfbook/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeLedger is an in-memory ledger that emulates the storage guarantees the
// controller leans on: an exact-slot uniqueness check, payment reference
// uniqueness, and first-committer-wins for transactions that read the same
// venue/date. Each (venue, date) pair carries a version that every insert
// bumps; a transaction that read version v fails its insert if the version
// has moved since.
type fakeLedger struct {
	mu       sync.Mutex
	byID     map[string]*Reservation
	versions map[string]int

	// injected failures for the write-after-verification paths
	insertErr error
	commitErr error
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		byID:     make(map[string]*Reservation),
		versions: make(map[string]int),
	}
}

func vkey(venueID int64, date time.Time) string {
	return fmt.Sprintf("%d|%s", venueID, date.Format("2006-01-02"))
}

func (l *fakeLedger) rangesLocked(venueID int64, date time.Time) []TimeRange {
	var out []TimeRange
	for _, r := range l.byID {
		if r.VenueID != venueID || !r.Slot.Date.Equal(date) {
			continue
		}
		if r.Status == StatusPending || r.Status == StatusConfirmed {
			out = append(out, r.Slot)
		}
	}
	return out
}

func (l *fakeLedger) Begin(ctx context.Context) (LedgerTx, error) {
	return &fakeTx{l: l, readVer: make(map[string]int)}, nil
}

func (l *fakeLedger) ReadRangesFor(ctx context.Context, venueID int64, date time.Time) ([]TimeRange, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rangesLocked(venueID, date), nil
}

func (l *fakeLedger) GetByID(ctx context.Context, id string) (*Reservation, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	r, ok := l.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (l *fakeLedger) GetByPaymentRef(ctx context.Context, paymentRef string) (*Reservation, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, r := range l.byID {
		if r.PaymentRef == paymentRef {
			cp := *r
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (l *fakeLedger) UpdateStatus(ctx context.Context, id string, from, to Status) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	r, ok := l.byID[id]
	if !ok {
		return ErrNotFound
	}
	if r.Status != from {
		return fmt.Errorf("%w: status is %s, want %s", ErrInvalidTransition, r.Status, from)
	}
	r.Status = to
	r.UpdatedAt = time.Now()
	return nil
}

func (l *fakeLedger) ListByPayer(ctx context.Context, payerID int64) ([]Reservation, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []Reservation
	for _, r := range l.byID {
		if r.PayerID == payerID {
			out = append(out, *r)
		}
	}
	return out, nil
}

type fakeTx struct {
	l       *fakeLedger
	readVer map[string]int
	staged  []string
	done    bool
}

func (t *fakeTx) ReadRangesFor(ctx context.Context, venueID int64, date time.Time) ([]TimeRange, error) {
	t.l.mu.Lock()
	defer t.l.mu.Unlock()
	key := vkey(venueID, date)
	t.readVer[key] = t.l.versions[key]
	return t.l.rangesLocked(venueID, date), nil
}

func (t *fakeTx) InsertIfAbsent(ctx context.Context, r *Reservation) error {
	t.l.mu.Lock()
	defer t.l.mu.Unlock()

	if t.l.insertErr != nil {
		return t.l.insertErr
	}

	for _, existing := range t.l.byID {
		if existing.PaymentRef == r.PaymentRef {
			return fmt.Errorf("%w: %s", ErrDuplicatePayment, r.PaymentRef)
		}
	}
	for _, existing := range t.l.byID {
		if existing.VenueID == r.VenueID && existing.Slot.Equal(r.Slot) &&
			(existing.Status == StatusPending || existing.Status == StatusConfirmed) {
			return fmt.Errorf("%w: %s", ErrSlotConflict, r.Slot)
		}
	}

	key := vkey(r.VenueID, r.Slot.Date)
	if ver, ok := t.readVer[key]; ok && t.l.versions[key] != ver {
		return fmt.Errorf("%w: %s", ErrSlotConflict, r.Slot)
	}

	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now
	t.l.byID[r.ID] = r
	t.l.versions[key]++
	t.staged = append(t.staged, r.ID)
	return nil
}

func (t *fakeTx) Commit(ctx context.Context) error {
	t.l.mu.Lock()
	defer t.l.mu.Unlock()
	if t.l.commitErr != nil {
		// staged inserts stay uncommitted; the rollback cleans them up
		return t.l.commitErr
	}
	t.done = true
	t.staged = nil
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	t.l.mu.Lock()
	defer t.l.mu.Unlock()
	if t.done {
		return nil
	}
	for _, id := range t.staged {
		delete(t.l.byID, id)
	}
	t.staged = nil
	t.done = true
	return nil
}

type fakeVenues struct {
	venues map[int64]VenueInfo
}

func (f *fakeVenues) GetVenue(ctx context.Context, venueID int64) (VenueInfo, error) {
	v, ok := f.venues[venueID]
	if !ok {
		return VenueInfo{}, fmt.Errorf("%w: venue %d", ErrVenueNotFound, venueID)
	}
	return v, nil
}

type fakeVerifier struct {
	mu      sync.Mutex
	records map[string]payments.PaymentRecord
	calls   int
}

func (f *fakeVerifier) Verify(ctx context.Context, paymentRef string, expectedAmount float64) (payments.PaymentRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	rec, ok := f.records[paymentRef]
	if !ok {
		return payments.PaymentRecord{}, fmt.Errorf("%w: %s", payments.ErrPaymentNotFound, paymentRef)
	}
	if !rec.Captured() {
		return payments.PaymentRecord{}, fmt.Errorf("%w: status=%s", payments.ErrNotCaptured, rec.Status)
	}
	if rec.AmountPaise != pricing.ToPaise(expectedAmount) {
		return payments.PaymentRecord{}, fmt.Errorf("%w: gateway=%d", payments.ErrAmountMismatch, rec.AmountPaise)
	}
	return rec, nil
}

type fixture struct {
	ledger   *fakeLedger
	venues   *fakeVenues
	verifier *fakeVerifier
	ctrl     *Controller
}

// newFixture wires a controller around one active venue at 1000/hr with the
// standard 25.00 commission and 2.07% gateway fee.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	codes, err := NewCodeGenerator("test-salt")
	require.NoError(t, err)

	f := &fixture{
		ledger: newFakeLedger(),
		venues: &fakeVenues{venues: map[int64]VenueInfo{
			1: {ID: 1, HourlyRate: 1000, IsActive: true},
			2: {ID: 2, HourlyRate: 800, IsActive: false},
			3: {ID: 3, HourlyRate: 1000, IsActive: true},
		}},
		verifier: &fakeVerifier{records: make(map[string]payments.PaymentRecord)},
	}
	engine := pricing.NewEngine(pricing.Config{PlatformCommission: 25.00, GatewayFeeRate: 0.0207})
	f.ctrl = NewController(f.ledger, f.venues, f.verifier, engine, codes, zap.NewNop().Sugar())
	f.ctrl.now = func() time.Time { return time.Date(2026, 8, 31, 8, 0, 0, 0, time.UTC) }
	return f
}

// capture records a captured payment of exactly the quoted total for the
// given slot at venue 1 (1000/hr).
func (f *fixture) capture(ref string, amountPaise int64) {
	f.verifier.mu.Lock()
	defer f.verifier.mu.Unlock()
	f.verifier.records[ref] = payments.PaymentRecord{
		Ref:         ref,
		AmountPaise: amountPaise,
		Currency:    "INR",
		Status:      "captured",
	}
}

// 2 hours at 1000/hr: 2000 + 25 + 41.92 = 2066.92
const twoHourPaise = 206692

func TestAdmit_Success(t *testing.T) {
	f := newFixture(t)
	f.capture("pay_1", twoHourPaise)

	slot := NewTimeRange(day("2026-09-01"), 18*60, 20*60)
	res, err := f.ctrl.Admit(context.Background(), AdmitRequest{
		VenueID: 1, PayerID: 7, Slot: slot, PaymentRef: "pay_1",
	})
	require.NoError(t, err)

	assert.Equal(t, StatusConfirmed, res.Status)
	assert.Equal(t, 2066.92, res.Breakdown.TotalCharged)
	assert.Equal(t, 2000.00, res.Breakdown.OwnerShare)
	assert.True(t, strings.HasPrefix(res.Code, "TURF-"))
	assert.NotEmpty(t, res.ID)

	taken, err := f.ctrl.UnavailableRanges(context.Background(), 1, slot.Date)
	require.NoError(t, err)
	require.Len(t, taken, 1)
	assert.True(t, taken[0].Equal(slot))
}

func TestAdmit_ConcurrentOverlap_OneWinner(t *testing.T) {
	f := newFixture(t)
	slot := NewTimeRange(day("2026-09-01"), 18*60, 20*60)

	const attempts = 8
	for i := 0; i < attempts; i++ {
		f.capture(fmt.Sprintf("pay_%d", i), twoHourPaise)
	}

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.ctrl.Admit(context.Background(), AdmitRequest{
				VenueID: 1, PayerID: int64(100 + i), Slot: slot,
				PaymentRef: fmt.Sprintf("pay_%d", i),
			})
		}(i)
	}
	wg.Wait()

	won := 0
	for _, err := range errs {
		if err == nil {
			won++
		} else {
			assert.ErrorIs(t, err, ErrSlotConflict)
		}
	}
	assert.Equal(t, 1, won, "exactly one of the racing admissions must win")

	taken, err := f.ctrl.UnavailableRanges(context.Background(), 1, slot.Date)
	require.NoError(t, err)
	assert.Len(t, taken, 1)
}

func TestAdmit_AdjacentSlotsBothWin(t *testing.T) {
	f := newFixture(t)
	d := day("2026-09-01")

	// 1 hour at 1000/hr: 1000 + 25 + round2(1025*0.0207)=21.22 -> 1046.22
	f.capture("pay_a", 104622)
	f.capture("pay_b", 104622)

	_, err := f.ctrl.Admit(context.Background(), AdmitRequest{
		VenueID: 1, PayerID: 7, Slot: NewTimeRange(d, 18*60, 19*60), PaymentRef: "pay_a",
	})
	require.NoError(t, err)

	_, err = f.ctrl.Admit(context.Background(), AdmitRequest{
		VenueID: 1, PayerID: 8, Slot: NewTimeRange(d, 19*60, 20*60), PaymentRef: "pay_b",
	})
	require.NoError(t, err, "a range ending exactly where another starts is not a conflict")
}

func TestAdmit_AmountMismatchLeavesNoTrace(t *testing.T) {
	f := newFixture(t)
	// one paisa short
	f.capture("pay_short", twoHourPaise-1)

	slot := NewTimeRange(day("2026-09-01"), 18*60, 20*60)
	_, err := f.ctrl.Admit(context.Background(), AdmitRequest{
		VenueID: 1, PayerID: 7, Slot: slot, PaymentRef: "pay_short",
	})
	assert.ErrorIs(t, err, payments.ErrAmountMismatch)

	_, err = f.ledger.GetByPaymentRef(context.Background(), "pay_short")
	assert.ErrorIs(t, err, ErrNotFound, "a rejected admission must not occupy the slot")

	taken, err := f.ctrl.UnavailableRanges(context.Background(), 1, slot.Date)
	require.NoError(t, err)
	assert.Empty(t, taken)
}

func TestAdmit_NotCaptured(t *testing.T) {
	f := newFixture(t)
	f.verifier.records["pay_created"] = payments.PaymentRecord{
		Ref: "pay_created", AmountPaise: twoHourPaise, Currency: "INR", Status: "created",
	}

	_, err := f.ctrl.Admit(context.Background(), AdmitRequest{
		VenueID: 1, PayerID: 7,
		Slot:       NewTimeRange(day("2026-09-01"), 18*60, 20*60),
		PaymentRef: "pay_created",
	})
	assert.ErrorIs(t, err, payments.ErrNotCaptured)
}

func TestAdmit_IdempotentReplay(t *testing.T) {
	f := newFixture(t)
	f.capture("pay_1", twoHourPaise)

	req := AdmitRequest{
		VenueID: 1, PayerID: 7,
		Slot:       NewTimeRange(day("2026-09-01"), 18*60, 20*60),
		PaymentRef: "pay_1",
	}

	first, err := f.ctrl.Admit(context.Background(), req)
	require.NoError(t, err)

	second, err := f.ctrl.Admit(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Code, second.Code)
	assert.Equal(t, 1, f.verifier.calls, "a replay resolves from the ledger without hitting the gateway")
}

func TestAdmit_ReusedPaymentRefDifferentSlot(t *testing.T) {
	f := newFixture(t)
	f.capture("pay_1", twoHourPaise)

	d := day("2026-09-01")
	_, err := f.ctrl.Admit(context.Background(), AdmitRequest{
		VenueID: 1, PayerID: 7, Slot: NewTimeRange(d, 18*60, 20*60), PaymentRef: "pay_1",
	})
	require.NoError(t, err)

	_, err = f.ctrl.Admit(context.Background(), AdmitRequest{
		VenueID: 1, PayerID: 7, Slot: NewTimeRange(d, 8*60, 10*60), PaymentRef: "pay_1",
	})
	assert.ErrorIs(t, err, ErrDuplicatePayment)
}

func TestAdmit_ReusedPaymentRefDifferentVenue(t *testing.T) {
	f := newFixture(t)
	f.capture("pay_1", twoHourPaise)

	slot := NewTimeRange(day("2026-09-01"), 18*60, 20*60)
	first, err := f.ctrl.Admit(context.Background(), AdmitRequest{
		VenueID: 1, PayerID: 7, Slot: slot, PaymentRef: "pay_1",
	})
	require.NoError(t, err)

	// Same payer and slot times, different venue: the prior reservation is
	// not an answer here, the payment is simply spent.
	_, err = f.ctrl.Admit(context.Background(), AdmitRequest{
		VenueID: 3, PayerID: 7, Slot: slot, PaymentRef: "pay_1",
	})
	assert.ErrorIs(t, err, ErrDuplicatePayment)

	got, err := f.ledger.GetByID(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.VenueID)
}

func TestAdmit_RejectsBadRequests(t *testing.T) {
	f := newFixture(t)
	d := day("2026-09-01")

	_, err := f.ctrl.Admit(context.Background(), AdmitRequest{
		VenueID: 1, PayerID: 7, Slot: NewTimeRange(d, 19*60, 18*60), PaymentRef: "x",
	})
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = f.ctrl.Admit(context.Background(), AdmitRequest{
		VenueID: 99, PayerID: 7, Slot: NewTimeRange(d, 18*60, 20*60), PaymentRef: "x",
	})
	assert.ErrorIs(t, err, ErrVenueNotFound)

	_, err = f.ctrl.Admit(context.Background(), AdmitRequest{
		VenueID: 2, PayerID: 7, Slot: NewTimeRange(d, 18*60, 20*60), PaymentRef: "x",
	})
	assert.ErrorIs(t, err, ErrVenueInactive)
}

func TestAdmit_InsertFailureAfterCapture(t *testing.T) {
	f := newFixture(t)
	f.capture("pay_1", twoHourPaise)
	f.ledger.insertErr = errors.New("connection reset by peer")

	slot := NewTimeRange(day("2026-09-01"), 18*60, 20*60)
	_, err := f.ctrl.Admit(context.Background(), AdmitRequest{
		VenueID: 1, PayerID: 7, Slot: slot, PaymentRef: "pay_1",
	})

	// The payment is captured but nothing was recorded: the caller needs
	// the distinct refund signal, not a conflict.
	assert.ErrorIs(t, err, ErrLedgerWrite)
	assert.NotErrorIs(t, err, ErrSlotConflict)

	_, err = f.ledger.GetByPaymentRef(context.Background(), "pay_1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdmit_CommitFailureAfterCapture(t *testing.T) {
	f := newFixture(t)
	f.capture("pay_1", twoHourPaise)
	f.ledger.commitErr = errors.New("broken pipe")

	slot := NewTimeRange(day("2026-09-01"), 18*60, 20*60)
	_, err := f.ctrl.Admit(context.Background(), AdmitRequest{
		VenueID: 1, PayerID: 7, Slot: slot, PaymentRef: "pay_1",
	})
	assert.ErrorIs(t, err, ErrLedgerWrite)

	// The rollback discards the staged insert, so the slot stays free.
	taken, rerr := f.ledger.ReadRangesFor(context.Background(), 1, slot.Date)
	require.NoError(t, rerr)
	assert.Empty(t, taken)
}

func TestCancel_FreesSlot(t *testing.T) {
	f := newFixture(t)
	f.capture("pay_1", twoHourPaise)
	f.capture("pay_2", twoHourPaise)

	slot := NewTimeRange(day("2026-09-01"), 18*60, 20*60)
	first, err := f.ctrl.Admit(context.Background(), AdmitRequest{
		VenueID: 1, PayerID: 7, Slot: slot, PaymentRef: "pay_1",
	})
	require.NoError(t, err)

	require.NoError(t, f.ctrl.Cancel(context.Background(), first.ID, 7))

	got, err := f.ledger.GetByID(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, got.Status)

	// The freed range admits a fresh reservation.
	second, err := f.ctrl.Admit(context.Background(), AdmitRequest{
		VenueID: 1, PayerID: 9, Slot: slot, PaymentRef: "pay_2",
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestCancel_OnlyPayerBeforeStart(t *testing.T) {
	f := newFixture(t)
	f.capture("pay_1", twoHourPaise)

	slot := NewTimeRange(day("2026-09-01"), 18*60, 20*60)
	res, err := f.ctrl.Admit(context.Background(), AdmitRequest{
		VenueID: 1, PayerID: 7, Slot: slot, PaymentRef: "pay_1",
	})
	require.NoError(t, err)

	err = f.ctrl.Cancel(context.Background(), res.ID, 8)
	assert.ErrorIs(t, err, ErrForbidden)

	// clock moves past the range start
	f.ctrl.now = func() time.Time { return time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC) }
	err = f.ctrl.Cancel(context.Background(), res.ID, 7)
	assert.ErrorIs(t, err, ErrPastRange)

	err = f.ctrl.Cancel(context.Background(), "missing-id", 7)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestComplete_Checkin(t *testing.T) {
	f := newFixture(t)
	f.capture("pay_1", twoHourPaise)

	res, err := f.ctrl.Admit(context.Background(), AdmitRequest{
		VenueID: 1, PayerID: 7,
		Slot:       NewTimeRange(day("2026-09-01"), 18*60, 20*60),
		PaymentRef: "pay_1",
	})
	require.NoError(t, err)

	err = f.ctrl.Complete(context.Background(), res.ID, "TURF-WRONG")
	assert.ErrorIs(t, err, ErrBadCode)

	require.NoError(t, f.ctrl.Complete(context.Background(), res.ID, res.Code))

	got, err := f.ledger.GetByID(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, got.Status)

	// scanning the same code twice is rejected
	err = f.ctrl.Complete(context.Background(), res.ID, res.Code)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// a completed reservation cannot be cancelled either
	err = f.ctrl.Cancel(context.Background(), res.ID, 7)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestQuoteFor(t *testing.T) {
	f := newFixture(t)

	b, err := f.ctrl.QuoteFor(context.Background(), 1, NewTimeRange(day("2026-09-01"), 18*60, 20*60))
	require.NoError(t, err)
	assert.Equal(t, 2066.92, b.TotalCharged)

	_, err = f.ctrl.QuoteFor(context.Background(), 2, NewTimeRange(day("2026-09-01"), 18*60, 20*60))
	assert.ErrorIs(t, err, ErrVenueInactive)
}
