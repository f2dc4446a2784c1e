package inventory

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
)

// memStore emulates the Postgres store: LockRow blocks while another
// transaction holds the same record, writes are staged and only applied
// on commit.
type memStore struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
	rows  map[int64]memRow

	zeroRows bool
	setErr   error
}

type memRow struct {
	qty     decimal.Decimal
	reorder decimal.Decimal
}

func newMemStore() *memStore {
	return &memStore{
		locks: make(map[int64]*sync.Mutex),
		rows:  make(map[int64]memRow),
	}
}

func (s *memStore) seed(id int64, qty, reorder string) {
	s.rows[id] = memRow{
		qty:     decimal.RequireFromString(qty),
		reorder: decimal.RequireFromString(reorder),
	}
	s.locks[id] = &sync.Mutex{}
}

func (s *memStore) quantity(t *testing.T, id int64) decimal.Decimal {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rows[id]
	if !ok {
		t.Fatalf("no row %d", id)
	}
	return r.qty
}

func (s *memStore) WithTx(_ context.Context, fn func(tx Tx) error) error {
	tx := &memTx{store: s, staged: make(map[int64]decimal.Decimal)}
	defer tx.unlockAll()

	if err := fn(tx); err != nil {
		return err
	}

	s.mu.Lock()
	for id, q := range tx.staged {
		r := s.rows[id]
		r.qty = q
		s.rows[id] = r
	}
	s.mu.Unlock()
	return nil
}

type memTx struct {
	store  *memStore
	held   []*sync.Mutex
	staged map[int64]decimal.Decimal
}

func (t *memTx) unlockAll() {
	for _, l := range t.held {
		l.Unlock()
	}
}

func (t *memTx) LockRow(_ context.Context, id int64) (*Row, error) {
	t.store.mu.Lock()
	l, ok := t.store.locks[id]
	t.store.mu.Unlock()
	if !ok {
		return nil, nil
	}

	l.Lock()
	t.held = append(t.held, l)

	t.store.mu.Lock()
	r := t.store.rows[id]
	t.store.mu.Unlock()
	return &Row{Quantity: r.qty, ReorderQuantity: r.reorder}, nil
}

func (t *memTx) SetQuantity(_ context.Context, id int64, q decimal.Decimal) (int64, error) {
	if t.store.setErr != nil {
		return 0, t.store.setErr
	}
	if t.store.zeroRows {
		return 0, nil
	}
	t.staged[id] = q
	return 1, nil
}

func newTestService(store Store) *Service {
	return NewService(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestAdjust_Add(t *testing.T) {
	store := newMemStore()
	store.seed(1, "50", "10")
	svc := newTestService(store)

	adj, err := svc.Adjust(context.Background(), 1, decimal.RequireFromString("2.5"), ActionAdd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !adj.OK {
		t.Fatalf("expected success, got code %s: %s", adj.Code, adj.Message)
	}
	if !adj.NewQuantity.Equal(decimal.RequireFromString("52.5")) {
		t.Errorf("expected new quantity 52.5, got %s", adj.NewQuantity)
	}
	if adj.BelowReorder {
		t.Error("52.5 is above reorder level 10, signal should be off")
	}
	if !store.quantity(t, 1).Equal(decimal.RequireFromString("52.5")) {
		t.Errorf("stored quantity = %s, want 52.5", store.quantity(t, 1))
	}
}

func TestAdjust_RemoveToZero(t *testing.T) {
	store := newMemStore()
	store.seed(1, "5", "10")
	svc := newTestService(store)

	adj, err := svc.Adjust(context.Background(), 1, decimal.NewFromInt(5), ActionRemove)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !adj.OK {
		t.Fatalf("expected success, got code %s", adj.Code)
	}
	if !adj.NewQuantity.IsZero() {
		t.Errorf("expected quantity 0, got %s", adj.NewQuantity)
	}
}

func TestAdjust_InsufficientStock(t *testing.T) {
	store := newMemStore()
	store.seed(1, "3", "10")
	svc := newTestService(store)

	adj, err := svc.Adjust(context.Background(), 1, decimal.NewFromInt(4), ActionRemove)
	if err != nil {
		t.Fatalf("business rejection must not be an error, got: %v", err)
	}
	if adj.OK {
		t.Fatal("expected rejection")
	}
	if adj.Code != CodeInsufficientStock {
		t.Errorf("expected code %s, got %s", CodeInsufficientStock, adj.Code)
	}
	if !adj.NewQuantity.Equal(decimal.NewFromInt(3)) {
		t.Errorf("rejection must carry current quantity 3, got %s", adj.NewQuantity)
	}
	if !store.quantity(t, 1).Equal(decimal.NewFromInt(3)) {
		t.Errorf("stored quantity changed to %s", store.quantity(t, 1))
	}
}

func TestAdjust_UnknownRecord(t *testing.T) {
	store := newMemStore()
	store.seed(1, "50", "10")
	svc := newTestService(store)

	for _, action := range []Action{ActionAdd, ActionRemove} {
		adj, err := svc.Adjust(context.Background(), 999, decimal.NewFromInt(1), action)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", action, err)
		}
		if adj.OK || adj.Code != CodeNotFound {
			t.Errorf("%s: expected not_found, got ok=%v code=%s", action, adj.OK, adj.Code)
		}
	}
	if !store.quantity(t, 1).Equal(decimal.NewFromInt(50)) {
		t.Errorf("unrelated row mutated: %s", store.quantity(t, 1))
	}
}

func TestAdjust_InvalidAction(t *testing.T) {
	store := newMemStore()
	store.seed(1, "50", "10")
	svc := newTestService(store)

	adj, err := svc.Adjust(context.Background(), 1, decimal.NewFromInt(1), Action("transfer"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if adj.OK || adj.Code != CodeInvalidAction {
		t.Errorf("expected invalid_action, got ok=%v code=%s", adj.OK, adj.Code)
	}
	if !store.quantity(t, 1).Equal(decimal.NewFromInt(50)) {
		t.Errorf("stored quantity changed to %s", store.quantity(t, 1))
	}
}

func TestAdjust_InvalidQuantity(t *testing.T) {
	store := newMemStore()
	store.seed(1, "50", "10")
	svc := newTestService(store)

	for _, q := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-2)} {
		_, err := svc.Adjust(context.Background(), 1, q, ActionAdd)
		if !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("quantity %s: expected ErrInvalidQuantity, got %v", q, err)
		}
	}
}

func TestAdjust_DecimalRoundTrip(t *testing.T) {
	store := newMemStore()
	store.seed(1, "50.0", "10")
	svc := newTestService(store)

	// Many small add/remove cycles must not drift the way float64
	// accumulation would.
	x := decimal.RequireFromString("0.1")
	for i := 0; i < 100; i++ {
		if _, err := svc.Adjust(context.Background(), 1, x, ActionAdd); err != nil {
			t.Fatalf("add: %v", err)
		}
		if _, err := svc.Adjust(context.Background(), 1, x, ActionRemove); err != nil {
			t.Fatalf("remove: %v", err)
		}
	}
	if !store.quantity(t, 1).Equal(decimal.RequireFromString("50.0")) {
		t.Errorf("expected exact 50.0 after round trips, got %s", store.quantity(t, 1))
	}
}

func TestAdjust_ThresholdSignal(t *testing.T) {
	store := newMemStore()
	store.seed(1, "12", "10")
	svc := newTestService(store)

	adj, err := svc.Adjust(context.Background(), 1, decimal.NewFromInt(1), ActionRemove)
	if err != nil {
		t.Fatalf("remove(1): %v", err)
	}
	if !adj.NewQuantity.Equal(decimal.NewFromInt(11)) || adj.BelowReorder {
		t.Errorf("remove(1): got quantity %s, below=%v; want 11, false", adj.NewQuantity, adj.BelowReorder)
	}

	store = newMemStore()
	store.seed(1, "12", "10")
	svc = newTestService(store)

	adj, err = svc.Adjust(context.Background(), 1, decimal.NewFromInt(3), ActionRemove)
	if err != nil {
		t.Fatalf("remove(3): %v", err)
	}
	if !adj.NewQuantity.Equal(decimal.NewFromInt(9)) || !adj.BelowReorder {
		t.Errorf("remove(3): got quantity %s, below=%v; want 9, true", adj.NewQuantity, adj.BelowReorder)
	}
}

// Exactly at the threshold is not below it.
func TestAdjust_AtThresholdNotSignalled(t *testing.T) {
	store := newMemStore()
	store.seed(1, "12", "10")
	svc := newTestService(store)

	adj, err := svc.Adjust(context.Background(), 1, decimal.NewFromInt(2), ActionRemove)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if adj.BelowReorder {
		t.Error("quantity equal to reorder level must not signal below-threshold")
	}
}

func TestAdjust_Record165Scenario(t *testing.T) {
	store := newMemStore()
	store.seed(165, "50.0", "60.0")
	svc := newTestService(store)
	ctx := context.Background()

	adj, err := svc.Adjust(ctx, 165, decimal.RequireFromString("1.1"), ActionAdd)
	if err != nil || !adj.OK {
		t.Fatalf("add(1.1): err=%v ok=%v", err, adj.OK)
	}
	if !adj.NewQuantity.Equal(decimal.RequireFromString("51.1")) || !adj.BelowReorder {
		t.Errorf("add(1.1): got %s below=%v, want 51.1 below=true", adj.NewQuantity, adj.BelowReorder)
	}

	adj, err = svc.Adjust(ctx, 165, decimal.RequireFromString("1.1"), ActionRemove)
	if err != nil || !adj.OK {
		t.Fatalf("remove(1.1): err=%v ok=%v", err, adj.OK)
	}
	if !adj.NewQuantity.Equal(decimal.RequireFromString("50.0")) || !adj.BelowReorder {
		t.Errorf("remove(1.1): got %s below=%v, want 50.0 below=true", adj.NewQuantity, adj.BelowReorder)
	}

	adj, err = svc.Adjust(ctx, 165, decimal.NewFromInt(1000), ActionRemove)
	if err != nil {
		t.Fatalf("remove(1000): %v", err)
	}
	if adj.OK || adj.Code != CodeInsufficientStock {
		t.Fatalf("remove(1000): expected insufficient_stock, got ok=%v code=%s", adj.OK, adj.Code)
	}
	if !store.quantity(t, 165).Equal(decimal.RequireFromString("50.0")) {
		t.Errorf("stored quantity = %s, want unchanged 50.0", store.quantity(t, 165))
	}
}

func TestAdjust_ZeroRowsUpdated(t *testing.T) {
	store := newMemStore()
	store.seed(1, "50", "10")
	store.zeroRows = true
	svc := newTestService(store)

	_, err := svc.Adjust(context.Background(), 1, decimal.NewFromInt(1), ActionAdd)
	if !errors.Is(err, ErrNoRowsUpdated) {
		t.Fatalf("expected ErrNoRowsUpdated, got %v", err)
	}
	if !store.quantity(t, 1).Equal(decimal.NewFromInt(50)) {
		t.Errorf("rolled-back transaction mutated the store: %s", store.quantity(t, 1))
	}
}

func TestAdjust_ConcurrentRemoves(t *testing.T) {
	q := decimal.NewFromInt(7)
	store := newMemStore()
	store.seed(1, "7", "10")
	svc := newTestService(store)

	var success, rejected atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			adj, err := svc.Adjust(context.Background(), 1, q, ActionRemove)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if adj.OK {
				success.Add(1)
				if !adj.NewQuantity.IsZero() {
					t.Errorf("winning remove must land on 0, got %s", adj.NewQuantity)
				}
			} else if adj.Code == CodeInsufficientStock {
				rejected.Add(1)
			}
		}()
	}
	wg.Wait()

	if success.Load() != 1 || rejected.Load() != 1 {
		t.Errorf("expected exactly one success and one rejection, got %d/%d", success.Load(), rejected.Load())
	}
	if !store.quantity(t, 1).IsZero() {
		t.Errorf("final quantity = %s, want 0", store.quantity(t, 1))
	}
}

func TestAdjust_ConcurrentDrain(t *testing.T) {
	store := newMemStore()
	store.seed(1, "20", "5")
	svc := newTestService(store)

	var success atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			adj, err := svc.Adjust(context.Background(), 1, decimal.NewFromInt(1), ActionRemove)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if adj.OK {
				success.Add(1)
			}
		}()
	}
	wg.Wait()

	if success.Load() != 20 {
		t.Errorf("expected 20 successful removes, got %d", success.Load())
	}
	if !store.quantity(t, 1).IsZero() {
		t.Errorf("final quantity = %s, want 0", store.quantity(t, 1))
	}
}
