package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/fyx-storefront/internal/model"
	"github.com/dtroode/fyx-storefront/internal/repository/memory"
	storagememory "github.com/dtroode/fyx-storefront/internal/storage/memory"
	"github.com/dtroode/fyx-storefront/internal/testutil"
)

const (
	testAdminEmail = "admin@fyx.com"
	testMerchant   = "merchant@upi"
)

var (
	testNow            = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	testUnknownSession = uuid.MustParse("7d4f3c1e-0000-4000-8000-0000000000aa")
)

type fixture struct {
	sf      *Storefront
	store   *memory.Store
	storage *storagememory.Storage
	clock   *testutil.FakeClock
	events  *eventLog
}

type eventLog struct {
	mu     sync.Mutex
	events []model.Event
}

func (l *eventLog) add(e model.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

func (l *eventLog) verbs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, 0, len(l.events))
	for _, e := range l.events {
		out = append(out, e.Verb)
	}
	return out
}

func newFixture(t *testing.T, seed map[string]any, mutate ...func(*Options)) *fixture {
	t.Helper()

	store := memory.NewStore()
	if len(seed) > 0 {
		raw := make(map[string]string, len(seed))
		for k, v := range seed {
			b, err := json.Marshal(v)
			require.NoError(t, err)
			raw[k] = string(b)
		}
		store.Seed(raw)
	}

	f := &fixture{
		store:   store,
		storage: storagememory.NewStorage(),
		clock:   testutil.NewFakeClock(testNow),
		events:  &eventLog{},
	}
	opts := Options{
		Store:         store,
		Storage:       f.storage,
		Clock:         f.clock,
		Logger:        testutil.MakeNoopLogger(),
		AdminEmail:    testAdminEmail,
		AdminName:     "Store Admin",
		MerchantUPIID: testMerchant,
		Hooks: Hooks{HookFunc(func(_ context.Context, e model.Event) error {
			f.events.add(e)
			return nil
		})},
	}
	for _, m := range mutate {
		m(&opts)
	}

	f.sf = New(opts)
	require.NoError(t, f.sf.Load(context.Background()))
	t.Cleanup(f.sf.Close)
	return f
}

// reopen builds a fresh engine over the same store and storage.
func (f *fixture) reopen(t *testing.T) *fixture {
	t.Helper()

	g := &fixture{store: f.store, storage: f.storage, clock: f.clock, events: &eventLog{}}
	g.sf = New(Options{
		Store:         f.store,
		Storage:       f.storage,
		Clock:         f.clock,
		Logger:        testutil.MakeNoopLogger(),
		AdminEmail:    testAdminEmail,
		MerchantUPIID: testMerchant,
	})
	require.NoError(t, g.sf.Load(context.Background()))
	t.Cleanup(g.sf.Close)
	return g
}

func (f *fixture) open(t *testing.T) uuid.UUID {
	t.Helper()
	s, err := f.sf.Sessions.Open(context.Background(), uuid.Nil)
	require.NoError(t, err)
	return s.ID
}

func (f *fixture) login(t *testing.T, sid uuid.UUID, email string) Resolution {
	t.Helper()
	res, err := f.sf.Identity.LoginEmail(context.Background(), sid, email)
	require.NoError(t, err)
	return res
}

func (f *fixture) add(t *testing.T, sid uuid.UUID, productID string, qty int) model.Totals {
	t.Helper()
	totals, err := f.sf.Cart.Add(context.Background(), sid, AddRequest{ProductID: productID, Quantity: qty})
	require.NoError(t, err)
	return totals
}

func (f *fixture) stored(t *testing.T, key string, dst any) bool {
	t.Helper()
	raw, err := f.store.Get(context.Background(), key)
	if err != nil {
		require.ErrorIs(t, err, model.ErrNotFound)
		return false
	}
	require.NoError(t, json.Unmarshal(raw, dst))
	return true
}

// placeOrder walks a session through checkout with cash on delivery.
func (f *fixture) placeOrder(t *testing.T, sid uuid.UUID) model.Order {
	t.Helper()
	ctx := context.Background()

	_, err := f.sf.Checkout.Continue(ctx, sid, CheckoutDetails{Name: "Asha", Phone: "9876543210", Address: "1 MG Road"})
	require.NoError(t, err)
	_, err = f.sf.Checkout.ProceedToPayment(ctx, sid)
	require.NoError(t, err)
	_, err = f.sf.Checkout.SelectMethod(ctx, sid, "cod")
	require.NoError(t, err)
	order, err := f.sf.Checkout.Submit(ctx, sid)
	require.NoError(t, err)
	return order
}

func simpleProducts() []model.Product {
	return []model.Product{
		{ID: "p100", Name: "Notebook", Price: 100, Category: "Stationery", Stock: 5},
		{ID: "p200", Name: "Poster", Price: 200, Category: "Posters", Stock: 5, Featured: true, AllowCustomImages: true,
			Options: []model.ProductOption{{Name: "Size", Values: []string{"A4", "A3"}}}},
		{ID: "p50", Name: "Sticker", Price: 50, Category: "Stationery", Stock: 5},
	}
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

// countingStore records the keys of every commit.
type countingStore struct {
	model.Store
	mu      sync.Mutex
	commits [][]string
}

func (c *countingStore) Commit(ctx context.Context, changes *model.Changeset) error {
	c.mu.Lock()
	c.commits = append(c.commits, changes.Keys())
	c.mu.Unlock()
	return c.Store.Commit(ctx, changes)
}
