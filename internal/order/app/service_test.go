package app

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	catalog "github.com/dwikikusuma/shopfront/internal/catalog/domain"
	"github.com/dwikikusuma/shopfront/internal/order/domain"
	"github.com/dwikikusuma/shopfront/pkg/notice"
)

type fakeAPI struct {
	mu          sync.Mutex
	createCalls int
	payCalls    int
	listCalls   int
	created     domain.Order
	orders      []domain.Order

	// One-shot gate: the next List snapshots its result, signals
	// listEntered, then holds the response until listGate closes.
	listGate    chan struct{}
	listEntered chan struct{}
}

func (f *fakeAPI) List(ctx context.Context, userID string) ([]domain.Order, error) {
	f.mu.Lock()
	f.listCalls++
	gate, entered := f.listGate, f.listEntered
	f.listGate, f.listEntered = nil, nil
	orders := append([]domain.Order(nil), f.orders...)
	f.mu.Unlock()

	if entered != nil {
		close(entered)
	}
	if gate != nil {
		<-gate
	}
	return orders, nil
}

func (f *fakeAPI) Create(ctx context.Context, userID, paymentMethod string, address domain.Address) (domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	o := f.created
	o.PaymentMethod = paymentMethod
	addr := address
	o.Address = &addr
	return o, nil
}

func (f *fakeAPI) Pay(ctx context.Context, orderID, paymentMethod string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payCalls++
	return nil
}

type fakeSession struct{ uid string }

func (s fakeSession) CurrentUserID() (string, bool) { return s.uid, s.uid != "" }

type fakeGate struct{ calls int }

func (g *fakeGate) RequestLogin() { g.calls++ }

type fakeCart struct {
	total   int
	cleared bool
}

func (c *fakeCart) TotalItems() int { return c.total }
func (c *fakeCart) ClearCart()      { c.cleared = true; c.total = 0 }

type fakeState struct {
	mu       sync.Mutex
	current  *domain.Order
	orders   []domain.Order
	patched  []domain.Order
	replaced bool
}

func (s *fakeState) CurrentOrder() (domain.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return domain.Order{}, false
	}
	return *s.current, true
}

func (s *fakeState) SetCurrentOrder(o domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &o
}

func (s *fakeState) PrependOrder(o domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append([]domain.Order{o}, s.orders...)
}

func (s *fakeState) PatchOrder(o domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.patched = append(s.patched, o)
	for i := range s.orders {
		if s.orders[i].ID == o.ID {
			s.orders[i] = o
		}
	}
}

func (s *fakeState) ReplaceOrders(orders []domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaced = true
	s.orders = orders
}

func pendingOrder() domain.Order {
	return domain.Order{
		ID:          "o1",
		OrderNumber: "PO1",
		TotalAmount: 120,
		Status:      domain.StatusPending,
		Items: []domain.Item{
			{Product: catalog.Product{ID: "p1", Name: "Catnip", Price: 60}, Quantity: 2, Price: 60},
		},
	}
}

func newCheckoutService(api *fakeAPI, uid string, cartTotal int, payDelay time.Duration) (*Service, *fakeGate, *fakeCart, *fakeState, *notice.Recorder) {
	gate := &fakeGate{}
	cart := &fakeCart{total: cartTotal}
	state := &fakeState{}
	rec := &notice.Recorder{}
	svc := NewService(api, fakeSession{uid: uid}, gate, cart, state, rec, slog.Default(), payDelay)
	return svc, gate, cart, state, rec
}

func TestCheckoutSignedOut(t *testing.T) {
	api := &fakeAPI{}
	svc, gate, _, state, rec := newCheckoutService(api, "", 2, 0)

	_, err := svc.Checkout(context.Background())
	if err != ErrNotSignedIn {
		t.Fatalf("expected ErrNotSignedIn, got %v", err)
	}
	if api.createCalls != 0 {
		t.Fatal("no network call may be issued while signed out")
	}
	if gate.calls != 1 {
		t.Fatal("expected login prompt")
	}
	if state.current != nil {
		t.Fatal("no order state may be touched")
	}
	if len(rec.Errors()) != 1 {
		t.Fatalf("expected one error notice, got %v", rec.Errors())
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	api := &fakeAPI{}
	svc, _, cart, _, rec := newCheckoutService(api, "u1", 0, 0)

	_, err := svc.Checkout(context.Background())
	if err != ErrEmptyCart {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	if api.createCalls != 0 {
		t.Fatal("empty cart must not reach the backend")
	}
	if cart.cleared {
		t.Fatal("cart must not be cleared on refusal")
	}
	if len(rec.Errors()) != 1 {
		t.Fatalf("expected one error notice, got %v", rec.Errors())
	}
}

func TestCheckoutCreatesPendingOrderAndClearsCart(t *testing.T) {
	api := &fakeAPI{created: pendingOrder()}
	svc, _, cart, state, rec := newCheckoutService(api, "u1", 2, 0)

	order, err := svc.Checkout(context.Background())
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if order.Status != domain.StatusPending {
		t.Fatalf("expected pending order, got %s", order.Status)
	}
	if order.TotalAmount != 120 {
		t.Fatalf("expected total 120, got %v", order.TotalAmount)
	}
	if !cart.cleared {
		t.Fatal("cart must be cleared locally after checkout")
	}
	current, ok := state.CurrentOrder()
	if !ok || current.ID != "o1" {
		t.Fatalf("expected current order o1, got %+v", current)
	}
	if len(state.orders) != 1 || state.orders[0].ID != "o1" {
		t.Fatalf("expected order prepended, got %+v", state.orders)
	}
	if order.Address == nil {
		t.Fatal("created order must carry the address snapshot")
	}
	if len(rec.Successes()) != 1 {
		t.Fatalf("expected success notice, got %v", rec.Successes())
	}
	// Creation patches locally; no list refetch follows.
	if api.listCalls != 0 {
		t.Fatal("checkout must not refetch the order list")
	}
}

func TestPayObservesDelayAndPatchesOrder(t *testing.T) {
	const delay = 50 * time.Millisecond
	api := &fakeAPI{}
	svc, _, _, state, rec := newCheckoutService(api, "u1", 0, delay)
	state.SetCurrentOrder(pendingOrder())

	start := time.Now()
	order, err := svc.Pay(context.Background(), "wechat")
	if err != nil {
		t.Fatalf("pay: %v", err)
	}
	if elapsed := time.Since(start); elapsed < delay {
		t.Fatalf("payment confirmed after %v, before the %v processing delay", elapsed, delay)
	}
	if order.Status != domain.StatusPaid {
		t.Fatalf("expected paid, got %s", order.Status)
	}
	if order.PaymentMethod != "wechat" {
		t.Fatalf("expected payment method recorded, got %q", order.PaymentMethod)
	}
	if len(state.patched) != 1 || state.patched[0].Status != domain.StatusPaid {
		t.Fatalf("expected single local patch to paid, got %+v", state.patched)
	}
	if len(rec.Successes()) != 1 {
		t.Fatalf("expected success notice, got %v", rec.Successes())
	}
}

func TestPayRefusedUnlessPending(t *testing.T) {
	for _, status := range []domain.Status{domain.StatusPaid, domain.StatusShipped, domain.StatusCompleted} {
		api := &fakeAPI{}
		svc, _, _, state, _ := newCheckoutService(api, "u1", 0, 0)
		o := pendingOrder()
		o.Status = status
		state.SetCurrentOrder(o)

		if _, err := svc.Pay(context.Background(), "wechat"); err != ErrNotPayable {
			t.Fatalf("status %s: expected ErrNotPayable, got %v", status, err)
		}
		if api.payCalls != 0 {
			t.Fatalf("status %s: pay must not reach the backend", status)
		}
	}
}

func TestPayWithoutCurrentOrder(t *testing.T) {
	svc, _, _, _, _ := newCheckoutService(&fakeAPI{}, "u1", 0, 0)
	if _, err := svc.Pay(context.Background(), "wechat"); err != ErrNoCurrentOrder {
		t.Fatalf("expected ErrNoCurrentOrder, got %v", err)
	}
}

func TestRefreshSignedOutClearsOrders(t *testing.T) {
	api := &fakeAPI{orders: []domain.Order{pendingOrder()}}
	svc, _, _, state, _ := newCheckoutService(api, "", 0, 0)

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if api.listCalls != 0 {
		t.Fatal("signed-out refresh must not hit the backend")
	}
	if !state.replaced || len(state.orders) != 0 {
		t.Fatalf("expected cleared orders, got %+v", state.orders)
	}
}

func TestRefreshRacingPaymentKeepsPaidStatus(t *testing.T) {
	api := &fakeAPI{orders: []domain.Order{pendingOrder()}}
	svc, _, _, state, _ := newCheckoutService(api, "u1", 0, time.Millisecond)
	state.SetCurrentOrder(pendingOrder())
	state.ReplaceOrders([]domain.Order{pendingOrder()})

	// Hold the refresh response in flight while a payment lands.
	gate := make(chan struct{})
	entered := make(chan struct{})
	api.mu.Lock()
	api.listGate, api.listEntered = gate, entered
	api.mu.Unlock()

	refreshed := make(chan error, 1)
	go func() { refreshed <- svc.Refresh(context.Background()) }()
	<-entered

	paid := make(chan error, 1)
	go func() {
		_, err := svc.Pay(context.Background(), "wechat")
		paid <- err
	}()
	// Let the payment queue up behind the in-flight refresh before the
	// stale snapshot is released.
	time.Sleep(10 * time.Millisecond)
	close(gate)

	if err := <-refreshed; err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if err := <-paid; err != nil {
		t.Fatalf("Pay: %v", err)
	}

	state.mu.Lock()
	listStatus := state.orders[0].Status
	currentStatus := state.current.Status
	state.mu.Unlock()
	if listStatus != domain.StatusPaid {
		t.Fatalf("stale refresh reverted the paid order to %q", listStatus)
	}
	if currentStatus != domain.StatusPaid {
		t.Fatalf("current order status = %q, want paid", currentStatus)
	}
}
