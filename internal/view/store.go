// Package view holds the client-side presentation state and the
// controller that drives it. The store is the single owner of what the
// shell renders: the services push authoritative collections into it
// through their sink ports, and page transitions go through SetPage so
// subscribers observe exactly one event per change.
package view

import (
	"sync"

	cart "github.com/dwikikusuma/shopfront/internal/cart/domain"
	catalog "github.com/dwikikusuma/shopfront/internal/catalog/domain"
	favorite "github.com/dwikikusuma/shopfront/internal/favorite/domain"
	order "github.com/dwikikusuma/shopfront/internal/order/domain"
)

type Page string

const (
	PageHome        Page = "home"
	PageDetail      Page = "productDetail"
	PageCheckout    Page = "checkout"
	PageSuccess     Page = "paymentSuccess"
	PageOrders      Page = "orders"
	PageOrderDetail Page = "orderDetail"
	PageProfile     Page = "profile"
	PageFavorites   Page = "favorites"
	PageAdmin       Page = "adminDashboard"
)

type Store struct {
	mu sync.RWMutex

	page         Page
	onPageChange []func(Page)

	products []catalog.Product
	total    int
	sort     catalog.SortOption
	selected *catalog.Product

	cartItems []cart.Item
	showCart  bool

	favorites []favorite.Favorite

	orders  []order.Order
	current *order.Order

	modal Modal
}

// Modal names the dialog currently raised over the page, if any.
type Modal string

const (
	ModalNone           Modal = ""
	ModalLogin          Modal = "login"
	ModalRegister       Modal = "register"
	ModalForgotPassword Modal = "forgotPassword"
	ModalAdminLogin     Modal = "adminLogin"
)

func NewStore(initial Page) *Store {
	if initial == "" {
		initial = PageHome
	}
	return &Store{page: initial, sort: catalog.SortDefault}
}

// OnPageChange registers a subscriber fired on every transition to a
// different page. The initial page never fires.
func (s *Store) OnPageChange(fn func(Page)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onPageChange = append(s.onPageChange, fn)
}

func (s *Store) Page() Page {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.page
}

func (s *Store) SetPage(page Page) {
	s.mu.Lock()
	if s.page == page {
		s.mu.Unlock()
		return
	}
	s.page = page
	subs := append(([]func(Page))(nil), s.onPageChange...)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(page)
	}
}

// ReplaceProducts is the catalog sink: the page of products that won
// the latest fetch.
func (s *Store) ReplaceProducts(items []catalog.Product, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = items
	s.total = total
}

// Products returns the current page ordered by the active sort option.
// Sorting is presentation-local and never refetches.
func (s *Store) Products() ([]catalog.Product, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return catalog.Sorted(s.products, s.sort), s.total
}

func (s *Store) SetSort(opt catalog.SortOption) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sort = opt
}

func (s *Store) Sort() catalog.SortOption {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sort
}

func (s *Store) SetSelectedProduct(p catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = &p
}

func (s *Store) SelectedProduct() (catalog.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return catalog.Product{}, false
	}
	return *s.selected, true
}

// ReplaceCart is the cart sink: the authoritative cart after every
// refetch.
func (s *Store) ReplaceCart(items []cart.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cartItems = items
}

func (s *Store) CartItems() []cart.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]cart.Item(nil), s.cartItems...)
}

func (s *Store) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cart.TotalItems(s.cartItems)
}

func (s *Store) CartTotal() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cart.TotalAmount(s.cartItems)
}

// ClearCart drops the local cart after checkout consumed it on the
// server. The server-side cart is already gone.
func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cartItems = nil
}

func (s *Store) OpenCart()  { s.setShowCart(true) }
func (s *Store) CloseCart() { s.setShowCart(false) }

func (s *Store) setShowCart(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showCart = v
}

func (s *Store) CartOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.showCart
}

// ReplaceFavorites is the favorites sink.
func (s *Store) ReplaceFavorites(favorites []favorite.Favorite) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.favorites = favorites
}

func (s *Store) Favorites() []favorite.Favorite {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]favorite.Favorite(nil), s.favorites...)
}

// ReplaceOrders is the order state sink: only an explicit refresh
// replaces the whole list.
func (s *Store) ReplaceOrders(orders []order.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = orders
}

func (s *Store) Orders() []order.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]order.Order(nil), s.orders...)
}

func (s *Store) CurrentOrder() (order.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return order.Order{}, false
	}
	return *s.current, true
}

func (s *Store) SetCurrentOrder(o order.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &o
}

func (s *Store) ClearCurrentOrder() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

// PrependOrder puts a freshly created order at the head of the list,
// newest first, without refetching.
func (s *Store) PrependOrder(o order.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append([]order.Order{o}, s.orders...)
}

// PatchOrder replaces the matching order in place; unknown ids are
// ignored.
func (s *Store) PatchOrder(o order.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == o.ID {
			s.orders[i] = o
			return
		}
	}
}

// RequestLogin is the gate: a refused identity-gated intent opens the
// login prompt.
func (s *Store) RequestLogin() {
	s.ShowModal(ModalLogin)
}

func (s *Store) ShowModal(m Modal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modal = m
}

// CloseLogin dismisses whichever auth dialog is up; login, register and
// forgot-password all funnel through here on success.
func (s *Store) CloseLogin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modal = ModalNone
}

func (s *Store) Modal() Modal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modal
}

func (s *Store) LoginOpen() bool {
	return s.Modal() == ModalLogin
}
