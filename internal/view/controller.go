package view

import (
	"context"
	"errors"
	"log/slog"

	accountapp "github.com/dwikikusuma/shopfront/internal/account/app"
	accountdomain "github.com/dwikikusuma/shopfront/internal/account/domain"
	cartapp "github.com/dwikikusuma/shopfront/internal/cart/app"
	catalogapp "github.com/dwikikusuma/shopfront/internal/catalog/app"
	catalog "github.com/dwikikusuma/shopfront/internal/catalog/domain"
	favoriteapp "github.com/dwikikusuma/shopfront/internal/favorite/app"
	orderapp "github.com/dwikikusuma/shopfront/internal/order/app"
	order "github.com/dwikikusuma/shopfront/internal/order/domain"
	"github.com/dwikikusuma/shopfront/pkg/notice"
	"golang.org/x/sync/errgroup"
)

// Controller translates user intents into service calls and page
// transitions. It owns no state of its own: collections live in the
// store, identity lives in the session.
type Controller struct {
	store     *Store
	session   *accountapp.Session
	account   *accountapp.Service
	catalog   *catalogapp.Service
	cart      *cartapp.Service
	favorites *favoriteapp.Service
	orders    *orderapp.Service
	notify    notice.Notifier
	log       *slog.Logger
}

func NewController(
	store *Store,
	account *accountapp.Service,
	catalog *catalogapp.Service,
	cart *cartapp.Service,
	favorites *favoriteapp.Service,
	orders *orderapp.Service,
	notify notice.Notifier,
	log *slog.Logger,
) *Controller {
	return &Controller{
		store:     store,
		session:   account.Session(),
		account:   account,
		catalog:   catalog,
		cart:      cart,
		favorites: favorites,
		orders:    orders,
		notify:    notify,
		log:       log,
	}
}

// InitialPage is where a fresh shell starts for the restored session:
// the dashboard for admins, the storefront for everyone else. It is
// computed before the store exists, so the first render is not a
// transition and fires no page-change event.
func InitialPage(session *accountapp.Session) Page {
	if session.IsAdmin() {
		return PageAdmin
	}
	return PageHome
}

// Bootstrap starts product browsing and fans out the identity-dependent
// collection fetches. The session must already be restored
// (Session.Init) so the fan-out carries the persisted user; the three
// fetches then run concurrently. A product deep link opens the detail
// page.
func (c *Controller) Bootstrap(ctx context.Context, deepLinkProductID string) {
	// Re-sync the identity-gated collections on every sign-in and
	// sign-out for the rest of the run.
	c.session.OnChange(func(u *accountdomain.User) {
		c.syncCollections(ctx)
	})

	c.catalog.Start(ctx)
	c.syncCollections(ctx)

	if deepLinkProductID != "" {
		c.openProduct(ctx, deepLinkProductID)
	}
}

func (c *Controller) syncCollections(ctx context.Context) {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.cart.Refresh(ctx) })
	g.Go(func() error { return c.favorites.Refresh(ctx) })
	g.Go(func() error { return c.orders.Refresh(ctx) })
	if err := g.Wait(); err != nil {
		// Already surfaced per collection; keep a trace for debugging.
		c.log.Warn("collection sync incomplete", slog.Any("err", err))
	}
}

// requireSignIn gates an intent on identity. A refusal surfaces the
// prompt locally and sends nothing to the backend.
func (c *Controller) requireSignIn() bool {
	if _, ok := c.session.CurrentUserID(); ok {
		return true
	}
	c.notify.Info("Please sign in first")
	c.store.RequestLogin()
	return false
}

func (c *Controller) Search(term string)               { c.catalog.SetSearchTerm(term) }
func (c *Controller) SelectCategory(category string)   { c.catalog.SetCategory(category) }
func (c *Controller) SelectPage(page int)              { c.catalog.SetPage(page) }
func (c *Controller) SetSort(opt catalog.SortOption)   { c.store.SetSort(opt) }
func (c *Controller) SubmitSearch(ctx context.Context) { c.catalog.SubmitSearch(ctx) }

// ViewProduct opens the product detail page. Browsing the grid is
// anonymous but the detail page is sign-in gated.
func (c *Controller) ViewProduct(ctx context.Context, id string) {
	if !c.requireSignIn() {
		return
	}
	c.openProduct(ctx, id)
}

func (c *Controller) openProduct(ctx context.Context, id string) {
	p, err := c.catalog.FetchProduct(ctx, id)
	if err != nil {
		if errors.Is(err, catalogapp.ErrNotFound) {
			c.notify.Error("This product is no longer available")
		} else {
			c.log.Error("fetch product", slog.Any("err", err), slog.String("id", id))
			c.notify.Error("Could not load the product, please try again")
		}
		return
	}
	c.store.SetSelectedProduct(p)
	c.store.SetPage(PageDetail)
}

func (c *Controller) AddToCart(ctx context.Context, p catalog.Product, specs map[string]string) {
	_ = c.cart.Add(ctx, p, specs)
}

func (c *Controller) UpdateCartQuantity(ctx context.Context, productID string, quantity int) {
	_ = c.cart.UpdateQuantity(ctx, productID, quantity)
}

func (c *Controller) RemoveFromCart(ctx context.Context, productID, name string) {
	_ = c.cart.Remove(ctx, productID, name)
}

func (c *Controller) ToggleFavorite(ctx context.Context, p catalog.Product) {
	_ = c.favorites.Toggle(ctx, p)
}

func (c *Controller) OpenCart() {
	if !c.requireSignIn() {
		return
	}
	c.store.OpenCart()
}

func (c *Controller) ViewFavorites(ctx context.Context) {
	if !c.requireSignIn() {
		return
	}
	_ = c.favorites.Refresh(ctx)
	c.store.SetPage(PageFavorites)
}

func (c *Controller) ViewOrders(ctx context.Context) {
	if !c.requireSignIn() {
		return
	}
	_ = c.orders.Refresh(ctx)
	c.store.SetPage(PageOrders)
}

func (c *Controller) ViewOrderDetail(o order.Order) {
	c.store.SetCurrentOrder(o)
	c.store.SetPage(PageOrderDetail)
}

func (c *Controller) ViewProfile() {
	if !c.requireSignIn() {
		return
	}
	c.store.SetPage(PageProfile)
}

// GoToCheckout moves to the checkout page; the order itself is not
// created until PlaceOrder.
func (c *Controller) GoToCheckout() {
	if !c.requireSignIn() {
		return
	}
	if c.store.TotalItems() == 0 {
		c.notify.Error("Your cart is empty, add something first")
		return
	}
	c.store.CloseCart()
	c.store.SetPage(PageCheckout)
}

// PlaceOrder creates the pending order from the cart. On success the
// checkout page switches to its payment step; the cart is already
// cleared by the order service.
func (c *Controller) PlaceOrder(ctx context.Context) {
	if _, err := c.orders.Checkout(ctx); err != nil {
		return
	}
	c.store.SetPage(PageCheckout)
}

// Pay settles the current order and lands on the success page.
func (c *Controller) Pay(ctx context.Context, paymentMethod string) {
	if _, err := c.orders.Pay(ctx, paymentMethod); err != nil {
		return
	}
	c.store.SetPage(PageSuccess)
}

// ContinuePayment reopens checkout for an order created earlier but
// never paid.
func (c *Controller) ContinuePayment(o order.Order) {
	if !o.Status.Payable() {
		c.notify.Error("This order has already been paid")
		return
	}
	c.store.SetCurrentOrder(o)
	c.store.SetPage(PageCheckout)
}

func (c *Controller) Login(ctx context.Context, identifier, password string) error {
	user, err := c.account.Login(ctx, identifier, password)
	if err != nil {
		return err
	}
	c.store.CloseLogin()
	if user.IsAdmin() {
		c.store.SetPage(PageAdmin)
	}
	return nil
}

func (c *Controller) AdminLogin(ctx context.Context, identifier, password string) error {
	if _, err := c.account.AdminLogin(ctx, identifier, password); err != nil {
		return err
	}
	c.store.CloseLogin()
	c.store.SetPage(PageAdmin)
	return nil
}

func (c *Controller) Register(ctx context.Context, username, email, password, confirm, phone string) error {
	if _, err := c.account.Register(ctx, username, email, password, confirm, phone); err != nil {
		return err
	}
	c.store.CloseLogin()
	return nil
}

// Logout clears the session and returns home. The collection stores
// empty through the session hook.
func (c *Controller) Logout() {
	c.account.Logout()
	c.store.ClearCurrentOrder()
	c.store.SetPage(PageHome)
}
