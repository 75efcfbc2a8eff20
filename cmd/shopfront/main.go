package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	accountapp "github.com/dwikikusuma/shopfront/internal/account/app"
	"github.com/dwikikusuma/shopfront/internal/account/infra/localstore"
	accountrest "github.com/dwikikusuma/shopfront/internal/account/infra/rest"
	cartapp "github.com/dwikikusuma/shopfront/internal/cart/app"
	cartrest "github.com/dwikikusuma/shopfront/internal/cart/infra/rest"
	catalogapp "github.com/dwikikusuma/shopfront/internal/catalog/app"
	catalog "github.com/dwikikusuma/shopfront/internal/catalog/domain"
	catalogrest "github.com/dwikikusuma/shopfront/internal/catalog/infra/rest"
	favoriteapp "github.com/dwikikusuma/shopfront/internal/favorite/app"
	favoriterest "github.com/dwikikusuma/shopfront/internal/favorite/infra/rest"
	orderapp "github.com/dwikikusuma/shopfront/internal/order/app"
	orderrest "github.com/dwikikusuma/shopfront/internal/order/infra/rest"
	"github.com/dwikikusuma/shopfront/internal/view"
	"github.com/dwikikusuma/shopfront/pkg/config"
	"github.com/dwikikusuma/shopfront/pkg/logger"
	"github.com/dwikikusuma/shopfront/pkg/notice"
	"github.com/dwikikusuma/shopfront/pkg/rest"
	"github.com/dwikikusuma/shopfront/pkg/shutdown"
)

const bannerInterval = 3 * time.Second

func main() {
	productID := flag.String("product", "", "open this product's detail page on startup")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{Service: "shopfront", Env: cfg.AppEnv, Level: cfg.LogLevel, Text: true})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	api, err := rest.New(cfg.APIBaseURL, cfg.HTTPTimeout, log)
	if err != nil {
		log.Error("api client", slog.Any("err", err))
		os.Exit(1)
	}

	sessions, err := localstore.New(cfg.SessionDir)
	if err != nil {
		log.Error("session store", slog.Any("err", err))
		os.Exit(1)
	}

	notify := notice.Funcs{
		OnSuccess: func(msg string) { fmt.Println("[ok]", msg) },
		OnInfo:    func(msg string) { fmt.Println("[..]", msg) },
		OnError:   func(msg string) { fmt.Println("[!!]", msg) },
	}

	session := accountapp.NewSession(sessions, log)
	session.Init()
	account := accountapp.NewService(accountrest.NewClient(api), session, sessions, notify, log)

	store := view.NewStore(view.InitialPage(session))

	catalogClient := catalogrest.NewClient(api)
	catalogSvc := catalogapp.NewService(catalogClient, session, store, notify, log, cfg.SearchQuiet, cfg.PageSize)
	cartSvc := cartapp.NewService(cartrest.NewClient(api), session, store, store, notify, log)
	favoriteSvc := favoriteapp.NewService(favoriterest.NewClient(api), session, store, store, notify, log)
	orderSvc := orderapp.NewService(orderrest.NewClient(api), session, store, store, store, notify, log, cfg.PaymentDelay)

	ctrl := view.NewController(store, account, catalogSvc, cartSvc, favoriteSvc, orderSvc, notify, log)

	sh := &shell{
		ctrl:       ctrl,
		store:      store,
		session:    session,
		account:    account,
		catalog:    catalogSvc,
		favorites:  favoriteSvc,
		categories: catalogClient,
		carousel:   view.NewCarousel(log),
		out:        os.Stdout,
	}

	store.OnPageChange(func(p view.Page) { sh.render(p) })

	ctrl.Bootstrap(ctx, *productID)
	sh.carousel.Start(ctx, catalogClient, bannerInterval)
	sh.render(store.Page())

	go sh.loop(ctx, cancel)

	<-ctx.Done()
	log.Info("shutting down")
}

type shell struct {
	ctrl       *view.Controller
	store      *view.Store
	session    *accountapp.Session
	account    *accountapp.Service
	catalog    *catalogapp.Service
	favorites  *favoriteapp.Service
	categories catalogapp.CategoryReader
	carousel   *view.Carousel
	out        *os.File
}

func (s *shell) loop(ctx context.Context, cancel context.CancelFunc) {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Fprintln(s.out, `Type "help" for commands.`)
	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			cancel()
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		if cmd == "quit" || cmd == "exit" {
			cancel()
			return
		}
		s.dispatch(ctx, cmd, arg)
	}
}

func (s *shell) dispatch(ctx context.Context, cmd, arg string) {
	switch cmd {
	case "help":
		s.printHelp()
	case "home":
		s.store.SetPage(view.PageHome)
	case "search":
		s.ctrl.Search(arg)
		s.ctrl.SubmitSearch(ctx)
	case "category":
		s.ctrl.SelectCategory(arg)
	case "categories":
		s.listCategories(ctx)
	case "page":
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 {
			fmt.Fprintln(s.out, "usage: page <n>")
			return
		}
		s.ctrl.SelectPage(n)
	case "sort":
		s.ctrl.SetSort(catalog.SortOption(arg))
		s.render(view.PageHome)
	case "view":
		s.ctrl.ViewProduct(ctx, arg)
	case "add":
		s.addToCart(ctx, arg)
	case "qty":
		s.setQuantity(ctx, arg)
	case "rm":
		s.ctrl.RemoveFromCart(ctx, arg, arg)
		s.renderCart()
	case "fav":
		s.toggleFavorite(ctx, arg)
	case "favs":
		s.ctrl.ViewFavorites(ctx)
	case "cart":
		s.ctrl.OpenCart()
		if s.store.CartOpen() {
			s.renderCart()
		}
	case "checkout":
		s.ctrl.GoToCheckout()
	case "place":
		s.ctrl.PlaceOrder(ctx)
		s.render(s.store.Page())
	case "pay":
		method := arg
		if method == "" {
			method = "wechat"
		}
		s.ctrl.Pay(ctx, method)
	case "orders":
		s.ctrl.ViewOrders(ctx)
	case "order":
		s.openOrder(arg)
	case "continue":
		s.continuePayment(arg)
	case "profile":
		s.ctrl.ViewProfile()
	case "rename":
		s.rename(ctx, arg)
	case "login":
		s.login(ctx, arg, false)
	case "admin":
		s.login(ctx, arg, true)
	case "register":
		s.register(ctx, arg)
	case "reset":
		s.reset(ctx, arg)
	case "logout":
		s.ctrl.Logout()
	default:
		fmt.Fprintf(s.out, "unknown command %q, try help\n", cmd)
	}
}

func (s *shell) addToCart(ctx context.Context, id string) {
	if p, ok := s.store.SelectedProduct(); ok && (id == "" || id == p.ID) {
		s.ctrl.AddToCart(ctx, p, nil)
		return
	}
	for _, p := range s.productsOnPage() {
		if p.ID == id {
			s.ctrl.AddToCart(ctx, p, nil)
			return
		}
	}
	fmt.Fprintln(s.out, "product not on this page; open it with: view <id>")
}

func (s *shell) setQuantity(ctx context.Context, arg string) {
	id, qtyStr, ok := strings.Cut(arg, " ")
	if !ok {
		fmt.Fprintln(s.out, "usage: qty <product-id> <n>")
		return
	}
	qty, err := strconv.Atoi(strings.TrimSpace(qtyStr))
	if err != nil {
		fmt.Fprintln(s.out, "usage: qty <product-id> <n>")
		return
	}
	s.ctrl.UpdateCartQuantity(ctx, id, qty)
	s.renderCart()
}

func (s *shell) toggleFavorite(ctx context.Context, id string) {
	if p, ok := s.store.SelectedProduct(); ok && (id == "" || id == p.ID) {
		s.ctrl.ToggleFavorite(ctx, p)
		return
	}
	for _, p := range s.productsOnPage() {
		if p.ID == id {
			s.ctrl.ToggleFavorite(ctx, p)
			return
		}
	}
	fmt.Fprintln(s.out, "product not on this page; open it with: view <id>")
}

func (s *shell) openOrder(id string) {
	for _, o := range s.store.Orders() {
		if o.ID == id || o.OrderNumber == id {
			s.ctrl.ViewOrderDetail(o)
			return
		}
	}
	fmt.Fprintln(s.out, "no such order; list them with: orders")
}

func (s *shell) continuePayment(id string) {
	for _, o := range s.store.Orders() {
		if o.ID == id || o.OrderNumber == id {
			s.ctrl.ContinuePayment(o)
			return
		}
	}
	fmt.Fprintln(s.out, "no such order; list them with: orders")
}

func (s *shell) login(ctx context.Context, arg string, admin bool) {
	identifier, password, ok := strings.Cut(arg, " ")
	if !ok {
		fmt.Fprintln(s.out, "usage: login <email-or-phone> <password>")
		return
	}
	if admin {
		s.store.ShowModal(view.ModalAdminLogin)
		_ = s.ctrl.AdminLogin(ctx, identifier, password)
		return
	}
	s.store.ShowModal(view.ModalLogin)
	_ = s.ctrl.Login(ctx, identifier, password)
}

func (s *shell) register(ctx context.Context, arg string) {
	fields := strings.Fields(arg)
	if len(fields) < 3 {
		fmt.Fprintln(s.out, "usage: register <username> <email> <password> [phone]")
		return
	}
	phone := ""
	if len(fields) > 3 {
		phone = fields[3]
	}
	s.store.ShowModal(view.ModalRegister)
	_ = s.ctrl.Register(ctx, fields[0], fields[1], fields[2], fields[2], phone)
}

func (s *shell) reset(ctx context.Context, arg string) {
	fields := strings.Fields(arg)
	if len(fields) != 3 {
		fmt.Fprintln(s.out, "usage: reset <username> <email> <new-password>")
		return
	}
	s.store.ShowModal(view.ModalForgotPassword)
	if err := s.account.ResetPassword(ctx, fields[0], fields[1], fields[2], fields[2]); err == nil {
		s.store.CloseLogin()
	}
}

func (s *shell) rename(ctx context.Context, username string) {
	current, ok := s.session.Current()
	if !ok {
		fmt.Fprintln(s.out, "sign in first")
		return
	}
	current.Username = username
	_, _ = s.account.UpdateProfile(ctx, current)
}

func (s *shell) listCategories(ctx context.Context) {
	cats, err := s.categories.ListCategories(ctx)
	if err != nil {
		fmt.Fprintln(s.out, "could not load categories")
		return
	}
	for _, c := range cats {
		fmt.Fprintln(s.out, " -", c.Name)
	}
}

func (s *shell) productsOnPage() []catalog.Product {
	items, _ := s.store.Products()
	return items
}

func (s *shell) render(p view.Page) {
	switch p {
	case view.PageHome:
		s.renderHome()
	case view.PageDetail:
		s.renderDetail()
	case view.PageCheckout:
		s.renderCheckout()
	case view.PageSuccess:
		fmt.Fprintln(s.out, "-- payment complete, thanks for your order --")
	case view.PageOrders:
		s.renderOrders()
	case view.PageOrderDetail:
		s.renderOrderDetail()
	case view.PageProfile:
		s.renderProfile()
	case view.PageFavorites:
		s.renderFavorites()
	case view.PageAdmin:
		s.renderAdmin()
	}
}

func (s *shell) renderHome() {
	if b, ok := s.carousel.Current(); ok {
		fmt.Fprintf(s.out, "== %s ==\n", b.Title)
	}
	items, total := s.store.Products()
	filter := s.catalog.Filter()
	fmt.Fprintf(s.out, "-- products (page %d, %d total) --\n", filter.Page, total)
	for _, p := range items {
		mark := " "
		if s.favorites.Has(p.ID) {
			mark = "*"
		}
		fmt.Fprintf(s.out, "%s %-12s %-24s %8.2f  stock %d\n", mark, p.ID, p.Name, p.Price, p.Stock)
	}
}

func (s *shell) renderDetail() {
	p, ok := s.store.SelectedProduct()
	if !ok {
		return
	}
	fmt.Fprintf(s.out, "-- %s --\n%s\nprice %.2f  rating %.1f  sales %d  stock %d\n",
		p.Name, p.Description, p.Price, p.Rating, p.Sales, p.Stock)
	if len(p.Specs) > 0 {
		fmt.Fprintln(s.out, "specs:", strings.Join(p.Specs, ", "))
	}
}

func (s *shell) renderCart() {
	items := s.store.CartItems()
	if len(items) == 0 {
		fmt.Fprintln(s.out, "-- cart is empty --")
		return
	}
	fmt.Fprintln(s.out, "-- cart --")
	for _, it := range items {
		fmt.Fprintf(s.out, "%-12s %-24s x%-3d %8.2f\n", it.Product.ID, it.Product.Name, it.Quantity, it.Product.Price*float64(it.Quantity))
	}
	fmt.Fprintf(s.out, "total: %.2f (%d items)\n", s.store.CartTotal(), s.store.TotalItems())
}

func (s *shell) renderCheckout() {
	if o, ok := s.store.CurrentOrder(); ok {
		fmt.Fprintf(s.out, "-- order %s (%s), total %.2f --\n", o.OrderNumber, o.Status, o.TotalAmount)
		fmt.Fprintln(s.out, `pay with: pay [method]`)
		return
	}
	s.renderCart()
	fmt.Fprintln(s.out, `place the order with: place`)
}

func (s *shell) renderOrders() {
	orders := s.store.Orders()
	if len(orders) == 0 {
		fmt.Fprintln(s.out, "-- no orders yet --")
		return
	}
	fmt.Fprintln(s.out, "-- orders --")
	for _, o := range orders {
		fmt.Fprintf(s.out, "%-10s %-16s %-10s %8.2f  %s\n",
			o.ID, o.OrderNumber, o.Status, o.TotalAmount, o.CreateTime.Format("2006-01-02 15:04"))
	}
}

func (s *shell) renderOrderDetail() {
	o, ok := s.store.CurrentOrder()
	if !ok {
		return
	}
	fmt.Fprintf(s.out, "-- order %s --\nstatus %s, total %.2f, paid via %s\n", o.OrderNumber, o.Status, o.TotalAmount, o.PaymentMethod)
	for _, it := range o.Items {
		fmt.Fprintf(s.out, "  %-24s x%-3d %8.2f\n", it.Product.Name, it.Quantity, it.Price*float64(it.Quantity))
	}
	if o.Address != nil {
		a := o.Address
		fmt.Fprintf(s.out, "ship to: %s %s, %s %s %s\n", a.Name, a.Phone, a.Province, a.City, a.Detail)
	} else {
		fmt.Fprintln(s.out, "shipping address unavailable for this order")
	}
}

func (s *shell) renderProfile() {
	u, ok := s.session.Current()
	if !ok {
		return
	}
	fmt.Fprintf(s.out, "-- %s --\nemail %s (fixed)\nphone %s\nmember since %s\n",
		u.Username, u.Email, u.Phone, u.RegisterTime.Format("2006-01-02"))
}

func (s *shell) renderFavorites() {
	favs := s.store.Favorites()
	if len(favs) == 0 {
		fmt.Fprintln(s.out, "-- no favorites yet --")
		return
	}
	fmt.Fprintln(s.out, "-- favorites --")
	for _, f := range favs {
		fmt.Fprintf(s.out, "%-12s %-24s %8.2f\n", f.Product.ID, f.Product.Name, f.Product.Price)
	}
}

func (s *shell) renderAdmin() {
	u, _ := s.session.Current()
	fmt.Fprintf(s.out, "-- admin dashboard (%s) --\n", u.Username)
	_, total := s.store.Products()
	fmt.Fprintf(s.out, "catalog: %d products\norders: %d loaded\n", total, len(s.store.Orders()))
}

func (s *shell) printHelp() {
	fmt.Fprint(s.out, `browsing
  search <term>        search products (debounced server-side filter)
  category <name>      filter by category (categories lists them)
  page <n>             go to result page n
  sort <option>        default | price-asc | price-desc | sales | rating
  view <id>            open product detail
cart & checkout
  add [id]             add the open (or listed) product to the cart
  qty <id> <n>         change quantity (0 removes)
  rm <id>              remove from cart
  cart                 show the cart
  checkout             start checkout
  place                create the order
  pay [method]         pay the current order
orders & favorites
  orders               list your orders
  order <id>           open an order
  continue <id>        resume payment for a pending order
  fav [id]             toggle favorite
  favs                 list favorites
account
  login <id> <pw>      sign in
  admin <id> <pw>      sign in as admin
  register <u> <e> <pw> [phone]
  reset <u> <e> <pw>   reset a forgotten password
  profile              show your profile
  rename <username>    change your display name
  logout               sign out
home | help | quit
`)
}
