package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/agrihub/storefront/internal/api"
	"github.com/agrihub/storefront/internal/config"
	"github.com/agrihub/storefront/internal/models"
	"github.com/agrihub/storefront/internal/nav"
	"github.com/agrihub/storefront/internal/storage"
	"github.com/agrihub/storefront/internal/store"
	"github.com/agrihub/storefront/internal/telemetry"
	"github.com/agrihub/storefront/internal/views"
)

type app struct {
	navigator *nav.Navigator
	sessions  *store.SessionStore
	carts     *store.CartStore
	products  *views.ProductsView
	auth      *views.AuthView
	cart      *views.CartView
	checkout  *views.CheckoutView
	services  *views.ServicesView
	dashboard *views.DashboardView
	views     map[nav.View]views.View
}

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry.Endpoint, "agrihub-storefront")
	if err != nil {
		slog.Error("❌ Error setting up tracing", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			slog.Error("⚠️ Error shutting down tracing", slog.String("error", err.Error()))
		}
	}()

	// State storage setup
	records, err := openStorage(cfg)
	if err != nil {
		slog.Error("❌ Error opening state storage", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := records.Close(); err != nil {
			slog.Error("⚠️ Error closing state storage", slog.String("error", err.Error()))
		}
	}()

	sessions := store.NewSessionStore(records, logger)
	carts := store.NewCartStore(records, logger)

	sessions.Restore(ctx)
	carts.Restore(ctx)

	navigator := nav.New(sessions)

	client := api.NewClient(cfg.API.BaseURL, &http.Client{Timeout: cfg.API.Timeout}, sessions.Token, logger)

	authView := views.NewAuthView(client, sessions, navigator, logger)
	productsView := views.NewProductsView(client, sessions, logger)
	cartView := views.NewCartView(carts, sessions)
	checkoutView := views.NewCheckoutView(client, sessions, carts, navigator, logger)
	servicesView := views.NewServicesView(sessions, logger)
	dashboardView := views.NewDashboardView(client, sessions, logger)

	a := &app{
		navigator: navigator,
		sessions:  sessions,
		carts:     carts,
		products:  productsView,
		auth:      authView,
		cart:      cartView,
		checkout:  checkoutView,
		services:  servicesView,
		dashboard: dashboardView,
		views: map[nav.View]views.View{
			nav.ViewHome:          views.NewHomeView(),
			nav.ViewProducts:      productsView,
			nav.ViewProductDetail: views.NewProductDetailView(client),
			nav.ViewServices:      servicesView,
			nav.ViewEvents:        views.NewEventsView(),
			nav.ViewDashboard:     dashboardView,
			nav.ViewCart:          cartView,
			nav.ViewCheckout:      checkoutView,
			nav.ViewAuth:          authView,
		},
	}

	slog.Info("🌱 AgriHub storefront started",
		slog.String("env", cfg.Env),
		slog.String("api", cfg.API.BaseURL),
		slog.String("state_backend", cfg.State.Backend))

	a.run(ctx, os.Stdin, os.Stdout)
}

func openStorage(cfg *config.Config) (storage.Store, error) {

	switch cfg.State.Backend {
	case "redis":
		client, err := storage.NewRedisClient(cfg)
		if err != nil {
			return nil, err
		}

		return storage.NewRedisStore(client), nil
	case "sqlite":
		return storage.OpenSQLite(cfg.State.Path)
	default:
		return nil, fmt.Errorf("unknown state backend %q", cfg.State.Backend)
	}
}

func (a *app) run(ctx context.Context, in io.Reader, out io.Writer) {

	a.render(ctx, out)

	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, "> ")

		if !scanner.Scan() {
			break
		}

		if ctx.Err() != nil {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if line == "quit" || line == "exit" {
			break
		}

		a.dispatch(ctx, out, line)
	}

	fmt.Fprintln(out, "Goodbye!")
}

// render resolves the auth gate and draws the active view. View errors are
// already written to the output stream, so they are only logged here.
func (a *app) render(ctx context.Context, out io.Writer) {

	active := a.navigator.Resolve()

	view, ok := a.views[active]
	if !ok {
		view = a.views[nav.ViewHome]
	}

	fmt.Fprintln(out)

	if err := view.Render(ctx, out, a.navigator.Params()); err != nil {
		slog.Error("view render failed", slog.String("view", string(active)), slog.String("error", err.Error()))
	}

	fmt.Fprintln(out)
}

func (a *app) dispatch(ctx context.Context, out io.Writer, line string) {

	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		a.printHelp(out)
		return
	case "go":
		if len(args) < 1 {
			fmt.Fprintln(out, "usage: go <view> [key=value ...]")
			return
		}

		a.navigator.Navigate(nav.View(args[0]), parseParams(args[1:]))
	case "login":
		if len(args) != 2 {
			fmt.Fprintln(out, "usage: login <email> <password>")
			return
		}

		a.auth.Login(ctx, out, args[0], args[1])
	case "register":
		if len(args) != 4 {
			fmt.Fprintln(out, "usage: register <username> <email> <password> <confirm>")
			return
		}

		a.auth.Register(ctx, out, args[0], args[1], args[2], args[3])
	case "logout":
		a.auth.Logout(ctx, out)
	case "search":
		a.navigator.Navigate(nav.ViewProducts, nav.Params{"search": strings.Join(args, " ")})
	case "category":
		if len(args) != 1 {
			fmt.Fprintln(out, "usage: category <category id>")
			return
		}

		a.navigator.Navigate(nav.ViewProducts, nav.Params{"category": args[0]})
	case "view":
		if len(args) != 1 {
			fmt.Fprintln(out, "usage: view <product id>")
			return
		}

		a.navigator.Navigate(nav.ViewProductDetail, nav.Params{"productId": args[0]})
	case "add":
		if len(args) < 1 {
			fmt.Fprintln(out, "usage: add <product id> [quantity]")
			return
		}

		qty := 1

		if len(args) > 1 {
			parsed, err := strconv.Atoi(args[1])
			if err != nil {
				fmt.Fprintln(out, "quantity must be a number")
				return
			}

			qty = parsed
		}

		a.products.AddToCart(ctx, out, a.carts, args[0], qty)

		return
	case "inc":
		if len(args) != 1 {
			fmt.Fprintln(out, "usage: inc <product id>")
			return
		}

		a.cart.Increment(ctx, args[0])
	case "dec":
		if len(args) != 1 {
			fmt.Fprintln(out, "usage: dec <product id>")
			return
		}

		a.cart.Decrement(ctx, args[0])
	case "remove":
		if len(args) != 1 {
			fmt.Fprintln(out, "usage: remove <product id>")
			return
		}

		a.cart.Remove(ctx, args[0])
	case "clear":
		a.cart.Clear(ctx)
	case "order":
		if len(args) < 2 {
			fmt.Fprintln(out, "usage: order <card|paypal|m-pesa|cod> <shipping address>")
			return
		}

		a.checkout.PlaceOrder(ctx, out, strings.Join(args[1:], " "), args[0])
	case "status":
		if len(args) != 2 {
			fmt.Fprintln(out, "usage: status <order id> <pending|processing|shipped|delivered|cancelled>")
			return
		}

		a.dashboard.UpdateStatus(ctx, out, args[0], models.OrderStatus(args[1]))
	case "service":
		a.serviceCommand(ctx, out, args)
	case "product":
		a.productCommand(ctx, out, args)
	default:
		fmt.Fprintf(out, "unknown command %q, try \"help\"\n", cmd)

		return
	}

	a.render(ctx, out)
}

func (a *app) serviceCommand(ctx context.Context, out io.Writer, args []string) {

	if len(args) < 4 || args[0] != "add" {
		fmt.Fprintln(out, "usage: service add <name> <price> <description>")
		return
	}

	price, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		fmt.Fprintln(out, "price must be a number")
		return
	}

	a.services.AddService(ctx, out, &models.AddServiceRequest{
		Name:        args[1],
		Price:       price,
		Description: strings.Join(args[3:], " "),
	})
}

// productCommand handles the farmer management verbs. Create takes its
// fields pipe-separated because names and descriptions contain spaces:
//
//	product create <category>|<name>|<description>|<price>|<unit>|<image url>|<stock>
func (a *app) productCommand(ctx context.Context, out io.Writer, args []string) {

	if len(args) < 2 {
		fmt.Fprintln(out, "usage: product <create|update|delete> ...")
		return
	}

	verb, rest := args[0], args[1:]

	switch verb {
	case "create":
		parts := strings.Split(strings.Join(rest, " "), "|")
		if len(parts) != 7 {
			fmt.Fprintln(out, "usage: product create <category>|<name>|<description>|<price>|<unit>|<image url>|<stock>")
			return
		}

		price, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil {
			fmt.Fprintln(out, "price must be a number")
			return
		}

		stock, err := strconv.Atoi(strings.TrimSpace(parts[6]))
		if err != nil {
			fmt.Fprintln(out, "stock must be a number")
			return
		}

		a.products.Create(ctx, out, &models.CreateProductRequest{
			CategoryID:    strings.TrimSpace(parts[0]),
			Name:          strings.TrimSpace(parts[1]),
			Description:   strings.TrimSpace(parts[2]),
			Price:         price,
			Unit:          strings.TrimSpace(parts[4]),
			ImageURL:      strings.TrimSpace(parts[5]),
			StockQuantity: stock,
		})
	case "update":
		if len(rest) < 2 {
			fmt.Fprintln(out, "usage: product update <id> <field>=<value> ...")
			return
		}

		req, err := parseProductUpdate(rest[1:])
		if err != nil {
			fmt.Fprintln(out, err.Error())
			return
		}

		a.products.Update(ctx, out, rest[0], req)
	case "delete":
		if len(rest) != 1 {
			fmt.Fprintln(out, "usage: product delete <id>")
			return
		}

		a.products.Delete(ctx, out, rest[0])
	default:
		fmt.Fprintf(out, "unknown product verb %q\n", verb)
	}
}

func parseProductUpdate(pairs []string) (*models.UpdateProductRequest, error) {

	req := &models.UpdateProductRequest{}

	for _, pair := range pairs {

		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("expected <field>=<value>, got %q", pair)
		}

		switch key {
		case "category":
			req.CategoryID = &value
		case "name":
			req.Name = &value
		case "description":
			req.Description = &value
		case "unit":
			req.Unit = &value
		case "image":
			req.ImageURL = &value
		case "price":
			price, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, fmt.Errorf("price must be a number, got %q", value)
			}

			req.Price = &price
		case "stock":
			stock, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("stock must be a number, got %q", value)
			}

			req.StockQuantity = &stock
		default:
			return nil, fmt.Errorf("unknown field %q", key)
		}
	}

	return req, nil
}

func parseParams(args []string) nav.Params {

	if len(args) == 0 {
		return nil
	}

	params := nav.Params{}

	for _, arg := range args {
		if key, value, ok := strings.Cut(arg, "="); ok {
			params[key] = value
		}
	}

	return params
}

func (a *app) printHelp(out io.Writer) {
	fmt.Fprintln(out, `Commands:
  go <view> [key=value ...]    navigate (home, products, product_detail, services, events, dashboard, cart, checkout, auth)
  login <email> <password>
  register <username> <email> <password> <confirm>
  logout
  search <term>                search products
  category <id>                filter products by category
  view <product id>            open product details
  add <product id> [qty]       add to cart
  inc | dec | remove <id>      adjust a cart line
  clear                        empty the cart
  order <method> <address>     place the order (card, paypal, m-pesa, cod)
  status <order id> <status>   update an order (admin)
  service add <name> <price> <description>
  product create <category>|<name>|<description>|<price>|<unit>|<image url>|<stock>
  product update <id> <field>=<value> ...
  product delete <id>
  quit`)
}
