// cmd/storefront/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"mediastore/internal/api"
	"mediastore/internal/cart"
	"mediastore/internal/catalog"
	"mediastore/internal/console"
	"mediastore/internal/identity"
	"mediastore/internal/ordering"
	"mediastore/internal/payment"
	"mediastore/internal/telemetry"
)

const usage = `mediastore storefront console

Usage: storefront <command> [args]

Account:
  register                    create a new account
  login                       log in and store the session
  logout                      clear the stored session
  whoami                      show the logged-in user
  change-password             change your password

Catalog:
  browse [count]              show a sample of products
  search [-q query] [-category c] [-page n] [-size n]
  show <productID>            full product detail

Cart & checkout:
  cart                        show the cart
  cart-add <productID> [qty]  add a product
  cart-set <productID> <qty>  change a line's quantity
  cart-rm <productID>         remove a line
  checkout                    place an order from the cart
  pay <orderID>               run the mock payment for an order
  orders                      list your orders
`

// app bundles the session and the service clients every command needs.
type app struct {
	session  *identity.Session
	identity identity.Service
	catalog  catalog.Service
	cart     cart.Service
	orders   ordering.Service
	payments payment.Service
	reader   *console.Reader
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment")
	}

	ctx := context.Background()
	shutdown, err := telemetry.Setup(ctx, "mediastore-storefront")
	if err != nil {
		log.Fatalf("Failed to set up telemetry: %v", err)
	}
	defer shutdown(ctx)

	sessionPath, err := identity.DefaultSessionPath()
	if err != nil {
		log.Fatalf("Failed to locate session file: %v", err)
	}
	session, err := identity.LoadSession(sessionPath)
	if err != nil {
		log.Fatalf("Failed to load session: %v", err)
	}

	apiClient := api.NewClient(getEnv("MEDIASTORE_API_URL", "http://localhost:9760"), session)
	a := &app{
		session:  session,
		identity: identity.NewClient(apiClient),
		catalog:  catalog.NewClient(apiClient),
		cart:     cart.NewClient(apiClient),
		orders:   ordering.NewClient(apiClient),
		payments: payment.NewClient(apiClient),
		reader:   console.NewReader(os.Stdin),
	}

	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(2)
	}

	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		if api.IsUnauthorized(err) {
			fmt.Println("Your session has expired, please log in again.")
			os.Exit(1)
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return a.register(ctx)
	case "login":
		return a.login(ctx)
	case "logout":
		return a.session.Clear()
	case "whoami":
		return a.whoami()
	case "change-password":
		return a.changePassword(ctx)
	case "browse":
		return a.browse(ctx, args)
	case "search":
		return a.search(ctx, args)
	case "show":
		return a.show(ctx, args)
	case "cart":
		return a.showCart(ctx)
	case "cart-add":
		return a.cartAdd(ctx, args)
	case "cart-set":
		return a.cartSet(ctx, args)
	case "cart-rm":
		return a.cartRemove(ctx, args)
	case "checkout":
		return a.checkout(ctx)
	case "pay":
		return a.pay(ctx, args)
	case "orders":
		return a.orderHistory(ctx)
	default:
		fmt.Print(usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

// --- account ---

func (a *app) register(ctx context.Context) error {
	reg := identity.Registration{
		Username:    a.reader.Prompt("Username"),
		Email:       a.reader.Prompt("Email"),
		FullName:    a.reader.Prompt("Full name"),
		PhoneNumber: a.reader.Prompt("Phone number"),
		Password:    a.reader.Prompt("Password"),
	}
	if confirm := a.reader.Prompt("Confirm password"); confirm != reg.Password {
		return fmt.Errorf("passwords do not match")
	}
	if err := a.identity.Register(ctx, reg); err != nil {
		return err
	}
	fmt.Println("Registered! Please log in.")
	return nil
}

func (a *app) login(ctx context.Context) error {
	username := a.reader.Prompt("Username")
	password := a.reader.Prompt("Password")

	result, err := a.identity.Login(ctx, username, password)
	if err != nil {
		return err
	}
	if err := a.session.Set(result.Token, &result.User); err != nil {
		return err
	}
	fmt.Printf("Welcome back, %s!\n", result.User.FullName)
	return nil
}

func (a *app) whoami() error {
	if !a.session.Authenticated() {
		fmt.Println("Not logged in.")
		return nil
	}
	u := a.session.User
	fmt.Printf("%s <%s> roles=%v\n", u.FullName, u.Email, u.Roles)
	return nil
}

func (a *app) changePassword(ctx context.Context) error {
	oldPassword := a.reader.Prompt("Current password")
	newPassword := a.reader.Prompt("New password")
	if confirm := a.reader.Prompt("Confirm new password"); confirm != newPassword {
		return fmt.Errorf("passwords do not match")
	}
	if err := a.identity.ChangePassword(ctx, oldPassword, newPassword); err != nil {
		return err
	}
	fmt.Println("Password changed.")
	return nil
}

// --- catalog ---

func (a *app) browse(ctx context.Context, args []string) error {
	count := 20
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid count %q", args[0])
		}
		count = n
	}
	products, err := a.catalog.Random(ctx, count)
	if err != nil {
		return err
	}
	printProducts(products)
	return nil
}

func (a *app) search(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	query := fs.String("q", "", "free-text query")
	category := fs.String("category", "", "category filter")
	page := fs.Int("page", 0, "page number")
	size := fs.Int("size", 20, "page size")
	if err := fs.Parse(args); err != nil {
		return err
	}

	result, err := a.catalog.Search(ctx, *query, *category, *page, *size)
	if err != nil {
		return err
	}
	printProducts(result.Content)
	fmt.Printf("Page %d of %d (%d products)\n", result.Number+1, result.TotalPages, result.TotalElements)
	return nil
}

func (a *app) show(ctx context.Context, args []string) error {
	id, err := argInt(args, 0, "product id")
	if err != nil {
		return err
	}
	p, err := a.catalog.Get(ctx, id)
	if err != nil {
		return err
	}
	printProductDetail(p)
	return nil
}

// --- cart & checkout ---

func (a *app) showCart(ctx context.Context) error {
	c, err := a.cart.Get(ctx)
	if err != nil {
		return err
	}
	if len(c.Items) == 0 {
		fmt.Println("Your cart is empty.")
		return nil
	}

	rows := make([][]string, 0, len(c.Items))
	for _, item := range c.Items {
		rows = append(rows, []string{
			strconv.Itoa(item.ProductID), item.ProductTitle, item.ProductType,
			strconv.Itoa(item.Quantity), console.FormatVND(item.Price), console.FormatVND(item.Subtotal),
		})
	}
	console.Table([]string{"ID", "Product", "Type", "Qty", "Price", "Subtotal"}, rows)
	fmt.Printf("Subtotal: %s\nWith VAT: %s\n", console.FormatVND(c.Subtotal), console.FormatVND(c.TotalWithVAT))
	return nil
}

func (a *app) cartAdd(ctx context.Context, args []string) error {
	productID, err := argInt(args, 0, "product id")
	if err != nil {
		return err
	}
	quantity := 1
	if len(args) > 1 {
		quantity, err = strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid quantity %q", args[1])
		}
	}
	if err := a.cart.AddItem(ctx, productID, quantity); err != nil {
		return err
	}
	return a.showCart(ctx)
}

func (a *app) cartSet(ctx context.Context, args []string) error {
	productID, err := argInt(args, 0, "product id")
	if err != nil {
		return err
	}
	quantity, err := argInt(args, 1, "quantity")
	if err != nil {
		return err
	}
	if err := a.cart.UpdateItem(ctx, productID, quantity); err != nil {
		return err
	}
	return a.showCart(ctx)
}

func (a *app) cartRemove(ctx context.Context, args []string) error {
	productID, err := argInt(args, 0, "product id")
	if err != nil {
		return err
	}
	if err := a.cart.RemoveItem(ctx, productID); err != nil {
		return err
	}
	return a.showCart(ctx)
}

func (a *app) checkout(ctx context.Context) error {
	info := ordering.DeliveryInfo{
		CustomerName:    a.reader.Prompt("Full name"),
		CustomerPhone:   a.reader.Prompt("Phone number"),
		CustomerEmail:   a.reader.Prompt("Email"),
		ShippingCity:    a.reader.Prompt("City"),
		ShippingAddress: a.reader.Prompt("Address"),
	}
	method := ordering.MethodVietQR
	if a.reader.PromptDefault("Payment method (VIETQR/PAYPAL)", method) == ordering.MethodPayPal {
		method = ordering.MethodPayPal
	}

	order, err := a.orders.Place(ctx, info, method)
	if err != nil {
		return err
	}
	fmt.Printf("Order placed! Number: %s, total: %s\n", order.OrderNumber, console.FormatVND(order.TotalAmount))
	fmt.Printf("Run `storefront pay %d` to complete the payment.\n", order.ID)
	return nil
}

func (a *app) pay(ctx context.Context, args []string) error {
	orderID, err := argInt(args, 0, "order id")
	if err != nil {
		return err
	}

	txn, err := a.payments.Create(ctx, orderID)
	if err != nil {
		return err
	}

	if txn.PaymentMethod == ordering.MethodPayPal {
		order, err := a.payments.CreatePayPal(ctx, orderID, txn.Amount)
		if err != nil {
			return err
		}
		fmt.Printf("Approve the payment at: %s\n", order.ApprovalLink)
		if !a.reader.Confirm("Did you approve the PayPal payment?") {
			fmt.Println("Payment not confirmed; the order stays unpaid.")
			return nil
		}
		if err := a.orders.Confirm(ctx, orderID, txn.ProviderTransactionID); err != nil {
			return err
		}
		fmt.Println("Payment confirmed, thank you!")
		return nil
	}

	fmt.Printf("Scan this VietQR code in your banking app:\n\n  %s\n\nAmount: %s\n",
		txn.QRString, console.FormatVND(txn.Amount))
	if !a.reader.Confirm("Have you completed the transfer?") {
		fmt.Println("Payment not confirmed; the order stays unpaid.")
		return nil
	}
	// The callback is keyed by the provider's reference, not our own id.
	if err := a.payments.ConfirmVietQR(ctx, txn.ProviderTransactionID); err != nil {
		return err
	}
	fmt.Println("Payment confirmed, thank you!")
	return nil
}

func (a *app) orderHistory(ctx context.Context) error {
	result, err := a.orders.MyOrders(ctx, 0, 20)
	if err != nil {
		return err
	}
	if len(result.Content) == 0 {
		fmt.Println("No orders yet.")
		return nil
	}

	rows := make([][]string, 0, len(result.Content))
	for _, order := range result.Content {
		rows = append(rows, []string{
			strconv.Itoa(order.ID), order.OrderNumber, order.Status,
			console.FormatVND(order.TotalAmount), order.CreatedAt,
		})
	}
	console.Table([]string{"ID", "Number", "Status", "Total", "Placed"}, rows)
	return nil
}

// --- rendering ---

func printProducts(products []catalog.Product) {
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{
			strconv.Itoa(p.ID), p.Title, string(p.ProductType), p.Category,
			console.FormatVND(p.CurrentPrice), strconv.Itoa(p.Quantity),
		})
	}
	console.Table([]string{"ID", "Title", "Type", "Category", "Price", "Stock"}, rows)
}

func printProductDetail(p *catalog.Product) {
	fmt.Printf("%s (%s)\n", p.Title, p.ProductType)
	fmt.Printf("  Barcode:  %s\n", p.Barcode)
	fmt.Printf("  Category: %s\n", p.Category)
	fmt.Printf("  Price:    %s\n", console.FormatVND(p.CurrentPrice))
	fmt.Printf("  Stock:    %d\n", p.Quantity)
	fmt.Printf("  Status:   %s\n", p.Status)
	if p.Description != "" {
		fmt.Printf("  %s\n", p.Description)
	}

	switch p.ProductType {
	case catalog.TypeBook:
		fmt.Printf("  Authors: %s, Publisher: %s, %d pages, %s cover\n",
			p.Authors, p.Publisher, p.NumberOfPages, p.CoverType)
	case catalog.TypeCD:
		fmt.Printf("  Artists: %s, Label: %s, released %s\n", p.Artists, p.RecordLabel, p.ReleaseDate)
		for _, t := range p.Tracks {
			fmt.Printf("    %2d. %s (%.0fs)\n", t.TrackNumber, t.Title, t.Length)
		}
	case catalog.TypeDVD:
		fmt.Printf("  Director: %s, Studio: %s, %d min, %s\n", p.Director, p.Studio, p.Runtime, p.DiscType)
	case catalog.TypeNewspaper:
		fmt.Printf("  Editor in chief: %s, %s, issue %s\n", p.EditorInChief, p.PublicationFrequency, p.IssueNumber)
	}
}

func argInt(args []string, index int, name string) (int, error) {
	if len(args) <= index {
		return 0, fmt.Errorf("missing %s argument", name)
	}
	n, err := strconv.Atoi(args[index])
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, args[index])
	}
	return n, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
