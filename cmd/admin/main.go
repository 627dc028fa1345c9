// cmd/admin/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"mediastore/internal/api"
	"mediastore/internal/catalog"
	"mediastore/internal/console"
	"mediastore/internal/identity"
	"mediastore/internal/ordering"
	"mediastore/internal/telemetry"
)

const usage = `mediastore admin console

Usage: admin <command> [args]

Catalog:
  products [-q query] [-page n]  search the catalog
  show <productID>               full product detail
  history <productID>            product change journal
  create                         create a product (interactive form)
  edit <productID>               edit a product (interactive form)
  deactivate <productID>         take a product off sale
  reactivate <productID>         put a deactivated product back on sale

Orders:
  orders-pending                 orders awaiting review
  approve <orderID>              approve a pending order
  reject <orderID>               reject a pending order (asks for a reason)

Users:
  users                          list registered users
  block <userID>                 block a user
  unblock <userID>               unblock a user
`

type app struct {
	session  *identity.Session
	identity identity.Service
	catalog  catalog.Service
	orders   ordering.Service
	reader   *console.Reader
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment")
	}

	ctx := context.Background()
	shutdown, err := telemetry.Setup(ctx, "mediastore-admin")
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
	if !session.IsAdmin() {
		fmt.Println("The admin console needs an ADMIN login. Log in with the storefront first.")
		os.Exit(1)
	}

	apiClient := api.NewClient(getEnv("MEDIASTORE_API_URL", "http://localhost:9760"), session)
	a := &app{
		session:  session,
		identity: identity.NewClient(apiClient),
		catalog:  catalog.NewClient(apiClient),
		orders:   ordering.NewClient(apiClient),
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
	case "products":
		return a.products(ctx, args)
	case "show":
		return a.show(ctx, args)
	case "history":
		return a.history(ctx, args)
	case "create":
		return a.create(ctx)
	case "edit":
		return a.edit(ctx, args)
	case "deactivate":
		return a.deactivate(ctx, args)
	case "reactivate":
		return a.reactivate(ctx, args)
	case "orders-pending":
		return a.pendingOrders(ctx)
	case "approve":
		return a.approve(ctx, args)
	case "reject":
		return a.reject(ctx, args)
	case "users":
		return a.users(ctx)
	case "block":
		return a.setBlocked(ctx, args, true)
	case "unblock":
		return a.setBlocked(ctx, args, false)
	default:
		fmt.Print(usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

// --- catalog ---

func (a *app) products(ctx context.Context, args []string) error {
	query, page := "", 0
	for i := 0; i < len(args)-1; i += 2 {
		switch args[i] {
		case "-q":
			query = args[i+1]
		case "-page":
			n, err := strconv.Atoi(args[i+1])
			if err != nil {
				return fmt.Errorf("invalid page %q", args[i+1])
			}
			page = n
		}
	}

	result, err := a.catalog.Search(ctx, query, "", page, 100)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(result.Content))
	for _, p := range result.Content {
		rows = append(rows, []string{
			strconv.Itoa(p.ID), p.Title, string(p.ProductType), p.Status,
			console.FormatVND(p.CurrentPrice), strconv.Itoa(p.Quantity),
		})
	}
	console.Table([]string{"ID", "Title", "Type", "Status", "Price", "Stock"}, rows)
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
	fmt.Printf("%s (%s)\n", p.Title, p.ProductType)
	fmt.Printf("%-9s %s\n", "Barcode:", p.Barcode)
	fmt.Printf("%-9s %s\n", "Category:", p.Category)
	fmt.Printf("%-9s %s\n", "Status:", p.Status)
	fmt.Printf("%-9s %s -> %s\n", "Pricing:", console.FormatVND(p.OriginalValue), console.FormatVND(p.CurrentPrice))
	fmt.Printf("%-9s %d\n", "Stock:", p.Quantity)
	fmt.Printf("%-9s %gkg, %gx%gx%gcm\n", "Physical:", p.Weight, p.Length, p.Width, p.Height)
	return nil
}

func (a *app) history(ctx context.Context, args []string) error {
	id, err := argInt(args, 0, "product id")
	if err != nil {
		return err
	}
	entries, err := a.catalog.History(ctx, id)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		change := e.Description
		if e.OldValue != "" || e.NewValue != "" {
			change = fmt.Sprintf("%s (%s -> %s)", e.Description, e.OldValue, e.NewValue)
		}
		rows = append(rows, []string{e.ActionDate, e.ActionType, e.PerformedBy, change})
	}
	console.Table([]string{"Date", "Action", "By", "Change"}, rows)
	return nil
}

func (a *app) create(ctx context.Context) error {
	choice := strings.ToUpper(a.reader.PromptDefault("Product type (BOOK/CD/DVD/NEWSPAPER)", "BOOK"))
	productType := catalog.ProductType(choice)
	if !productType.Valid() {
		return fmt.Errorf("unknown product type %q", choice)
	}

	draft := catalog.NewDraft(productType)
	if err := a.fillDraft(draft); err != nil {
		return err
	}
	if err := a.validateWithRetry(draft); err != nil {
		return err
	}

	p, err := a.catalog.Create(ctx, draft.BuildPayload())
	if err != nil {
		return err
	}
	fmt.Printf("Created product %d: %s\n", p.ID, p.Title)
	return nil
}

func (a *app) edit(ctx context.Context, args []string) error {
	id, err := argInt(args, 0, "product id")
	if err != nil {
		return err
	}
	p, err := a.catalog.Get(ctx, id)
	if err != nil {
		return err
	}

	draft := catalog.EditDraft(p)
	if err := a.fillDraft(draft); err != nil {
		return err
	}
	if err := a.validateWithRetry(draft); err != nil {
		return err
	}

	updated, err := a.catalog.Update(ctx, id, draft.BuildPayload())
	if err != nil {
		return err
	}
	fmt.Printf("Updated product %d: %s\n", updated.ID, updated.Title)
	return nil
}

func (a *app) deactivate(ctx context.Context, args []string) error {
	id, err := argInt(args, 0, "product id")
	if err != nil {
		return err
	}
	if !a.reader.Confirm(fmt.Sprintf("Deactivate product %d?", id)) {
		return nil
	}
	if err := a.catalog.Deactivate(ctx, id); err != nil {
		return err
	}
	fmt.Println("Product deactivated.")
	return nil
}

// reactivate resubmits the full record with ACTIVE status; there is no
// dedicated endpoint for it.
func (a *app) reactivate(ctx context.Context, args []string) error {
	id, err := argInt(args, 0, "product id")
	if err != nil {
		return err
	}
	p, err := a.catalog.Get(ctx, id)
	if err != nil {
		return err
	}
	if p.Status == catalog.StatusActive {
		fmt.Println("Product is already active.")
		return nil
	}

	draft := catalog.EditDraft(p)
	draft.Status = catalog.StatusActive
	if _, err := a.catalog.Update(ctx, id, draft.BuildPayload()); err != nil {
		return err
	}
	fmt.Println("Product reactivated.")
	return nil
}

// --- the interactive form ---

// formField pairs a wire field name with its prompt label and current value.
type formField struct {
	name    string
	label   string
	current string
}

func (a *app) fillDraft(d *catalog.Draft) error {
	fields := commonFields(d)
	fields = append(fields, variantFields(d)...)

	for _, f := range fields {
		for {
			input := a.reader.PromptDefault(f.label, f.current)
			err := d.UpdateField(f.name, input)
			if err == nil {
				break
			}
			fmt.Printf("  %v\n", err)
		}
	}

	if d.ProductType == catalog.TypeCD {
		a.editTracks(d)
	}
	return nil
}

// validateWithRetry runs the local price-band check and, on failure, re-prompts
// for the price until it fits or the admin gives up.
func (a *app) validateWithRetry(d *catalog.Draft) error {
	for {
		err := d.ValidateForSubmit()
		if err == nil {
			return nil
		}
		var bandErr *catalog.PriceBandError
		if !errors.As(err, &bandErr) {
			return err
		}
		fmt.Printf("  %v\n", bandErr)
		if !a.reader.Confirm("Enter a different price?") {
			return bandErr
		}
		input := a.reader.Prompt("Current price")
		if err := d.UpdateField("currentPrice", input); err != nil {
			fmt.Printf("  %v\n", err)
		}
	}
}

func commonFields(d *catalog.Draft) []formField {
	return []formField{
		{"title", "Title", d.Title},
		{"barcode", "Barcode", d.Barcode},
		{"category", "Category", d.Category},
		{"description", "Description", d.Description},
		{"originalValue", "Original value (VND)", formatFloat(d.OriginalValue)},
		{"currentPrice", "Current price (VND)", formatFloat(d.CurrentPrice)},
		{"quantity", "Quantity in stock", strconv.Itoa(d.Quantity)},
		{"weight", "Weight (kg)", formatFloat(d.Weight)},
		{"height", "Height (cm)", formatFloat(d.Height)},
		{"width", "Width (cm)", formatFloat(d.Width)},
		{"length", "Length (cm)", formatFloat(d.Length)},
		{"isNew", "New condition (true/false)", strconv.FormatBool(d.IsNew)},
		{"primaryColor", "Primary color", d.PrimaryColor},
		{"returnCondition", "Return condition", d.ReturnCondition},
	}
}

func variantFields(d *catalog.Draft) []formField {
	switch d.ProductType {
	case catalog.TypeBook:
		return []formField{
			{"authors", "Authors", d.Authors},
			{"publisher", "Publisher", d.Publisher},
			{"coverType", "Cover type (PAPERBACK/HARDCOVER)", d.CoverType},
			{"publicationDate", "Publication date (YYYY-MM-DD)", d.PublicationDate},
			{"numberOfPages", "Number of pages", strconv.Itoa(d.NumberOfPages)},
			{"language", "Language", d.Language},
			{"genre", "Genre", d.Genre},
		}
	case catalog.TypeCD:
		return []formField{
			{"artists", "Artists", d.Artists},
			{"recordLabel", "Record label", d.RecordLabel},
			{"genre", "Genre", d.Genre},
			{"releaseDate", "Release date (YYYY-MM-DD)", d.ReleaseDate},
		}
	case catalog.TypeDVD:
		return []formField{
			{"director", "Director", d.Director},
			{"discType", "Disc type (DVD/BLURAY/HD_DVD)", d.DiscType},
			{"runtime", "Runtime (minutes)", strconv.Itoa(d.Runtime)},
			{"studio", "Studio", d.Studio},
			{"subtitles", "Subtitles", d.Subtitles},
			{"language", "Language", d.Language},
			{"genre", "Genre", d.Genre},
		}
	case catalog.TypeNewspaper:
		return []formField{
			{"editorInChief", "Editor in chief", d.EditorInChief},
			{"publisher", "Publisher", d.Publisher},
			{"publicationDate", "Publication date (YYYY-MM-DD)", d.PublicationDate},
			{"issueNumber", "Issue number", d.IssueNumber},
			{"publicationFrequency", "Frequency (Daily/Weekly/...)", d.PublicationFrequency},
			{"issn", "ISSN", d.ISSN},
			{"language", "Language", d.Language},
			{"sections", "Sections", d.Sections},
		}
	}
	return nil
}

// editTracks is the CD track sub-editor: a small command loop over the draft's
// track list.
func (a *app) editTracks(d *catalog.Draft) {
	for {
		if len(d.Tracks) == 0 {
			fmt.Println("No tracks yet.")
		}
		for _, t := range d.Tracks {
			fmt.Printf("  %2d. %-40s %.0fs\n", t.TrackNumber, t.Title, t.Length)
		}

		input := a.reader.Prompt("Track command (add, set <n>, rm <n>, done)")
		parts := strings.Fields(input)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "done":
			return
		case "add":
			d.AddTrack()
			index := len(d.Tracks) - 1
			a.promptTrack(d, index)
		case "set":
			index, err := trackIndex(d, parts)
			if err != nil {
				fmt.Printf("  %v\n", err)
				continue
			}
			a.promptTrack(d, index)
		case "rm":
			index, err := trackIndex(d, parts)
			if err != nil {
				fmt.Printf("  %v\n", err)
				continue
			}
			if err := d.RemoveTrack(index); err != nil {
				fmt.Printf("  %v\n", err)
			}
		default:
			fmt.Println("  commands: add, set <n>, rm <n>, done")
		}
	}
}

func (a *app) promptTrack(d *catalog.Draft, index int) {
	track := d.Tracks[index]
	if err := d.UpdateTrack(index, "title", a.reader.PromptDefault("Track title", track.Title)); err != nil {
		fmt.Printf("  %v\n", err)
	}
	if err := d.UpdateTrack(index, "length", a.reader.PromptDefault("Length (seconds)", formatFloat(track.Length))); err != nil {
		fmt.Printf("  %v\n", err)
	}
}

// trackIndex converts a 1-based track number from the console into the draft's
// 0-based index.
func trackIndex(d *catalog.Draft, parts []string) (int, error) {
	if len(parts) < 2 {
		return 0, fmt.Errorf("missing track number")
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil || n < 1 || n > len(d.Tracks) {
		return 0, fmt.Errorf("no track %q", parts[1])
	}
	return n - 1, nil
}

// --- orders ---

func (a *app) pendingOrders(ctx context.Context) error {
	result, err := a.orders.Pending(ctx, 0, 20)
	if err != nil {
		return err
	}
	if len(result.Content) == 0 {
		fmt.Println("No pending orders.")
		return nil
	}
	rows := make([][]string, 0, len(result.Content))
	for _, o := range result.Content {
		customer := ""
		if o.DeliveryInfo != nil {
			customer = o.DeliveryInfo.CustomerName
		}
		rows = append(rows, []string{
			strconv.Itoa(o.ID), o.OrderNumber, customer,
			console.FormatVND(o.TotalAmount), o.PaymentMethod, o.CreatedAt,
		})
	}
	console.Table([]string{"ID", "Number", "Customer", "Total", "Method", "Placed"}, rows)
	return nil
}

func (a *app) approve(ctx context.Context, args []string) error {
	id, err := argInt(args, 0, "order id")
	if err != nil {
		return err
	}
	if err := a.orders.Approve(ctx, id); err != nil {
		return err
	}
	fmt.Println("Order approved.")
	return nil
}

func (a *app) reject(ctx context.Context, args []string) error {
	id, err := argInt(args, 0, "order id")
	if err != nil {
		return err
	}
	reason := a.reader.Prompt("Rejection reason")
	if err := a.orders.Reject(ctx, id, reason); err != nil {
		return err
	}
	fmt.Println("Order rejected; reserved stock has been returned.")
	return nil
}

// --- users ---

func (a *app) users(ctx context.Context) error {
	result, err := a.identity.Users(ctx, 0, 50)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(result.Content))
	for _, u := range result.Content {
		rows = append(rows, []string{
			strconv.Itoa(u.ID), u.Username, u.Email, u.FullName,
			strings.Join(u.Roles, ","), u.Status,
		})
	}
	console.Table([]string{"ID", "Username", "Email", "Name", "Roles", "Status"}, rows)
	return nil
}

func (a *app) setBlocked(ctx context.Context, args []string, blocked bool) error {
	id, err := argInt(args, 0, "user id")
	if err != nil {
		return err
	}
	if blocked {
		if err := a.identity.Block(ctx, id); err != nil {
			return err
		}
		fmt.Println("User blocked.")
		return nil
	}
	if err := a.identity.Unblock(ctx, id); err != nil {
		return err
	}
	fmt.Println("User unblocked.")
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
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
