package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"resto-pos/internal/cart"
	"resto-pos/internal/config"
	"resto-pos/internal/database"
	"resto-pos/internal/menu"
	"resto-pos/internal/model"
	"resto-pos/internal/receipt"
	"resto-pos/internal/repository"
	"resto-pos/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const usage = `Usage: pos <command> [arguments]

Commands:
  init                       initialise the database schema
  menu list                  print the menu catalogue
  menu add                   add a single menu item (-name -category -price -gst)
  menu import <file>         bulk-import a menu CSV (item_name,category,price,gst)
  menu seed                  insert the built-in sample menu
  order                      complete an order (-mode -payment -discount -item name:qty ... [-format f])
  bill                       re-export a past bill (-order id [-format f])
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app bundles the wired-up core the subcommands operate on.
type app struct {
	cfg      *config.Config
	logger   zerolog.Logger
	pool     *pgxpool.Pool
	menus    service.MenuService
	checkout service.CheckoutService
	receipts *receipt.Registry
}

func run(args []string) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return errors.New("no command given")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Schema init is idempotent and runs on every startup.
	if err := database.InitSchema(ctx, pool, logger); err != nil {
		return err
	}

	// Initialize repositories and services
	menuRepo := repository.NewMenuRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)

	a := &app{
		cfg:      cfg,
		logger:   logger,
		pool:     pool,
		menus:    service.NewMenuService(menuRepo, menu.NewImporter(logger), logger),
		checkout: service.NewCheckoutService(orderRepo, logger),
		receipts: receipt.NewRegistry(logger),
	}

	switch args[0] {
	case "init":
		// InitSchema already ran above; nothing further to do.
		fmt.Println("schema initialised")
		return nil
	case "menu":
		return a.runMenu(ctx, args[1:])
	case "order":
		return a.runOrder(ctx, args[1:])
	case "bill":
		return a.runBill(ctx, args[1:])
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func (a *app) runMenu(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("menu requires a subcommand: list, add, import or seed")
	}

	switch args[0] {
	case "list":
		items, err := a.menus.List(ctx)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Println("menu is empty")
			return nil
		}
		for _, item := range items {
			fmt.Printf("%4d  %-30s %-10s %s%s (GST %s%%)\n",
				item.ID, item.Name, item.Category,
				a.cfg.Receipt.Currency, item.Price.StringFixed(2), item.TaxRate.String())
		}
		return nil

	case "add":
		fs := flag.NewFlagSet("menu add", flag.ContinueOnError)
		name := fs.String("name", "", "item name")
		category := fs.String("category", "", "item category")
		price := fs.String("price", "", "unit price")
		gst := fs.String("gst", "0", "tax rate percent")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		priceDec, err := decimal.NewFromString(*price)
		if err != nil {
			return fmt.Errorf("invalid price %q: %w", *price, err)
		}
		gstDec, err := decimal.NewFromString(*gst)
		if err != nil {
			return fmt.Errorf("invalid gst %q: %w", *gst, err)
		}

		item, err := a.menus.Add(ctx, *name, *category, priceDec, gstDec)
		if err != nil {
			return err
		}
		fmt.Printf("added menu item %d: %s\n", item.ID, item.Name)
		return nil

	case "import":
		if len(args) < 2 {
			return errors.New("menu import requires a file path")
		}
		summary, err := a.menus.Import(ctx, a.importSource(ctx), args[1])
		if err != nil {
			return err
		}
		fmt.Printf("imported %d items, skipped %d rows\n", summary.Accepted, summary.Skipped)
		for _, rowErr := range summary.Errors {
			if rowErr.Line > 0 {
				fmt.Printf("  line %d: %s\n", rowErr.Line, rowErr.Reason)
			} else {
				fmt.Printf("  %s\n", rowErr.Reason)
			}
		}
		return nil

	case "seed":
		seeded, err := a.menus.Seed(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("seeded %d sample menu items\n", len(seeded))
		return nil

	default:
		return fmt.Errorf("unknown menu subcommand %q", args[0])
	}
}

// importSource builds the menu source per configuration: S3 with local
// fallback when enabled, plain file system otherwise.
func (a *app) importSource(ctx context.Context) menu.Source {
	fileSource := menu.NewFileSource(a.logger)

	if !a.cfg.Import.S3Enabled {
		return fileSource
	}

	s3Source, err := menu.NewS3Source(ctx, a.cfg.Import.S3Bucket, a.cfg.Import.S3Region, a.logger)
	if err != nil {
		a.logger.Warn().
			Err(err).
			Msg("failed to initialise S3 source, using local file system only")
		return fileSource
	}

	return menu.NewFallbackSource(s3Source, fileSource, a.cfg.Import.S3Prefix, a.logger)
}

// itemsFlag collects repeated -item name:qty arguments.
type itemsFlag []string

func (f *itemsFlag) String() string { return strings.Join(*f, ", ") }

func (f *itemsFlag) Set(value string) error {
	*f = append(*f, value)
	return nil
}

func (a *app) runOrder(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("order", flag.ContinueOnError)
	mode := fs.String("mode", string(model.ModeDineIn), "Dine-In or Takeaway")
	payment := fs.String("payment", string(model.PaymentCash), "Cash, Card or UPI")
	discount := fs.String("discount", "0", "discount percent (0..100)")
	format := fs.String("format", "text", "receipt export format")
	var items itemsFlag
	fs.Var(&items, "item", "menu item as name:qty (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if len(items) == 0 {
		return model.ErrEmptyCart
	}

	discountDec, err := decimal.NewFromString(*discount)
	if err != nil {
		return fmt.Errorf("invalid discount %q: %w", *discount, err)
	}

	session := cart.NewSession()
	if err := session.SetMode(model.OrderMode(*mode)); err != nil {
		return err
	}
	if err := session.SetPayment(model.PaymentMethod(*payment)); err != nil {
		return err
	}

	for _, spec := range items {
		name, qty, err := parseItemSpec(spec)
		if err != nil {
			return err
		}
		item, err := a.menus.FindByName(ctx, name)
		if err != nil {
			return fmt.Errorf("item %q: %w", name, err)
		}
		if err := session.AddLine(*item, qty); err != nil {
			return err
		}
	}

	order, lineItems, err := a.checkout.CompleteOrder(ctx, session, discountDec, time.Now())
	if err != nil {
		return err
	}

	rcpt := receipt.FromOrder(order, lineItems, a.cfg.Receipt.Currency)
	a.exportReceipt(rcpt, *format)

	fmt.Printf("order %d completed: total %s%s\n",
		order.ID, a.cfg.Receipt.Currency, order.Total.StringFixed(2))
	return nil
}

func (a *app) runBill(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("bill", flag.ContinueOnError)
	orderID := fs.Int64("order", 0, "order id")
	format := fs.String("format", "csv", "receipt export format")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *orderID <= 0 {
		return errors.New("bill requires -order <id>")
	}

	order, items, err := a.checkout.GetOrder(ctx, *orderID)
	if err != nil {
		return err
	}

	rcpt := receipt.FromOrder(order, items, a.cfg.Receipt.Currency)

	renderer, err := a.receipts.Get(*format)
	if err != nil {
		return err
	}

	path, err := receipt.WriteFile(a.cfg.Receipt.OutputDir, rcpt, renderer)
	if err != nil {
		return err
	}
	fmt.Printf("bill written to %s\n", path)
	return nil
}

// exportReceipt writes the receipt file if the format is available. A
// missing export format is reported as a warning; the completed order is
// already durable.
func (a *app) exportReceipt(rcpt receipt.Receipt, format string) {
	renderer, err := a.receipts.Get(format)
	if err != nil {
		a.logger.Warn().
			Str("format", format).
			Strs("available", a.receipts.Formats()).
			Msg("receipt not exported: format unavailable")
		return
	}

	path, err := receipt.WriteFile(a.cfg.Receipt.OutputDir, rcpt, renderer)
	if err != nil {
		a.logger.Warn().Err(err).Msg("failed to write receipt file")
		return
	}
	fmt.Printf("receipt written to %s\n", path)
}

// parseItemSpec splits "name:qty" into its parts; a bare "name" means
// quantity one. Item names may not contain a colon.
func parseItemSpec(spec string) (string, int, error) {
	name, qtyStr, found := strings.Cut(spec, ":")
	if name == "" {
		return "", 0, fmt.Errorf("invalid item spec %q", spec)
	}
	if !found {
		return name, 1, nil
	}

	qty, err := strconv.Atoi(qtyStr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid quantity in item spec %q: %w", spec, err)
	}
	return name, qty, nil
}
