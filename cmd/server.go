package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/etnz/advisor"
	"github.com/etnz/advisor/server"
	"github.com/etnz/advisor/store"
	"github.com/google/subcommands"
)

// --- Mark Command ---

type markCmd struct {
	file string
	path string
}

func (*markCmd) Name() string     { return "mark" }
func (*markCmd) Synopsis() string { return "update holding prices from a price document" }
func (*markCmd) Usage() string {
	return `ias mark [-f <file or url>] [-path <jsonpath>] [<symbol>=<price>...]

  Marks the holdings to new prices. Prices are read from the arguments,
  or from a JSON document, or from the catalog when neither is given.
`
}

func (c *markCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "JSON price document, file or http(s) URL. Defaults to $ADVISOR_PRICE_FILE")
	f.StringVar(&c.path, "path", "", "JSONPath of the prices in the document. Defaults to $ADVISOR_PRICE_PATH")
}

func (c *markCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := Config()
	if c.file != "" {
		cfg.PriceFile = c.file
	}
	if c.path != "" {
		cfg.PricePath = c.path
	}

	sess, err := OpenSession(ctx)
	if err != nil {
		return fail("Error opening session", err)
	}

	var n int
	if f.NArg() > 0 {
		prices, err := parsePrices(f.Args())
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		n, err = sess.UpdatePrices(ctx, prices)
		if err != nil {
			return fail("Error updating prices", err)
		}
	} else {
		n, err = sess.Refresh(ctx, PriceFeed(cfg, sess.Catalog()))
		if err != nil {
			return fail("Error updating prices", err)
		}
	}
	fmt.Printf("%d holdings updated, total value %v\n", n, sess.Portfolio().TotalValue())
	return subcommands.ExitSuccess
}

// parsePrices parses arguments like "GILT10Y=102.5".
func parsePrices(args []string) (map[advisor.Symbol]advisor.Money, error) {
	prices := make(map[advisor.Symbol]advisor.Money, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("invalid price %q, want <symbol>=<price>", arg)
		}
		sym, err := advisor.ParseSymbol(key)
		if err != nil {
			return nil, err
		}
		price, err := advisor.ParseMoney(value)
		if err != nil {
			return nil, fmt.Errorf("invalid price for %s: %w", sym, err)
		}
		prices[sym] = price
	}
	return prices, nil
}

// --- Serve Command ---

type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the advisor HTTP API" }
func (*serveCmd) Usage() string {
	return `ias serve [-addr <host:port>]

  Serves the questionnaire, recommendations and portfolio of every user over HTTP.
  Requests are authenticated with HMAC signed bearer tokens ($JWT_SECRET).
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "Listen address. Defaults to $ADVISOR_LISTEN_ADDR")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := Config()
	if c.addr != "" {
		cfg.ListenAddr = c.addr
	}
	if cfg.JWTSecret == "" {
		fmt.Fprintln(os.Stderr, "Error: JWT_SECRET is not set")
		return subcommands.ExitFailure
	}
	st, err := store.Open(ctx, cfg)
	if err != nil {
		return fail("Error opening store", err)
	}

	catalog, err := LoadCatalog(cfg)
	if err != nil {
		return fail("Error loading catalog", err)
	}
	srv := server.New(server.Options{
		Store:          st,
		Catalog:        catalog,
		Secret:         []byte(cfg.JWTSecret),
		Feed:           PriceFeed(cfg, catalog),
		SessionOptions: []advisor.SessionOption{advisor.WithStartingCash(advisor.M(cfg.StartingCash))},
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := srv.Run(ctx, cfg.ListenAddr); err != nil {
		return fail("Error serving", err)
	}
	return subcommands.ExitSuccess
}
