package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/advisor"
	"github.com/etnz/advisor/renderer"
	"github.com/google/subcommands"
)

// --- Catalog Command ---

type catalogCmd struct {
	class string
}

func (*catalogCmd) Name() string     { return "catalog" }
func (*catalogCmd) Synopsis() string { return "search the instrument catalog" }
func (*catalogCmd) Usage() string {
	return `ias catalog [-t <type>] [<term>...]

  Lists the instruments whose name or symbol contains the search term.
`
}

func (c *catalogCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.class, "t", "", "Only list one asset class: equity, debt or government")
}

func (c *catalogCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	catalog, err := LoadCatalog(Config())
	if err != nil {
		return fail("Error loading catalog", err)
	}
	instruments := catalog.Search(strings.Join(f.Args(), " "))
	if c.class != "" {
		class, err := advisor.ParseAssetClass(c.class)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		var filtered []advisor.Instrument
		for _, inst := range instruments {
			if inst.Class == class {
				filtered = append(filtered, inst)
			}
		}
		instruments = filtered
	}
	printMarkdown(renderer.RenderCatalog(instruments))
	return subcommands.ExitSuccess
}

// --- Market Command ---

type marketCmd struct{}

func (*marketCmd) Name() string     { return "market" }
func (*marketCmd) Synopsis() string { return "display the market snapshot" }
func (*marketCmd) Usage() string {
	return `ias market

  Displays the main indices, top stocks, sector performance and market news.
  The snapshot is reference data, it does not price the catalog.
`
}
func (*marketCmd) SetFlags(f *flag.FlagSet) {}

func (*marketCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	printMarkdown(renderer.RenderMarket(advisor.DefaultMarket()))
	return subcommands.ExitSuccess
}

// --- Buy Command ---

type buyCmd struct {
	security string
	quantity int64
	price    float64
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "buy units of an instrument" }
func (*buyCmd) Usage() string {
	return `ias buy -s <symbol> -q <quantity> [-p <price>]

  Buys units of an instrument at its current price. The cost is debited from the cash.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.security, "s", "", "Instrument symbol")
	f.Int64Var(&c.quantity, "q", 0, "Number of units")
	f.Float64Var(&c.price, "p", 0, "Price per unit. Defaults to the current price")
}

func (c *buyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.security == "" || c.quantity <= 0 || c.price < 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return trade(ctx, c.security, advisor.Buy, advisor.Quantity(c.quantity), c.price)
}

// --- Sell Command ---

type sellCmd struct {
	security string
	quantity int64
	price    float64
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell units of a holding" }
func (*sellCmd) Usage() string {
	return `ias sell -s <symbol> [-q <quantity>] [-p <price>]

  Sells units of a holding at its current price. The proceeds are credited to the cash.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.security, "s", "", "Instrument symbol")
	f.Int64Var(&c.quantity, "q", 0, "Number of units, if missing all units are sold")
	f.Float64Var(&c.price, "p", 0, "Price per unit. Defaults to the current price")
}

func (c *sellCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.security == "" || c.quantity < 0 || c.price < 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return trade(ctx, c.security, advisor.Sell, advisor.Quantity(c.quantity), c.price)
}

// trade executes a trade in the user session. A zero price means the quoted
// price, a zero sell quantity means the whole holding.
func trade(ctx context.Context, symbol string, side advisor.Side, q advisor.Quantity, price float64) subcommands.ExitStatus {
	sess, err := OpenSession(ctx)
	if err != nil {
		return fail("Error opening session", err)
	}
	inst, err := sess.Quote(symbol)
	if err != nil {
		return fail("Error", err)
	}
	if side == advisor.Sell && q == 0 {
		h, ok := sess.Portfolio().Holding(inst.Symbol)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: no %s held\n", inst.Symbol)
			return subcommands.ExitFailure
		}
		q = h.Quantity
	}
	t := advisor.TradeOf(inst, side, q)
	if price > 0 {
		t.Price = advisor.M(price)
	}
	tx, err := sess.ExecuteTrade(ctx, t)
	if err != nil {
		return fail("Error executing trade", err)
	}
	fmt.Printf("%s, cash %v\n", renderer.Transaction(tx), sess.Portfolio().Cash())
	return subcommands.ExitSuccess
}

// --- Portfolio Command ---

type portfolioCmd struct{}

func (*portfolioCmd) Name() string     { return "portfolio" }
func (*portfolioCmd) Synopsis() string { return "display the holdings and their value" }
func (*portfolioCmd) Usage() string {
	return `ias portfolio

  Displays cash, holdings, gains and the allocation compared to the target one.
`
}
func (*portfolioCmd) SetFlags(f *flag.FlagSet) {}

func (*portfolioCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	sess, err := OpenSession(ctx)
	if err != nil {
		return fail("Error opening session", err)
	}
	var target *advisor.Allocation
	if profile, ok := sess.Profile(); ok {
		target = &profile.Allocation
	}
	printMarkdown(renderer.RenderPortfolio(sess.Portfolio(), target))
	return subcommands.ExitSuccess
}

// --- Tx Command ---

type txCmd struct {
	head int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list the transactions" }
func (*txCmd) Usage() string {
	return `ias tx [-head <n>]

  Lists the executed transactions, most recent first.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.head, "head", 0, "Show only the N most recent transactions.")
}

func (c *txCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	sess, err := OpenSession(ctx)
	if err != nil {
		return fail("Error opening session", err)
	}
	md := renderer.RenderTransactions(sess.Portfolio())
	if c.head > 0 {
		md = headRows(md, c.head)
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}

// headRows keeps the first n rows of the markdown table in md.
func headRows(md string, n int) string {
	lines := strings.Split(md, "\n")
	var out []string
	rows := 0
	for i, line := range lines {
		// the two first table lines are the header and the separator
		if strings.HasPrefix(line, "|") && i > 0 && strings.HasPrefix(lines[i-1], "|") && !strings.HasPrefix(line, "|:") {
			if rows >= n {
				continue
			}
			rows++
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
