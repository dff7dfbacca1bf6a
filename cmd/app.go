// Package cmd implements the ias command line application: a risk
// questionnaire and a practice portfolio.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/advisor"
	"github.com/etnz/advisor/config"
	"github.com/etnz/advisor/pricefeed"
	"github.com/etnz/advisor/store"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&quizCmd{}, "profile")
	c.Register(&profileCmd{}, "profile")
	c.Register(&recommendCmd{}, "profile")

	c.Register(&catalogCmd{}, "portfolio")
	c.Register(&marketCmd{}, "portfolio")
	c.Register(&buyCmd{}, "portfolio")
	c.Register(&sellCmd{}, "portfolio")
	c.Register(&portfolioCmd{}, "portfolio")
	c.Register(&txCmd{}, "portfolio")
	c.Register(&markCmd{}, "portfolio")

	c.Register(&serveCmd{}, "server")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	userFlag    = flag.String("user", "", "User id. Defaults to $ADVISOR_USER")
	storeFlag   = flag.String("store", "", "Snapshot store: memory, file, redis or postgres. Defaults to $ADVISOR_STORE")
	dataDirFlag = flag.String("data-dir", "", "Snapshot directory of the file store. Defaults to $ADVISOR_DATA_DIR")
	Verbose     = flag.Bool("v", false, "Log operations to stderr")
)

// Config returns the configuration from the environment, overridden by the global flags.
func Config() *config.Config {
	c := config.Load()
	if *userFlag != "" {
		c.User = *userFlag
	}
	if *storeFlag != "" {
		c.Store = *storeFlag
	}
	if *dataDirFlag != "" {
		c.DataDir = *dataDirFlag
	}
	return c
}

// OpenSession opens the session of the configured user.
func OpenSession(ctx context.Context) (*advisor.Session, error) {
	c := Config()
	catalog, err := LoadCatalog(c)
	if err != nil {
		return nil, err
	}
	st, err := store.Open(ctx, c)
	if err != nil {
		return nil, err
	}
	return advisor.Open(ctx, st, c.User, catalog, advisor.WithStartingCash(advisor.M(c.StartingCash)))
}

// LoadCatalog returns the catalog of c.CatalogFile, or the built-in one.
func LoadCatalog(c *config.Config) (*advisor.Catalog, error) {
	if c.CatalogFile == "" {
		return advisor.DefaultCatalog(), nil
	}
	f, err := os.Open(c.CatalogFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	catalog, err := advisor.DecodeCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.CatalogFile, err)
	}
	return catalog, nil
}

// PriceFeed returns the configured price feed: the price document if any,
// the catalog otherwise.
func PriceFeed(c *config.Config, catalog *advisor.Catalog) advisor.PriceFeed {
	if c.PriceFile != "" {
		return pricefeed.NewDocument(c.PriceFile, c.PricePath)
	}
	return pricefeed.FromCatalog(catalog)
}

// printMarkdown renders markdown for the terminal, or prints it raw if the
// renderer is not available.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// fail reports err on stderr.
func fail(format string, err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, format+": %v\n", err)
	return subcommands.ExitFailure
}
