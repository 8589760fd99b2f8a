// Package cli is the portal command line: it lists the screen views and runs
// list queries against the seeded demo store.
package cli

import (
	"context"
	"fmt"

	"github.com/asaidimu/go-portal/core/config"
	"github.com/asaidimu/go-portal/core/persistence"
	"github.com/asaidimu/go-portal/core/portal"
	"github.com/asaidimu/go-portal/core/query"
	"github.com/asaidimu/go-portal/core/schema"
	"github.com/asaidimu/go-portal/sqlite"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries what the subcommands share once the root command has run.
type app struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *zap.Logger
}

// NewRootCommand builds the portal command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "portal",
		Short: "Query the intranet portal list screens",
		Long: `portal evaluates the list screens of the intranet portal (employees,
news, surveys, notifications, campaigns, point transactions and documents)
against the built-in demo data.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a TOML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(newViewsCommand(a), newQueryCommand(a), newTierCommand(a))
	return root
}

// Execute runs the root command with the process arguments.
func Execute() error {
	return NewRootCommand().Execute()
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) engine() *query.Engine {
	return query.NewEngine(a.logger, query.WithClock(a.cfg.Now()))
}

func (a *app) interactor() (persistence.DatabaseInteractor, error) {
	switch a.cfg.Store.Driver {
	case config.DriverSQLite:
		return sqlite.Open(a.cfg.Store.DSN, a.logger, &sqlite.Options{TablePrefix: a.cfg.Store.TablePrefix})
	default:
		return persistence.NewMemoryInteractor(), nil
	}
}

// openStore opens the configured store and seeds every collection that is
// still empty with the demo data.
func (a *app) openStore(ctx context.Context, engine *query.Engine) (*persistence.Persistence, error) {
	interactor, err := a.interactor()
	if err != nil {
		return nil, err
	}

	schemas := portal.Schemas()
	defs := make([]*schema.SchemaDefinition, 0, len(schemas))
	for _, s := range schemas {
		defs = append(defs, s)
	}
	store, err := persistence.NewPersistence(interactor, engine, a.logger, defs...)
	if err != nil {
		interactor.Close()
		return nil, err
	}

	if err := seedEmpty(ctx, store); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

func seedEmpty(ctx context.Context, store *persistence.Persistence) error {
	seed, err := portal.LoadSeed()
	if err != nil {
		return err
	}
	colls, err := seed.Collections()
	if err != nil {
		return err
	}

	pending := make(map[string][]schema.Document)
	for name, docs := range colls {
		c, err := store.Collection(name)
		if err != nil {
			return err
		}
		existing, err := c.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to inspect collection %s: %w", name, err)
		}
		if len(existing) == 0 {
			pending[name] = docs
		}
	}
	return store.Seed(ctx, pending)
}
