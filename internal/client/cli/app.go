// Package cli is the interactive shell over the sync services: a small
// read-eval-print loop for browsing and editing transactions, with the sync
// engine keeping offline edits safe underneath.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/avolkov/finsync/internal/client/api"
	"github.com/avolkov/finsync/internal/client/config"
	"github.com/avolkov/finsync/internal/client/services"
	"github.com/avolkov/finsync/internal/client/storage"
	"github.com/avolkov/finsync/internal/logging"
)

// App wires the storage, API and service layers and hosts the REPL.
type App struct {
	config       *config.Config
	repos        *storage.Repositories
	transactions *services.TransactionService
	accounts     *services.AccountService
	categories   *services.CategoryService
	log          logging.Logger
}

// NewApp opens the local database, builds the remote client and wires the
// services.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logging.NewDefault()

	repos, err := storage.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		log.Error(ctx, "initializing database failed", "path", cfg.DatabasePath, "err", err)
		return nil, err
	}

	apiClient := api.NewClient(cfg.ServerBaseURL, cfg.AuthToken, cfg.HTTPTimeout, log)

	accounts := services.NewAccountService(apiClient, repos.Accounts, log)
	transactions := services.NewTransactionService(apiClient, repos.Transactions, repos.PendingOps, accounts, log)
	categories := services.NewCategoryService(apiClient, repos.Categories, log)

	return &App{
		config:       cfg,
		repos:        repos,
		transactions: transactions,
		accounts:     accounts,
		categories:   categories,
		log:          log,
	}, nil
}

// Run warms the account and category caches and enters the REPL. It returns
// when the user exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	defer func() { _ = a.repos.Close() }()

	a.accounts.FetchPrimary(ctx)
	a.categories.FetchAll(ctx)

	printlnFn("finsync CLI (type 'help' for commands)")
	runREPL(ctx, a, bufio.NewScanner(os.Stdin))
}
