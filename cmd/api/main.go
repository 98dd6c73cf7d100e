package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fastprodman/betpoa/internal/api"
	"github.com/fastprodman/betpoa/internal/infra/logging"
	"github.com/fastprodman/betpoa/internal/infra/pgutils"
	"github.com/fastprodman/betpoa/internal/repos/memory"
	"github.com/fastprodman/betpoa/internal/rules"
	"github.com/fastprodman/betpoa/internal/services/wallet"
	"github.com/fastprodman/betpoa/pkg/envconf"
	"github.com/fastprodman/betpoa/pkg/shutdownqueue"
	"github.com/joho/godotenv"

	accountsrepo "github.com/fastprodman/betpoa/internal/repos/accounts/postgres"
	gamesrepo "github.com/fastprodman/betpoa/internal/repos/games/postgres"
	ledgerrepo "github.com/fastprodman/betpoa/internal/repos/ledger/postgres"
	referralsrepo "github.com/fastprodman/betpoa/internal/repos/referrals/postgres"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error running api: %v", err)
		//nolint:gocritic
		os.Exit(1)
	}
}

func run(ctx context.Context) (retErr error) {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	cfg := new(apiConfig)

	err = envconf.Load(cfg)
	if err != nil {
		return fmt.Errorf("init config: %w", err)
	}

	logging.SetupJSON(cfg.LogLevel)

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		serr := shutdownqueue.Shutdown(shutdownCtx)
		if serr != nil {
			retErr = errors.Join(retErr, serr)
		}
	}()

	gameRules, err := rules.Load(cfg.RulesFile)
	if err != nil {
		return fmt.Errorf("load rules: %w", err)
	}

	// --- Infra ---
	walletSrv, err := newWallet(ctx, cfg, gameRules)
	if err != nil {
		return err
	}

	// --- HTTP server ---
	srv := api.NewServer(cfg.HTTP, walletSrv)

	shutdownqueue.Add("http server", func(c context.Context) error {
		err := srv.Shutdown(c)
		if err != nil {
			return fmt.Errorf("shutdown srv: %w", err)
		}

		return nil
	})

	errCh := make(chan error, 1)

	go func() {
		serr := srv.ListenAndServe()
		// http.ErrServerClosed is the normal path during Shutdown
		if serr != nil && !errors.Is(serr, http.ErrServerClosed) {
			errCh <- serr
			return
		}

		errCh <- nil
	}()

	slog.Info("API started", "addr", srv.Addr, "storage", cfg.StorageDriver)

	select {
	case <-ctx.Done():
		return nil
	case serr := <-errCh:
		if serr != nil {
			return fmt.Errorf("server error: %w", serr)
		}

		return nil
	}
}

func newWallet(ctx context.Context, cfg *apiConfig, r rules.Rules) (*wallet.Service, error) {
	switch cfg.StorageDriver {
	case storageMemory:
		slog.Warn("using in-memory storage, data is lost on restart")

		store := memory.New()

		return wallet.New(store, wallet.Repos{
			Accounts:  store.Accounts(),
			Ledger:    store.Ledger(),
			Games:     store.Games(),
			Referrals: store.Referrals(),
		}, r), nil

	case storagePostgres:
		if cfg.Postgres.DSN == "" {
			return nil, errors.New("PG_DSN is required for postgres storage")
		}

		pool, err := pgutils.OpenPool(ctx, cfg.Postgres)
		if err != nil {
			return nil, fmt.Errorf("open db: %w", err)
		}

		shutdownqueue.Add("postgres pool", func(context.Context) error {
			pool.Close()

			return nil
		})

		trManager, err := pgutils.NewTxManager(pool)
		if err != nil {
			return nil, fmt.Errorf("init tx manager: %w", err)
		}

		return wallet.New(trManager, wallet.Repos{
			Accounts:  accountsrepo.New(pool),
			Ledger:    ledgerrepo.New(pool),
			Games:     gamesrepo.New(pool),
			Referrals: referralsrepo.New(pool),
		}, r), nil

	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
}
