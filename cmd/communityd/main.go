// communityd serves the token communities API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AlexZinkM/token-communities/community"
	_ "github.com/AlexZinkM/token-communities/docs"
	"github.com/AlexZinkM/token-communities/internal/api"
	"github.com/AlexZinkM/token-communities/internal/client"
	"github.com/AlexZinkM/token-communities/internal/config"
	"github.com/AlexZinkM/token-communities/internal/crypto"
	"github.com/AlexZinkM/token-communities/internal/events"
	"github.com/AlexZinkM/token-communities/internal/handler"
	"github.com/AlexZinkM/token-communities/internal/logger"
	"github.com/AlexZinkM/token-communities/internal/registry"
	"github.com/AlexZinkM/token-communities/internal/store"
	"github.com/AlexZinkM/token-communities/internal/wallet"

	"go.uber.org/zap"
)

// @title        Token Communities API
// @version      1.0
// @description  Create token-backed communities, compute token distributions and manage the wallet session.
// @BasePath     /
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.Init(); err != nil {
		return err
	}
	cfg := config.Get()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	var passphrase []byte
	if cfg.StateEncrypt {
		if !config.HasStatePassphrase() {
			if err := config.PromptForPassphrase("State passphrase: "); err != nil {
				return err
			}
		}
		if passphrase, err = config.GetStatePassphraseBytes(); err != nil {
			return err
		}
	}

	st, err := store.Open(cfg.StateDir, passphrase, crypto.DefaultParams())
	clear(passphrase)
	if err != nil {
		return fmt.Errorf("failed to open state: %w", err)
	}
	defer st.Close()
	log.Info("state opened", zap.String("dir", cfg.StateDir), zap.Bool("sealed", st.Sealed()))

	reg, closeRegistry := newRegistry(cfg, log)
	defer closeRegistry()

	bus := events.NewBus()
	network, err := wallet.ParseNetwork(cfg.DefaultNetwork)
	if err != nil {
		return err
	}
	session := wallet.NewSession(network,
		wallet.WithPersister(st),
		wallet.WithLogger(log.Named("wallet")),
		wallet.WithObserver(func(s wallet.State) {
			bus.Publish(events.WalletChanged, handler.NewWalletResponse(s))
		}),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// no live wallet adapter on the server side: a restored identity stays stale until reconnected
	if err := session.Restore(ctx, st, nil); err != nil {
		log.Warn("failed to restore wallet session", zap.Error(err))
	}

	svc := community.NewService(reg, st, session, bus, log.Named("community"))
	router, err := api.SetupRouter(api.Deps{
		Session:  session,
		Service:  svc,
		Registry: reg,
		Bus:      bus,
		Logger:   log,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server started", zap.String("addr", srv.Addr), zap.String("registry", cfg.RegistryMode))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newRegistry(cfg *config.Config, log *zap.Logger) (registry.Registry, func()) {
	if cfg.RegistryMode == config.RegistryFake {
		return registry.NewFake(cfg.FakeSeed), func() {}
	}

	backend := client.NewBackendClient(cfg.BackendURL, cfg.BackendTimeout)
	soroban := client.NewSorobanClient(cfg.SorobanRPCURL, cfg.BackendTimeout)
	closeFn := func() {
		if err := soroban.Close(); err != nil {
			log.Warn("failed to close rpc client", zap.Error(err))
		}
	}

	var reg registry.Registry = registry.NewHTTP(backend, soroban, log.Named("registry"))
	if cfg.DeployFallback {
		reg = registry.NewFallback(reg, registry.NewFake(cfg.FakeSeed), log.Named("registry"))
	}
	return reg, closeFn
}
