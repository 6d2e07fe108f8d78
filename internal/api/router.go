package api

import (
	"errors"
	"net/http"

	"github.com/AlexZinkM/token-communities/community"
	"github.com/AlexZinkM/token-communities/internal/events"
	"github.com/AlexZinkM/token-communities/internal/handler"
	"github.com/AlexZinkM/token-communities/internal/registry"
	"github.com/AlexZinkM/token-communities/internal/wallet"

	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// Deps are the shared services the handlers are built from
type Deps struct {
	Session  *wallet.Session
	Service  *community.Service
	Registry registry.Registry
	Bus      *events.Bus
	Logger   *zap.Logger
}

// SetupRouter sets up router with handlers
func SetupRouter(deps Deps) (http.Handler, error) {
	if deps.Session == nil || deps.Service == nil || deps.Registry == nil || deps.Bus == nil {
		return nil, errors.New("router: session, service, registry and bus are required")
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	walletHandler := handler.NewWalletHandler(deps.Session, deps.Logger)
	planHandler := handler.NewPlanHandler()
	communityHandler := handler.NewCommunityHandler(deps.Service, deps.Logger)
	healthHandler := handler.NewHealthHandler(deps.Registry, deps.Logger)
	eventsHandler := handler.NewEventsHandler(deps.Bus, deps.Session, deps.Logger)

	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/events", eventsHandler.Stream)

	// Wallet session
	mux.HandleFunc("/wallet", walletHandler.Get)
	mux.HandleFunc("/wallet/connect", walletHandler.Connect)
	mux.HandleFunc("/wallet/disconnect", walletHandler.Disconnect)
	mux.HandleFunc("/wallet/network", walletHandler.SetNetwork)
	mux.HandleFunc("/wallet/balance", walletHandler.SetBalance)

	// Distribution calculator
	mux.HandleFunc("/plans/compute", planHandler.Compute)
	mux.HandleFunc("/addresses/validate", planHandler.ValidateAddress)

	// Communities and their tokens
	mux.HandleFunc("/communities", communityHandler.Communities)
	mux.HandleFunc("/communities/validate", communityHandler.ValidateStep)
	mux.HandleFunc("/communities/{contractId}", communityHandler.Get)
	mux.HandleFunc("/communities/{contractId}/balance/{address}", communityHandler.Balance)
	mux.HandleFunc("/communities/{contractId}/transfer", communityHandler.Transfer)
	mux.HandleFunc("/communities/{contractId}/refresh-balance", communityHandler.RefreshBalance)
	mux.HandleFunc("/communities/{contractId}/burn", communityHandler.Burn)
	mux.HandleFunc("/communities/{contractId}/approve", communityHandler.Approve)
	mux.HandleFunc("/communities/{contractId}/allowance/{owner}/{spender}", communityHandler.Allowance)
	mux.HandleFunc("/deployments/{deploymentId}/status", communityHandler.DeploymentStatus)

	return mux, nil
}
