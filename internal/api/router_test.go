package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AlexZinkM/token-communities/community"
	"github.com/AlexZinkM/token-communities/internal/crypto"
	"github.com/AlexZinkM/token-communities/internal/events"
	"github.com/AlexZinkM/token-communities/internal/registry"
	"github.com/AlexZinkM/token-communities/internal/store"
	"github.com/AlexZinkM/token-communities/internal/wallet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupRouterRequiresDeps(t *testing.T) {
	_, err := SetupRouter(Deps{})
	require.Error(t, err)
}

func TestSetupRouterRoutes(t *testing.T) {
	st, err := store.Open(t.TempDir(), nil, crypto.DefaultParams())
	require.NoError(t, err)
	defer st.Close()

	session := wallet.NewSession(wallet.Testnet)
	bus := events.NewBus()
	reg := registry.NewFake(1)

	h, err := SetupRouter(Deps{
		Session:  session,
		Service:  community.NewService(reg, st, session, bus, nil),
		Registry: reg,
		Bus:      bus,
	})
	require.NoError(t, err)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/wallet", http.StatusOK},
		{http.MethodGet, "/communities", http.StatusOK},
		{http.MethodGet, "/communities/CNONE", http.StatusNotFound},
		{http.MethodGet, "/communities/validate", http.StatusMethodNotAllowed},
		{http.MethodPost, "/communities/CNONE/refresh-balance", http.StatusConflict},
		{http.MethodGet, "/deployments/CNONE/status", http.StatusNotFound},
		{http.MethodGet, "/communities/CNONE/allowance/nobody/nobody", http.StatusBadRequest},
		{http.MethodGet, "/nowhere", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
