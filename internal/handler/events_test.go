package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/AlexZinkM/token-communities/internal/events"
	"github.com/AlexZinkM/token-communities/internal/wallet"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEventsStream(t *testing.T) {
	bus := events.NewBus()
	session := wallet.NewSession(wallet.Mainnet)
	h := NewEventsHandler(bus, session, zap.NewNop())

	srv := httptest.NewServer(http.HandlerFunc(h.Stream))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var first struct {
		Type string `json:"type"`
		Data struct {
			IsConnected bool   `json:"isConnected"`
			Network     string `json:"network"`
		} `json:"data"`
	}
	require.NoError(t, conn.ReadJSON(&first))
	assert.Equal(t, events.WalletChanged, first.Type)
	assert.False(t, first.Data.IsConnected)
	assert.Equal(t, "mainnet", first.Data.Network)

	// the subscription is registered before the first message is written
	require.Equal(t, 1, bus.Subscribers())
	bus.Publish(events.TokenTransferred, map[string]string{"amount": "1"})

	var next struct {
		Type string            `json:"type"`
		Data map[string]string `json:"data"`
	}
	require.NoError(t, conn.ReadJSON(&next))
	assert.Equal(t, events.TokenTransferred, next.Type)
	assert.Equal(t, "1", next.Data["amount"])

	conn.Close()
	assert.Eventually(t, func() bool { return bus.Subscribers() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestEventsRequiresUpgrade(t *testing.T) {
	h := NewEventsHandler(events.NewBus(), wallet.NewSession(wallet.Testnet), zap.NewNop())

	rec := httptest.NewRecorder()
	h.Stream(rec, httptest.NewRequest("GET", "/events", nil))
	assert.Equal(t, 400, rec.Code)
}
