package handler

import (
	"errors"
	"net/http"

	"github.com/AlexZinkM/token-communities/community"
	"github.com/AlexZinkM/token-communities/internal/distribution"
	"github.com/AlexZinkM/token-communities/internal/model"
	"github.com/AlexZinkM/token-communities/internal/wallet"

	"go.uber.org/zap"
)

// WalletHandler exposes the wallet session
type WalletHandler struct {
	session *wallet.Session
	logger  *zap.Logger
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(session *wallet.Session, logger *zap.Logger) *WalletHandler {
	return &WalletHandler{session: session, logger: logger}
}

// persistFailed logs a failed session save. The session has still made the
// transition, so the caller answers with the new state.
func (h *WalletHandler) persistFailed(op string, err error) bool {
	if !errors.Is(err, wallet.ErrPersist) {
		return false
	}
	h.logger.Error("wallet session changed but not saved", zap.String("op", op), zap.Error(err))
	return true
}

// NewWalletResponse converts a session snapshot; empty identity fields become null
func NewWalletResponse(st wallet.State) model.WalletResponse {
	resp := model.WalletResponse{
		IsConnected: st.IsConnected(),
		Network:     string(st.Network),
		Balance:     st.Balance,
		Status:      string(st.Status),
		Stale:       st.Stale,
	}
	if st.Address != "" {
		addr := st.Address
		resp.Address = &addr
	}
	if st.PublicKey != "" {
		pk := st.PublicKey
		resp.PublicKey = &pk
	}
	return resp
}

// Get handles GET /wallet
// @Summary      Get wallet session
// @Description  Returns connection status, address, network and last known balance
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.WalletResponse
// @Router       /wallet [get]
func (h *WalletHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, NewWalletResponse(h.session.Snapshot()))
}

// Connect handles POST /wallet/connect
// @Summary      Connect wallet
// @Description  Connects the wallet selected in the wallet kit; the reported address becomes address and public key
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.ConnectRequest  true  "Selected wallet"
// @Success      200      {object}  model.WalletResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Router       /wallet/connect [post]
func (h *WalletHandler) Connect(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.ConnectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !distribution.IsValidAddress(string(req.Address)) {
		writeDomainError(w, community.ErrInvalidAddress)
		return
	}

	adapter := &wallet.RequestAdapter{WalletID: req.WalletID, Address: string(req.Address)}
	if err := wallet.ConnectWith(r.Context(), h.session, adapter); err != nil && !h.persistFailed("connect", err) {
		h.logger.Warn("wallet connect failed", zap.String("walletId", req.WalletID), zap.Error(err))
		if errors.Is(err, wallet.ErrConnectInProgress) {
			writeDomainError(w, err)
			return
		}
		writeError(w, http.StatusBadRequest, "connect_failed", err)
		return
	}

	writeJSON(w, http.StatusOK, NewWalletResponse(h.session.Snapshot()))
}

// Disconnect handles POST /wallet/disconnect
// @Summary      Disconnect wallet
// @Description  Clears address, public key and balance; keeps the network
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.WalletResponse
// @Router       /wallet/disconnect [post]
func (h *WalletHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	if err := h.session.Disconnect(); err != nil && !h.persistFailed("disconnect", err) {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, NewWalletResponse(h.session.Snapshot()))
}

// SetNetwork handles PUT /wallet/network
// @Summary      Set network
// @Description  Updates the network preference; does not refresh the balance
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.NetworkRequest  true  "testnet or mainnet"
// @Success      200      {object}  model.WalletResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /wallet/network [put]
func (h *WalletHandler) SetNetwork(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPut) {
		return
	}

	var req model.NetworkRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	network, err := wallet.ParseNetwork(req.Network)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := h.session.SetNetwork(network); err != nil && !h.persistFailed("network", err) {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, NewWalletResponse(h.session.Snapshot()))
}

// SetBalance handles PUT /wallet/balance
// @Summary      Set balance
// @Description  Updates the volatile balance; it is not persisted
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.BalanceRequest  true  "Balance"
// @Success      200      {object}  model.WalletResponse
// @Router       /wallet/balance [put]
func (h *WalletHandler) SetBalance(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPut) {
		return
	}

	var req model.BalanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.session.SetBalance(req.Balance)
	writeJSON(w, http.StatusOK, NewWalletResponse(h.session.Snapshot()))
}
