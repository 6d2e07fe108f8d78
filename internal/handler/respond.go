package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AlexZinkM/token-communities/community"
	"github.com/AlexZinkM/token-communities/internal/distribution"
	"github.com/AlexZinkM/token-communities/internal/model"
	"github.com/AlexZinkM/token-communities/internal/registry"
	"github.com/AlexZinkM/token-communities/internal/store"
	"github.com/AlexZinkM/token-communities/internal/wallet"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error(), Code: code})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err)
		return false
	}
	return true
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed. Should be "+method, http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// writeDomainError maps service errors to status codes
func writeDomainError(w http.ResponseWriter, err error) {
	var verr *community.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{
			Error:  err.Error(),
			Code:   "validation_failed",
			Fields: verr.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, community.ErrWalletNotConnected):
		writeError(w, http.StatusConflict, "wallet_not_connected", err)
	case errors.Is(err, wallet.ErrConnectInProgress):
		writeError(w, http.StatusConflict, "connect_in_progress", err)
	case errors.Is(err, registry.ErrInsufficientBalance):
		writeError(w, http.StatusConflict, "insufficient_balance", err)
	case errors.Is(err, registry.ErrNoContract):
		writeError(w, http.StatusNotFound, "no_contract", err)
	case errors.Is(err, registry.ErrUnknownDeployment):
		writeError(w, http.StatusNotFound, "unknown_deployment", err)
	case errors.Is(err, registry.ErrUnsupported):
		writeError(w, http.StatusNotImplemented, "not_supported", err)
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, community.ErrInvalidAddress):
		writeError(w, http.StatusBadRequest, "invalid_address", err)
	case errors.Is(err, wallet.ErrInvalidNetwork):
		writeError(w, http.StatusBadRequest, "invalid_network", err)
	case errors.Is(err, community.ErrUnknownStep),
		errors.Is(err, registry.ErrMissingBucket),
		errors.Is(err, distribution.ErrInvalidSupply),
		errors.Is(err, distribution.ErrInvalidPercentage),
		errors.Is(err, distribution.ErrInvalidDecimals),
		errors.Is(err, distribution.ErrIncompletePlan),
		errors.Is(err, distribution.ErrAmountOverflow):
		writeError(w, http.StatusBadRequest, "invalid_request", err)
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "timeout", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal", err)
	}
}
