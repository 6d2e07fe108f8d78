package handler

import (
	"net/http"

	"github.com/AlexZinkM/token-communities/community"
	"github.com/AlexZinkM/token-communities/internal/model"

	"go.uber.org/zap"
)

// CommunityHandler serves community creation and token operations
type CommunityHandler struct {
	svc    *community.Service
	logger *zap.Logger
}

// NewCommunityHandler creates a new CommunityHandler
func NewCommunityHandler(svc *community.Service, logger *zap.Logger) *CommunityHandler {
	return &CommunityHandler{svc: svc, logger: logger}
}

// Communities handles /communities: POST creates, GET lists
func (h *CommunityHandler) Communities(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.Create(w, r)
	case http.MethodGet:
		h.List(w, r)
	default:
		http.Error(w, "Method not allowed. Should be GET or POST", http.StatusMethodNotAllowed)
	}
}

// Create handles POST /communities
// @Summary      Create a community
// @Description  Validates every wizard step, deploys the community token with the connected wallet as admin and stores the community
// @Tags         communities
// @Accept       json
// @Produce      json
// @Param        request  body      model.CreateCommunityRequest  true  "Community"
// @Success      201      {object}  model.Community
// @Failure      400      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Router       /communities [post]
func (h *CommunityHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.CreateCommunityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	c, err := h.svc.Create(r.Context(), req)
	if err != nil {
		h.logger.Warn("create community failed", zap.String("name", req.Name), zap.Error(err))
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// List handles GET /communities
// @Summary      List communities
// @Description  Returns stored communities, newest first
// @Tags         communities
// @Produce      json
// @Success      200  {object}  model.CommunityListResponse
// @Router       /communities [get]
func (h *CommunityHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	list, err := h.svc.List()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if list == nil {
		list = []model.CommunitySummary{}
	}
	writeJSON(w, http.StatusOK, model.CommunityListResponse{Communities: list})
}

// ValidateStep handles POST /communities/validate
// @Summary      Validate a wizard step
// @Description  Checks one step (1 basic info, 2 token settings, 3 governance, 4 distribution, 5 review) without side effects
// @Tags         communities
// @Accept       json
// @Produce      json
// @Param        request  body      model.ValidateStepRequest  true  "Step and draft"
// @Success      200      {object}  model.ValidateStepResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /communities/validate [post]
func (h *CommunityHandler) ValidateStep(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.ValidateStepRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	community.Normalize(&req.Community)

	fields, err := community.ValidateStep(req.Step, &req.Community)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if fields == nil {
		fields = []model.FieldError{}
	}
	writeJSON(w, http.StatusOK, model.ValidateStepResponse{
		Step:   req.Step,
		Name:   community.StepName(req.Step),
		Valid:  len(fields) == 0,
		Fields: fields,
	})
}

// Get handles GET /communities/{contractId}
// @Summary      Get a community
// @Tags         communities
// @Produce      json
// @Param        contractId  path      string  true  "Token contract ID"
// @Success      200         {object}  model.Community
// @Failure      404         {object}  model.ErrorResponse
// @Router       /communities/{contractId} [get]
func (h *CommunityHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	c, err := h.svc.Get(r.PathValue("contractId"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// Balance handles GET /communities/{contractId}/balance/{address}
// @Summary      Token balance
// @Description  Returns the holder's balance as a decimal string and a display string
// @Tags         tokens
// @Produce      json
// @Param        contractId  path      string  true  "Token contract ID"
// @Param        address     path      string  true  "Holder address"
// @Success      200         {object}  model.TokenBalanceResponse
// @Failure      400         {object}  model.ErrorResponse
// @Failure      404         {object}  model.ErrorResponse
// @Router       /communities/{contractId}/balance/{address} [get]
func (h *CommunityHandler) Balance(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	resp, err := h.svc.Balance(r.Context(), r.PathValue("contractId"), r.PathValue("address"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Transfer handles POST /communities/{contractId}/transfer
// @Summary      Transfer tokens
// @Description  Sends tokens from the connected wallet
// @Tags         tokens
// @Accept       json
// @Produce      json
// @Param        contractId  path      string                 true  "Token contract ID"
// @Param        request     body      model.TransferRequest  true  "Recipient and amount"
// @Success      200         {object}  model.TransferResponse
// @Failure      400         {object}  model.ErrorResponse
// @Failure      409         {object}  model.ErrorResponse
// @Router       /communities/{contractId}/transfer [post]
func (h *CommunityHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.TransferRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.svc.Transfer(r.Context(), r.PathValue("contractId"), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// RefreshBalance handles POST /communities/{contractId}/refresh-balance
// @Summary      Refresh wallet balance
// @Description  Reads the connected wallet's token balance and stores it in the session
// @Tags         tokens
// @Produce      json
// @Param        contractId  path      string  true  "Token contract ID"
// @Success      200         {object}  model.WalletResponse
// @Failure      409         {object}  model.ErrorResponse
// @Router       /communities/{contractId}/refresh-balance [post]
func (h *CommunityHandler) RefreshBalance(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	st, err := h.svc.RefreshSessionBalance(r.Context(), r.PathValue("contractId"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, NewWalletResponse(st))
}

// Burn handles POST /communities/{contractId}/burn
// @Summary      Burn tokens
// @Description  Destroys tokens held by the connected wallet and lowers the total supply
// @Tags         tokens
// @Accept       json
// @Produce      json
// @Param        contractId  path      string             true  "Token contract ID"
// @Param        request     body      model.BurnRequest  true  "Amount"
// @Success      200         {object}  model.BurnResponse
// @Failure      400         {object}  model.ErrorResponse
// @Failure      409         {object}  model.ErrorResponse
// @Failure      501         {object}  model.ErrorResponse
// @Router       /communities/{contractId}/burn [post]
func (h *CommunityHandler) Burn(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.BurnRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.svc.Burn(r.Context(), r.PathValue("contractId"), req)
	if err != nil {
		h.logger.Warn("burn failed", zap.String("contractId", r.PathValue("contractId")), zap.Error(err))
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Approve handles POST /communities/{contractId}/approve
// @Summary      Approve governance spending
// @Description  Sets how much the spender may move out of the connected wallet's balance; 0 revokes
// @Tags         tokens
// @Accept       json
// @Produce      json
// @Param        contractId  path      string                true  "Token contract ID"
// @Param        request     body      model.ApproveRequest  true  "Spender and amount"
// @Success      200         {object}  model.ApproveResponse
// @Failure      400         {object}  model.ErrorResponse
// @Failure      409         {object}  model.ErrorResponse
// @Failure      501         {object}  model.ErrorResponse
// @Router       /communities/{contractId}/approve [post]
func (h *CommunityHandler) Approve(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.ApproveRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.svc.ApproveGovernanceSpending(r.Context(), r.PathValue("contractId"), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Allowance handles GET /communities/{contractId}/allowance/{owner}/{spender}
// @Summary      Spending allowance
// @Tags         tokens
// @Produce      json
// @Param        contractId  path      string  true  "Token contract ID"
// @Param        owner       path      string  true  "Token holder"
// @Param        spender     path      string  true  "Approved spender"
// @Success      200         {object}  model.AllowanceResponse
// @Failure      400         {object}  model.ErrorResponse
// @Failure      404         {object}  model.ErrorResponse
// @Router       /communities/{contractId}/allowance/{owner}/{spender} [get]
func (h *CommunityHandler) Allowance(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	resp, err := h.svc.Allowance(r.Context(), r.PathValue("contractId"), r.PathValue("owner"), r.PathValue("spender"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// DeploymentStatus handles GET /deployments/{deploymentId}/status
// @Summary      Deployment progress
// @Description  pending, uploading, deploying, initializing, completed or failed, with progress 0..100
// @Tags         communities
// @Produce      json
// @Param        deploymentId  path      string  true  "Deployment ID"
// @Success      200           {object}  model.DeploymentStatus
// @Failure      404           {object}  model.ErrorResponse
// @Router       /deployments/{deploymentId}/status [get]
func (h *CommunityHandler) DeploymentStatus(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	resp, err := h.svc.DeploymentStatus(r.Context(), r.PathValue("deploymentId"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
