package handler

import (
	"net/http"

	"github.com/AlexZinkM/token-communities/community"
	"github.com/AlexZinkM/token-communities/internal/common"
	"github.com/AlexZinkM/token-communities/internal/distribution"
	"github.com/AlexZinkM/token-communities/internal/model"
)

// PlanHandler serves the stateless distribution calculator
type PlanHandler struct{}

// NewPlanHandler creates a new PlanHandler
func NewPlanHandler() *PlanHandler {
	return &PlanHandler{}
}

// Compute handles POST /plans/compute
// @Summary      Compute a distribution
// @Description  Computes per-bucket amounts and reports the deviation from 100% and invalid wallets. Incomplete plans are previewed per bucket without a remainder.
// @Tags         plans
// @Accept       json
// @Produce      json
// @Param        request  body      model.PlanRequest  true  "Supply and buckets"
// @Success      200      {object}  model.PlanResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /plans/compute [post]
func (h *PlanHandler) Compute(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.PlanRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Buckets) == 0 {
		req.Buckets = distribution.DefaultBuckets()
	}

	resp, err := ComputePlan(req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ComputePlan evaluates a plan request
func ComputePlan(req model.PlanRequest) (*model.PlanResponse, error) {
	decimals := common.DefaultDecimals
	if req.Decimals != nil {
		decimals = *req.Decimals
	}
	if err := distribution.ValidateBuckets(req.Buckets); err != nil {
		return nil, err
	}

	resp := &model.PlanResponse{
		TotalSupply: req.TotalSupply,
		Decimals:    decimals,
		Sum:         distribution.SumPercentages(req.Buckets),
		Deviation:   distribution.Deviation(req.Buckets),
		Complete:    distribution.IsCompletePlan(req.Buckets),
		Wallets:     distribution.ValidateDistributionWallets(req.Buckets),
	}

	if resp.Complete {
		plan, err := distribution.Calculate(req.TotalSupply, decimals, req.Buckets)
		if err != nil {
			return nil, err
		}
		resp.Allocations = community.Allocations(plan)
		resp.Remainder = common.FormatUnits(plan.Remainder, decimals)
		return resp, nil
	}

	resp.Allocations = make([]model.Allocation, 0, len(req.Buckets))
	for _, b := range req.Buckets {
		units, err := distribution.ComputeUnits(req.TotalSupply, b.Percentage, decimals)
		if err != nil {
			return nil, err
		}
		resp.Allocations = append(resp.Allocations, model.Allocation{
			Name:       b.Name,
			Percentage: b.Percentage,
			Wallet:     b.Wallet,
			Amount:     common.FormatUnits(units, decimals),
			Display:    common.FormatDisplay(units, decimals),
		})
	}
	return resp, nil
}

// ValidateAddress handles POST /addresses/validate
// @Summary      Validate an address
// @Description  Syntactic check of the raw string: G followed by 55 characters of A-Z and 2-7, no surrounding whitespace
// @Tags         plans
// @Accept       json
// @Produce      json
// @Param        request  body      model.AddressRequest  true  "Address"
// @Success      200      {object}  model.AddressResponse
// @Router       /addresses/validate [post]
func (h *PlanHandler) ValidateAddress(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.AddressRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, model.AddressResponse{
		Address:   req.Address,
		Valid:     distribution.IsValidAddress(req.Address),
		Truncated: common.TruncateAddress(req.Address, 4),
	})
}
