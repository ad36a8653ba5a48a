package http

import (
	"net/http"

	swapDomain "sme-exchange-backend/internal/domain/swap"
	"sme-exchange-backend/internal/usecase/swaps"

	"github.com/labstack/echo/v4"
)

type SwapHandler struct{ uc *swaps.Usecase }

func NewSwapHandler(uc *swaps.Usecase) *SwapHandler { return &SwapHandler{uc: uc} }

func (h *SwapHandler) AutoMatches(c echo.Context) error {
	lenderID := pathID(c, "lender_id")
	if lenderID == 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid lender_id path param"})
	}
	out, err := h.uc.AutoMatches(c.Request().Context(), lenderID, queryBool(c, "inclusion_only"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SwapHandler) Propose(c echo.Context) error {
	var req swaps.ProposeInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Propose(c.Request().Context(), req)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *SwapHandler) Accept(c echo.Context) error {
	var req swaps.AcceptInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Accept(c.Request().Context(), req)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *SwapHandler) Decline(c echo.Context) error {
	var req swaps.DeclineInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	// Bind only reads the body on POST; the decline contract carries
	// proposal_id and lender_id as query params.
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query params"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Decline(c.Request().Context(), req)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *SwapHandler) MyProposals(c echo.Context) error {
	lenderID := pathID(c, "lender_id")
	if lenderID == 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid lender_id path param"})
	}
	status := swapDomain.Status(c.QueryParam("status"))
	switch status {
	case "", swapDomain.StatusPending, swapDomain.StatusAccepted, swapDomain.StatusDeclined:
	default:
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "status must be pending, accepted or declined"})
	}
	out, err := h.uc.MyProposals(c.Request().Context(), lenderID, status)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
