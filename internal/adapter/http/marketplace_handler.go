package http

import (
	"net/http"

	"sme-exchange-backend/internal/usecase/marketplace"

	"github.com/labstack/echo/v4"
)

type MarketplaceHandler struct{ uc *marketplace.Usecase }

func NewMarketplaceHandler(uc *marketplace.Usecase) *MarketplaceHandler {
	return &MarketplaceHandler{uc: uc}
}

func (h *MarketplaceHandler) ListLoan(c echo.Context) error {
	var req marketplace.ListLoanInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.List(c.Request().Context(), req)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *MarketplaceHandler) Bid(c echo.Context) error {
	var req marketplace.BidInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Bid(c.Request().Context(), req)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *MarketplaceHandler) AcceptBid(c echo.Context) error {
	var req marketplace.AcceptBidInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.AcceptBid(c.Request().Context(), req)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *MarketplaceHandler) Interest(c echo.Context) error {
	var req marketplace.InterestInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Interest(c.Request().Context(), req)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *MarketplaceHandler) Reveal(c echo.Context) error {
	var req marketplace.RevealInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Reveal(c.Request().Context(), req)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *MarketplaceHandler) Opportunities(c echo.Context) error {
	lenderID := pathID(c, "lender_id")
	if lenderID == 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid lender_id path param"})
	}
	f := marketplace.OpportunityFilter{
		LenderID: lenderID,
		Sector:   c.QueryParam("sector"),
		MinROI:   queryFloat(c, "min_roi", 0),
	}
	out, err := h.uc.Opportunities(c.Request().Context(), f)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MarketplaceHandler) MyLoans(c echo.Context) error {
	lenderID := pathID(c, "lender_id")
	if lenderID == 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid lender_id path param"})
	}
	out, err := h.uc.MyLoans(c.Request().Context(), lenderID, queryBool(c, "mismatched_only"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MarketplaceHandler) Stats(c echo.Context) error {
	dto, err := h.uc.Stats(c.Request().Context())
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
