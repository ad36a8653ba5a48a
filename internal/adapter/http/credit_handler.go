package http

import (
	"net/http"

	"sme-exchange-backend/internal/usecase/credits"

	"github.com/labstack/echo/v4"
)

type CreditHandler struct{ uc *credits.Usecase }

func NewCreditHandler(uc *credits.Usecase) *CreditHandler { return &CreditHandler{uc: uc} }

func (h *CreditHandler) Spend(c echo.Context) error {
	var req credits.SpendInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Spend(c.Request().Context(), req)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *CreditHandler) Balance(c echo.Context) error {
	lenderID := pathID(c, "lender_id")
	if lenderID == 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid lender_id path param"})
	}
	dto, err := h.uc.Balance(c.Request().Context(), lenderID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *CreditHandler) History(c echo.Context) error {
	lenderID := pathID(c, "lender_id")
	if lenderID == 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid lender_id path param"})
	}
	out, err := h.uc.History(c.Request().Context(), lenderID, queryInt(c, "limit", 0))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CreditHandler) Costs(c echo.Context) error {
	return c.JSON(http.StatusOK, h.uc.Costs())
}
