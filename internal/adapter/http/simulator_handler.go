package http

import (
	"net/http"

	"sme-exchange-backend/internal/usecase/simulator"

	"github.com/labstack/echo/v4"
)

type SimulatorHandler struct{ uc *simulator.Usecase }

func NewSimulatorHandler(uc *simulator.Usecase) *SimulatorHandler {
	return &SimulatorHandler{uc: uc}
}

func (h *SimulatorHandler) Candidates(c echo.Context) error {
	lenderID := uint64(queryInt(c, "lender_id", 0))
	out, err := h.uc.Candidates(c.Request().Context(), lenderID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SimulatorHandler) Details(c echo.Context) error {
	loanID := pathID(c, "loan_id")
	if loanID == 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id path param"})
	}
	dto, err := h.uc.Details(c.Request().Context(), loanID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *SimulatorHandler) Calculate(c echo.Context) error {
	var req simulator.CalculateInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Calculate(c.Request().Context(), req)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
