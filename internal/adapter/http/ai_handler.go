package http

import (
	"net/http"

	"sme-exchange-backend/internal/usecase/explain"

	"github.com/labstack/echo/v4"
)

// AIHandler serves the template-based narrative endpoints. Explanations are
// deterministic; no model call happens here.
type AIHandler struct{ uc *explain.Usecase }

func NewAIHandler(uc *explain.Usecase) *AIHandler { return &AIHandler{uc: uc} }

func (h *AIHandler) ExplainLoan(c echo.Context) error {
	var req explain.ExplainLoanInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.ExplainLoan(c.Request().Context(), req)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AIHandler) SwapStory(c echo.Context) error {
	var req explain.SwapStoryInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.SwapStory(c.Request().Context(), req)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
