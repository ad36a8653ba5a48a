package http

import (
	"net/http"

	"sme-exchange-backend/internal/usecase/companies"

	"github.com/labstack/echo/v4"
)

type CompanyHandler struct{ uc *companies.Usecase }

func NewCompanyHandler(uc *companies.Usecase) *CompanyHandler { return &CompanyHandler{uc: uc} }

func (h *CompanyHandler) Detail(c echo.Context) error {
	companyID := pathID(c, "company_id")
	if companyID == 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid company_id path param"})
	}
	dto, err := h.uc.Detail(c.Request().Context(), companyID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
