package http

import (
	"net/http"

	"sme-exchange-backend/internal/usecase/analysis"
	"sme-exchange-backend/internal/usecase/portfolio"

	"github.com/labstack/echo/v4"
)

type PortfolioHandler struct {
	uc       *portfolio.Usecase
	analysis *analysis.Usecase
}

func NewPortfolioHandler(uc *portfolio.Usecase, an *analysis.Usecase) *PortfolioHandler {
	return &PortfolioHandler{uc: uc, analysis: an}
}

func (h *PortfolioHandler) Overview(c echo.Context) error {
	dto, err := h.uc.Overview(c.Request().Context())
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *PortfolioHandler) BySector(c echo.Context) error {
	out, err := h.uc.BySector(c.Request().Context())
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PortfolioHandler) ByRegion(c echo.Context) error {
	out, err := h.uc.ByRegion(c.Request().Context(), queryBool(c, "grouped"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PortfolioHandler) LenderDistribution(c echo.Context) error {
	out, err := h.uc.LenderDistribution(c.Request().Context())
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PortfolioHandler) Companies(c echo.Context) error {
	f := portfolio.CompaniesFilter{
		Sector: c.QueryParam("sector"),
		Region: c.QueryParam("region"),
		Skip:   queryInt(c, "skip", 0),
		Limit:  queryInt(c, "limit", 0),
	}
	out, err := h.uc.Companies(c.Request().Context(), f)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Recompute reruns the full scoring pipeline. Heavyweight; also runs at boot.
func (h *PortfolioHandler) Recompute(c echo.Context) error {
	res, err := h.analysis.Recompute(c.Request().Context())
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
