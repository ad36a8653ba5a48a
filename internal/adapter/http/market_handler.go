package http

import (
	"net/http"

	"sme-exchange-backend/internal/usecase/market"

	"github.com/labstack/echo/v4"
)

type MarketHandler struct{ uc *market.Usecase }

func NewMarketHandler(uc *market.Usecase) *MarketHandler { return &MarketHandler{uc: uc} }

func (h *MarketHandler) InclusionAnalysis(c echo.Context) error {
	dto, err := h.uc.InclusionAnalysis(c.Request().Context())
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *MarketHandler) LenderFlows(c echo.Context) error {
	out, err := h.uc.LenderFlows(c.Request().Context())
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MarketHandler) ReallocationStats(c echo.Context) error {
	dto, err := h.uc.ReallocationStats(c.Request().Context())
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
