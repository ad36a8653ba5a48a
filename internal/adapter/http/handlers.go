package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// Handlers bundles every route handler for registration.
type Handlers struct {
	Health      *Handler
	Portfolio   *PortfolioHandler
	Company     *CompanyHandler
	Marketplace *MarketplaceHandler
	Swap        *SwapHandler
	Simulator   *SimulatorHandler
	Credit      *CreditHandler
	Market      *MarketHandler
	AI          *AIHandler
}

// RegisterRoutes mounts everything under /api (health stays at the root).
// mw is applied to the whole group; idempotency skips non-mutating methods
// on its own.
func RegisterRoutes(e *echo.Echo, h Handlers, mw ...echo.MiddlewareFunc) {
	e.GET("/health", h.Health.Health)

	api := e.Group("/api", mw...)

	api.GET("/portfolio/overview", h.Portfolio.Overview)
	api.GET("/portfolio/by-sector", h.Portfolio.BySector)
	api.GET("/portfolio/by-region", h.Portfolio.ByRegion)
	api.GET("/portfolio/lender-distribution", h.Portfolio.LenderDistribution)
	api.GET("/portfolio/companies", h.Portfolio.Companies)
	api.POST("/portfolio/recompute", h.Portfolio.Recompute)

	api.GET("/companies/:company_id", h.Company.Detail)

	api.GET("/marketplace/opportunities/:lender_id", h.Marketplace.Opportunities)
	api.GET("/marketplace/my-loans/:lender_id", h.Marketplace.MyLoans)
	api.GET("/marketplace/stats", h.Marketplace.Stats)
	api.POST("/marketplace/list", h.Marketplace.ListLoan)
	api.POST("/marketplace/bid", h.Marketplace.Bid)
	api.POST("/marketplace/accept-bid", h.Marketplace.AcceptBid)
	api.POST("/marketplace/interest", h.Marketplace.Interest)
	api.POST("/marketplace/reveal", h.Marketplace.Reveal)

	api.GET("/swaps/auto-matches/:lender_id", h.Swap.AutoMatches)
	api.GET("/swaps/my-proposals/:lender_id", h.Swap.MyProposals)
	api.POST("/swaps/propose", h.Swap.Propose)
	api.POST("/swaps/accept", h.Swap.Accept)
	api.POST("/swaps/decline", h.Swap.Decline)

	api.GET("/simulator/candidates", h.Simulator.Candidates)
	api.GET("/simulator/details/:loan_id", h.Simulator.Details)
	api.POST("/simulator/calculate", h.Simulator.Calculate)

	api.GET("/credits/balance/:lender_id", h.Credit.Balance)
	api.GET("/credits/history/:lender_id", h.Credit.History)
	api.GET("/credits/costs", h.Credit.Costs)
	api.POST("/credits/spend", h.Credit.Spend)

	api.GET("/market/inclusion-analysis", h.Market.InclusionAnalysis)
	api.GET("/market/lender-flows", h.Market.LenderFlows)
	api.GET("/market/reallocation-stats", h.Market.ReallocationStats)

	api.POST("/ai/explain-loan", h.AI.ExplainLoan)
	api.POST("/ai/swap-story", h.AI.SwapStory)
}
