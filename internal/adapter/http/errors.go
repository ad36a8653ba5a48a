package http

import (
	"errors"
	"net/http"

	"sme-exchange-backend/internal/domain/company"
	"sme-exchange-backend/internal/domain/credit"
	"sme-exchange-backend/internal/domain/lender"
	"sme-exchange-backend/internal/domain/loan"
	"sme-exchange-backend/internal/domain/marketplace"
	"sme-exchange-backend/internal/domain/swap"
	"sme-exchange-backend/internal/usecase/simulator"

	"github.com/labstack/echo/v4"
)

// statusFor maps domain sentinel errors to HTTP codes. Handlers never
// inspect individual sentinels; everything funnels through here.
func statusFor(err error) int {
	switch {
	case errors.Is(err, loan.ErrNotFound),
		errors.Is(err, company.ErrNotFound),
		errors.Is(err, lender.ErrNotFound),
		errors.Is(err, swap.ErrNotFound),
		errors.Is(err, marketplace.ErrBidNotFound):
		return http.StatusNotFound

	case errors.Is(err, loan.ErrNotOwned),
		errors.Is(err, loan.ErrAlreadyListed),
		errors.Is(err, marketplace.ErrAlreadyListed),
		errors.Is(err, marketplace.ErrNotListed),
		errors.Is(err, marketplace.ErrOwnBid),
		errors.Is(err, marketplace.ErrBidResolved),
		errors.Is(err, swap.ErrNotCounterparty),
		errors.Is(err, swap.ErrNotParticipant),
		errors.Is(err, swap.ErrAlreadyResolved),
		errors.Is(err, swap.ErrLoanNotEligible):
		return http.StatusConflict

	case errors.Is(err, credit.ErrInsufficientCredits):
		return http.StatusPaymentRequired

	case errors.Is(err, swap.ErrLoanRequired),
		errors.Is(err, simulator.ErrIncomingRequired):
		return http.StatusPreconditionFailed

	case errors.Is(err, marketplace.ErrInvalidDiscount),
		errors.Is(err, credit.ErrUnknownAction),
		errors.Is(err, simulator.ErrInvalidTransaction):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func respondErr(c echo.Context, err error) error {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		// do not leak internals to clients
		return c.JSON(code, ErrorResponse{Error: "internal error"})
	}
	return c.JSON(code, ErrorResponse{Error: err.Error()})
}
