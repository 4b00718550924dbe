package controllers

import (
	"net/http"

	"github.com/muhammedshamilmt/snapgro-backend/api/responses"
	sessionsvc "github.com/muhammedshamilmt/snapgro-backend/internal/session"
	"github.com/muhammedshamilmt/snapgro-backend/pkg/logger"
)

// CheckoutQuote prices the session's cart with delivery, service fee,
// and tax applied. Quoting never writes anything, so it needs no auth.
func CheckoutQuote(mgr *sessionsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := mgr.Quote(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

// CheckoutPay places the order for the session's cart. The route sits
// behind auth, so the paying user is always the token's user.
func CheckoutPay(mgr *sessionsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID, err := authenticatedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := mgr.Pay(r.Context(), id, userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
