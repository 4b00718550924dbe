package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/muhammedshamilmt/snapgro-backend/api/responses"
	"github.com/muhammedshamilmt/snapgro-backend/api/validators"
	"github.com/muhammedshamilmt/snapgro-backend/internal/orders"
	pkgerrors "github.com/muhammedshamilmt/snapgro-backend/pkg/errors"
	"github.com/muhammedshamilmt/snapgro-backend/pkg/logger"
	"github.com/muhammedshamilmt/snapgro-backend/pkg/pagination"
)

// OrdersList returns one cursor page of the caller's order history.
func OrdersList(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := authenticatedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.History(r.Context(), userID, pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// OrderDetail returns one of the caller's orders by its display number.
func OrderDetail(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := authenticatedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		number := chi.URLParam(r, "orderNumber")
		if number == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "order number is required"))
			return
		}

		order, err := svc.Track(r.Context(), userID, number)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}
