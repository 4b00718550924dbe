package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/muhammedshamilmt/snapgro-backend/api/responses"
	"github.com/muhammedshamilmt/snapgro-backend/api/validators"
	"github.com/muhammedshamilmt/snapgro-backend/internal/cart"
	sessionsvc "github.com/muhammedshamilmt/snapgro-backend/internal/session"
	pkgerrors "github.com/muhammedshamilmt/snapgro-backend/pkg/errors"
	"github.com/muhammedshamilmt/snapgro-backend/pkg/logger"
)

// CartFetch returns the session's cart.
func CartFetch(mgr *sessionsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := mgr.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto.Cart)
	}
}

type addCartItemRequest struct {
	ProductID string               `json:"product_id,omitempty"`
	Product   *cart.ProductPayload `json:"product,omitempty"`
}

// CartAddItem merges one product into the cart, by catalog id or inline
// payload.
func CartAddItem(mgr *sessionsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body addCartItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := mgr.AddItem(r.Context(), id, sessionsvc.AddItemInput{
			ProductID: body.ProductID,
			Product:   body.Product,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

type setQuantityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// CartSetQuantity applies a signed delta to one line. Hitting zero
// removes the line.
func CartSetQuantity(mgr *sessionsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID := chi.URLParam(r, "productId")
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		var body setQuantityRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := mgr.SetQuantity(r.Context(), id, productID, body.Delta)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// CartAddRecipe drops every ingredient of a recipe into the cart.
func CartAddRecipe(mgr *sessionsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		recipeID := chi.URLParam(r, "recipeId")
		if recipeID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "recipe id is required"))
			return
		}

		dto, err := mgr.AddRecipe(r.Context(), id, recipeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// CartClear empties the cart.
func CartClear(mgr *sessionsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := mgr.ClearCart(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}
