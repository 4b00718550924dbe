package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/muhammedshamilmt/snapgro-backend/api/middleware"
	"github.com/muhammedshamilmt/snapgro-backend/api/responses"
	"github.com/muhammedshamilmt/snapgro-backend/api/validators"
	"github.com/muhammedshamilmt/snapgro-backend/internal/cart"
	sessionsvc "github.com/muhammedshamilmt/snapgro-backend/internal/session"
	"github.com/muhammedshamilmt/snapgro-backend/pkg/enums"
	pkgerrors "github.com/muhammedshamilmt/snapgro-backend/pkg/errors"
	"github.com/muhammedshamilmt/snapgro-backend/pkg/logger"
)

// SessionCreate opens a fresh storefront session on the splash screen.
func SessionCreate(mgr *sessionsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if mgr == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session manager unavailable"))
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, mgr.Create(r.Context()))
	}
}

// SessionFetch returns the current snapshot of one session.
func SessionFetch(mgr *sessionsvc.Manager, logg *logger.Logger) http.HandlerFunc {
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
		responses.WriteSuccess(w, dto)
	}
}

type dispatchEventRequest struct {
	Event     string               `json:"event" validate:"required"`
	Target    string               `json:"target,omitempty"`
	ProductID string               `json:"product_id,omitempty"`
	Product   *cart.ProductPayload `json:"product,omitempty"`
	OrderID   string               `json:"order_id,omitempty"`
}

// SessionDispatch folds one reported user action into the session.
// auth_success only attaches the identity proven by the bearer token.
func SessionDispatch(mgr *sessionsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body dispatchEventRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		event, err := enums.ParseUIEvent(body.Event)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid event"))
			return
		}

		input := sessionsvc.EventInput{
			Name:      event,
			Product:   body.Product,
			ProductID: body.ProductID,
			OrderID:   body.OrderID,
		}

		if body.Target != "" {
			target, err := enums.ParseScreen(body.Target)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid target screen"))
				return
			}
			input.Target = target
		}

		if event == enums.UIEventAuthSuccess {
			userID, err := authenticatedUserID(r)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.UserID = &userID
		}

		dto, err := mgr.Dispatch(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

func sessionIDFromRequest(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "sessionId")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid session id")
	}
	return id, nil
}

func authenticatedUserID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user identity")
	}
	return id, nil
}
