package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/muhammedshamilmt/snapgro-backend/api/responses"
	"github.com/muhammedshamilmt/snapgro-backend/internal/catalog"
	pkgerrors "github.com/muhammedshamilmt/snapgro-backend/pkg/errors"
	"github.com/muhammedshamilmt/snapgro-backend/pkg/logger"
)

func CatalogHome(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{"products": svc.Home()})
	}
}

func CatalogGrid(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{"products": svc.Grid()})
	}
}

func CatalogCategories(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{"categories": svc.Categories()})
	}
}

func CatalogRecipes(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{"recipes": svc.Recipes()})
	}
}

func CatalogRecipeDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "recipeId")
		recipe, err := svc.FindRecipe(id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "recipe not found"))
			return
		}
		responses.WriteSuccess(w, recipe)
	}
}

// CatalogSearch matches the q parameter across every catalog surface.
func CatalogSearch(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		responses.WriteSuccess(w, map[string]any{
			"query":    query,
			"products": svc.Search(query),
		})
	}
}
