package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/muhammedshamilmt/snapgro-backend/api/controllers"
	"github.com/muhammedshamilmt/snapgro-backend/api/middleware"
	"github.com/muhammedshamilmt/snapgro-backend/internal/auth"
	"github.com/muhammedshamilmt/snapgro-backend/internal/catalog"
	"github.com/muhammedshamilmt/snapgro-backend/internal/orders"
	"github.com/muhammedshamilmt/snapgro-backend/internal/profiles"
	sessionsvc "github.com/muhammedshamilmt/snapgro-backend/internal/session"
	"github.com/muhammedshamilmt/snapgro-backend/pkg/auth/session"
	"github.com/muhammedshamilmt/snapgro-backend/pkg/config"
	"github.com/muhammedshamilmt/snapgro-backend/pkg/logger"
	"github.com/muhammedshamilmt/snapgro-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

type dependencyPinger interface {
	Ping(ctx context.Context) error
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP dependencyPinger,
	redisClient *redis.Client,
	tokenSessions sessionManager,
	authService auth.Service,
	registerService auth.RegisterService,
	catalogService catalog.Service,
	storefront *sessionsvc.Manager,
	ordersService orders.Service,
	profilesService profiles.Service,
) http.Handler {
	// A typed nil must not reach the interface-valued middleware params.
	var idemStore redis.IdempotencyStore
	var rateStore middleware.RateLimiterStore
	var redisP dependencyPinger
	if redisClient != nil {
		idemStore = redisClient
		rateStore = redisClient
		redisP = redisClient
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	signInPolicy := middleware.NewAuthRateLimitPolicy(
		"sign-in",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	signUpPolicy := middleware.NewAuthRateLimitPolicy(
		"sign-up",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(signInPolicy, rateStore, logg)).Post("/sign-in", controllers.AuthSignIn(authService, logg))
		r.With(middleware.AuthRateLimit(signUpPolicy, rateStore, logg), middleware.Idempotency(idemStore, logg)).Post("/sign-up", controllers.AuthSignUp(registerService, logg))
		r.Post("/refresh", controllers.AuthRefresh(authService, logg))
		r.With(middleware.Auth(cfg.JWT, tokenSessions, logg)).Post("/logout", controllers.AuthLogout(authService, logg))
	})

	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/home", controllers.CatalogHome(catalogService, logg))
		r.Get("/grid", controllers.CatalogGrid(catalogService, logg))
		r.Get("/categories", controllers.CatalogCategories(catalogService, logg))
		r.Get("/recipes", controllers.CatalogRecipes(catalogService, logg))
		r.Get("/recipes/{recipeId}", controllers.CatalogRecipeDetail(catalogService, logg))
		r.Get("/search", controllers.CatalogSearch(catalogService, logg))
	})

	r.Route("/api/v1/sessions", func(r chi.Router) {
		r.Post("/", controllers.SessionCreate(storefront, logg))

		r.Route("/{sessionId}", func(r chi.Router) {
			r.Get("/", controllers.SessionFetch(storefront, logg))
			r.With(middleware.OptionalAuth(cfg.JWT, tokenSessions, logg)).Post("/events", controllers.SessionDispatch(storefront, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Use(middleware.Idempotency(idemStore, logg))
				r.Get("/", controllers.CartFetch(storefront, logg))
				r.Post("/items", controllers.CartAddItem(storefront, logg))
				r.Put("/items/{productId}", controllers.CartSetQuantity(storefront, logg))
				r.Post("/recipes/{recipeId}", controllers.CartAddRecipe(storefront, logg))
				r.Delete("/", controllers.CartClear(storefront, logg))
			})

			r.Get("/checkout/quote", controllers.CheckoutQuote(storefront, logg))
			r.With(
				middleware.Auth(cfg.JWT, tokenSessions, logg),
				middleware.Idempotency(idemStore, logg),
			).Post("/checkout/pay", controllers.CheckoutPay(storefront, logg))
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, tokenSessions, logg))

		r.Route("/api/v1/orders", func(r chi.Router) {
			r.Get("/", controllers.OrdersList(ordersService, logg))
			r.Get("/{orderNumber}", controllers.OrderDetail(ordersService, logg))
		})

		r.Route("/api/v1/profile", func(r chi.Router) {
			r.Get("/", controllers.ProfileFetch(profilesService, logg))
			r.Put("/", controllers.ProfileUpdate(profilesService, logg))
		})
	})

	return r
}
