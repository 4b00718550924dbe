package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

var defaultCORSOrigins = []string{
	"http://localhost:3000",        // local dev
	"http://localhost:19006",       // Expo web preview
	"https://snapgro.vercel.app",   // web storefront
	"https://app.snapgro.store",    // production app shell
}

// CORS returns middleware that applies the API's allowed origin policy.
func CORS() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   defaultCORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Session-ID", "Idempotency-Key", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Session-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
