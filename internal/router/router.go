package router

import (
	"database/sql"
	"net/http"

	"pizzaria-api/internal/config"
	"pizzaria-api/internal/handlers"
	"pizzaria-api/internal/metrics"
	"pizzaria-api/internal/middleware"
	"pizzaria-api/internal/response"
	"pizzaria-api/internal/services"
	"pizzaria-api/internal/validation"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// SetupRouter wires services, handlers and middleware. The returned handler
// already includes the outer middleware chain.
func SetupRouter(db *sql.DB, logger zerolog.Logger, cfg config.Config) http.Handler {
	userService := services.NewUserService(db, logger)
	flavorService := services.NewFlavorService(db, logger)
	tokenService := services.NewTokenService(db, cfg.JWTSecret, cfg.TokenTTL, cfg.TokenClient, logger)
	authService := services.NewAuthenticationService(userService, tokenService, tokenService, logger)

	authHandler := handlers.NewAuthHandler(authService, validation.NewLoginValidator(), logger)
	userHandler := handlers.NewUserHandler(userService, validation.NewUserValidator(userService), logger)
	flavorHandler := handlers.NewFlavorHandler(flavorService, validation.NewFlavorValidator(), logger)

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.Write(w, response.Envelope{Status: http.StatusNotFound, Message: "Rota não encontrada"})
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.Write(w, response.Envelope{Status: http.StatusMethodNotAllowed, Message: "Método não permitido"})
	})

	r.Use(middleware.PerformanceMonitoring(logger))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")
	r.Handle("/metrics", metrics.Handler()).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.RequestValidation())

	api.HandleFunc("/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/users", userHandler.Store).Methods("POST")

	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.Authentication(tokenService, logger))

	protected.HandleFunc("/logout", authHandler.Logout).Methods("POST")

	protected.HandleFunc("/users", userHandler.Index).Methods("GET")
	protected.HandleFunc("/users/me", userHandler.Me).Methods("GET")
	protected.HandleFunc("/users/{id}", userHandler.Show).Methods("GET")
	protected.HandleFunc("/users/{id}", userHandler.Update).Methods("PUT", "PATCH")
	protected.HandleFunc("/users/{id}", userHandler.Destroy).Methods("DELETE")

	protected.HandleFunc("/flavors", flavorHandler.Index).Methods("GET")
	protected.HandleFunc("/flavors", flavorHandler.Store).Methods("POST")
	protected.HandleFunc("/flavors/{id}", flavorHandler.Show).Methods("GET")
	protected.HandleFunc("/flavors/{id}", flavorHandler.Update).Methods("PUT", "PATCH")
	protected.HandleFunc("/flavors/{id}", flavorHandler.Destroy).Methods("DELETE")

	rateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)

	var handler http.Handler = r
	handler = rateLimiter.Middleware()(handler)
	handler = middleware.CORS(cfg.CORSOrigins)(handler)
	handler = middleware.SecurityHeaders()(handler)
	handler = middleware.RequestLogging(logger)(handler)
	handler = middleware.ErrorHandling(logger)(handler)
	return handler
}
