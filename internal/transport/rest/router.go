package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/docconnect/docconnect/internal/admin"
	"github.com/docconnect/docconnect/internal/auth"
	"github.com/docconnect/docconnect/internal/doctor"
	"github.com/docconnect/docconnect/internal/payment"
	"github.com/docconnect/docconnect/internal/session"
	"github.com/docconnect/docconnect/internal/subscription"
	"github.com/docconnect/docconnect/internal/transport/middleware"
	"github.com/docconnect/docconnect/internal/transport/swagger"
)

func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	authHandler *auth.Handler,
	doctorHandler *doctor.Handler,
	sessionHandler *session.Handler,
	subscriptionHandler *subscription.Handler,
	adminHandler *admin.Handler,
	webhookHandler *payment.WebhookHandler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)
	rbac := auth.NewRoleAuthorization(logger)

	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Gateway deliveries authenticate by signature, never by bearer token.
		if webhookHandler != nil {
			r.Post("/webhooks/paystack", webhookHandler.HandlePaystackWebhook)
		}

		if authHandler != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/register", authHandler.Register)
				sr.Post("/login", authHandler.Login)
				sr.Post("/refresh", authHandler.RefreshToken)
				sr.Post("/logout", authHandler.Logout)
			})
		}

		// Public discovery routes
		if doctorHandler != nil {
			r.Get("/doctors", doctorHandler.ListDoctors)
			r.Get("/doctors/{doctorID}", doctorHandler.GetDoctor)
		}

		if authHandler != nil {
			r.Group(func(pr chi.Router) {
				pr.Use(authHandler.AuthMiddleware)

				pr.Get("/users/me", authHandler.GetCurrentUser)

				if sessionHandler != nil {
					pr.Route("/sessions", func(sr chi.Router) {
						sr.Post("/", sessionHandler.CreateSession)
						sr.Get("/", sessionHandler.ListSessions)
						sr.Get("/{sessionID}", sessionHandler.GetSession)
					})
				}

				if subscriptionHandler != nil {
					pr.Get("/subscriptions", subscriptionHandler.ListSubscriptions)
				}

				// Payout onboarding, doctors only
				if doctorHandler != nil {
					pr.Group(func(dr chi.Router) {
						dr.Use(rbac.RequireDoctor())
						dr.Get("/payouts/banks", doctorHandler.ListBanks)
						dr.Post("/payouts/resolve-account", doctorHandler.ResolveBankAccount)
						dr.Post("/payouts/subaccount", doctorHandler.CreatePayoutSubaccount)
						dr.Put("/doctors/me/rates", doctorHandler.SetRates)
					})
				}

				if adminHandler != nil {
					pr.Group(func(ar chi.Router) {
						ar.Use(rbac.RequireAdmin())
						ar.Post("/admin/verify", adminHandler.VerifyDoctor)
					})
				}
			})
		}
	})
}
