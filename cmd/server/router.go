package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nexotime/nexotime/internal/api"
	apiMiddleware "github.com/nexotime/nexotime/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)
	r.Use(apiMiddleware.MetricsMiddleware)

	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordVerifier,
		app.tokenLifetime(),
	)
	habitHandler := api.NewHabitHandler(app.habitStore, app.summaryService)
	routineHandler := api.NewRoutineHandler(app.routineStore, app.db)
	reminderHandler := api.NewReminderHandler(app.reminderStore)
	logHandler := api.NewLogHandler(app.habitStore, app.logStore, app.summaryService)
	telegramHandler := api.NewTelegramHandler(app.linkService)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/auth/me", authHandler.Me)

			// Habit endpoints
			r.Post("/habits", habitHandler.CreateHabit)
			r.Get("/habits", habitHandler.ListHabits)
			r.Get("/habits/{id}", habitHandler.GetHabit)
			r.Put("/habits/{id}", habitHandler.UpdateHabit)
			r.Delete("/habits/{id}", habitHandler.DeleteHabit)
			r.Get("/habits/{id}/stats", habitHandler.GetHabitStats)

			// Routine endpoints
			r.Post("/routines", routineHandler.CreateRoutineStep)
			r.Get("/routines/{type}", routineHandler.GetRoutine)
			r.Put("/routines/{type}", routineHandler.ReplaceRoutine)
			r.Delete("/routines/steps/{id}", routineHandler.DeleteRoutineStep)

			// Reminder endpoints
			r.Post("/reminders", reminderHandler.CreateReminder)
			r.Get("/reminders", reminderHandler.ListReminders)
			r.Delete("/reminders/{id}", reminderHandler.DeleteReminder)

			// Tracking and summary endpoints
			r.Post("/logs", logHandler.UpsertLog)
			r.Get("/logs/{date}", logHandler.GetDaySummary)
			r.Get("/logs/week/{date}", logHandler.GetWeekSummary)

			// Telegram linking
			r.Post("/telegram/link-code", telegramHandler.CreateLinkCode)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	// Prometheus metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	return r
}
