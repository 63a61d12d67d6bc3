package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/soroban-api/internal/api"
	apiMiddleware "github.com/phrazzld/soroban-api/internal/api/middleware"
)

// setupRouter creates the router with every route and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	problemHandler := api.NewProblemHandler(app.generatorService, app.logger)
	worksheetHandler := api.NewWorksheetHandler(app.worksheetService, app.logger)
	challengeHandler := api.NewChallengeHandler(app.challengeService)

	r.Route("/api", func(r chi.Router) {
		r.Get("/formulas", problemHandler.ListFormulas)
		r.Post("/problems", problemHandler.GenerateProblem)

		r.Route("/worksheets", func(r chi.Router) {
			r.Post("/", worksheetHandler.CreateWorksheet)
			r.Get("/", worksheetHandler.ListWorksheets)
			r.Get("/{id}", worksheetHandler.GetWorksheet)
			r.Get("/{id}/print", worksheetHandler.PrintWorksheet)
			r.Delete("/{id}", worksheetHandler.DeleteWorksheet)
		})

		r.Route("/challenges", func(r chi.Router) {
			r.Post("/", challengeHandler.CreateChallenge)
			r.Get("/", challengeHandler.ListChallenges)
			r.Get("/{id}", challengeHandler.GetChallenge)
			r.Get("/{id}/ticks", challengeHandler.GetTicks)
			r.Post("/{id}/answers", challengeHandler.SubmitAnswer)
			r.Delete("/{id}", challengeHandler.DeleteChallenge)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
