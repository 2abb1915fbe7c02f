package router

import (
	"github.com/go-chi/chi/v5"

	"github.com/mohansaikiran/AI-Interview-Feedback/internal/auth"
	"github.com/mohansaikiran/AI-Interview-Feedback/internal/handler"
	"github.com/mohansaikiran/AI-Interview-Feedback/internal/metrics"
	mw "github.com/mohansaikiran/AI-Interview-Feedback/internal/middleware"
)

func New(jwtSecret string, interviewH *handler.InterviewHandler) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.RequestID)
	r.Use(mw.Logger)
	r.Use(mw.CORS)
	r.Use(metrics.Middleware)

	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(jwtSecret))

			r.Get("/interviews/questions", interviewH.Questions)
			r.Post("/interviews", interviewH.Submit)
			r.Get("/interviews", interviewH.History)
			r.Get("/interviews/{interviewId}", interviewH.Detail)
		})
	})

	return r
}
