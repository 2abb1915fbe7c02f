package handler

import (
	"errors"
	"net/http"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/mohansaikiran/AI-Interview-Feedback/internal/auth"
	"github.com/mohansaikiran/AI-Interview-Feedback/internal/models"
	"github.com/mohansaikiran/AI-Interview-Feedback/internal/questions"
	"github.com/mohansaikiran/AI-Interview-Feedback/internal/service"
)

const minResponseLen = 10

type InterviewHandler struct {
	svc *service.InterviewService
}

func NewInterviewHandler(svc *service.InterviewService) *InterviewHandler {
	return &InterviewHandler{svc: svc}
}

// Questions returns the catalog verbatim.
func (h *InterviewHandler) Questions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, questions.Catalog)
}

func (h *InterviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUser(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req struct {
		Answers []models.Answer `json:"answers"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Boundary validation; structural rules (count, catalog membership)
	// belong to the service.
	for _, a := range req.Answers {
		if a.QuestionID == "" {
			writeError(w, http.StatusBadRequest, "questionId is required")
			return
		}
		if utf8.RuneCountInString(a.Response) < minResponseLen {
			writeError(w, http.StatusBadRequest, "response must be longer than or equal to 10 characters")
			return
		}
	}

	result, err := h.svc.SubmitInterview(r.Context(), claims.UserID, req.Answers)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *InterviewHandler) History(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUser(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	entries, err := h.svc.History(r.Context(), claims.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *InterviewHandler) Detail(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUser(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	detail, err := h.svc.Detail(r.Context(), claims.UserID, chi.URLParam(r, "interviewId"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func writeServiceError(w http.ResponseWriter, err error) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		switch svcErr.Code {
		case service.ErrorInvalidInput:
			writeError(w, http.StatusBadRequest, svcErr.Message)
			return
		case service.ErrorNotFound:
			writeError(w, http.StatusNotFound, svcErr.Message)
			return
		}
	}
	writeError(w, http.StatusInternalServerError, "internal server error")
}
