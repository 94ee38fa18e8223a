package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/faqdesk/chat-backend/internal/core"
	"github.com/faqdesk/chat-backend/internal/store"
)

type APIHandler struct {
	questions *core.QuestionService
	chats     *core.ChatService
	faqs      *core.FAQService
	feedback  *core.FeedbackService
}

func NewAPIHandler(questions *core.QuestionService, chats *core.ChatService, faqs *core.FAQService, feedback *core.FeedbackService) *APIHandler {
	return &APIHandler{
		questions: questions,
		chats:     chats,
		faqs:      faqs,
		feedback:  feedback,
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.WithError(err).Error("Failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

type ProcessQuestionRequest struct {
	Question string `json:"question"`
}

type ProcessQuestionResponse struct {
	Answer string `json:"answer"`
	ID     string `json:"_id"`
}

func (h *APIHandler) ProcessQuestionHandler(w http.ResponseWriter, r *http.Request) {
	var req ProcessQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	entry, err := h.questions.ProcessQuestion(r.Context(), req.Question)
	if err != nil {
		if errors.Is(err, core.ErrValidation) {
			respondError(w, http.StatusBadRequest, "Question is required.")
			return
		}
		log.WithError(err).Error("Error processing question")
		respondError(w, http.StatusInternalServerError, "Failed to process the question.")
		return
	}

	respondJSON(w, http.StatusOK, ProcessQuestionResponse{Answer: entry.Answer, ID: entry.ID})
}

type StoreChatRequest struct {
	Question string `json:"question"`
	Category string `json:"category"`
	Answer   string `json:"answer"`
	Feedback string `json:"feedback"`
}

type StoreChatResponse struct {
	ID      string `json:"_id"`
	Message string `json:"message"`
}

func (h *APIHandler) StoreChatHandler(w http.ResponseWriter, r *http.Request) {
	var req StoreChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	entry, created, err := h.chats.StoreChat(r.Context(), req.Question, req.Category, req.Answer, req.Feedback)
	if err != nil {
		if errors.Is(err, core.ErrValidation) {
			respondError(w, http.StatusBadRequest, "Question is required.")
			return
		}
		log.WithError(err).Error("Error saving chat history")
		respondError(w, http.StatusInternalServerError, "Failed to save chat history.")
		return
	}

	message := "Chat updated"
	if created {
		message = "Chat history saved."
	}
	respondJSON(w, http.StatusOK, StoreChatResponse{ID: entry.ID, Message: message})
}

// aggregateCategory is the sentinel that selects the blended top-overall
// FAQ view instead of a per-category listing.
const aggregateCategory = "faqs"

func (h *APIHandler) FAQsHandler(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	var payload any
	var err error
	if category == aggregateCategory {
		payload, err = h.faqs.TopOverall(r.Context())
	} else {
		payload, err = h.faqs.TopEntries(r.Context(), category)
	}
	if err != nil {
		log.WithError(err).Error("Error fetching FAQs")
		respondError(w, http.StatusInternalServerError, "Failed to fetch FAQs.")
		return
	}

	respondJSON(w, http.StatusOK, payload)
}

type UpdateFeedbackRequest struct {
	Feedback string `json:"feedback"`
}

type UpdateFeedbackResponse struct {
	Message string           `json:"message"`
	Chat    *store.ChatEntry `json:"chat"`
}

func (h *APIHandler) UpdateFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	entry, err := h.feedback.UpdateFeedback(r.Context(), id, req.Feedback)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Chat not found.")
			return
		}
		log.WithError(err).Error("Error updating feedback")
		respondError(w, http.StatusInternalServerError, "Failed to update feedback.")
		return
	}

	respondJSON(w, http.StatusOK, UpdateFeedbackResponse{Message: "Feedback updated successfully.", Chat: entry})
}
