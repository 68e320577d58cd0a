package controllers

import (
	"net/http"

	"github.com/habistudio/habi-backend/api/responses"
	"github.com/habistudio/habi-backend/api/validators"
	"github.com/habistudio/habi-backend/internal/feedback"
	"github.com/habistudio/habi-backend/pkg/logger"
)

type feedbackRequest struct {
	Reviewer string `json:"reviewer" validate:"required"`
	Text     string `json:"text" validate:"required"`
}

// FeedbackSubmit relays a feedback message to the configured inbox.
func FeedbackSubmit(mailer *feedback.Mailer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body feedbackRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := mailer.Send(r.Context(), body.Reviewer, body.Text); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusAccepted, map[string]string{"status": "sent"})
	}
}
