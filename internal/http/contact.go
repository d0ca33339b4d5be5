package httpapi

import (
	"net/http"

	"alphinex-backend-go/internal/services"

	"go.uber.org/zap"
)

type TestEmailDetails struct {
	Provider        string `json:"provider"`
	EmailID         string `json:"emailId"`
	TestEmailSentTo string `json:"testEmailSentTo"`
}

type TestEmailResponse struct {
	Success      *bool             `json:"success,omitempty"`
	Configured   bool              `json:"configured"`
	Message      string            `json:"message"`
	Instructions string            `json:"instructions,omitempty"`
	Error        string            `json:"error,omitempty"`
	Details      *TestEmailDetails `json:"details,omitempty"`
}

// Contact forwards a contact form submission to every active recipient.
func (s *Server) Contact(w http.ResponseWriter, r *http.Request) {
	var in services.ContactInput
	if !decodeJSON(w, r, &in) {
		return
	}
	in, err := in.Validate()
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	recipients, err := services.ActiveRecipients(r.Context(), s.DB)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if len(recipients) == 0 {
		s.Logger.Error("no active contact emails configured")
		s.writeServiceError(w, r, services.ErrConfiguration("No contact emails configured"))
		return
	}
	if s.Mailer == nil {
		s.Logger.Warn("mail provider not configured, contact submission not sent",
			zap.String("name", in.Name),
			zap.String("email", in.Email),
			zap.String("subject", in.Subject),
			zap.String("message", in.Message),
			zap.String("recipients", services.RecipientList(recipients)))
		WriteJSON(w, http.StatusOK, SuccessResponse{
			Success: true,
			Message: "Contact form submitted successfully (Email API not configured)",
		})
		return
	}

	result, err := services.DispatchContact(r.Context(), s.Mailer, s.Config.MailFrom, s.Config.SiteURL, recipients, in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.Logger.Info("contact notifications sent",
		zap.String("recipients", services.RecipientList(recipients)),
		zap.Strings("messageIds", result.NotificationIDs))
	if result.AutoReplyErr != nil {
		s.Logger.Warn("auto-reply failed", zap.String("to", in.Email), zap.Error(result.AutoReplyErr))
	}
	WriteJSON(w, http.StatusOK, SuccessResponse{Success: true, Message: "Email sent successfully"})
}

// TestEmail sends a canned message through the provider to check the setup.
func (s *Server) TestEmail(w http.ResponseWriter, r *http.Request) {
	if s.Mailer == nil {
		WriteJSON(w, http.StatusOK, TestEmailResponse{
			Configured:   false,
			Message:      "Resend API key not configured",
			Instructions: "Set RESEND_API_KEY in the environment. Get an API key from https://resend.com/api-keys",
		})
		return
	}
	to := s.Config.MailTestRecipient
	id, err := services.SendTestEmail(r.Context(), s.Mailer, s.Config.MailFrom, to)
	if err != nil {
		s.Logger.Error("test email failed", zap.Error(err))
		failed := false
		WriteJSON(w, http.StatusInternalServerError, TestEmailResponse{
			Success:    &failed,
			Configured: true,
			Error:      err.Error(),
			Message:    "Email API is configured but sending failed. Check your API key.",
		})
		return
	}
	ok := true
	WriteJSON(w, http.StatusOK, TestEmailResponse{
		Success:    &ok,
		Configured: true,
		Message:    "Email API is configured correctly and test email sent!",
		Details: &TestEmailDetails{
			Provider:        services.MailProvider,
			EmailID:         id,
			TestEmailSentTo: to,
		},
	})
}
