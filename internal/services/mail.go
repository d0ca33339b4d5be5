package services

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
	"golang.org/x/sync/errgroup"
)

const (
	CompanyName  = "Alphinex Solutions"
	MailProvider = "Resend"
)

//go:embed templates/*.html
var templateFS embed.FS

var mailTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Message is one outbound email.
type Message struct {
	From    string
	To      []string
	Subject string
	HTML    string
	ReplyTo string
}

// Mailer delivers a message and returns the provider's message id.
type Mailer interface {
	Send(ctx context.Context, msg Message) (string, error)
}

type ResendMailer struct {
	client *resend.Client
}

func NewResendMailer(apiKey string) *ResendMailer {
	return &ResendMailer{client: resend.NewClient(apiKey)}
}

func (m *ResendMailer) Send(ctx context.Context, msg Message) (string, error) {
	resp, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
		ReplyTo: msg.ReplyTo,
	})
	if err != nil {
		return "", err
	}
	return resp.Id, nil
}

// ContactInput is a public contact form submission.
type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (in ContactInput) Validate() (ContactInput, error) {
	var err error
	if in.Name, err = requireText("name", in.Name); err != nil {
		return in, err
	}
	if in.Email, err = requireEmail("email", in.Email); err != nil {
		return in, err
	}
	if in.Subject, err = requireText("subject", in.Subject); err != nil {
		return in, err
	}
	if in.Message, err = requireText("message", in.Message); err != nil {
		return in, err
	}
	return in, nil
}

type contactView struct {
	ContactInput
	Company string
	SiteURL string
}

// ContactResult reports what a dispatch delivered. AutoReplyErr is set when
// the confirmation to the submitter failed; the dispatch still counts as sent.
type ContactResult struct {
	NotificationIDs []string
	AutoReplyID     string
	AutoReplyErr    error
}

func renderTemplate(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := mailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", WrapError(err, "render "+name)
	}
	return buf.String(), nil
}

// DispatchContact sends one notification per recipient in parallel, then a
// best-effort confirmation to the submitter.
func DispatchContact(ctx context.Context, mailer Mailer, from, siteURL string, recipients []string, in ContactInput) (ContactResult, error) {
	if len(recipients) == 0 {
		return ContactResult{}, ErrConfiguration("No contact emails configured")
	}
	view := contactView{ContactInput: in, Company: CompanyName, SiteURL: siteURL}
	notification, err := renderTemplate("contact_notification.html", view)
	if err != nil {
		return ContactResult{}, err
	}
	autoReply, err := renderTemplate("contact_autoreply.html", view)
	if err != nil {
		return ContactResult{}, err
	}

	ids := make([]string, len(recipients))
	g, gctx := errgroup.WithContext(ctx)
	for i, to := range recipients {
		g.Go(func() error {
			id, err := mailer.Send(gctx, Message{
				From:    from,
				To:      []string{to},
				Subject: "Contact Form: " + in.Subject,
				HTML:    notification,
				ReplyTo: in.Email,
			})
			if err != nil {
				return WrapError(err, "notify "+to)
			}
			ids[i] = id
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ContactResult{}, ErrProvider("Failed to send email. Please try again later.", err)
	}

	result := ContactResult{NotificationIDs: ids}
	result.AutoReplyID, result.AutoReplyErr = mailer.Send(ctx, Message{
		From:    from,
		To:      []string{in.Email},
		Subject: "Thank You for Contacting " + CompanyName,
		HTML:    autoReply,
	})
	return result, nil
}

// SendTestEmail delivers the canned configuration check message.
func SendTestEmail(ctx context.Context, mailer Mailer, from, to string) (string, error) {
	body, err := renderTemplate("test_email.html", map[string]string{
		"Provider": MailProvider,
		"Company":  CompanyName,
		"SentAt":   now().Format(time.RFC1123),
	})
	if err != nil {
		return "", err
	}
	id, err := mailer.Send(ctx, Message{
		From:    from,
		To:      []string{to},
		Subject: "Test Email - " + CompanyName,
		HTML:    body,
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// RecipientList renders recipients for log lines.
func RecipientList(recipients []string) string {
	return strings.Join(recipients, ", ")
}
