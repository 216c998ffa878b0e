package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"

	"gopkg.in/gomail.v2"

	"github.com/leadloop/crm-backend/internal/infra/queue"
)

func NewEmailSender(host string, port int, user, password, from, brandName, trackingURL, templateDir string) *EmailSender {
	if templateDir == "" {
		templateDir = "templates"
	}
	return &EmailSender{
		Host:        host,
		Port:        port,
		User:        user,
		Password:    password,
		From:        from,
		BrandName:   brandName,
		TrackingURL: trackingURL,
		TemplateDir: templateDir,
	}
}

// SendLeadWelcome renders the welcome template and sends it over SMTP. The
// click link and open pixel both point at the activity tracking endpoint
// carrying the contact's token, which is what later drives LEAD → MQL.
func (s *EmailSender) SendLeadWelcome(payload queue.LeadEmailPayload) error {
	data := LeadEmailData{
		Name:      payload.Name,
		BrandName: s.BrandName,
		ClickURL:  fmt.Sprintf("%s/track/activity/%s?token=%s", s.TrackingURL, payload.ContactID, payload.Token),
		PixelURL:  fmt.Sprintf("%s/track/open/%s/%s", s.TrackingURL, payload.ContactID, payload.Token),
	}

	tmplPath := filepath.Join(s.TemplateDir, "lead_welcome.html")
	t, err := template.ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("failed to read email template: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", payload.Email)
	m.SetHeader("Subject", fmt.Sprintf("Welcome, %s!", payload.Name))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("SMTP send failed: %w", err)
	}
	return nil
}
