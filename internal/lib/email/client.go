// Package email renders HTML templates and delivers them through Resend.
package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/deppfellow/foodgram/internal/config"
	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var templateFS embed.FS

// DefaultFrom is used when integration.email_from is empty.
const DefaultFrom = "Foodgram <onboarding@resend.dev>"

// Client wraps the Resend client and a logger.
type Client struct {
	client *resend.Client
	from   string
	logger *zerolog.Logger

	// enabled is false without an API key; sends are logged and dropped.
	enabled bool
}

func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	from := cfg.Integration.EmailFrom
	if from == "" {
		from = DefaultFrom
	}

	return &Client{
		client:  resend.NewClient(cfg.Integration.ResendAPIKey),
		from:    from,
		logger:  logger,
		enabled: cfg.Integration.ResendAPIKey != "",
	}
}

// Render executes the named template with data.
func Render(templateName Template, data map[string]string) (string, error) {
	tmpl, err := template.ParseFS(templateFS, fmt.Sprintf("templates/%s.html", templateName))
	if err != nil {
		return "", errors.Wrapf(err, "failed to parse email template %s", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", templateName)
	}
	return body.String(), nil
}

// SendEmail renders templateName with data and sends it to a single recipient.
func (c *Client) SendEmail(to, subject string, templateName Template, data map[string]string) error {
	html, err := Render(templateName, data)
	if err != nil {
		return err
	}

	if !c.enabled {
		c.logger.Warn().
			Str("to", to).
			Str("template", string(templateName)).
			Msg("resend api key not configured, email not sent")
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	if _, err := c.client.Emails.Send(params); err != nil {
		return errors.Wrap(err, "failed to send email")
	}
	return nil
}
