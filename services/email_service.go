package services

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"gopkg.in/gomail.v2"

	"newsroom-api/config"
	"newsroom-api/models"
)

// EmailService sends newsroom notifications over SMTP.
type EmailService struct {
	config *config.Config
	dialer *gomail.Dialer
	log    *slog.Logger
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		config: cfg,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		log:    slog.Default().With("service", "email"),
	}
}

// Enabled reports whether an SMTP host is configured.
func (es *EmailService) Enabled() bool {
	return es.config.SMTPHost != ""
}

// SendPostApproved tells the author that their post went live.
func (es *EmailService) SendPostApproved(ctx context.Context, author *models.User, post *models.Post) error {
	if !es.Enabled() {
		es.log.Info("smtp disabled, skipping approval email", "post_id", post.ID, "to", author.Email)
		return nil
	}

	m := es.buildApprovalMessage(author, post)

	done := make(chan error, 1)
	go func() {
		done <- es.dialer.DialAndSend(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send approval email: %w", err)
		}
	case <-ctx.Done():
		return ctx.Err()
	}

	es.log.Info("approval email sent", "post_id", post.ID, "to", author.Email)
	return nil
}

func (es *EmailService) postURL(post *models.Post) string {
	return strings.TrimRight(es.config.SiteURL, "/") + "/news/" + post.Slug
}

func (es *EmailService) buildApprovalMessage(author *models.User, post *models.Post) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", es.config.FromName, es.config.FromEmail))
	m.SetHeader("To", author.Email)
	m.SetHeader("Subject", fmt.Sprintf("%s - Your post was approved", es.config.FromName))

	name := author.FullName()
	link := es.postURL(post)

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Post approved</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #1d3557; color: white; padding: 20px; border-radius: 10px 10px 0 0; }
        .content { background: #f8f9fa; padding: 30px; border-radius: 0 0 10px 10px; }
        .btn { display: inline-block; background: #e63946; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header"><h1>%s</h1></div>
        <div class="content">
            <h2>Hello %s,</h2>
            <p>Your post <strong>%s</strong> has been approved by the editors and is now published.</p>
            <p><a class="btn" href="%s">Read it on the site</a></p>
        </div>
    </div>
</body>
</html>`, html.EscapeString(es.config.FromName), html.EscapeString(name), html.EscapeString(post.Title), html.EscapeString(link))

	textBody := fmt.Sprintf(`
Hello %s,

Your post "%s" has been approved by the editors and is now published.

Read it here: %s

The %s Team
`, name, post.Title, link, es.config.FromName)

	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody)
	return m
}
