package email

import (
	"log/slog"
)

// Provider определяет интерфейс для отправки email
type Provider interface {
	// Send отправляет простое email сообщение
	Send(email *Email) error

	// SendTemplate отправляет email по встроенному шаблону
	SendTemplate(to []string, subject string, templateName string, data TemplateData) error
}

// TemplateRenderer определяет интерфейс для рендеринга шаблонов
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
}

// NewProvider returns an SMTP provider when SMTP is configured, otherwise a
// provider that only logs.
func NewProvider(cfg *SMTPConfig) Provider {
	renderer := NewTemplateManager()
	if cfg.Enabled() {
		return NewSMTPProvider(cfg, renderer)
	}
	return &LogProvider{renderer: renderer, log: slog.Default()}
}

// LogProvider пишет письма в лог вместо отправки. Используется в разработке.
type LogProvider struct {
	renderer TemplateRenderer
	log      *slog.Logger
}

func (p *LogProvider) Send(email *Email) error {
	p.log.Info("email not sent, SMTP is not configured", "to", email.To, "subject", email.Subject)
	return nil
}

func (p *LogProvider) SendTemplate(to []string, subject, templateName string, data TemplateData) error {
	if _, err := p.renderer.Render(templateName, data); err != nil {
		return err
	}
	return p.Send(&Email{To: to, Subject: subject})
}
