package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateManager_RenderBuiltins(t *testing.T) {
	tm := NewTemplateManager()

	html, err := tm.Render(TemplateWelcome, TemplateData{"Name": "<Asha>", "FreeProjects": 3})
	require.NoError(t, err)
	assert.Contains(t, html, "&lt;Asha&gt;")
	assert.Contains(t, html, "3 projects")

	html, err = tm.Render(TemplatePaymentReceipt, TemplateData{
		"Name": "Asha", "PlanName": "Pro Monthly", "OrderID": "order_1",
		"PaymentID": "pay_1", "Amount": "499.00", "Currency": "INR", "ValidUntil": "2026-11-16",
	})
	require.NoError(t, err)
	assert.Contains(t, html, "order_1")
	assert.Contains(t, html, "Pro Monthly")
}

func TestTemplateManager_Unknown(t *testing.T) {
	_, err := NewTemplateManager().Render("missing", nil)
	assert.Error(t, err)
}

func TestTemplateManager_AddTemplate(t *testing.T) {
	tm := NewTemplateManager()
	require.NoError(t, tm.AddTemplate("custom", "<p>{{.X}}</p>"))

	out, err := tm.Render("custom", TemplateData{"X": "ok"})
	require.NoError(t, err)
	assert.Equal(t, "<p>ok</p>", out)

	assert.Error(t, tm.AddTemplate("broken", "{{.X"))
}

func TestNewProvider(t *testing.T) {
	_, isLog := NewProvider(&SMTPConfig{}).(*LogProvider)
	assert.True(t, isLog)

	_, isSMTP := NewProvider(&SMTPConfig{Host: "smtp.example.com", Port: 587, FromEmail: "no-reply@example.com"}).(*SMTPProvider)
	assert.True(t, isSMTP)
}

func TestLogProvider_SendTemplate(t *testing.T) {
	p := NewProvider(&SMTPConfig{})
	assert.NoError(t, p.SendTemplate([]string{"a@example.com"}, "Hi", TemplateWelcome, TemplateData{"Name": "A"}))
	assert.Error(t, p.SendTemplate([]string{"a@example.com"}, "Hi", "missing", nil))
}

func TestSMTPProvider_Validate(t *testing.T) {
	p := NewSMTPProvider(&SMTPConfig{Host: "smtp.example.com", Port: 0, FromEmail: "x@example.com"}, NewTemplateManager())
	assert.Error(t, p.Validate())

	p = NewSMTPProvider(&SMTPConfig{Host: "smtp.example.com", Port: 587, FromEmail: "x@example.com"}, NewTemplateManager())
	assert.NoError(t, p.Validate())
	assert.Error(t, p.Send(&Email{Subject: "no recipients"}))
}
