package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

const welcomeTemplate = `<h2>Welcome to Launchpad, {{.Name}}!</h2>
<p>Your account is ready. Start with the Idea Validation step and work through the ten steps of your startup plan.</p>
<p>The free plan includes {{.FreeProjects}} projects.</p>`

const paymentReceiptTemplate = `<h2>Payment received</h2>
<p>Hi {{.Name}}, thank you for upgrading to <strong>{{.PlanName}}</strong>.</p>
<table>
<tr><td>Order</td><td>{{.OrderID}}</td></tr>
<tr><td>Payment</td><td>{{.PaymentID}}</td></tr>
<tr><td>Amount</td><td>{{.Amount}} {{.Currency}}</td></tr>
<tr><td>Valid until</td><td>{{.ValidUntil}}</td></tr>
</table>`

// TemplateManager реализует TemplateRenderer для управления шаблонами email
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager создает менеджер со встроенными шаблонами
func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{templates: make(map[string]*template.Template)}
	tm.templates[TemplateWelcome] = template.Must(template.New(TemplateWelcome).Parse(welcomeTemplate))
	tm.templates[TemplatePaymentReceipt] = template.Must(template.New(TemplatePaymentReceipt).Parse(paymentReceiptTemplate))
	return tm
}

// Render рендерит шаблон с данными
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// AddTemplate добавляет или заменяет шаблон
func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()

	return nil
}
