package email

// Email представляет структуру email сообщения
type Email struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateData представляет данные для шаблонов писем
type TemplateData map[string]interface{}

const (
	TemplateWelcome        = "welcome"
	TemplatePaymentReceipt = "payment_receipt"
)
