package validator

import (
	"fmt"
	"strings"

	"launchpad_backend/internal/workflow"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует все кастомные функции валидации в
// переданном экземпляре валидатора.
func registerCustomRules(v *validator.Validate) error {
	rules := map[string]validator.Func{
		// 'step-key': ключ шага воркфлоу
		"step-key": validateStepKey,
		// 'not-blank': строка не состоит из одних пробелов
		"not-blank": validateNotBlank,
	}

	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register validation tag '%s': %w", tag, err)
		}
	}
	return nil
}

// --- Функции валидации ---

func validateStepKey(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' обрабатывает пустые
	}
	_, ok := workflow.Lookup(value)
	return ok
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
