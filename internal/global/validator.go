package global

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// InitValidator initializes the validator singleton and registers the custom
// validators used by the request DTOs.
func InitValidator() {
	Validate = validator.New()

	_ = Validate.RegisterValidation("no_xss", validateNoXSS)
	_ = Validate.RegisterValidation("export_format", validateExportFormat)
}

// validateNoXSS rejects values carrying common script injection markers.
func validateNoXSS(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	dangerousPatterns := []string{
		"<script",
		"javascript:",
		"onerror=",
		"onload=",
		"onclick=",
		"eval(",
		"document.cookie",
		"document.write",
		"<iframe",
		"<object",
		"<embed",
	}

	value = strings.ToLower(value)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(value, pattern) {
			return false
		}
	}
	return true
}

// validateExportFormat accepts the formats the exporter can produce.
func validateExportFormat(fl validator.FieldLevel) bool {
	switch strings.ToLower(fl.Field().String()) {
	case "csv", "rows", "html":
		return true
	}
	return false
}
