package handler

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rithysak/backoffice/internal/domain"
)

// TemplateFuncs returns a FuncMap with custom template functions.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		// Math functions
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },

		// Date/Time functions
		"year": func() int {
			return time.Now().Year()
		},

		// String functions
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
		"title": func(v interface{}) string {
			return cases.Title(language.English).String(fmt.Sprint(v))
		},
		"truncate": func(s string, length int) string {
			if len(s) <= length {
				return s
			}
			return s[:length] + "..."
		},

		// Domain formatters
		"formatPrice":    domain.FormatPrice,
		"formatPhone":    domain.FormatPhone,
		"displayAddress": domain.Address.Display,

		// Pagination. A -1 entry marks an ellipsis.
		"pageRange": domain.PageRange,

		// Conditional helpers
		"ternary": func(condition bool, trueVal, falseVal interface{}) interface{} {
			if condition {
				return trueVal
			}
			return falseVal
		},
		"dict": func(values ...interface{}) map[string]interface{} {
			if len(values)%2 != 0 {
				return nil
			}
			dict := make(map[string]interface{}, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					return nil
				}
				dict[key] = values[i+1]
			}
			return dict
		},

		// Form helpers
		"csrfField": func(token string) template.HTML {
			return template.HTML(fmt.Sprintf(`<input type="hidden" name="csrf_token" value="%s">`, template.HTMLEscapeString(token)))
		},
		"selected": func(current, value string) template.HTMLAttr {
			if current != "" && current == value {
				return template.HTMLAttr(`selected`)
			}
			return ""
		},

		// Status badge colors for the pipeline screens
		"statusColor": func(status interface{}) string {
			switch strings.ToLower(fmt.Sprint(status)) {
			case "new", "scheduled":
				return "badge-blue"
			case "contacted", "in progress":
				return "badge-yellow"
			case "completed", "available":
				return "badge-green"
			case "failed", "sold", "cancelled":
				return "badge-red"
			default:
				return "badge-gray"
			}
		},
	}
}
