// Определяет политики безопасности для HTML-представления блоков документа.
// Политики применяются к HTML, уходящему в буфер обмена, и ограничивают
// допустимые атрибуты и стили, чтобы предотвратить XSS при вставке контента
// во внешние приложения.
//
// Основные возможности:
//   - Разрешение/запрет определенных атрибутов для конкретных элементов.
//   - Ограничение допустимых значений стилей регулярными выражениями.
//   - Pre-определенные политики: StripTagsPolicy для плоского текста,
//     UgcPolicy для размеченного HTML.
package policy

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

var StripTagsPolicy *bluemonday.Policy = bluemonday.StrictPolicy()
var UgcPolicy *bluemonday.Policy = bluemonday.UGCPolicy()

func init() {
	colorRegexp := regexp.MustCompile(`^(#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})|rgb\((\d+),\s*(\d+),\s*(\d+)\)|inherit)$`)
	colorNamesRegexp := regexp.MustCompile(`^(transparent|blue|cyan|green|red|orange|yellow|magenta|gray)$`)

	UgcPolicy.AllowAttrs("spellcheck", "class").OnElements("pre")
	UgcPolicy.AllowAttrs("data-color", "style").OnElements("mark")
	UgcPolicy.AllowAttrs("data-bgcolor").Matching(colorNamesRegexp).Globally()

	UgcPolicy.AllowStyles("color", "background-color").Matching(colorRegexp).Globally()
	UgcPolicy.AllowStyles("background-color").Matching(colorNamesRegexp).Globally()

	UgcPolicy.AllowAttrs("data-checked").Matching(regexp.MustCompile("^(true|false)$")).OnElements("li")
	UgcPolicy.AllowAttrs("start").Matching(regexp.MustCompile(`^\d+$`)).OnElements("ol")
}
