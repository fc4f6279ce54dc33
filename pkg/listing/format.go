package listing

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nainya/gazette/pkg/document"
)

// Locale is the fixed display locale
var Locale = language.BrazilianPortuguese

var monthNames = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// FormatLongDate renders YYYY-MM-DD as "15 de janeiro de 2024".
// Unparseable input is returned unchanged.
func FormatLongDate(date string) string {
	day, ok := document.ParseDate(date)
	if !ok {
		return date
	}
	return fmt.Sprintf("%02d de %s de %d", day.Day(), monthNames[day.Month()-1], day.Year())
}

// TitleCase capitalizes each word and lowercases the rest, keeping the
// ordinal marker "nº" in lower case.
func TitleCase(s string) string {
	// Casers carry state and are not safe for concurrent use
	titled := cases.Title(Locale).String(s)
	return strings.ReplaceAll(titled, "Nº", "nº")
}

// DisplayTitle is the row heading: title-cased title followed by the long date
func DisplayTitle(doc document.Document) string {
	return TitleCase(doc.Title) + " de " + FormatLongDate(doc.Date)
}
