package analytics

import (
	"time"

	"golang.org/x/text/language"
)

// MonthNames holds the twelve month labels of one locale, January first.
type MonthNames [12]string

// Name returns the label for m.
func (n MonthNames) Name(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return n[m-1]
}

var (
	englishMonths = MonthNames{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	}
	spanishMonths = MonthNames{
		"enero", "febrero", "marzo", "abril", "mayo", "junio",
		"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
	}
	russianMonths = MonthNames{
		"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
		"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
	}
)

// English comes first so it wins when nothing matches.
var (
	monthLocales = []MonthNames{englishMonths, spanishMonths, russianMonths}
	monthMatcher = language.NewMatcher([]language.Tag{
		language.English,
		language.Spanish,
		language.Russian,
	})
)

// MonthNamesFor picks the closest supported month table for a BCP 47 locale
// such as "es-MX". Empty or unknown locales get English.
func MonthNamesFor(locale string) MonthNames {
	_, idx := language.MatchStrings(monthMatcher, locale)
	if idx < 0 || idx >= len(monthLocales) {
		return englishMonths
	}
	return monthLocales[idx]
}
