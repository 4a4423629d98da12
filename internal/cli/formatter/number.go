package formatter

import (
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	printerMu sync.RWMutex
	printer   = message.NewPrinter(language.AmericanEnglish)
)

// SetLocale switches number formatting to the given BCP 47 tag. Unknown
// tags fall back to American English.
func SetLocale(tag string) {
	lang, err := language.Parse(tag)
	if err != nil {
		lang = language.AmericanEnglish
	}
	printerMu.Lock()
	printer = message.NewPrinter(lang)
	printerMu.Unlock()
}

func currentPrinter() *message.Printer {
	printerMu.RLock()
	defer printerMu.RUnlock()
	return printer
}

// Percent renders a ratio as a percentage with one decimal, e.g. 0.625 → "62.5%".
func Percent(ratio float64) string {
	return currentPrinter().Sprintf("%.1f%%", ratio*100)
}

// PercentValue renders a value already scaled by 100, e.g. 42.5 → "42.5%".
func PercentValue(v float64) string {
	return currentPrinter().Sprintf("%.1f%%", v)
}

// Hours renders an hour total with two decimals and grouping.
func Hours(h float64) string {
	return currentPrinter().Sprintf("%.2f", h)
}

// Money renders a labor amount without decimals.
func Money(v float64) string {
	return currentPrinter().Sprintf("%.0f", v)
}
