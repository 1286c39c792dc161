package format

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var copPrinter = message.NewPrinter(language.MustParse("es-CO"))

// Money renders an integer peso amount as localized currency text with
// no decimal digits, e.g. 12500 -> "$ 12.500".
func Money(amount int64) string {
	return copPrinter.Sprintf("$ %v", number.Decimal(amount))
}
