package checkout

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatRM renders a whole-ringgit amount as "RM 1,234.00".
func FormatRM(amount int) string {
	return printer.Sprintf("RM %.2f", float64(amount))
}

func digitsOnly(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatCardNumber keeps digits only and groups them in fours, e.g.
// "4111111111111111" -> "4111 1111 1111 1111". Output is capped at 19
// characters.
func FormatCardNumber(value string) string {
	digits := digitsOnly(value)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	out := b.String()
	if len(out) > 19 {
		out = out[:19]
	}
	return out
}

// FormatExpiry renders typed digits as MM/YY.
func FormatExpiry(value string) string {
	digits := digitsOnly(value)
	if len(digits) < 2 {
		return digits
	}
	if len(digits) > 4 {
		digits = digits[:4]
	}
	return digits[:2] + "/" + digits[2:]
}

// FormatCvv keeps digits only, at most four of them.
func FormatCvv(value string) string {
	digits := digitsOnly(value)
	if len(digits) > 4 {
		digits = digits[:4]
	}
	return digits
}

// StripSpaces removes the grouping added by FormatCardNumber.
func StripSpaces(value string) string {
	return strings.ReplaceAll(value, " ", "")
}
