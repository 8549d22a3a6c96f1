package web

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var brl = message.NewPrinter(language.BrazilianPortuguese) //nolint:gochecknoglobals

// formatBRL formats v as an amount in reais, e.g. "R$ 1.234,50".
func formatBRL(v float64) string {
	return brl.Sprintf("R$ %.2f", v)
}
