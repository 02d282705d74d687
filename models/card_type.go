package models

import (
	"regexp"
	"strings"
)

// CardType identifies the payment network a card number belongs to.
type CardType string

// Supported card networks. The zero-ish value is CardTypeUnknown.
const (
	CardTypeVisa       CardType = "Visa"
	CardTypeMastercard CardType = "Mastercard"
	CardTypeAmex       CardType = "American Express"
	CardTypeDinersClub CardType = "Diners Club"
	CardTypeDiscover   CardType = "Discover"
	CardTypeJCB        CardType = "JCB"
	CardTypeUnionPay   CardType = "UnionPay"
	CardTypeMaestro    CardType = "Maestro"
	CardTypeRuPay      CardType = "RuPay"
	CardTypeMIR        CardType = "MIR"
	CardTypeUnknown    CardType = "Unknown"
)

// cardTypeRules are evaluated strictly in order; several prefixes
// overlap (e.g. "62..." satisfies both the UnionPay and the broad RuPay
// rule), so the first matching rule wins.
var cardTypeRules = []struct {
	pattern  *regexp.Regexp
	cardType CardType
}{
	{regexp.MustCompile(`^4`), CardTypeVisa},
	{regexp.MustCompile(`^5[1-5]`), CardTypeMastercard},
	{regexp.MustCompile(`^2(2[2-9]|[3-6][0-9]|7[01]|720)`), CardTypeMastercard},
	{regexp.MustCompile(`^3[47]`), CardTypeAmex},
	{regexp.MustCompile(`^3(0[0-5]|[68])`), CardTypeDinersClub},
	{regexp.MustCompile(`^(6011|65|64[4-9])`), CardTypeDiscover},
	{regexp.MustCompile(`^35(2[89]|[3-8][0-9])`), CardTypeJCB},
	{regexp.MustCompile(`^62`), CardTypeUnionPay},
	{regexp.MustCompile(`^5[06-9]`), CardTypeMaestro},
	{regexp.MustCompile(`^6[0-9]{12,19}$`), CardTypeRuPay},
	{regexp.MustCompile(`^220[0-4]`), CardTypeMIR},
}

// DetectCardType classifies a card number into its payment network
// based on the leading digits. Non-digit characters are ignored, so
// both "4111 1111 1111 1111" and "4111111111111111" resolve to Visa.
//
// Returns CardTypeUnknown when no rule matches.
func DetectCardType(number string) CardType {
	clean := digitsOnly(number)
	if clean == "" {
		return CardTypeUnknown
	}

	for _, rule := range cardTypeRules {
		if rule.pattern.MatchString(clean) {
			return rule.cardType
		}
	}

	return CardTypeUnknown
}

// LastFourDigits returns the trailing four digits of a card number, or
// the whole cleaned number when it is shorter than four digits.
func LastFourDigits(number string) string {
	clean := digitsOnly(number)
	if len(clean) <= 4 {
		return clean
	}
	return clean[len(clean)-4:]
}

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
