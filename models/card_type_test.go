package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectCardType(t *testing.T) {
	tests := []struct {
		name   string
		number string
		want   CardType
	}{
		{name: "visa", number: "4111111111111111", want: CardTypeVisa},
		{name: "mastercard 5-series", number: "5500000000000004", want: CardTypeMastercard},
		{name: "mastercard 2-series", number: "2221000000000009", want: CardTypeMastercard},
		{name: "american express", number: "340000000000009", want: CardTypeAmex},
		{name: "diners club", number: "30000000000004", want: CardTypeDinersClub},
		{name: "discover 6011", number: "6011000000000004", want: CardTypeDiscover},
		{name: "discover 65", number: "6500000000000002", want: CardTypeDiscover},
		{name: "jcb", number: "3528000000000007", want: CardTypeJCB},
		{name: "unionpay wins over rupay", number: "6212345678901234", want: CardTypeUnionPay},
		{name: "maestro 50", number: "5018000000000009", want: CardTypeMaestro},
		{name: "maestro 56", number: "5610000000000001", want: CardTypeMaestro},
		{name: "rupay", number: "6078000000000008", want: CardTypeRuPay},
		{name: "mir wins over mastercard 2-series", number: "2200000000000004", want: CardTypeMIR},
		{name: "unknown", number: "9999999999999999", want: CardTypeUnknown},
		{name: "spaces are ignored", number: "4111 1111 1111 1111", want: CardTypeVisa},
		{name: "empty", number: "", want: CardTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectCardType(tt.number))
		})
	}
}

func TestLastFourDigits(t *testing.T) {
	assert.Equal(t, "1111", LastFourDigits("4111111111111111"))
	assert.Equal(t, "0004", LastFourDigits("5500 0000 0000 0004"))
	assert.Equal(t, "123", LastFourDigits("123"))
	assert.Equal(t, "", LastFourDigits(""))
}
