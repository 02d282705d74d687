package models

// CardCredential represents a saved payment card.
//
// Number and CVV are the secret fields: the store layer only ever sees
// them as opaque AEAD ciphertext tokens bound to CardHolder.
type CardCredential struct {
	// ID is the unique identifier assigned by the store on insert.
	ID int64 `json:"id"`

	// Label is the display name of the card. When left blank on save it
	// defaults to the detected card network name.
	Label string `json:"label"`

	// CardHolder is the name embossed on the card. It is the
	// associated-data binding value for Number and CVV: editing
	// CardHolder requires re-encrypting both secrets under the new value.
	CardHolder string `json:"card_holder"`

	// Number is the full card number (digits only). Stored in DB only as
	// an encrypted token, never as plaintext.
	Number string `json:"number"`

	// LastFour holds the last four digits of Number. Kept in plain form
	// so cards can be displayed and searched without decryption.
	LastFour string `json:"last_four"`

	// ExpiryMonth is the two-digit expiry month (1-12).
	ExpiryMonth string `json:"expiry_month"`

	// ExpiryYear is the expiry year.
	ExpiryYear string `json:"expiry_year"`

	// Type is the card network, derived from the leading digits of
	// Number at save/update time. Never supplied by the caller.
	Type CardType `json:"type"`

	// CVV is the card verification value. Stored in DB only as an
	// encrypted token, never as plaintext.
	CVV string `json:"cvv"`

	// Notes contains optional free-form user notes.
	Notes string `json:"notes,omitempty"`
}

// TableName returns the name of the database table
// associated with the CardCredential model.
func (c *CardCredential) TableName() string {
	return "card_credentials"
}
