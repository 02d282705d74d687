package models

// WebsiteCredential represents saved login credentials for a website.
//
// The same structure is used on both sides of the vault boundary: the
// service layer exposes it with Password in plain form, while the store
// layer only ever sees Password as an opaque AEAD ciphertext token.
type WebsiteCredential struct {
	// ID is the unique identifier assigned by the store on insert.
	ID int64 `json:"id"`

	// URL is the full address the credentials were saved from.
	URL string `json:"url"`

	// Domain is the registrable domain extracted from URL. It is the
	// associated-data binding value for Password: editing Domain
	// requires re-encrypting Password under the new value.
	Domain string `json:"domain"`

	// Label is the human-readable display name of the entry.
	Label string `json:"label"`

	// Username is the login identifier. Stored in plain form and
	// searchable.
	Username string `json:"username"`

	// Password is the secret credential. Stored in DB only as an
	// encrypted token, never as plaintext.
	Password string `json:"password"`

	// Notes contains optional free-form user notes.
	Notes string `json:"notes,omitempty"`
}

// TableName returns the name of the database table
// associated with the WebsiteCredential model.
func (w *WebsiteCredential) TableName() string {
	return "website_credentials"
}
