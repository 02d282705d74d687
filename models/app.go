package models

// AppCredential represents saved login credentials for an installed
// application, identified by its package name.
type AppCredential struct {
	// ID is the unique identifier assigned by the store on insert.
	ID int64 `json:"id"`

	// AppName is the human-readable application name.
	AppName string `json:"app_name"`

	// PackageName is the unique application identifier (e.g.
	// "com.example.mail"). It is the associated-data binding value for
	// Password: editing PackageName requires re-encrypting Password
	// under the new value.
	PackageName string `json:"package_name"`

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
// associated with the AppCredential model.
func (a *AppCredential) TableName() string {
	return "app_credentials"
}
