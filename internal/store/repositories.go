package store

import "github.com/safepass/safepass/internal/logger"

// Repositories bundles the three credential repositories sharing one
// database handle, for convenient wiring at the composition root.
type Repositories struct {
	Websites WebsiteRepository
	Cards    CardRepository
	Apps     AppRepository
}

// NewRepositories constructs all credential repositories over db.
func NewRepositories(db *DB, log *logger.Logger) *Repositories {
	return &Repositories{
		Websites: NewWebsiteRepository(db, log),
		Cards:    NewCardRepository(db, log),
		Apps:     NewAppRepository(db, log),
	}
}
