package service

import (
	"github.com/safepass/safepass/internal/logger"
	"github.com/safepass/safepass/internal/store"
)

// Services bundles the three per-kind vault services for the composition
// root.
type Services struct {
	Websites WebsiteVaultService
	Cards    CardVaultService
	Apps     AppVaultService
}

func NewServices(repos *store.Repositories, keys Keystore, log *logger.Logger) *Services {
	return &Services{
		Websites: NewWebsiteVaultService(repos.Websites, keys, log),
		Cards:    NewCardVaultService(repos.Cards, keys, log),
		Apps:     NewAppVaultService(repos.Apps, keys, log),
	}
}
