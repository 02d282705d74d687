package tui

import "github.com/safepass/safepass/models"

// Messages delivered back to the model when a background vault operation
// finishes. List loads are per credential kind; mutations share one shape.

type websitesLoadedMsg struct {
	items []models.WebsiteCredential
	err   error
}

type cardsLoadedMsg struct {
	items []models.CardCredential
	err   error
}

type appsLoadedMsg struct {
	items []models.AppCredential
	err   error
}

// opDoneMsg reports a completed save, update or delete.
type opDoneMsg struct {
	status string
	err    error
}
