package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/safepass/safepass/internal/config"
	"github.com/safepass/safepass/internal/service"
	"github.com/safepass/safepass/internal/workers"
	"github.com/safepass/safepass/models"
)

type credentialKind int

const (
	kindWebsites credentialKind = iota
	kindCards
	kindApps
)

func (k credentialKind) String() string {
	switch k {
	case kindWebsites:
		return "Websites"
	case kindCards:
		return "Cards"
	default:
		return "Apps"
	}
}

type screen int

const (
	screenList screen = iota
	screenDetail
	screenForm
	screenGenerator
	screenConfirmDelete
)

type vaultModel struct {
	ctx      context.Context
	services *service.Services
	pool     *workers.Pool

	screen screen
	kind   credentialKind

	websites []models.WebsiteCredential
	cards    []models.CardCredential
	apps     []models.AppCredential
	idx      int

	loading         bool
	status          string
	errMsg          string
	recoveredNotice bool

	searching   bool
	searchInput textinput.Model
	query       string

	reveal bool

	form formState
	gen  genState

	confirmID    int64
	confirmLabel string
}

func newVaultModel(ctx context.Context, services *service.Services, pool *workers.Pool, generator config.Generator, recovered bool) vaultModel {
	search := textinput.New()
	search.Placeholder = "substring to search for"
	search.Width = 40

	return vaultModel{
		ctx:             ctx,
		services:        services,
		pool:            pool,
		loading:         true,
		recoveredNotice: recovered,
		searchInput:     search,
		gen:             newGenState(generator),
	}
}

func (m vaultModel) Init() tea.Cmd {
	return m.cmdLoad()
}

func (m vaultModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case websitesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = userMessage(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.websites = msg.items
		m.clampIndex()
		return m, nil
	case cardsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = userMessage(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.cards = msg.items
		m.clampIndex()
		return m, nil
	case appsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = userMessage(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.apps = msg.items
		m.clampIndex()
		return m, nil
	case opDoneMsg:
		m.form.saving = false
		if msg.err != nil {
			if m.screen == screenForm {
				m.form.errMsg = userMessage(msg.err)
			} else {
				m.errMsg = userMessage(msg.err)
			}
			return m, nil
		}
		m.screen = screenList
		m.status = msg.status
		m.errMsg = ""
		m.loading = true
		return m, m.cmdLoad()
	}

	keyMsg, isKey := msg.(tea.KeyMsg)
	if isKey && m.recoveredNotice {
		// any key acknowledges the data-loss banner
		m.recoveredNotice = false
	}

	switch m.screen {
	case screenForm:
		return m.updateForm(msg)
	case screenGenerator:
		return m.updateGenerator(msg)
	case screenConfirmDelete:
		return m.updateConfirmDelete(msg)
	case screenDetail:
		return m.updateDetail(msg)
	}

	if m.searching {
		return m.updateSearch(msg)
	}

	if !isKey {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.quit):
		return m, tea.Quit
	case key.Matches(keyMsg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.idx < m.itemCount()-1 {
			m.idx++
		}
	case key.Matches(keyMsg, keys.left), key.Matches(keyMsg, keys.backtab):
		m.switchKind(-1)
		return m, m.cmdLoad()
	case key.Matches(keyMsg, keys.right), key.Matches(keyMsg, keys.tab):
		m.switchKind(1)
		return m, m.cmdLoad()
	case key.Matches(keyMsg, keys.search):
		m.searching = true
		m.searchInput.SetValue(m.query)
		m.searchInput.Focus()
		return m, nil
	case key.Matches(keyMsg, keys.newItem):
		m.startAdd()
		return m, nil
	case key.Matches(keyMsg, keys.generator):
		m.screen = screenGenerator
		return m, nil
	case key.Matches(keyMsg, keys.enter):
		if m.itemCount() == 0 {
			m.status = "no records"
			return m, nil
		}
		m.reveal = false
		m.screen = screenDetail
	case key.Matches(keyMsg, keys.edit):
		if m.itemCount() == 0 {
			m.status = "no records"
			return m, nil
		}
		m.startEdit()
		return m, nil
	case key.Matches(keyMsg, keys.delete):
		if m.itemCount() == 0 {
			m.status = "no records"
			return m, nil
		}
		m.startConfirmDelete()
		return m, nil
	}

	return m, nil
}

func (m *vaultModel) switchKind(direction int) {
	kinds := 3
	m.kind = credentialKind((int(m.kind) + direction + kinds) % kinds)
	m.idx = 0
	m.query = ""
	m.loading = true
}

func (m *vaultModel) clampIndex() {
	if m.idx >= m.itemCount() {
		m.idx = m.itemCount() - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m vaultModel) itemCount() int {
	switch m.kind {
	case kindWebsites:
		return len(m.websites)
	case kindCards:
		return len(m.cards)
	default:
		return len(m.apps)
	}
}

func (m vaultModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.searching = false
			m.query = ""
			m.loading = true
			return m, m.cmdLoad()
		case "enter":
			m.searching = false
			m.query = strings.TrimSpace(m.searchInput.Value())
			m.idx = 0
			m.loading = true
			return m, m.cmdLoad()
		}
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m vaultModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.itemCount() == 0 {
		m.screen = screenList
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.quit):
		return m, tea.Quit
	case key.Matches(keyMsg, keys.esc):
		m.screen = screenList
		m.reveal = false
	case key.Matches(keyMsg, keys.reveal):
		m.reveal = !m.reveal
	case key.Matches(keyMsg, keys.edit):
		m.startEdit()
		return m, nil
	case key.Matches(keyMsg, keys.delete):
		m.startConfirmDelete()
		return m, nil
	case key.Matches(keyMsg, keys.copy):
		text, ok := m.copyValue()
		if !ok {
			m.status = "nothing to copy"
			return m, nil
		}
		if err := clipboard.WriteAll(text); err != nil {
			m.errMsg = fmt.Sprintf("copy failed: %v", err)
			return m, nil
		}
		m.status = "copied to clipboard"
	}
	return m, nil
}

// copyValue picks the secret worth copying for the selected record.
func (m vaultModel) copyValue() (string, bool) {
	switch m.kind {
	case kindWebsites:
		if cred, ok := currentItem(m.websites, m.idx); ok && cred.Password != "" {
			return cred.Password, true
		}
	case kindCards:
		if cred, ok := currentItem(m.cards, m.idx); ok && cred.Number != "" {
			return cred.Number, true
		}
	default:
		if cred, ok := currentItem(m.apps, m.idx); ok && cred.Password != "" {
			return cred.Password, true
		}
	}
	return "", false
}

func (m *vaultModel) startConfirmDelete() {
	switch m.kind {
	case kindWebsites:
		if cred, ok := currentItem(m.websites, m.idx); ok {
			m.confirmID = cred.ID
			m.confirmLabel = cred.Label
		}
	case kindCards:
		if cred, ok := currentItem(m.cards, m.idx); ok {
			m.confirmID = cred.ID
			m.confirmLabel = cred.Label
		}
	default:
		if cred, ok := currentItem(m.apps, m.idx); ok {
			m.confirmID = cred.ID
			m.confirmLabel = cred.AppName
		}
	}
	m.screen = screenConfirmDelete
}

func (m vaultModel) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.yes):
		id := m.confirmID
		m.screen = screenList
		return m, m.cmdDelete(id)
	case key.Matches(keyMsg, keys.no), key.Matches(keyMsg, keys.esc):
		m.screen = screenList
	case key.Matches(keyMsg, keys.quit):
		return m, tea.Quit
	}
	return m, nil
}

func currentItem[T any](items []T, idx int) (T, bool) {
	var zero T
	if len(items) == 0 || idx < 0 || idx >= len(items) {
		return zero, false
	}
	return items[idx], true
}

// runOnPool executes task on the background pool; the bubbletea command
// blocks only its own goroutine while waiting for the result. When the pool
// rejects the task (shutting down, queue full) the task runs inline.
func (m vaultModel) runOnPool(task func(ctx context.Context) tea.Msg) tea.Cmd {
	pool := m.pool
	fallback := m.ctx
	return func() tea.Msg {
		results := make(chan tea.Msg, 1)
		submitted := pool.Submit(func(ctx context.Context) {
			results <- task(ctx)
		})
		if !submitted {
			return task(fallback)
		}
		return <-results
	}
}

func (m vaultModel) cmdLoad() tea.Cmd {
	services := m.services
	kind := m.kind
	query := m.query

	return m.runOnPool(func(ctx context.Context) tea.Msg {
		switch kind {
		case kindWebsites:
			items, err := loadOrSearch(ctx, query, services.Websites.List, services.Websites.Search)
			return websitesLoadedMsg{items: items, err: err}
		case kindCards:
			items, err := loadOrSearch(ctx, query, services.Cards.List, services.Cards.Search)
			return cardsLoadedMsg{items: items, err: err}
		default:
			items, err := loadOrSearch(ctx, query, services.Apps.List, services.Apps.Search)
			return appsLoadedMsg{items: items, err: err}
		}
	})
}

func loadOrSearch[T any](
	ctx context.Context,
	query string,
	list func(context.Context) ([]T, error),
	search func(context.Context, string) ([]T, error),
) ([]T, error) {
	if query == "" {
		return list(ctx)
	}
	return search(ctx, query)
}

func (m vaultModel) cmdDelete(id int64) tea.Cmd {
	services := m.services
	kind := m.kind

	return m.runOnPool(func(ctx context.Context) tea.Msg {
		var err error
		switch kind {
		case kindWebsites:
			err = services.Websites.Delete(ctx, id)
		case kindCards:
			err = services.Cards.Delete(ctx, id)
		default:
			err = services.Apps.Delete(ctx, id)
		}
		return opDoneMsg{status: "record deleted", err: err}
	})
}

func (m vaultModel) View() string {
	switch m.screen {
	case screenForm:
		return m.viewForm()
	case screenGenerator:
		return m.viewGenerator()
	case screenConfirmDelete:
		return renderPage(
			"DELETE RECORD",
			fmt.Sprintf("Delete %q permanently? There is no undo.", m.confirmLabel),
			"y: delete │ n/esc: keep",
		)
	case screenDetail:
		title, body, hotKeys := m.viewDetail()
		return renderPage(title, strings.TrimRight(body, "\n"), hotKeys)
	}

	return m.viewList()
}

func (m vaultModel) viewList() string {
	out := ""

	if m.recoveredNotice {
		out += warningStyle.Render("The encryption key could not be read and was regenerated.") + "\n"
		out += warningStyle.Render("Previously saved records are permanently unreadable.") + "\n\n"
	}

	if m.searching {
		out += "Search: [ " + m.searchInput.View() + " ]\n\n"
	} else if m.query != "" {
		out += "Filter: " + m.query + "  (/ to change, / then esc to clear)\n\n"
	}

	if m.loading {
		out += "Loading...\n"
		return renderPage(m.listTitle(), strings.TrimRight(out, "\n"), m.listHotKeys())
	}

	if m.errMsg != "" {
		out += errorStyle.Render("Error: "+m.errMsg) + "\n"
	}
	if m.status != "" {
		out += "Status: " + m.status + "\n"
	}
	if out != "" {
		out += "\n"
	}

	switch m.kind {
	case kindWebsites:
		out += m.viewWebsiteRows()
	case kindCards:
		out += m.viewCardRows()
	default:
		out += m.viewAppRows()
	}

	return renderPage(m.listTitle(), strings.TrimRight(out, "\n"), m.listHotKeys())
}

func (m vaultModel) listTitle() string {
	tabs := make([]string, 0, 3)
	for _, k := range []credentialKind{kindWebsites, kindCards, kindApps} {
		name := k.String()
		if k == m.kind {
			name = "[" + name + "]"
		}
		tabs = append(tabs, name)
	}
	return "VAULT  " + strings.Join(tabs, " │ ")
}

func (m vaultModel) listHotKeys() string {
	return "a: add │ e: edit │ ctrl+d: delete │ enter: open │ /: search │ g: generator │ tab: next kind │ ↑/↓: move"
}

func (m vaultModel) viewWebsiteRows() string {
	if len(m.websites) == 0 {
		return "No website credentials\n"
	}

	out := "Label                    │ Domain                   │ Username\n"
	out += "─────────────────────────┼──────────────────────────┼─────────────────\n"
	for i, cred := range m.websites {
		cursor := " "
		if i == m.idx {
			cursor = ">"
		}
		out += fmt.Sprintf("%s %-23s │ %-24s │ %s\n",
			cursor, fitText(cred.Label, 23), fitText(cred.Domain, 24), fitText(cred.Username, 16))
	}
	return out
}

func (m vaultModel) viewCardRows() string {
	if len(m.cards) == 0 {
		return "No cards\n"
	}

	out := "Label                    │ Holder                   │ Type       │ ····\n"
	out += "─────────────────────────┼──────────────────────────┼────────────┼─────\n"
	for i, cred := range m.cards {
		cursor := " "
		if i == m.idx {
			cursor = ">"
		}
		out += fmt.Sprintf("%s %-23s │ %-24s │ %-10s │ %s\n",
			cursor, fitText(cred.Label, 23), fitText(cred.CardHolder, 24),
			fitText(string(cred.Type), 10), cred.LastFour)
	}
	return out
}

func (m vaultModel) viewAppRows() string {
	if len(m.apps) == 0 {
		return "No application credentials\n"
	}

	out := "App                      │ Package                  │ Username\n"
	out += "─────────────────────────┼──────────────────────────┼─────────────────\n"
	for i, cred := range m.apps {
		cursor := " "
		if i == m.idx {
			cursor = ">"
		}
		out += fmt.Sprintf("%s %-23s │ %-24s │ %s\n",
			cursor, fitText(cred.AppName, 23), fitText(cred.PackageName, 24), fitText(cred.Username, 16))
	}
	return out
}

func (m vaultModel) viewDetail() (title, body, hotKeys string) {
	var b strings.Builder

	switch m.kind {
	case kindWebsites:
		cred, ok := currentItem(m.websites, m.idx)
		if !ok {
			return "RECORD", "record not found", "esc: back"
		}
		title = "WEBSITE: " + cred.Label
		b.WriteString("Label     : " + cred.Label + "\n")
		b.WriteString("URL       : " + cred.URL + "\n")
		b.WriteString("Domain    : " + cred.Domain + "\n")
		b.WriteString("Username  : " + cred.Username + "\n")
		b.WriteString("Password  : " + maskSecret(cred.Password, m.reveal) + "  [space: reveal]\n")
		b.WriteString("Notes     : " + valueOrDash(cred.Notes) + "\n")
		hotKeys = "e: edit │ c: copy password │ ctrl+d: delete │ space: reveal │ esc: back"

	case kindCards:
		cred, ok := currentItem(m.cards, m.idx)
		if !ok {
			return "RECORD", "record not found", "esc: back"
		}
		title = "CARD: " + cred.Label
		b.WriteString("Label     : " + cred.Label + "\n")
		b.WriteString("Holder    : " + cred.CardHolder + "\n")
		b.WriteString("Number    : " + maskCardNumber(cred.Number, m.reveal) + "  [space: reveal]\n")
		b.WriteString("Type      : " + string(cred.Type) + "\n")
		b.WriteString("Expiry    : " + expiry(cred.ExpiryMonth, cred.ExpiryYear) + "\n")
		b.WriteString("CVV       : " + maskSecret(cred.CVV, m.reveal) + "\n")
		b.WriteString("Notes     : " + valueOrDash(cred.Notes) + "\n")
		hotKeys = "e: edit │ c: copy number │ ctrl+d: delete │ space: reveal │ esc: back"

	default:
		cred, ok := currentItem(m.apps, m.idx)
		if !ok {
			return "RECORD", "record not found", "esc: back"
		}
		title = "APP: " + cred.AppName
		b.WriteString("App       : " + cred.AppName + "\n")
		b.WriteString("Package   : " + cred.PackageName + "\n")
		b.WriteString("Username  : " + cred.Username + "\n")
		b.WriteString("Password  : " + maskSecret(cred.Password, m.reveal) + "  [space: reveal]\n")
		b.WriteString("Notes     : " + valueOrDash(cred.Notes) + "\n")
		hotKeys = "e: edit │ c: copy password │ ctrl+d: delete │ space: reveal │ esc: back"
	}

	return title, b.String(), hotKeys
}
