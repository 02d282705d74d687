package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/safepass/safepass/internal/password"
	"github.com/safepass/safepass/models"
)

type formState struct {
	labels []string
	inputs []textinput.Model
	focus  int

	editing bool
	editID  int64
	saving  bool
	errMsg  string
}

func newField(secret bool) textinput.Model {
	in := textinput.New()
	in.Width = 40
	if secret {
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '*'
	}
	return in
}

func (m *vaultModel) startAdd() {
	m.form = m.blankForm()
	m.form.inputs[0].Focus()
	m.screen = screenForm
}

func (m *vaultModel) startEdit() {
	form := m.blankForm()
	form.editing = true

	switch m.kind {
	case kindWebsites:
		cred, ok := currentItem(m.websites, m.idx)
		if !ok {
			return
		}
		form.editID = cred.ID
		for i, v := range []string{cred.Label, cred.URL, cred.Domain, cred.Username, cred.Password, cred.Notes} {
			form.inputs[i].SetValue(v)
		}
	case kindCards:
		cred, ok := currentItem(m.cards, m.idx)
		if !ok {
			return
		}
		form.editID = cred.ID
		for i, v := range []string{cred.Label, cred.CardHolder, cred.Number, cred.ExpiryMonth, cred.ExpiryYear, cred.CVV, cred.Notes} {
			form.inputs[i].SetValue(v)
		}
	default:
		cred, ok := currentItem(m.apps, m.idx)
		if !ok {
			return
		}
		form.editID = cred.ID
		for i, v := range []string{cred.AppName, cred.PackageName, cred.Username, cred.Password, cred.Notes} {
			form.inputs[i].SetValue(v)
		}
	}

	form.inputs[0].Focus()
	m.form = form
	m.screen = screenForm
}

func (m vaultModel) blankForm() formState {
	var labels []string
	var secret map[int]bool

	switch m.kind {
	case kindWebsites:
		labels = []string{"Label", "URL", "Domain", "Username", "Password", "Notes"}
		secret = map[int]bool{4: true}
	case kindCards:
		labels = []string{"Label", "Holder", "Number", "Month", "Year", "CVV", "Notes"}
		secret = map[int]bool{5: true}
	default:
		labels = []string{"App name", "Package", "Username", "Password", "Notes"}
		secret = map[int]bool{3: true}
	}

	inputs := make([]textinput.Model, len(labels))
	for i := range labels {
		inputs[i] = newField(secret[i])
	}

	return formState{labels: labels, inputs: inputs}
}

// passwordFieldIndex reports which field ctrl+g fills for the current kind,
// or -1 when the kind has no free-form password (cards).
func (m vaultModel) passwordFieldIndex() int {
	switch m.kind {
	case kindWebsites:
		return 4
	case kindApps:
		return 3
	default:
		return -1
	}
}

func (m vaultModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.screen = screenList
			return m, nil
		case "tab":
			m.form.inputs[m.form.focus].Blur()
			m.form.focus = (m.form.focus + 1) % len(m.form.inputs)
			m.form.inputs[m.form.focus].Focus()
			return m, nil
		case "shift+tab":
			m.form.inputs[m.form.focus].Blur()
			m.form.focus = (m.form.focus - 1 + len(m.form.inputs)) % len(m.form.inputs)
			m.form.inputs[m.form.focus].Focus()
			return m, nil
		case "ctrl+g":
			if i := m.passwordFieldIndex(); i >= 0 {
				generated, err := password.Generate(m.gen.options)
				if err != nil {
					m.form.errMsg = err.Error()
					return m, nil
				}
				m.form.inputs[i].SetValue(generated)
				m.form.errMsg = ""
			}
			return m, nil
		case "enter":
			if m.form.saving {
				return m, nil
			}
			m.form.saving = true
			m.form.errMsg = ""
			return m, m.cmdSave()
		}
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}

func (m vaultModel) cmdSave() tea.Cmd {
	services := m.services
	kind := m.kind
	form := m.form

	value := func(i int) string { return strings.TrimSpace(form.inputs[i].Value()) }

	return m.runOnPool(func(ctx context.Context) tea.Msg {
		var err error
		switch kind {
		case kindWebsites:
			cred := models.WebsiteCredential{
				ID:       form.editID,
				Label:    value(0),
				URL:      value(1),
				Domain:   value(2),
				Username: value(3),
				Password: form.inputs[4].Value(),
				Notes:    value(5),
			}
			err = saveOrUpdate(ctx, form.editing, cred, services.Websites.Save, services.Websites.Update)
		case kindCards:
			cred := models.CardCredential{
				ID:          form.editID,
				Label:       value(0),
				CardHolder:  value(1),
				Number:      value(2),
				ExpiryMonth: value(3),
				ExpiryYear:  value(4),
				CVV:         value(5),
				Notes:       value(6),
			}
			err = saveOrUpdate(ctx, form.editing, cred, services.Cards.Save, services.Cards.Update)
		default:
			cred := models.AppCredential{
				ID:          form.editID,
				AppName:     value(0),
				PackageName: value(1),
				Username:    value(2),
				Password:    form.inputs[3].Value(),
				Notes:       value(4),
			}
			err = saveOrUpdate(ctx, form.editing, cred, services.Apps.Save, services.Apps.Update)
		}

		status := "record added"
		if form.editing {
			status = "record updated"
		}
		return opDoneMsg{status: status, err: err}
	})
}

func saveOrUpdate[T any](
	ctx context.Context,
	editing bool,
	cred T,
	save func(context.Context, T) (int64, error),
	update func(context.Context, T) error,
) error {
	if editing {
		return update(ctx, cred)
	}
	_, err := save(ctx, cred)
	return err
}

func (m vaultModel) viewForm() string {
	title := "NEW " + strings.ToUpper(strings.TrimSuffix(m.kind.String(), "s"))
	if m.form.editing {
		title = "EDIT " + strings.ToUpper(strings.TrimSuffix(m.kind.String(), "s"))
	}

	out := ""
	for i, label := range m.form.labels {
		out += padLabel(label) + ": [ " + m.form.inputs[i].View() + " ]\n"
	}
	if m.form.errMsg != "" {
		out += "\n" + errorStyle.Render("Error: "+m.form.errMsg) + "\n"
	}
	if m.form.saving {
		out += "\nSaving...\n"
	}

	hotKeys := "tab: next field │ enter: save │ esc: cancel"
	if m.passwordFieldIndex() >= 0 {
		hotKeys = "tab: next field │ ctrl+g: generate password │ enter: save │ esc: cancel"
	}

	return renderPage(title, strings.TrimRight(out, "\n"), hotKeys)
}

func padLabel(label string) string {
	const width = 9
	if len(label) >= width {
		return label
	}
	return label + strings.Repeat(" ", width-len(label))
}
