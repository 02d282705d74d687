package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/safepass/safepass/internal/config"
	"github.com/safepass/safepass/internal/password"
)

type genState struct {
	options  password.Options
	result   string
	strength password.Strength
	errMsg   string
	status   string
}

func newGenState(cfg config.Generator) genState {
	length := cfg.DefaultLength
	if length <= 0 {
		length = 16
	}
	return genState{options: password.DefaultOptions(length)}
}

func (m vaultModel) updateGenerator(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	opts := &m.gen.options
	switch keyMsg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc":
		m.gen.status = ""
		m.gen.errMsg = ""
		m.screen = screenList
		return m, nil
	case "+", "=", "right":
		opts.Length++
	case "-", "left":
		if opts.Length > 1 {
			opts.Length--
		}
	case "1":
		opts.Lowercase = !opts.Lowercase
	case "2":
		opts.Uppercase = !opts.Uppercase
	case "3":
		opts.Digits = !opts.Digits
	case "4":
		opts.Symbols = !opts.Symbols
	case "m":
		opts.ExcludeSimilar = !opts.ExcludeSimilar
	case "r":
		opts.ExcludeRepeated = !opts.ExcludeRepeated
	case "x":
		opts.ExcludeSequential = !opts.ExcludeSequential
	case "f":
		opts.StartWithLetter = !opts.StartWithLetter
	case "c":
		if m.gen.result == "" {
			m.gen.status = "nothing to copy"
			return m, nil
		}
		if err := clipboard.WriteAll(m.gen.result); err != nil {
			m.gen.errMsg = fmt.Sprintf("copy failed: %v", err)
			return m, nil
		}
		m.gen.status = "copied to clipboard"
		return m, nil
	case "enter", "g":
	default:
		return m, nil
	}

	generated, err := password.Generate(m.gen.options)
	if err != nil {
		m.gen.errMsg = err.Error()
		m.gen.result = ""
		m.gen.strength = password.Strength{}
		return m, nil
	}

	m.gen.errMsg = ""
	m.gen.status = ""
	m.gen.result = generated
	m.gen.strength = password.Analyze(generated)
	return m, nil
}

func (m vaultModel) viewGenerator() string {
	opts := m.gen.options
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Length    : %d  (+/- to adjust)\n\n", opts.Length))
	b.WriteString(fmt.Sprintf("%s 1. lowercase      %s 2. uppercase\n", onOff(opts.Lowercase), onOff(opts.Uppercase)))
	b.WriteString(fmt.Sprintf("%s 3. digits         %s 4. symbols\n\n", onOff(opts.Digits), onOff(opts.Symbols)))
	b.WriteString(fmt.Sprintf("%s m. skip look-alikes (Il1Lo0O)\n", onOff(opts.ExcludeSimilar)))
	b.WriteString(fmt.Sprintf("%s r. no adjacent repeats\n", onOff(opts.ExcludeRepeated)))
	b.WriteString(fmt.Sprintf("%s x. no sequential runs\n", onOff(opts.ExcludeSequential)))
	b.WriteString(fmt.Sprintf("%s f. start with a letter\n\n", onOff(opts.StartWithLetter)))

	if m.gen.result != "" {
		b.WriteString("Password  : " + m.gen.result + "\n")
		b.WriteString(fmt.Sprintf("Strength  : %s (%d%%)", m.gen.strength.Label, m.gen.strength.Percent))
		if m.gen.strength.CrackTimeDisplay != "" {
			b.WriteString("  ~" + m.gen.strength.CrackTimeDisplay + " to crack")
		}
		b.WriteString("\n")
	} else {
		b.WriteString("Password  : (press enter to generate)\n")
	}

	if m.gen.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render("Error: "+m.gen.errMsg) + "\n")
	}
	if m.gen.status != "" {
		b.WriteString("\nStatus: " + m.gen.status + "\n")
	}

	return renderPage(
		"PASSWORD GENERATOR",
		strings.TrimRight(b.String(), "\n"),
		"enter/g: generate │ c: copy │ 1-4/m/r/x/f: toggle │ +/-: length │ esc: back",
	)
}
