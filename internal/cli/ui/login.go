package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"MuseShelf/internal/cli/api"
	"MuseShelf/internal/cli/auth"
)

type loginMode int

const (
	modeSignIn loginMode = iota
	modeSignUp
)

type authResultMsg struct {
	mode loginMode
	err  error
}

// Login — форма аутентификации: вход и регистрация в одном представлении.
// В каждый момент показано не больше одного сообщения (успех или ошибка);
// на время запроса ввод и отправка выключены.
type Login struct {
	ctx   context.Context
	store SessionStore

	mode     loginMode
	email    textinput.Model
	password textinput.Model
	focus    int // 0 — email, 1 — password

	busy   bool
	okMsg  string
	errMsg string
}

// NewLogin создаёт форму в режиме входа.
func NewLogin(ctx context.Context, store SessionStore) Login {
	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = 254
	email.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 128

	return Login{ctx: ctx, store: store, mode: modeSignIn, email: email, password: password}
}

// clearAll сбрасывает поля и оба сообщения.
func (m *Login) clearAll() {
	m.email.SetValue("")
	m.password.SetValue("")
	m.okMsg = ""
	m.errMsg = ""
}

// toggleMode переключает вход/регистрацию, очищая форму целиком.
func (m *Login) toggleMode() {
	m.clearAll()
	if m.mode == modeSignIn {
		m.mode = modeSignUp
	} else {
		m.mode = modeSignIn
	}
}

func (m *Login) setFocus(i int) {
	m.focus = i
	if i == 0 {
		m.email.Focus()
		m.password.Blur()
	} else {
		m.email.Blur()
		m.password.Focus()
	}
}

// submit запускает ровно один запрос. Новая отправка сначала очищает
// предыдущий результат; слабый пароль регистрации отклоняется локально,
// без единого сетевого вызова.
func (m *Login) submit() tea.Cmd {
	if m.busy {
		return nil
	}
	m.okMsg = ""
	m.errMsg = ""

	email := strings.TrimSpace(m.email.Value())
	password := m.password.Value()
	if email == "" || password == "" {
		m.errMsg = "Email and password are required."
		return nil
	}

	if m.mode == modeSignUp {
		if rule := auth.ValidatePassword(password); rule != "" {
			m.errMsg = rule
			return nil
		}
	}

	m.busy = true
	mode := m.mode
	return func() tea.Msg {
		var err error
		if mode == modeSignUp {
			err = m.store.SignUp(m.ctx, email, password)
		} else {
			err = m.store.SignIn(m.ctx, email, password)
		}
		return authResultMsg{mode: mode, err: err}
	}
}

// applyResult переводит результат запроса в единственное сообщение формы.
func (m *Login) applyResult(msg authResultMsg) {
	m.busy = false
	if msg.err != nil {
		switch {
		case errors.Is(msg.err, api.ErrInvalidCredentials):
			m.errMsg = "Invalid email or password."
		case errors.Is(msg.err, api.ErrEmailTaken):
			m.errMsg = "User already exists. Please login instead."
		default:
			// прочие ошибки сервера показываем дословно
			m.errMsg = msg.err.Error()
		}
		return
	}

	if msg.mode == modeSignUp {
		m.clearAll()
		m.okMsg = "Success! Check your email to confirm your registration."
	} else {
		m.clearAll()
		m.okMsg = "Logged in successfully!"
	}
}

func (m Login) Update(msg tea.Msg) (Login, tea.Cmd) {
	switch msg := msg.(type) {
	case authResultMsg:
		m.applyResult(msg)
		return m, nil

	case tea.KeyMsg:
		// ровно один запрос в полёте: пока ждём ответ, форма выключена
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "enter":
			return m, m.submit()
		case "tab", "down":
			m.setFocus((m.focus + 1) % 2)
			return m, nil
		case "shift+tab", "up":
			m.setFocus((m.focus + 1) % 2)
			return m, nil
		case "ctrl+t":
			m.toggleMode()
			return m, nil
		case "esc":
			m.clearAll()
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m Login) View() string {
	var b strings.Builder

	heading := "Login"
	toggleHint := "ctrl+t: don't have an account? sign up"
	if m.mode == modeSignUp {
		heading = "Sign Up"
		toggleHint = "ctrl+t: already have an account? login"
	}
	b.WriteString(styles.title.Render("MuseShelf — " + heading))
	b.WriteString("\n")

	b.WriteString(m.email.View())
	b.WriteString("\n")
	b.WriteString(m.password.View())
	b.WriteString("\n\n")

	switch {
	case m.busy:
		b.WriteString(styles.help.Render("Loading..."))
	case m.okMsg != "":
		b.WriteString(styles.ok.Render(m.okMsg))
	case m.errMsg != "":
		b.WriteString(styles.err.Render(m.errMsg))
	}
	b.WriteString("\n\n")

	b.WriteString(styles.help.Render(fmt.Sprintf("enter: submit • tab: next field • esc: clear • %s • ctrl+c: quit", toggleHint)))
	return b.String()
}
