package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"MuseShelf/internal/cli/service"
	"MuseShelf/internal/cli/session"
)

// SessionStore — контракт Session Store, который потребляет UI.
// Реализуется session.Store; в тестах подменяется заглушкой.
type SessionStore interface {
	Current(ctx context.Context) (*session.Session, error)
	OnChange(handler func(*session.Session)) session.Subscription
	SignIn(ctx context.Context, email, password string) error
	SignUp(ctx context.Context, email, password string) error
	SignOut(ctx context.Context) error
}

// GateState — состояние шлюза сессии.
type GateState int

const (
	// GateLoading — первичное разрешение сессии ещё не завершилось;
	// не показываем ни форму входа, ни каталог.
	GateLoading GateState = iota
	GateSignedOut
	GateSignedIn
)

type sessionResolvedMsg struct {
	sess *session.Session
	err  error
}

type sessionChangedMsg struct {
	sess *session.Session
}

// Gate — корневая модель: владеет жизненным циклом сессии и монтирует
// ровно одно из двух представлений. Подписка на смену сессии живёт всё
// время работы шлюза и снимается в Close.
type Gate struct {
	ctx     context.Context
	store   SessionStore
	catalog service.CatalogService

	state GateState
	login Login
	dash  Dashboard

	changes chan *session.Session
	sub     session.Subscription

	width  int
	height int
}

// NewGate создаёт шлюз и сразу подписывается на смену сессии.
func NewGate(ctx context.Context, store SessionStore, catalogSvc service.CatalogService) *Gate {
	g := &Gate{
		ctx:     ctx,
		store:   store,
		catalog: catalogSvc,
		state:   GateLoading,
		changes: make(chan *session.Session, 8),
	}
	g.sub = store.OnChange(func(s *session.Session) {
		// не блокируем рассылку Store, если UI не успевает читать
		select {
		case g.changes <- s:
		default:
		}
	})
	return g
}

// Close снимает подписку на смену сессии. Идемпотентен; вызывается
// на каждом пути завершения (defer в main и обработка ctrl+c).
func (g *Gate) Close() {
	if g.sub != nil {
		g.sub.Unsubscribe()
	}
}

// Init запускает одноразовое разрешение сессии и цикл уведомлений.
func (g *Gate) Init() tea.Cmd {
	return tea.Batch(g.resolveSession(), g.waitForChange())
}

// resolveSession — первичный запрос текущей сессии (ровно один раз).
func (g *Gate) resolveSession() tea.Cmd {
	return func() tea.Msg {
		sess, err := g.store.Current(g.ctx)
		return sessionResolvedMsg{sess: sess, err: err}
	}
}

// waitForChange читает следующее уведомление из канала подписки.
func (g *Gate) waitForChange() tea.Cmd {
	return func() tea.Msg {
		return sessionChangedMsg{sess: <-g.changes}
	}
}

func (g *Gate) signedOut() {
	g.state = GateSignedOut
	g.login = NewLogin(g.ctx, g.store)
}

func (g *Gate) signedIn(sess *session.Session) tea.Cmd {
	g.state = GateSignedIn
	g.dash = NewDashboard(g.ctx, g.store, g.catalog, sess)
	return g.dash.Init()
}

func (g *Gate) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		g.width = msg.Width
		g.height = msg.Height
		return g, nil

	case sessionResolvedMsg:
		// уведомление могло прийти раньше первичного разрешения;
		// тогда оно уже определило состояние и этот ответ устарел
		if g.state != GateLoading {
			return g, nil
		}
		if msg.err != nil || msg.sess == nil {
			g.signedOut()
			if msg.err != nil {
				g.login.errMsg = "Could not reach the server: " + msg.err.Error()
			}
			return g, nil
		}
		return g, g.signedIn(msg.sess)

	case sessionChangedMsg:
		// Loading сюда не возвращается: только Authenticated <-> Unauthenticated
		var cmd tea.Cmd
		if msg.sess == nil {
			g.signedOut()
		} else {
			cmd = g.signedIn(msg.sess)
		}
		return g, tea.Batch(cmd, g.waitForChange())

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			g.Close()
			return g, tea.Quit
		}
	}

	// остальное — активному дочернему представлению
	switch g.state {
	case GateSignedOut:
		var cmd tea.Cmd
		g.login, cmd = g.login.Update(msg)
		return g, cmd
	case GateSignedIn:
		var cmd tea.Cmd
		g.dash, cmd = g.dash.Update(msg)
		return g, cmd
	}
	return g, nil
}

func (g *Gate) View() string {
	switch g.state {
	case GateSignedOut:
		return g.login.View()
	case GateSignedIn:
		return g.dash.View()
	default:
		return styles.title.Render("MuseShelf") + "\n" + styles.help.Render("Checking session...")
	}
}
