package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"MuseShelf/internal/catalog"
	"MuseShelf/internal/cli/service"
	"MuseShelf/internal/cli/session"
)

type dashFocus int

const (
	focusList dashFocus = iota
	focusForm
)

// rowsFetchedMsg несёт категорию своего запроса: ответ для чужой
// вкладки отбрасывается, а не показывается поверх текущей.
type rowsFetchedMsg struct {
	cat  catalog.Category
	rows []catalog.Row
	err  error
}

// mutationDoneMsg — результат Add или Delete.
type mutationDoneMsg struct {
	added bool
	err   error
}

type signOutFailedMsg struct {
	err error
}

// Dashboard — каталог с вкладками. Список — зеркало хранилища:
// строки меняются только перечитыванием категории, мутации сами
// список не правят.
type Dashboard struct {
	ctx     context.Context
	store   SessionStore
	catalog service.CatalogService
	sess    *session.Session

	keys keyMap
	help help.Model

	tab      catalog.Category
	rows     []catalog.Row
	selected int
	loading  bool
	busy     bool // мутация в полёте, ввод выключен

	focus  dashFocus
	inputs []textinput.Model // title, [artist,] notes, status
	field  int

	flashOK  string
	flashErr string
}

// NewDashboard открывает каталог на первой вкладке.
func NewDashboard(ctx context.Context, store SessionStore, catalogSvc service.CatalogService, sess *session.Session) Dashboard {
	m := Dashboard{
		ctx:     ctx,
		store:   store,
		catalog: catalogSvc,
		sess:    sess,
		keys:    newKeyMap(),
		help:    help.New(),
		tab:     catalog.All()[0],
	}
	m.resetForm()
	return m
}

// Init запускает загрузку открытой вкладки.
func (m Dashboard) Init() tea.Cmd {
	return m.fetch(m.tab)
}

// fetch перечитывает категорию; ответ помечен категорией запроса.
func (m Dashboard) fetch(cat catalog.Category) tea.Cmd {
	return func() tea.Msg {
		rows, err := m.catalog.List(m.ctx, cat)
		return rowsFetchedMsg{cat: cat, rows: rows, err: err}
	}
}

// resetForm пересобирает поля формы под схему текущей вкладки.
func (m *Dashboard) resetForm() {
	schema := m.tab.Schema()

	title := textinput.New()
	title.Placeholder = schema.TitleLabel
	title.CharLimit = 200

	inputs := []textinput.Model{title}
	if schema.HasArtist {
		artist := textinput.New()
		artist.Placeholder = "Artist"
		artist.CharLimit = 200
		inputs = append(inputs, artist)
	}

	notes := textinput.New()
	notes.Placeholder = "Notes"
	notes.CharLimit = 500
	inputs = append(inputs, notes)

	status := textinput.New()
	status.Placeholder = "Status"
	status.CharLimit = 50
	inputs = append(inputs, status)

	m.inputs = inputs
	m.field = 0
}

func (m *Dashboard) setField(i int) {
	m.field = i
	for j := range m.inputs {
		if j == i {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
}

// switchTab переключает вкладку: строки, черновик и сообщения
// прежней вкладки пропадают сразу, до ответа сервера.
func (m *Dashboard) switchTab(step int) tea.Cmd {
	all := catalog.All()
	idx := 0
	for i, c := range all {
		if c == m.tab {
			idx = i
		}
	}
	m.tab = all[(idx+step+len(all))%len(all)]

	m.rows = nil
	m.selected = 0
	m.flashOK = ""
	m.flashErr = ""
	m.focus = focusList
	m.resetForm()
	m.loading = true
	return m.fetch(m.tab)
}

// draft собирает черновик из полей формы по схеме вкладки.
func (m *Dashboard) draft() catalog.Draft {
	d := catalog.Draft{Title: strings.TrimSpace(m.inputs[0].Value())}
	i := 1
	if m.tab.Schema().HasArtist {
		d.Artist = strings.TrimSpace(m.inputs[i].Value())
		i++
	}
	d.Notes = strings.TrimSpace(m.inputs[i].Value())
	d.Status = strings.TrimSpace(m.inputs[i+1].Value())
	return d
}

// submitAdd отправляет черновик. Пустой заголовок отклоняется локально,
// без сетевого вызова; черновик при этом сохраняется.
func (m *Dashboard) submitAdd() tea.Cmd {
	draft := m.draft()
	if draft.Empty() {
		m.flashOK = ""
		m.flashErr = m.tab.Schema().TitleLabel + " is required!"
		return nil
	}

	m.busy = true
	m.flashOK = ""
	m.flashErr = ""
	cat := m.tab
	return func() tea.Msg {
		err := m.catalog.Add(m.ctx, cat, draft)
		return mutationDoneMsg{added: true, err: err}
	}
}

// submitDelete удаляет выбранную строку.
func (m *Dashboard) submitDelete() tea.Cmd {
	if len(m.rows) == 0 {
		return nil
	}
	id := m.rows[m.selected].ID

	m.busy = true
	m.flashOK = ""
	m.flashErr = ""
	cat := m.tab
	return func() tea.Msg {
		err := m.catalog.Delete(m.ctx, cat, id)
		return mutationDoneMsg{added: false, err: err}
	}
}

func (m *Dashboard) signOut() tea.Cmd {
	m.busy = true
	return func() tea.Msg {
		if err := m.store.SignOut(m.ctx); err != nil {
			return signOutFailedMsg{err: err}
		}
		// успех приходит уведомлением Store, шлюз сам размонтирует каталог
		return nil
	}
}

func (m Dashboard) Update(msg tea.Msg) (Dashboard, tea.Cmd) {
	switch msg := msg.(type) {
	case rowsFetchedMsg:
		// ответ для уже закрытой вкладки
		if msg.cat != m.tab {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			// после неудачного чтения список пуст, а не устаревший
			m.rows = nil
			m.selected = 0
			m.flashOK = ""
			m.flashErr = msg.err.Error()
			return m, nil
		}
		m.rows = msg.rows
		if m.selected >= len(m.rows) {
			m.selected = 0
		}
		return m, nil

	case mutationDoneMsg:
		m.busy = false
		if msg.err != nil {
			// список и черновик не трогаем
			m.flashOK = ""
			m.flashErr = msg.err.Error()
			return m, nil
		}
		if msg.added {
			m.flashOK = "Added!"
			m.resetForm()
			m.focus = focusList
		} else {
			m.flashOK = "Deleted!"
		}
		m.flashErr = ""
		// на момент ответа вкладка могла смениться, перечитываем текущую
		m.loading = true
		return m, m.fetch(m.tab)

	case signOutFailedMsg:
		m.busy = false
		m.flashOK = ""
		m.flashErr = msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		// пока мутация в полёте, заморожен весь ввод, включая смену
		// вкладки: перечитывание после мутации попадает в ту вкладку,
		// на которой мутация завершилась
		if m.busy {
			return m, nil
		}
		if m.focus == focusForm {
			return m.updateForm(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Dashboard) updateList(msg tea.KeyMsg) (Dashboard, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.PrevTab):
		return m, m.switchTab(-1)
	case key.Matches(msg, m.keys.NextTab):
		return m, m.switchTab(1)
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.rows)-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.New):
		m.focus = focusForm
		m.setField(0)
	case key.Matches(msg, m.keys.Delete):
		return m, m.submitDelete()
	case key.Matches(msg, m.keys.SignOut):
		return m, m.signOut()
	}
	return m, nil
}

func (m Dashboard) updateForm(msg tea.KeyMsg) (Dashboard, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m, m.submitAdd()
	case key.Matches(msg, m.keys.Field):
		m.setField((m.field + 1) % len(m.inputs))
		return m, nil
	case key.Matches(msg, m.keys.Back):
		m.focus = focusList
		for i := range m.inputs {
			m.inputs[i].Blur()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.field], cmd = m.inputs[m.field].Update(msg)
	return m, cmd
}

func tabLabel(c catalog.Category) string {
	s := c.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

func (m Dashboard) viewTabs() string {
	parts := make([]string, 0, 3)
	for _, c := range catalog.All() {
		label := tabLabel(c)
		if c == m.tab {
			parts = append(parts, styles.tabActive.Render(label))
		} else {
			parts = append(parts, styles.tabInactive.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

func (m Dashboard) viewRows() string {
	if m.loading {
		return styles.help.Render("Loading...")
	}
	if len(m.rows) == 0 {
		return styles.help.Render("Nothing here yet. Press n to add the first entry.")
	}

	var b strings.Builder
	for i, row := range m.rows {
		cursor := "  "
		if i == m.selected {
			cursor = styles.cursor.Render("> ")
		}
		b.WriteString(cursor)
		b.WriteString(styles.rowTitle.Render(row.DisplayTitle(m.tab)))
		meta := make([]string, 0, 3)
		if row.Artist != "" {
			meta = append(meta, row.Artist)
		}
		if row.Status != "" {
			meta = append(meta, row.Status)
		}
		if row.Notes != "" {
			meta = append(meta, row.Notes)
		}
		if len(meta) > 0 {
			b.WriteString(styles.rowMeta.Render("  " + strings.Join(meta, " · ")))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Dashboard) viewForm() string {
	var b strings.Builder
	b.WriteString(styles.rowTitle.Render("New entry"))
	b.WriteString("\n")
	for i := range m.inputs {
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString(styles.help.Render("enter: save • tab: next field • esc: back"))
	return b.String()
}

func (m Dashboard) View() string {
	var b strings.Builder
	b.WriteString(styles.title.Render(fmt.Sprintf("MuseShelf — %s", m.sess.Email)))
	b.WriteString("\n")
	b.WriteString(m.viewTabs())
	b.WriteString("\n\n")

	if m.focus == focusForm {
		b.WriteString(m.viewForm())
	} else {
		b.WriteString(m.viewRows())
	}
	b.WriteString("\n")

	switch {
	case m.busy:
		b.WriteString(styles.help.Render("Working..."))
	case m.flashOK != "":
		b.WriteString(styles.ok.Render(m.flashOK))
	case m.flashErr != "":
		b.WriteString(styles.err.Render(m.flashErr))
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
