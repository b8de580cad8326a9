package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"MuseShelf/internal/catalog"
	"MuseShelf/internal/cli/session"
)

// stubStore — подменный Session Store для тестов представлений.
type stubStore struct {
	current    *session.Session
	currentErr error

	signInErr  error
	signUpErr  error
	signOutErr error

	signInCalls  int
	signUpCalls  int
	signOutCalls int

	handlers []func(*session.Session)
}

func (s *stubStore) Current(ctx context.Context) (*session.Session, error) {
	return s.current, s.currentErr
}

func (s *stubStore) OnChange(handler func(*session.Session)) session.Subscription {
	s.handlers = append(s.handlers, handler)
	return stubSubscription{}
}

func (s *stubStore) SignIn(ctx context.Context, email, password string) error {
	s.signInCalls++
	return s.signInErr
}

func (s *stubStore) SignUp(ctx context.Context, email, password string) error {
	s.signUpCalls++
	return s.signUpErr
}

func (s *stubStore) SignOut(ctx context.Context) error {
	s.signOutCalls++
	return s.signOutErr
}

type stubSubscription struct{}

func (stubSubscription) Unsubscribe() {}

type addedDraft struct {
	cat   catalog.Category
	draft catalog.Draft
}

type deletedRow struct {
	cat catalog.Category
	id  string
}

// fakeCatalog — подменный CatalogService с записью вызовов.
type fakeCatalog struct {
	rows    map[catalog.Category][]catalog.Row
	listErr error
	addErr  error
	delErr  error

	listed  []catalog.Category
	added   []addedDraft
	deleted []deletedRow
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{rows: make(map[catalog.Category][]catalog.Row)}
}

func (f *fakeCatalog) List(ctx context.Context, cat catalog.Category) ([]catalog.Row, error) {
	f.listed = append(f.listed, cat)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.rows[cat], nil
}

func (f *fakeCatalog) Add(ctx context.Context, cat catalog.Category, draft catalog.Draft) error {
	f.added = append(f.added, addedDraft{cat: cat, draft: draft})
	return f.addErr
}

func (f *fakeCatalog) Delete(ctx context.Context, cat catalog.Category, id string) error {
	f.deleted = append(f.deleted, deletedRow{cat: cat, id: id})
	return f.delErr
}

// runCmd выполняет команду и возвращает её сообщение.
func runCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
