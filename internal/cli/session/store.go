package session

import (
	"context"
	"errors"
	"sync"

	"MuseShelf/internal/cli/api"
)

// Session — read-only зеркало сессии Session Store.
// Владелец состояния — сервер; локальная копия обновляется только
// через канал уведомлений.
type Session struct {
	UserID int64
	Email  string
}

// Subscription — подписка на смену сессии.
type Subscription interface {
	// Unsubscribe снимает подписку; повторный вызов безопасен.
	Unsubscribe()
}

// Store — клиент Session Store: текущая сессия, вход/выход и
// уведомления об изменениях. Уведомления рассылаются всем живым
// подпискам синхронно, в порядке подписки.
type Store struct {
	api *api.Client

	mu     sync.Mutex
	nextID int
	subs   map[int]func(*Session)
}

// NewStore создаёт Store поверх API-клиента. Истечение сессии
// (401 на маршрутах каталога) приходит подписчикам тем же каналом
// уведомлений, что и явный выход.
func NewStore(c *api.Client) *Store {
	s := &Store{api: c, subs: make(map[int]func(*Session))}
	c.OnUnauthorized(func() { s.notify(nil) })
	return s
}

// Current возвращает текущую сессию или nil, если её нет.
// Ошибка — только сбой запроса, отсутствие сессии ошибкой не считается.
func (s *Store) Current(ctx context.Context) (*Session, error) {
	info, err := s.api.CurrentSession(ctx)
	if err != nil {
		if errors.Is(err, api.ErrNoSession) {
			return nil, nil
		}
		return nil, err
	}
	return &Session{UserID: info.UserID, Email: info.Email}, nil
}

type subscription struct {
	store *Store
	id    int
	once  sync.Once
}

func (sub *subscription) Unsubscribe() {
	sub.once.Do(func() {
		sub.store.mu.Lock()
		delete(sub.store.subs, sub.id)
		sub.store.mu.Unlock()
	})
}

// OnChange регистрирует обработчик смены сессии. nil в обработчике
// означает выход/истечение сессии.
func (s *Store) OnChange(handler func(*Session)) Subscription {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = handler
	s.mu.Unlock()
	return &subscription{store: s, id: id}
}

func (s *Store) notify(sess *Session) {
	s.mu.Lock()
	handlers := make([]func(*Session), 0, len(s.subs))
	for id := 0; id < s.nextID; id++ {
		if h, ok := s.subs[id]; ok {
			handlers = append(handlers, h)
		}
	}
	s.mu.Unlock()

	// вызываем без блокировки, чтобы обработчик мог отписаться
	for _, h := range handlers {
		h(sess)
	}
}

// SignIn выполняет вход; при успехе уведомляет подписчиков новой сессией.
func (s *Store) SignIn(ctx context.Context, email, password string) error {
	info, err := s.api.SignIn(ctx, email, password)
	if err != nil {
		return err
	}
	s.notify(&Session{UserID: info.UserID, Email: info.Email})
	return nil
}

// SignUp регистрирует аккаунт. Сессия не создаётся (регистрация ждёт
// подтверждения e-mail), поэтому уведомления нет.
func (s *Store) SignUp(ctx context.Context, email, password string) error {
	return s.api.SignUp(ctx, email, password)
}

// SignOut завершает сессию; при успехе уведомляет подписчиков nil.
// Локальное состояние представления меняет не вызов, а уведомление.
func (s *Store) SignOut(ctx context.Context) error {
	if err := s.api.SignOut(ctx); err != nil {
		return err
	}
	s.notify(nil)
	return nil
}
