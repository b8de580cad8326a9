package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"MuseShelf/internal/catalog"
	"MuseShelf/internal/cli/repo"
)

// Типизированные ошибки бэкенда. Два случая спец-обрабатываются в UI
// (дружелюбные формулировки), остальные показываются как есть.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoSession          = errors.New("no session")
)

// ServerError — прочая ошибка бэкенда; Message отдаётся пользователю дословно.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string { return e.Message }

// SessionInfo — данные сессии, как их отдаёт сервер.
type SessionInfo struct {
	UserID int64
	Email  string
}

// Client — HTTP-клиент бэкенда MuseShelf. Токен сессии хранится
// в TokenStore и передаётся auth-cookie в каждом запросе.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  repo.TokenStore

	onUnauthorized func()
}

// New создаёт клиент для serverURL (схема+хост, без завершающего /).
func New(serverURL string, tokens repo.TokenStore) *Client {
	return &Client{baseURL: serverURL, http: http.DefaultClient, tokens: tokens}
}

// OnUnauthorized регистрирует обработчик 401 на маршрутах каталога.
// Такой отказ означает смерть сессии под живым представлением
// (истечение токена), а не штатное "сессии нет" при старте или входе.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

func (c *Client) unauthorized() error {
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
	return ErrNoSession
}

// doJSON отправляет запрос с JSON-телом (payload может быть nil) и
// auth-cookie из хранилища токена.
func (c *Client) doJSON(ctx context.Context, method, path string, payload any) (*http.Response, []byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, err := c.tokens.Load(); err == nil && token != "" {
		req.Header.Set("Cookie", "auth_token="+token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)
	return resp, respBody, nil
}

// serverError разбирает тело {"error": "..."} в ServerError.
func serverError(status int, body []byte) error {
	var e struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err != nil || e.Error == "" {
		e.Error = fmt.Sprintf("server error (status %d)", status)
	}
	return &ServerError{Status: status, Message: e.Error}
}

type sessionResponse struct {
	User struct {
		ID    int64  `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

// SignUp регистрирует аккаунт. Успех означает отправку письма
// подтверждения, сессия при этом не создаётся.
func (c *Client) SignUp(ctx context.Context, email, password string) error {
	resp, body, err := c.doJSON(ctx, http.MethodPost, "/api/auth/signup",
		map[string]string{"email": email, "password": password})
	if err != nil {
		return err
	}
	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusConflict:
		return ErrEmailTaken
	default:
		return serverError(resp.StatusCode, body)
	}
}

// SignIn выполняет вход и сохраняет auth-токен из Set-Cookie.
func (c *Client) SignIn(ctx context.Context, email, password string) (*SessionInfo, error) {
	resp, body, err := c.doJSON(ctx, http.MethodPost, "/api/auth/login",
		map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}
	switch resp.StatusCode {
	case http.StatusOK:
		// персистим cookie, иначе сессия не переживёт перезапуск клиента
		for _, ck := range resp.Cookies() {
			if ck.Name == "auth_token" && ck.Value != "" {
				if err := c.tokens.Save(ck.Value); err != nil {
					return nil, fmt.Errorf("save auth token: %w", err)
				}
			}
		}
		var sr sessionResponse
		if err := json.Unmarshal(body, &sr); err != nil {
			return nil, err
		}
		return &SessionInfo{UserID: sr.User.ID, Email: sr.User.Email}, nil
	case http.StatusUnauthorized:
		return nil, ErrInvalidCredentials
	default:
		return nil, serverError(resp.StatusCode, body)
	}
}

// SignOut завершает сессию на сервере и забывает локальный токен.
func (c *Client) SignOut(ctx context.Context) error {
	resp, body, err := c.doJSON(ctx, http.MethodPost, "/api/auth/logout", nil)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return serverError(resp.StatusCode, body)
	}
	return c.tokens.Clear()
}

// CurrentSession возвращает сессию по сохранённому токену.
// Отсутствие сессии — ErrNoSession, не сбой.
func (c *Client) CurrentSession(ctx context.Context) (*SessionInfo, error) {
	resp, body, err := c.doJSON(ctx, http.MethodGet, "/api/auth/session", nil)
	if err != nil {
		return nil, err
	}
	switch resp.StatusCode {
	case http.StatusOK:
		var sr sessionResponse
		if err := json.Unmarshal(body, &sr); err != nil {
			return nil, err
		}
		return &SessionInfo{UserID: sr.User.ID, Email: sr.User.Email}, nil
	case http.StatusUnauthorized:
		return nil, ErrNoSession
	default:
		return nil, serverError(resp.StatusCode, body)
	}
}

// insertPayload — тело вставки строки; поля по схеме категории.
type insertPayload struct {
	Title     string `json:"title,omitempty"`
	AlbumName string `json:"album_name,omitempty"`
	Artist    string `json:"artist,omitempty"`
	Notes     string `json:"notes"`
	Status    string `json:"status"`
}

// ListRows запрашивает строки текущего пользователя в категории,
// отсортированные сервером (created_at DESC).
func (c *Client) ListRows(ctx context.Context, cat catalog.Category) ([]catalog.Row, error) {
	resp, body, err := c.doJSON(ctx, http.MethodGet, "/api/catalog/"+cat.String(), nil)
	if err != nil {
		return nil, err
	}
	switch resp.StatusCode {
	case http.StatusOK:
		var rows []catalog.Row
		if err := json.Unmarshal(body, &rows); err != nil {
			return nil, err
		}
		return rows, nil
	case http.StatusUnauthorized:
		return nil, c.unauthorized()
	default:
		return nil, serverError(resp.StatusCode, body)
	}
}

// InsertRow добавляет строку из черновика. Payload собирается по
// схеме категории: movies/books несут title, albums — album_name+artist.
func (c *Client) InsertRow(ctx context.Context, cat catalog.Category, draft catalog.Draft) error {
	p := insertPayload{Notes: draft.Notes, Status: draft.Status}
	if cat.Schema().HasArtist {
		p.AlbumName = draft.Title
		p.Artist = draft.Artist
	} else {
		p.Title = draft.Title
	}

	resp, body, err := c.doJSON(ctx, http.MethodPost, "/api/catalog/"+cat.String(), p)
	if err != nil {
		return err
	}
	switch resp.StatusCode {
	case http.StatusCreated, http.StatusOK:
		return nil
	case http.StatusUnauthorized:
		return c.unauthorized()
	default:
		return serverError(resp.StatusCode, body)
	}
}

// DeleteRow удаляет строку по id в категории.
func (c *Client) DeleteRow(ctx context.Context, cat catalog.Category, id string) error {
	resp, body, err := c.doJSON(ctx, http.MethodDelete, "/api/catalog/"+cat.String()+"/"+id, nil)
	if err != nil {
		return err
	}
	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusUnauthorized:
		return c.unauthorized()
	default:
		return serverError(resp.StatusCode, body)
	}
}
