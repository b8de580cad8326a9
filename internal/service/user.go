package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"MuseShelf/internal/model"
	"MuseShelf/internal/repo"
)

var (
	// ErrEmailTaken — e-mail уже зарегистрирован.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials — неизвестный e-mail или неверный пароль.
	// Снаружи случаи неразличимы, чтобы не раскрывать существование аккаунта.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotConfirmed — аккаунт создан, но e-mail ещё не подтверждён.
	ErrNotConfirmed = errors.New("email not confirmed")
)

// UserService инкапсулирует регистрацию и вход.
type UserService struct {
	repo repo.UserRepository
}

func NewUserService(r repo.UserRepository) *UserService {
	return &UserService{repo: r}
}

// Register создаёт пользователя с bcrypt-хешем пароля.
// confirmed=true пропускает подтверждение e-mail (AUTO_CONFIRM).
func (s *UserService) Register(ctx context.Context, email, password string, confirmed bool) (*model.User, error) {
	existing, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return s.repo.CreateUser(ctx, &model.User{
		Email:     email,
		Password:  string(hash),
		Confirmed: confirmed,
	})
}

// Login проверяет учётные данные и возвращает пользователя.
func (s *UserService) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.Confirmed {
		return nil, ErrNotConfirmed
	}
	return user, nil
}

// Current возвращает пользователя по id из валидного токена.
func (s *UserService) Current(ctx context.Context, id int64) (*model.User, error) {
	return s.repo.GetUserByID(ctx, id)
}
