package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"MuseShelf/internal/catalog"
	"MuseShelf/internal/config"
	"MuseShelf/internal/handlers"
	"MuseShelf/internal/middleware"
	"MuseShelf/internal/model"
	"MuseShelf/internal/repo"
	"MuseShelf/internal/service"
)

// Minimal mocks
type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

type mockRecordRepo struct{ mock.Mock }

func (m *mockRecordRepo) List(ctx context.Context, cat catalog.Category, userID int64) ([]catalog.Row, error) {
	args := m.Called(ctx, cat, userID)
	if v, ok := args.Get(0).([]catalog.Row); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRecordRepo) Insert(ctx context.Context, cat catalog.Category, row *catalog.Row) error {
	args := m.Called(ctx, cat, row)
	return args.Error(0)
}

func (m *mockRecordRepo) DeleteByID(ctx context.Context, cat catalog.Category, userID int64, id string) (bool, error) {
	args := m.Called(ctx, cat, userID, id)
	return args.Bool(0), args.Error(1)
}

var _ repo.RecordRepository = (*mockRecordRepo)(nil)

// --- Helpers ---
func newTestRouter(t *testing.T, ur repo.UserRepository, rr repo.RecordRepository) http.Handler {
	t.Helper()
	cfg := &config.Config{AuthSecret: "test-secret"}
	logger := zap.NewNop().Sugar()

	if ur == nil {
		ur = &mockUserRepo{}
	}
	if rr == nil {
		rr = &mockRecordRepo{}
	}
	userSvc := service.NewUserService(ur)
	recordSvc := service.NewRecordService(rr, logger)

	h := handlers.NewHandler(userSvc, recordSvc, logger, cfg)
	return h.Router
}

func addAuthCookie(t *testing.T, req *http.Request, userID int64, secret string) {
	t.Helper()
	rr := httptest.NewRecorder()
	_ = middleware.SetLoginCookie(rr, userID, secret)
	for _, c := range rr.Result().Cookies() {
		req.AddCookie(c)
	}
}
