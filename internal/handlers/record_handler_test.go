package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"MuseShelf/internal/catalog"
)

func TestRecords_List(t *testing.T) {
	m := new(mockRecordRepo)
	router := newTestRouter(t, nil, m)

	t.Run("unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/catalog/movies/", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("unknown category", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/catalog/games/", nil)
		addAuthCookie(t, req, 7, "test-secret")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("ok ordered rows", func(t *testing.T) {
		m.ExpectedCalls = nil
		now := time.Now().UTC()
		m.On("List", mock.Anything, catalog.Movies, int64(7)).Return([]catalog.Row{
			{ID: "b", UserID: 7, Title: "Alien", CreatedAt: now},
			{ID: "a", UserID: 7, Title: "Dune", CreatedAt: now.Add(-time.Hour)},
		}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/catalog/movies/", nil)
		addAuthCookie(t, req, 7, "test-secret")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var rows []catalog.Row
		_ = json.NewDecoder(rr.Result().Body).Decode(&rows)
		if assert.Len(t, rows, 2) {
			assert.Equal(t, "Alien", rows[0].Title)
		}
		m.AssertExpectations(t)
	})

	t.Run("empty list is a valid state", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("List", mock.Anything, catalog.Books, int64(7)).Return([]catalog.Row{}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/catalog/books/", nil)
		addAuthCookie(t, req, 7, "test-secret")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "[]\n", rr.Body.String())
		m.AssertExpectations(t)
	})
}

func TestRecords_Insert(t *testing.T) {
	m := new(mockRecordRepo)
	router := newTestRouter(t, nil, m)

	t.Run("movie payload", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("Insert", mock.Anything, catalog.Movies, mock.MatchedBy(func(r *catalog.Row) bool {
			// user_id из сессии, id назначен сервером
			return r.UserID == 7 && r.ID != "" && r.Title == "Dune" && r.Status == "watched" && r.Notes == ""
		})).Return(nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/catalog/movies/",
			strings.NewReader(`{"title":"Dune","notes":"","status":"watched","user_id":9999}`))
		req.Header.Set("Content-Type", "application/json")
		addAuthCookie(t, req, 7, "test-secret")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		m.AssertExpectations(t)
	})

	t.Run("album payload", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("Insert", mock.Anything, catalog.Albums, mock.MatchedBy(func(r *catalog.Row) bool {
			return r.AlbumName == "Kid A" && r.Artist == "Radiohead" && r.Title == ""
		})).Return(nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/catalog/albums/",
			strings.NewReader(`{"album_name":"Kid A","artist":"Radiohead"}`))
		req.Header.Set("Content-Type", "application/json")
		addAuthCookie(t, req, 7, "test-secret")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		m.AssertExpectations(t)
	})

	t.Run("empty title rejected", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.Calls = nil

		req := httptest.NewRequest(http.MethodPost, "/api/catalog/movies/",
			strings.NewReader(`{"notes":"no title"}`))
		req.Header.Set("Content-Type", "application/json")
		addAuthCookie(t, req, 7, "test-secret")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		m.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRecords_Delete(t *testing.T) {
	m := new(mockRecordRepo)
	router := newTestRouter(t, nil, m)

	t.Run("ok", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("DeleteByID", mock.Anything, catalog.Movies, int64(7), "row-1").Return(true, nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/catalog/movies/row-1", nil)
		addAuthCookie(t, req, 7, "test-secret")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		m.AssertExpectations(t)
	})

	t.Run("missing or foreign row", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("DeleteByID", mock.Anything, catalog.Movies, int64(7), "row-2").Return(false, nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/catalog/movies/row-2", nil)
		addAuthCookie(t, req, 7, "test-secret")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		m.AssertExpectations(t)
	})
}
