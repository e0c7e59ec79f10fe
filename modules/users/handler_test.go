package users

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/gigledger/gigledger/modules/auth"
)

const testSigningSecret = "test-signing-secret-32-bytes-ok!"

func newTestHandler(t *testing.T, storage *MockStorage) (http.Handler, *auth.TokenIssuer) {
	t.Helper()

	tokens, err := auth.NewTokenIssuer(testSigningSecret, time.Hour, nil)
	require.NoError(t, err)

	svc := NewService(storage, auth.NewHasher(bcrypt.MinCost), nil)
	return NewHandler(svc, nil).Routes(auth.Middleware(tokens)), tokens
}

func tokenFor(t *testing.T, tokens *auth.TokenIssuer, role string) string {
	t.Helper()

	token, err := tokens.Issue(auth.Account{
		ID:    "u1",
		Email: "ana@example.com",
		Name:  "Ana",
		Role:  role,
	})
	require.NoError(t, err)
	return token
}

func TestHandlerAuthz(t *testing.T) {
	t.Parallel()

	t.Run("rejects unauthenticated reads", func(t *testing.T) {
		t.Parallel()

		handler, _ := newTestHandler(t, new(MockStorage))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("customer can read", func(t *testing.T) {
		t.Parallel()

		storage := new(MockStorage)
		storage.On("List", mock.Anything, mock.Anything).Return([]User{}, int64(0), nil)
		handler, tokens := newTestHandler(t, storage)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, tokens, auth.RoleCustomer))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("customer cannot delete", func(t *testing.T) {
		t.Parallel()

		handler, tokens := newTestHandler(t, new(MockStorage))
		req := httptest.NewRequest(http.MethodDelete, "/507f1f77bcf86cd799439011", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, tokens, auth.RoleCustomer))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin can delete", func(t *testing.T) {
		t.Parallel()

		storage := new(MockStorage)
		storage.On("Delete", mock.Anything, "507f1f77bcf86cd799439011").Return(nil)
		handler, tokens := newTestHandler(t, storage)

		req := httptest.NewRequest(http.MethodDelete, "/507f1f77bcf86cd799439011", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, tokens, auth.RoleAdmin))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		storage.AssertExpectations(t)
	})
}

func TestHandlerListQuery(t *testing.T) {
	t.Parallel()

	storage := new(MockStorage)
	storage.On("List", mock.Anything, mock.MatchedBy(func(p ListParams) bool {
		return p.Search == "designer" &&
			p.Region == "Asia" &&
			p.MinRate != nil && *p.MinRate == 30 &&
			p.SortBy == "hourlyRate" && p.SortDesc &&
			p.Page == 2 && p.PerPage == 10
	})).Return([]User{{Name: "Ana"}}, int64(11), nil)

	handler, tokens := newTestHandler(t, storage)
	url := "/?search=designer&region=Asia&minRate=30&sortBy=hourlyRate&order=desc&page=2&perPage=10"
	req := httptest.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, tokens, auth.RoleCustomer))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Meta struct {
			Pagination struct {
				Total      int64 `json:"total"`
				TotalPages int   `json:"totalPages"`
				HasPrev    bool  `json:"hasPrev"`
			} `json:"pagination"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, int64(11), envelope.Meta.Pagination.Total)
	assert.Equal(t, 2, envelope.Meta.Pagination.TotalPages)
	assert.True(t, envelope.Meta.Pagination.HasPrev)
}

func TestHandlerCreate(t *testing.T) {
	t.Parallel()

	t.Run("validates the payload", func(t *testing.T) {
		t.Parallel()

		handler, tokens := newTestHandler(t, new(MockStorage))
		body, _ := json.Marshal(map[string]any{"name": "Ana", "email": "not-an-email", "password": "short"})
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, tokens, auth.RoleAdmin))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("duplicate email maps to conflict", func(t *testing.T) {
		t.Parallel()

		storage := new(MockStorage)
		storage.On("Create", mock.Anything, mock.Anything).Return(ErrEmailAlreadyExists)
		handler, tokens := newTestHandler(t, storage)

		body, _ := json.Marshal(map[string]any{
			"name":     "Ana",
			"email":    "ana@example.com",
			"password": "secret-pass",
		})
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, tokens, auth.RoleAdmin))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}
