package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/spending-api/internal/api"
	"github.com/phrazzld/spending-api/internal/api/middleware"
	"github.com/phrazzld/spending-api/internal/domain"
	"github.com/phrazzld/spending-api/internal/mocks"
	"github.com/phrazzld/spending-api/internal/platform/logger"
	"github.com/phrazzld/spending-api/internal/service"
	"github.com/phrazzld/spending-api/internal/service/auth"
	"github.com/phrazzld/spending-api/internal/store"
	"github.com/phrazzld/spending-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testServer wires the handlers over in-memory collections. Tokens are the
// caller's email prefixed with "token:".
type testServer struct {
	handler   http.Handler
	spendings *mocks.MemoryCollection[*domain.Spending]
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	_, log := logger.NewTestLogger(t)

	users := mocks.NewMemoryCollection(store.ErrUserNotFound, func() *domain.User { return &domain.User{} })
	spendings := mocks.NewMemoryCollection(store.ErrSpendingNotFound, func() *domain.Spending { return &domain.Spending{} })
	tokens := &mocks.MockTokenService{
		GenerateTokenFn: func(_ context.Context, subject string) (auth.AccessToken, error) {
			return auth.AccessToken{Value: "token:" + subject, Subject: subject}, nil
		},
		ValidateTokenFn: func(_ context.Context, token string) (*auth.Claims, error) {
			subject, ok := strings.CutPrefix(token, "token:")
			if !ok {
				return nil, auth.ErrMalformedToken
			}
			return &auth.Claims{Subject: subject}, nil
		},
	}

	authHandler := api.NewAuthHandler(service.NewUserService(users, nil, &mocks.MockPasswordHasher{}, tokens, log))
	spendingHandler := api.NewSpendingHandler(service.NewSpendingService(spendings, nil, log))
	authMiddleware := middleware.NewAuthMiddleware(tokens)

	r := chi.NewRouter()
	r.Use(middleware.TraceMiddleware(log))
	r.Post("/user/signup", authHandler.SignUp)
	r.Post("/user/signin", authHandler.SignIn)
	r.Route("/spending", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Get("/", spendingHandler.List)
		r.Post("/new", spendingHandler.Create)
		r.Get("/{id}", spendingHandler.Get)
		r.Put("/{id}", spendingHandler.Update)
		r.Delete("/{id}", spendingHandler.Delete)
	})

	return &testServer{handler: r, spendings: spendings}
}

func (s *testServer) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	return testutils.DoJSON(t, s.handler, method, path, token, body)
}

func (s *testServer) signIn(t *testing.T, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	return testutils.SignIn(t, s.handler, username, password)
}

func signUpBody(email, password string) string {
	body, _ := json.Marshal(api.SignUpRequest{Email: email, Password: password})
	return string(body)
}

func TestAuthHandler_SignUp(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantText   string
	}{
		{"created", `{"email":"a@example.com","password":"pw"}`, http.StatusOK, api.MsgUserCreated},
		{"duplicate", `{"email":"A@example.com","password":"other"}`, http.StatusConflict, api.MsgEmailExists},
		{"invalid email", `{"email":"nope","password":"pw"}`, http.StatusBadRequest, "Invalid Email: invalid email format"},
		{"missing password", `{"email":"b@example.com"}`, http.StatusBadRequest, "Invalid Password: required field"},
		{"malformed json", `{"email":`, http.StatusBadRequest, api.MsgInvalidRequest},
		{"longest password", signUpBody("c@example.com", strings.Repeat("a", domain.MaxPasswordBytes)), http.StatusOK, api.MsgUserCreated},
		{"password too long", signUpBody("d@example.com", strings.Repeat("a", 80)), http.StatusBadRequest, "Invalid Password: is too long"},
		{"password too long in bytes", signUpBody("e@example.com", strings.Repeat("é", 40)), http.StatusBadRequest, "Invalid password: is too long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := srv.do(t, http.MethodPost, "/user/signup", "", tt.body)
			if tt.wantStatus == http.StatusOK {
				testutils.AssertMessageResponse(t, rec, tt.wantText)
			} else {
				testutils.AssertErrorResponse(t, rec, tt.wantStatus, tt.wantText)
			}
		})
	}
}

func TestAuthHandler_SignIn(t *testing.T) {
	srv := newTestServer(t)
	require.Equal(t, http.StatusOK,
		srv.do(t, http.MethodPost, "/user/signup", "", `{"email":"a@example.com","password":"pw"}`).Code)

	rec := srv.signIn(t, "a@example.com", "pw")
	require.Equal(t, http.StatusOK, rec.Code)
	var token api.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &token))
	assert.Equal(t, "token:a@example.com", token.AccessToken)
	assert.Equal(t, "Bearer", token.TokenType)

	rec = srv.signIn(t, "a@example.com", "wrong")
	testutils.AssertErrorResponse(t, rec, http.StatusUnauthorized, api.MsgInvalidDetails)

	rec = srv.signIn(t, "nobody@example.com", "pw")
	testutils.AssertErrorResponse(t, rec, http.StatusNotFound, api.MsgUserNotFound)

	rec = srv.signIn(t, "", "pw")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSpendingHandler(t *testing.T) {
	srv := newTestServer(t)
	const alice, bob = "token:alice@example.com", "token:bob@example.com"

	rec := srv.do(t, http.MethodPost, "/spending/new", alice,
		`{"date":"2024-05-01","food":12.5,"transport":3,"shopping":0,"total":15.5,"creator":"bob@example.com"}`)
	testutils.AssertMessageResponse(t, rec, api.MsgRecordCreated)

	rec = srv.do(t, http.MethodGet, "/spending/", alice, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []api.SpendingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	record := list[0]
	assert.Equal(t, "alice@example.com", record.Creator)
	path := fmt.Sprintf("/spending/%s", record.ID)

	t.Run("list is scoped to caller", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/spending/", bob, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("get", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, path, alice, "")
		require.Equal(t, http.StatusOK, rec.Code)
		var got map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, record.ID.String(), got["_id"])
		assert.Equal(t, "alice@example.com", got["creator"])

		rec = srv.do(t, http.MethodGet, path, bob, "")
		testutils.AssertErrorResponse(t, rec, http.StatusBadRequest, api.MsgNotAllowed)

		rec = srv.do(t, http.MethodGet, "/spending/not-a-uuid", alice, "")
		testutils.AssertErrorResponse(t, rec, http.StatusNotFound, api.MsgRecordNotFound)
	})

	t.Run("update", func(t *testing.T) {
		rec := srv.do(t, http.MethodPut, path, bob, `{"food":1}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = srv.do(t, http.MethodPut, path, alice, `{"food":20,"creator":"bob@example.com"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var updated api.SpendingResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
		assert.Equal(t, 20.0, updated.Food)
		assert.Equal(t, 3.0, updated.Transport)
		assert.Equal(t, "alice@example.com", updated.Creator)

		rec = srv.do(t, http.MethodPut, path, alice, `{"total":-1}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/spending/", "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		rec = srv.do(t, http.MethodGet, "/spending/", "garbage", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("create validation", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/spending/new", alice, `{"date":"yesterday"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, 1, srv.spendings.Len())
	})

	t.Run("delete", func(t *testing.T) {
		rec := srv.do(t, http.MethodDelete, path, bob, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = srv.do(t, http.MethodDelete, path, alice, "")
		testutils.AssertMessageResponse(t, rec, api.MsgRecordDeleted)

		rec = srv.do(t, http.MethodDelete, path, alice, "")
		testutils.AssertErrorResponse(t, rec, http.StatusNotFound, api.MsgRecordNotFound)
	})
}

func TestSpendingHandler_StorageFailure(t *testing.T) {
	srv := newTestServer(t)
	srv.spendings.Err = store.NewStoreError("spendings", "get_all", "database operation failed",
		fmt.Errorf("dial postgres://admin:secret@db/app"))

	rec := srv.do(t, http.MethodGet, "/spending/", "token:alice@example.com", "")
	testutils.AssertErrorResponse(t, rec, http.StatusInternalServerError, api.MsgUnexpected)
	assert.NotContains(t, rec.Body.String(), "secret")
}
