package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/testdb"
)

type testEnv struct {
	E    *echo.Echo
	Repo *repo.GormRepo
	Auth *service.AuthService
}

type response struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	r := &repo.GormRepo{DB: testdb.New(t)}
	authSvc := &service.AuthService{
		Repo:          r,
		AccessSecret:  []byte("access-secret"),
		RefreshSecret: []byte("refresh-secret"),
	}
	require.NoError(t, authSvc.EnsureAdmin(context.Background(), "admin", "adminpass"))
	coupons := &service.CouponService{Repo: r}

	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler(false)
	Register(e, &Deps{
		Orders:    &OrderHTTP{Svc: &service.OrderService{Repo: r}},
		Reviews:   &ReviewHTTP{Svc: &service.ReviewService{Repo: r}},
		Catalog:   &CatalogHTTP{Svc: &service.CatalogService{Repo: r}},
		Coupons:   &CouponHTTP{Svc: coupons},
		Settings:  &SettingsHTTP{Svc: &service.SettingsService{Repo: r, Coupons: coupons}},
		Admin:     &AdminHTTP{Svc: &service.AdminService{Repo: r}},
		Auth:      &AuthHTTP{Svc: authSvc},
		JWTSecret: authSvc.AccessSecret,
		Refresher: authSvc,
	})
	return &testEnv{E: e, Repo: r, Auth: authSvc}
}

func (env *testEnv) do(t *testing.T, method, path string, body any, token string) (*httptest.ResponseRecorder, response) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)

	var resp response
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	}
	return rec, resp
}

func (env *testEnv) login(t *testing.T, username, password string) string {
	t.Helper()
	rec, resp := env.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{"username": username, "password": password}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var session struct {
		AccessToken string `json:"accessToken"`
		IsAdmin     bool   `json:"isAdmin"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &session))
	require.NotEmpty(t, session.AccessToken)
	return session.AccessToken
}

func (env *testEnv) registerUser(t *testing.T, username string) string {
	t.Helper()
	rec, _ := env.do(t, http.MethodPost, "/api/v1/auth/register", map[string]string{"username": username, "password": "secret1"}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return env.login(t, username, "secret1")
}

func orderBody(username, productID string) map[string]any {
	return map[string]any{
		"customer": map[string]any{
			"firstName": "Ada",
			"lastName":  "Lovelace",
			"email":     "ada@example.com",
			"phone":     "+15550100",
			"username":  username,
		},
		"address": map[string]any{"street": "1 Analytical Way", "city": "London"},
		"items": []map[string]any{
			{"productId": productID, "name": "Notebook", "price": 50, "quantity": 2},
		},
		"pricing": map[string]any{"subtotal": 100, "shipping": 10, "tax": 7, "total": 117},
	}
}
