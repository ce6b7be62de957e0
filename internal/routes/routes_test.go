package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/workwear/internal/config"
	"github.com/example/workwear/internal/database"
	"github.com/example/workwear/internal/handlers"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "s3cret"
)

type testServer struct {
	t        *testing.T
	app      *fiber.App
	cfg      *config.Config
	db       *gorm.DB
	telegram *httptest.Server
	sent     atomic.Int32
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(database.SQLite("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.Migrate(db))

	s := &testServer{t: t, db: db}
	s.telegram = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.sent.Add(1)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(s.telegram.Close)

	s.cfg = &config.Config{
		AppEnv:           "development",
		JWTSecret:        "test-secret",
		TokenExpires:     24 * time.Hour,
		AdminEmail:       adminEmail,
		AdminPassword:    adminPassword,
		TelegramBotToken: "TOKEN",
		TelegramChatID:   "42",
		TelegramAPIURL:   s.telegram.URL,
		ContactRateLimit: 5,
		CORSOrigins:      "*",
	}

	s.app = fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	Register(s.app, db, s.cfg, nil)
	return s
}

func (s *testServer) do(method, path string, body interface{}, cookies ...*http.Cookie) *http.Response {
	s.t.Helper()
	return s.send(s.newRequest(method, path, body, cookies...))
}

func (s *testServer) doWithHeader(method, path string, body interface{}, key, value string) *http.Response {
	s.t.Helper()
	req := s.newRequest(method, path, body)
	req.Header.Set(key, value)
	return s.send(req)
}

func (s *testServer) newRequest(method, path string, body interface{}, cookies ...*http.Cookie) *http.Request {
	s.t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	return req
}

func (s *testServer) send(req *http.Request) *http.Response {
	s.t.Helper()
	resp, err := s.app.Test(req, -1)
	require.NoError(s.t, err)
	return resp
}

func (s *testServer) login() *http.Cookie {
	s.t.Helper()
	resp := s.do(http.MethodPost, "/api/admin/login", fiber.Map{"email": adminEmail, "password": adminPassword})
	require.Equal(s.t, fiber.StatusOK, resp.StatusCode)
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "admin-token" {
			return cookie
		}
	}
	s.t.Fatal("login did not set the session cookie")
	return nil
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func errorMessage(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	decode(t, resp, &body)
	return body.Error
}

type categoryJSON struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	ProductCount int64  `json:"productCount"`
}

type productJSON struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl"`
	Status      string  `json:"status"`
	SaleType    string  `json:"saleType"`
	IsPublished bool    `json:"isPublished"`
	IsNew       bool    `json:"isNew"`
	Category    *struct {
		ID   uint   `json:"id"`
		Slug string `json:"slug"`
	} `json:"category"`
	Images []struct {
		URL      string `json:"url"`
		OrderNum int    `json:"order_num"`
	} `json:"images"`
}

func (s *testServer) createCategory(cookie *http.Cookie, name string) categoryJSON {
	s.t.Helper()
	resp := s.do(http.MethodPost, "/api/admin/categories", fiber.Map{"name": name}, cookie)
	require.Equal(s.t, fiber.StatusOK, resp.StatusCode)
	var category categoryJSON
	decode(s.t, resp, &category)
	return category
}

func (s *testServer) createProduct(cookie *http.Cookie, body fiber.Map) productJSON {
	s.t.Helper()
	resp := s.do(http.MethodPost, "/api/admin/products", body, cookie)
	require.Equal(s.t, fiber.StatusCreated, resp.StatusCode)
	var product productJSON
	decode(s.t, resp, &product)
	return product
}

func utoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
