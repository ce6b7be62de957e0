package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/workwear/internal/models"
	"github.com/example/workwear/internal/services"
)

func errorBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body["error"]
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/teapot", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "Чайник")
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("connection reset")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/teapot", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)
	assert.Equal(t, "Чайник", errorBody(t, resp))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, genericErrorMessage, errorBody(t, resp))
}

type fakeNotifier struct {
	configured bool
	err        error
	got        []services.ContactRequest
}

func (f *fakeNotifier) Configured() bool { return f.configured }

func (f *fakeNotifier) NotifyContact(_ context.Context, req services.ContactRequest) error {
	f.got = append(f.got, req)
	return f.err
}

func postContact(t *testing.T, notifier ContactNotifier, body string) *http.Response {
	t.Helper()
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Post("/api/contact", NewContactHandler(notifier).Submit)

	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestContactSubmit(t *testing.T) {
	const valid = `{"name":" Иван ","phone":"+7 900","message":"Нужны перчатки"}`

	notifier := &fakeNotifier{configured: true}
	resp := postContact(t, notifier, valid)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Len(t, notifier.got, 1)
	assert.Equal(t, "Иван", notifier.got[0].Name)
	assert.False(t, notifier.got[0].SentAt.IsZero())

	resp = postContact(t, &fakeNotifier{configured: true}, `{"name":"Иван","phone":"  ","message":"x"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = postContact(t, &fakeNotifier{configured: false}, valid)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	resp = postContact(t, &fakeNotifier{configured: true, err: errors.New("telegram returned status 502")}, valid)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Failed to send message to Telegram. Please try again later.", errorBody(t, resp))
}

func TestProductRequestApplyKeepsOmittedFields(t *testing.T) {
	price := 99.0
	isNew := false
	req := &productRequest{Name: "Перчатки", Price: &price, CategoryID: 3, IsNew: &isNew}

	manufacturer := "Восток"
	product := productFixture()
	product.Manufacturer = &manufacturer
	req.apply(product)

	assert.Equal(t, "Перчатки", product.Name)
	assert.Equal(t, 99.0, product.Price)
	assert.Equal(t, uint(3), product.CategoryID)
	assert.False(t, product.IsNew)
	assert.True(t, product.IsPublished)
	require.NotNil(t, product.Manufacturer)
	assert.Equal(t, "Восток", *product.Manufacturer)

	assert.Nil(t, req.imageList())
	images := []string{" a.jpg ", "", "b.jpg"}
	req.Images = &images
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, req.imageList())
}

func productFixture() *models.Product {
	return &models.Product{
		Name:        "Куртка",
		Price:       10,
		CategoryID:  1,
		Status:      models.StatusInStock,
		SaleType:    models.SaleBoth,
		IsPublished: true,
		IsNew:       true,
	}
}
