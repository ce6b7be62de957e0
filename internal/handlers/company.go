package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/workwear/internal/models"
	"github.com/example/workwear/internal/repository"
	"github.com/example/workwear/internal/utils"
)

// CompanyHandler manages the company contact block.
type CompanyHandler struct {
	company *repository.CompanyRepo
}

// NewCompanyHandler constructs CompanyHandler.
func NewCompanyHandler(company *repository.CompanyRepo) *CompanyHandler {
	return &CompanyHandler{company: company}
}

// companyResponse is the company info with empty strings in place of missing values.
type companyResponse struct {
	ID           uint       `json:"id,omitempty"`
	Telephone    string     `json:"telephone"`
	Whatsapp     string     `json:"whatsapp"`
	Address      string     `json:"address"`
	WorkSchedule string     `json:"workSchedule"`
	Email        string     `json:"email"`
	Website      string     `json:"website"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

func toCompanyResponse(info *models.CompanyInfo) companyResponse {
	if info == nil {
		return companyResponse{}
	}
	resp := companyResponse{
		ID:           info.ID,
		Telephone:    info.Telephone,
		Whatsapp:     info.Whatsapp,
		Address:      info.Address,
		WorkSchedule: info.WorkSchedule,
		CreatedAt:    &info.CreatedAt,
		UpdatedAt:    &info.UpdatedAt,
	}
	if info.Email != nil {
		resp.Email = *info.Email
	}
	if info.Website != nil {
		resp.Website = *info.Website
	}
	return resp
}

type companyRequest struct {
	Telephone    string `json:"telephone" validate:"required,notblank" msg:"Укажите телефон"`
	Whatsapp     string `json:"whatsapp" validate:"required,notblank" msg:"Укажите WhatsApp"`
	Address      string `json:"address" validate:"required,notblank" msg:"Укажите адрес"`
	WorkSchedule string `json:"workSchedule" validate:"required,notblank" msg:"Укажите график работы"`
	Email        string `json:"email" validate:"omitempty,email" msg:"Некорректный email"`
	Website      string `json:"website" validate:"omitempty,url" msg:"Некорректный адрес сайта"`
}

func optional(value string) *string {
	if value = strings.TrimSpace(value); value == "" {
		return nil
	}
	return &value
}

// GetCompany returns the company info, or empty defaults before the first save.
func (h *CompanyHandler) GetCompany(c *fiber.Ctx) error {
	info, err := h.company.Get(c.UserContext())
	if err != nil {
		return serverError("Company", err, "Ошибка при загрузке информации о компании")
	}
	return c.JSON(toCompanyResponse(info))
}

// UpdateCompany creates or overwrites the company info.
func (h *CompanyHandler) UpdateCompany(c *fiber.Ctx) error {
	var req companyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Некорректный формат запроса")
	}
	req.Email = strings.TrimSpace(req.Email)
	req.Website = strings.TrimSpace(req.Website)
	if msg := utils.FirstValidationError(&req); msg != "" {
		return fiber.NewError(fiber.StatusBadRequest, msg)
	}

	info, err := h.company.Upsert(c.UserContext(), &models.CompanyInfo{
		Telephone:    strings.TrimSpace(req.Telephone),
		Whatsapp:     strings.TrimSpace(req.Whatsapp),
		Address:      strings.TrimSpace(req.Address),
		WorkSchedule: strings.TrimSpace(req.WorkSchedule),
		Email:        optional(req.Email),
		Website:      optional(req.Website),
	})
	if err != nil {
		return serverError("Company", err, "Ошибка при сохранении информации о компании")
	}

	return c.JSON(toCompanyResponse(info))
}
