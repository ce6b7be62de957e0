package handlers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const genericErrorMessage = "Внутренняя ошибка сервера"

// ErrorHandler renders every error as {"error": message}. Errors that are not
// *fiber.Error are logged and hidden behind a generic 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	}

	log.Printf("[HTTP] %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": genericErrorMessage})
}

// serverError logs err and returns a 500 with a user facing message.
func serverError(scope string, err error, message string) error {
	log.Printf("[%s] %v", scope, err)
	return fiber.NewError(fiber.StatusInternalServerError, message)
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Некорректный идентификатор")
	}
	return uint(id), nil
}
