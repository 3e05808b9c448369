package handler

import (
	"github.com/gofiber/fiber/v2"
)

// Envelope is the uniform JSON response wrapper of every API route.
type Envelope struct {
	Success bool     `json:"success"`
	Data    any      `json:"data,omitempty"`
	Message string   `json:"message,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// OK sends a successful envelope.
func OK(c *fiber.Ctx, data any) error {
	return c.JSON(Envelope{Success: true, Data: data})
}

// OKMessage sends a successful envelope with a message and no data.
func OKMessage(c *fiber.Ctx, message string) error {
	return c.JSON(Envelope{Success: true, Message: message})
}

// Fail sends a failed envelope with the given status code.
func Fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Envelope{Success: false, Message: message})
}

// FailValidation sends a failed envelope carrying field errors.
func FailValidation(c *fiber.Ctx, errs []string) error {
	return c.Status(fiber.StatusBadRequest).JSON(Envelope{
		Success: false,
		Message: "Dữ liệu không hợp lệ",
		Errors:  errs,
	})
}
