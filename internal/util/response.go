package util

import (
	"runtime/debug"

	"github.com/fadilmartias/skillsync-api/internal/config"
	"github.com/fadilmartias/skillsync-api/internal/response"
	"github.com/gofiber/fiber/v2"
)

// SuccessResponseFormat describes a success envelope. Code defaults to 200.
type SuccessResponseFormat struct {
	Code       int
	Message    string
	Data       any
	Pagination *response.Pagination
	Meta       any
}

// ErrorResponseFormat describes an error envelope. Code defaults to 500.
// DevMessage and Trace override the values derived from the wrapped error.
type ErrorResponseFormat struct {
	Code       int
	Message    string
	DevMessage string
	Details    any
	Trace      string
}

// Field order is the order clients see in the JSON body.
type successEnvelope struct {
	Success    bool                 `json:"success"`
	Message    string               `json:"message"`
	Meta       any                  `json:"meta,omitempty"`
	Pagination *response.Pagination `json:"pagination,omitempty"`
	Data       any                  `json:"data,omitempty"`
}

type errorEnvelope struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	DevMessage string `json:"dev_message,omitempty"`
	Details    any    `json:"details,omitempty"`
	Trace      string `json:"trace,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, params SuccessResponseFormat) error {
	status := fiber.StatusOK
	if params.Code != 0 {
		status = params.Code
	}
	return c.Status(status).JSON(successEnvelope{
		Success:    true,
		Message:    params.Message,
		Meta:       params.Meta,
		Pagination: params.Pagination,
		Data:       params.Data,
	})
}

// ErrorResponse writes the error envelope. Outside production the cause is
// echoed back as dev_message together with a stack trace.
func ErrorResponse(c *fiber.Ctx, params ErrorResponseFormat, cause ...error) error {
	status := fiber.StatusInternalServerError
	if params.Code != 0 {
		status = params.Code
	}
	body := errorEnvelope{Message: params.Message, Details: params.Details}
	if !config.LoadAppConfig().IsProduction() {
		body.DevMessage, body.Trace = debugInfo(params, cause)
	}
	return c.Status(status).JSON(body)
}

func debugInfo(params ErrorResponseFormat, cause []error) (devMessage, trace string) {
	if len(cause) > 0 && cause[0] != nil {
		devMessage = cause[0].Error()
		trace = string(debug.Stack())
	}
	if params.DevMessage != "" {
		devMessage = params.DevMessage
	}
	if params.Trace != "" {
		trace = params.Trace
	}
	return devMessage, trace
}
