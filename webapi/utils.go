package webapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/domain"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/domain/security"
)

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	Errors   any    `json:"errors,omitempty"`
}

// ErrorResponseJSON returns a response following RFC 9457 Problem Details.
func ErrorResponseJSON(
	c *fiber.Ctx,
	status int,
	title string,
	detail any,
) error {
	pd := ProblemDetails{
		Type:   "about:blank",
		Title:  title,
		Status: status,
	}
	if detail != nil {
		if s, ok := detail.(string); ok {
			pd.Detail = s
		} else {
			pd.Errors = detail
		}
	}
	pd.Instance = c.OriginalURL()

	// JSON resets the content type, so the media type is passed through it
	// rather than set beforehand.
	return c.Status(status).JSON(pd, "application/problem+json")
}

// ErrorToStatusCode maps domain errors to appropriate HTTP status codes.
// security.ErrAutoAcceptRuleExists maps to 400 so the contractual message
// reaches noms-ops unchanged in the detail field.
func ErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, security.ErrAutoAcceptRuleExists):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrAlreadyExists):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// DomainErrorResponse writes a problem-details response for a service error.
func DomainErrorResponse(c *fiber.Ctx, err error) error {
	status := ErrorToStatusCode(err)
	title := "Internal Server Error"
	switch status {
	case fiber.StatusNotFound:
		title = "Not Found"
	case fiber.StatusBadRequest:
		title = "Bad Request"
	case fiber.StatusConflict:
		title = "Conflict"
	}
	detail := err.Error()
	if status == fiber.StatusInternalServerError {
		// Integrity details stay in the logs.
		detail = "internal error"
	}
	return ErrorResponseJSON(c, status, title, detail)
}

// BindAndValidate parses the request body and validates it using
// go-playground/validator. On failure an error response has already been
// written and the returned error is non-nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
		return nil, err
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		ErrorResponseJSON(c, fiber.StatusBadRequest, "Validation failed", err.Error())
		return nil, err
	}
	return &input, nil
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, bool) {
	parsed, err := uuid.Parse(c.Params(name))
	if err != nil {
		ErrorResponseJSON(c, fiber.StatusBadRequest, "Bad Request", "invalid "+name)
		return uuid.Nil, false
	}
	return parsed, true
}
