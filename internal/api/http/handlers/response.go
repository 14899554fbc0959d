package handlers

import (
	"bytes"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/frontdesk/visitor-register/internal/api/dto"
	"github.com/frontdesk/visitor-register/internal/service"
	"github.com/frontdesk/visitor-register/pkg/util/errorutil"
)

func respond(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusOK).JSON(dto.Envelope{
		Status: dto.Status{Code: fiber.StatusOK, Message: message},
		Data:   data,
	})
}

func respondPage(c *fiber.Ctx, message string, data any, p service.Pagination) error {
	return c.Status(fiber.StatusOK).JSON(dto.Envelope{
		Status: dto.Status{Code: fiber.StatusOK, Message: message},
		Data:   data,
		Pagination: &dto.Pagination{
			CurrentPage: p.CurrentPage,
			TotalPages:  p.TotalPages,
			TotalCount:  p.TotalCount,
			PerPage:     p.PerPage,
		},
	})
}

// bindJSON decodes a JSON body into out. Empty bodies and non-JSON bodies are
// left for the caller to read from form and query values; only malformed JSON
// is rejected.
func bindJSON(c *fiber.Ctx, out any) error {
	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	contentType := strings.ToLower(c.Get(fiber.HeaderContentType))
	untyped := contentType == "" || strings.HasPrefix(contentType, fiber.MIMEOctetStream)
	isJSON := strings.HasPrefix(contentType, fiber.MIMEApplicationJSON) ||
		(untyped && bytes.HasPrefix(bytes.TrimSpace(body), []byte("{")))
	if !isJSON {
		return nil
	}
	if err := c.App().Config().JSONDecoder(body, out); err != nil {
		return errorutil.NewBadRequest("invalid payload")
	}
	return nil
}

// param returns the first non-blank value among the JSON field, the form value and the query string.
func param(c *fiber.Ctx, fromBody, key string) string {
	if strings.TrimSpace(fromBody) != "" {
		return fromBody
	}
	if v := c.FormValue(key); v != "" {
		return v
	}
	return c.Query(key)
}
