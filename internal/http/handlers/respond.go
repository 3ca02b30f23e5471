package handlers

import (
	"github.com/gofiber/fiber/v2"

	"lostfound/internal/domain"
	applog "lostfound/internal/log"
)

// Every response is wrapped in {success, message?, data?, error?}.

func respond(c *fiber.Ctx, status int, message string, data any) error {
	body := fiber.Map{"success": true}
	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
	}
	return c.Status(status).JSON(body)
}

func respondErr(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "error": message})
}

// fail maps the error taxonomy to HTTP statuses. Storage failures and foreign
// errors are logged with their cause; the requester only sees a safe message.
func fail(c *fiber.Ctx, action string, err error) error {
	switch domain.KindOf(err) {
	case domain.KindValidation, domain.KindInvalidState:
		return respondErr(c, fiber.StatusBadRequest, domain.PublicMessage(err))
	case domain.KindNotFound:
		return respondErr(c, fiber.StatusNotFound, domain.PublicMessage(err))
	case domain.KindForbidden:
		return respondErr(c, fiber.StatusForbidden, domain.PublicMessage(err))
	case domain.KindUnavailable:
		applog.Error(c, action, err, nil)
		return respondErr(c, fiber.StatusServiceUnavailable, domain.PublicMessage(err))
	default:
		applog.Error(c, action, err, nil)
		return respondErr(c, fiber.StatusInternalServerError, "something went wrong")
	}
}
