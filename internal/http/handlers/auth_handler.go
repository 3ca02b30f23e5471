package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"lostfound/internal/domain"
	applog "lostfound/internal/log"
	"lostfound/internal/services"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func userPayload(u *domain.User) fiber.Map {
	m := fiber.Map{"id": u.ID, "name": u.Name, "email": u.Email, "role": u.Role}
	if u.Phone != "" {
		m["phone"] = u.Phone
	}
	if u.ProfileImage != "" {
		m["profileImage"] = u.ProfileImage
	}
	return m
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, fiber.StatusBadRequest, "invalid request body")
	}

	u, token, err := h.Auth.Register(req.Name, req.Email, req.Password, req.Phone)
	if err != nil {
		return fail(c, "auth.register", err)
	}

	applog.Audit(c, "auth.register", map[string]any{"user_id": u.ID})
	return respond(c, fiber.StatusCreated, "account created", fiber.Map{
		"token": token,
		"user":  userPayload(u),
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, fiber.StatusBadRequest, "invalid request body")
	}

	u, token, err := h.Auth.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrBadCreds) {
			applog.Security(c, "auth.login.fail", map[string]any{"email": req.Email})
			return respondErr(c, fiber.StatusUnauthorized, services.ErrBadCreds.Error())
		}
		return fail(c, "auth.login", err)
	}

	applog.Audit(c, "auth.login.success", map[string]any{"user_id": u.ID})
	return respond(c, fiber.StatusOK, "", fiber.Map{
		"token": token,
		"user":  userPayload(u),
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return respondErr(c, fiber.StatusUnauthorized, "authorization required")
	}
	u, err := h.Auth.CurrentUser(actor.ID)
	if err != nil {
		return fail(c, "auth.me", err)
	}
	return respond(c, fiber.StatusOK, "", userPayload(u))
}
