package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "lostfound/internal/log"
	"lostfound/internal/services"
)

type ItemHandler struct {
	Items *services.ItemService
}

func (h *ItemHandler) Create(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return respondErr(c, fiber.StatusUnauthorized, "authorization required")
	}

	var in services.CreateItemInput
	if err := c.BodyParser(&in); err != nil {
		return respondErr(c, fiber.StatusBadRequest, "invalid request body")
	}

	item, err := h.Items.Create(actor, in)
	if err != nil {
		return fail(c, "items.create", err)
	}

	applog.Audit(c, "items.create", map[string]any{"item_id": item.ID})
	return respond(c, fiber.StatusCreated, "Item reported successfully", item)
}

func (h *ItemHandler) List(c *fiber.Ctx) error {
	f := services.ListFilter{
		Type:     c.Query("type"),
		Category: c.Query("category"),
		Status:   c.Query("status"),
		Search:   c.Query("search"),
		Page:     c.QueryInt("page", 1),
		Limit:    c.QueryInt("limit", 10),
	}

	result, err := h.Items.List(f)
	if err != nil {
		return fail(c, "items.list", err)
	}
	return respond(c, fiber.StatusOK, "", result)
}

func (h *ItemHandler) Get(c *fiber.Ctx) error {
	var item services.ItemView
	var err error
	if actor, ok := actorFrom(c); ok {
		item, err = h.Items.Get(c.Params("id"), &actor)
	} else {
		item, err = h.Items.Get(c.Params("id"), nil)
	}
	if err != nil {
		return fail(c, "items.get", err)
	}
	return respond(c, fiber.StatusOK, "", item)
}

func (h *ItemHandler) Update(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return respondErr(c, fiber.StatusUnauthorized, "authorization required")
	}

	var patch services.ItemPatch
	if err := c.BodyParser(&patch); err != nil {
		return respondErr(c, fiber.StatusBadRequest, "invalid request body")
	}

	item, err := h.Items.Update(c.Params("id"), actor, patch)
	if err != nil {
		return fail(c, "items.update", err)
	}

	applog.Audit(c, "items.update", map[string]any{"item_id": item.ID})
	return respond(c, fiber.StatusOK, "Item updated successfully", item)
}

func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return respondErr(c, fiber.StatusUnauthorized, "authorization required")
	}

	if err := h.Items.Delete(c.Params("id"), actor); err != nil {
		return fail(c, "items.delete", err)
	}

	applog.Audit(c, "items.delete", map[string]any{"item_id": c.Params("id")})
	return respond(c, fiber.StatusOK, "Item deleted successfully", nil)
}

func (h *ItemHandler) Mine(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return respondErr(c, fiber.StatusUnauthorized, "authorization required")
	}

	items, err := h.Items.Mine(actor)
	if err != nil {
		return fail(c, "items.mine", err)
	}
	return respond(c, fiber.StatusOK, "", fiber.Map{"items": items, "count": len(items)})
}

func (h *ItemHandler) Claim(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return respondErr(c, fiber.StatusUnauthorized, "authorization required")
	}

	item, err := h.Items.Claim(c.Params("id"), actor)
	if err != nil {
		return fail(c, "items.claim", err)
	}

	applog.Audit(c, "items.claim", map[string]any{"item_id": item.ID})
	return respond(c, fiber.StatusOK, "Item claimed successfully. The owner will be notified.", item)
}
