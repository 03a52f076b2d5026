package handlers

import (
	"shoppanel/internal/domain"
	applog "shoppanel/internal/log"
	"shoppanel/internal/repos"
	"shoppanel/internal/services"
	"shoppanel/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CardAPIHandler struct {
	CardAPI  *services.CardAPIService
	Products *repos.ProductRepo
	Cards    *repos.CardRepo
}

// GET /admin/products/:id/cardapi
func (h *CardAPIHandler) SettingsForm(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("invalid product id")
	}
	p, err := h.Products.Get(pid)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Unknown product"})
	}
	cfg, err := h.CardAPI.GetProductCardAPIConfig(pid)
	if err != nil {
		applog.Error(c, "admin.cardapi.load.fail", err, map[string]any{"product": pid})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load card API settings"})
	}
	return render(c, "admin_cardapi", fiber.Map{
		"Product": p,
		"Config":  cfg,
		"Outcome": c.Query("outcome"),
	})
}

// POST /admin/products/:id/cardapi
func (h *CardAPIHandler) SaveSettings(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("invalid product id")
	}
	if _, err := h.Products.Get(pid); err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Unknown product"})
	}

	cfg := domain.CardAPIConfig{
		Enabled: c.FormValue("enabled") == "on" || c.FormValue("enabled") == "true",
		URL:     c.FormValue("url"),
		Token:   c.FormValue("token"),
	}
	if err := h.CardAPI.SaveProductCardAPIConfig(pid, cfg); err != nil {
		applog.Error(c, "admin.cardapi.save.fail", err, map[string]any{"product": pid})
		return c.Status(400).SendString("could not save card API settings")
	}
	applog.Audit(c, "admin.cardapi.save", map[string]any{"product": pid, "enabled": cfg.Enabled})
	return c.Redirect("/admin/products/" + pid + "/cardapi")
}

// POST /admin/products/:id/cardapi/pull
func (h *CardAPIHandler) Pull(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("invalid product id")
	}
	if _, err := h.Products.Get(pid); err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Unknown product"})
	}

	out := h.CardAPI.PullOneCardFromAPI(pid)
	switch {
	case out.OK:
		applog.Audit(c, "admin.cardapi.pull.ok", map[string]any{"product": pid})
	case out.Skipped || out.Error == "api_card_duplicate":
		// expected no-ops, not alarms
		applog.Info(c, "admin.cardapi.pull.skip", map[string]any{"product": pid, "code": out.Error})
	default:
		applog.Error(c, "admin.cardapi.pull.fail", nil, map[string]any{"product": pid, "code": out.Error})
	}

	if c.Accepts("html", "json") == "json" {
		return c.JSON(out)
	}
	q := "?outcome=" + outcomeQuery(out)
	return c.Redirect("/admin/products/" + pid + "/cardapi" + q)
}

// GET /admin/cards
func (h *CardAPIHandler) CardsPage(c *fiber.Ctx) error {
	rows, err := h.Cards.ListLatest(100)
	if err != nil {
		applog.Error(c, "admin.cards.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load cards"})
	}
	return render(c, "admin_cards", fiber.Map{"Rows": rows})
}

func outcomeQuery(out domain.PullOutcome) string {
	if out.OK {
		return "ok"
	}
	if out.Error != "" {
		return out.Error
	}
	return "failed"
}
