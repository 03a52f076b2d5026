package handlers

import (
	applog "shoppanel/internal/log"
	"shoppanel/internal/repos"
	"shoppanel/internal/services"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Products *repos.ProductRepo
	Cards    *repos.CardRepo
	CardAPI  *services.CardAPIService
	Updates  *services.UpdateService
}

// GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	cards, _ := h.Cards.ListLatest(10)
	update := h.Updates.Check()
	return render(c, "admin_dashboard", fiber.Map{
		"Cards":  cards,
		"Update": update,
	})
}

// GET /admin/products — product list with per-product card API status.
func (h *AdminHandler) ProductsPage(c *fiber.Ctx) error {
	products, err := h.Products.ListActive()
	if err != nil {
		applog.Error(c, "admin.products.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load products"})
	}
	counts, err := h.Cards.CountByProduct()
	if err != nil {
		applog.Error(c, "admin.products.counts.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load products"})
	}

	type row struct {
		ID, Title  string
		APIEnabled bool
		CardCount  int
	}
	rows := make([]row, 0, len(products))
	for _, p := range products {
		cfg, err := h.CardAPI.GetProductCardAPIConfig(p.ID)
		if err != nil {
			applog.Error(c, "admin.products.cardapi.fail", err, map[string]any{"product": p.ID})
			return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load products"})
		}
		rows = append(rows, row{ID: p.ID, Title: p.Title, APIEnabled: cfg.Enabled, CardCount: counts[p.ID]})
	}
	return render(c, "admin_products", fiber.Map{"Rows": rows})
}
