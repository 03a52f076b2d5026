package handlers

import (
	applog "shoppanel/internal/log"
	"shoppanel/internal/services"

	"github.com/gofiber/fiber/v2"
)

type UpdateHandler struct {
	Updates *services.UpdateService
}

// GET /api/v1/update-check — polled by the admin banner.
func (h *UpdateHandler) Check(c *fiber.Ctx) error {
	st := h.Updates.Check()
	if st.Error != "" {
		applog.Info(c, "update.check.soft_fail", map[string]any{"code": st.Error})
	}
	return c.JSON(st)
}

// POST /admin/update-notice/dismiss
func (h *UpdateHandler) Dismiss(c *fiber.Ctx) error {
	version := c.FormValue("version")
	if err := h.Updates.Dismiss(version); err != nil {
		applog.Error(c, "update.dismiss.fail", err, map[string]any{"version": version})
		return c.Status(400).SendString("could not dismiss update notice")
	}
	applog.Audit(c, "update.dismiss", map[string]any{"version": version})
	return c.Redirect("/admin")
}
