package handlers

import (
	"errors"
	"time"

	applog "shoppanel/internal/log"
	"shoppanel/internal/services"
	"shoppanel/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false,
		})
	}
	return sid
}

// signInPage renders the sign-in form; msg is shown verbatim, so it
// must never distinguish which check failed.
func signInPage(c *fiber.Ctx, status int, msg string) error {
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		tok = c.Cookies("csrf_")
	}
	return c.Status(status).Render("login", fiber.Map{"Err": msg, "CSRFToken": tok})
}

func (h *AuthHandler) SignInForm(c *fiber.Ctx) error {
	return signInPage(c, fiber.StatusOK, "")
}

func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	sid := ensureSID(c)

	email, okEmail := validate.Email(c.FormValue("email"))
	if !okEmail || !validate.Password(c.FormValue("password")) {
		applog.Security(c, "auth.signin.fail", map[string]any{"email": email, "reason": "bad_format"})
		return signInPage(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	_, err := h.Auth.SignIn(sid, email, c.FormValue("password"))
	switch {
	case errors.Is(err, services.ErrNotAdmin):
		// valid credentials, no panel access: same response, louder log
		applog.Security(c, "auth.signin.denied", map[string]any{"email": email})
		return signInPage(c, fiber.StatusUnauthorized, "Invalid email or password")
	case err != nil:
		applog.Security(c, "auth.signin.fail", map[string]any{"email": email})
		return signInPage(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	applog.Audit(c, "auth.signin.success", map[string]any{"email": email})
	return c.Redirect("/admin")
}

func (h *AuthHandler) SignOut(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Auth.SignOut(sid)
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	applog.Audit(c, "auth.signout", map[string]any{"sid": sid})
	return c.Redirect("/login")
}
