package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vendergas-api/internal/application/dto"
)

// LocalUserID clave en c.Locals del usuario autenticado.
const LocalUserID = "user_id"

// SessionCookie nombre de la cookie HttpOnly emitida en el login.
const SessionCookie = "session"

// SessionResolver resuelve un token de sesión a un id de usuario.
type SessionResolver interface {
	ResolveSession(token string) (string, error)
}

// AuthMiddleware acepta "Authorization: Bearer <token>" o la cookie de sesión y deja
// el UserID en c.Locals. Cualquier fallo es 401 UNAUTHENTICATED.
func AuthMiddleware(sessions SessionResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := sessionToken(c)
		if !ok {
			return unauthenticated(c, "token requerido")
		}
		userID, err := sessions.ResolveSession(token)
		if err != nil || userID == "" {
			return unauthenticated(c, "token inválido o expirado")
		}
		c.Locals(LocalUserID, userID)
		return c.Next()
	}
}

func sessionToken(c *fiber.Ctx) (string, bool) {
	if header := c.Get(fiber.HeaderAuthorization); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", false
		}
		tok := strings.TrimSpace(parts[1])
		return tok, tok != ""
	}
	tok := c.Cookies(SessionCookie)
	return tok, tok != ""
}

func unauthenticated(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHENTICATED", Message: msg})
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
