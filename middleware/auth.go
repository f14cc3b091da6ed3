package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"trustimonials/utils"
)

const (
	userIDKey = "userID"

	// AccessTokenCookie is where the Supabase auth helpers keep the session token.
	AccessTokenCookie = "sb-access-token"
	authAudience      = "authenticated"
)

// Claims is the subset of a Supabase access token we rely on.
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

var errNoToken = errors.New("missing access token")

// Auth verifies the Supabase access token (HS256, signed with the project's
// JWT secret) from the Authorization header or the session cookie, and stores
// the user id for handlers.
func Auth(secret string) fiber.Handler {
	key := []byte(secret)
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(authAudience),
		jwt.WithExpirationRequired(),
	)
	return func(c *fiber.Ctx) error {
		token, err := tokenFrom(c)
		if err != nil {
			return utils.RespondWithError(c, fiber.StatusUnauthorized, "Authentication required")
		}

		var claims Claims
		if _, err := parser.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
			return key, nil
		}); err != nil {
			return utils.RespondWithError(c, fiber.StatusUnauthorized, "Invalid or expired session")
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			return utils.RespondWithError(c, fiber.StatusUnauthorized, "Invalid or expired session")
		}
		c.Locals(userIDKey, userID)
		return c.Next()
	}
}

func tokenFrom(c *fiber.Ctx) (string, error) {
	if header := c.Get(fiber.HeaderAuthorization); header != "" {
		token := strings.TrimPrefix(header, "Bearer ")
		if token == header || token == "" {
			return "", errNoToken
		}
		return token, nil
	}
	if cookie := c.Cookies(AccessTokenCookie); cookie != "" {
		return cookie, nil
	}
	return "", errNoToken
}

// UserID returns the authenticated caller set by Auth.
func UserID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(userIDKey).(uuid.UUID)
	return id, ok
}
