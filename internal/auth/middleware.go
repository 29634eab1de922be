package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/document-service/internal/domain"
	apperrors "github.com/spec-kit/document-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller: the verified credential
// plus the raw token it arrived with. Immutable once attached.
type Principal struct {
	Credential domain.Credential
	Token      string
}

// AuthMiddleware validates bearer tokens against the verifier and the
// revocation blacklist.
type AuthMiddleware struct {
	tokens    *TokenManager
	blacklist TokenBlacklist
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, blacklist TokenBlacklist) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, blacklist: blacklist}
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// Handle enforces authentication for protected routes. Missing or
// malformed headers are unauthenticated; every verification failure
// (malformed, tampered, expired, revoked) collapses into one uniform
// rejection so callers learn nothing about why.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	token, ok := BearerToken(c)
	if !ok {
		return apperrors.NewUnauthorized("missing or invalid authorization header")
	}

	claims, err := m.tokens.Parse(token)
	if err != nil {
		return apperrors.NewUnauthorized("invalid or expired token")
	}

	revoked, err := m.blacklist.IsRevoked(c.UserContext(), token)
	if err != nil {
		// fail closed: a token that cannot be checked is not admitted
		return apperrors.NewDependencyUnavailable("session store", err)
	}
	if revoked {
		return apperrors.NewUnauthorized("invalid or expired token")
	}

	c.Locals(principalKey, &Principal{Credential: claims.Credential, Token: token})
	return c.Next()
}

// RequireRoles gates a route on a static allow-list. With no arguments it
// only requires an authenticated principal.
func RequireRoles(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Credential.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
