package echoapi

import (
	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/apexdrive/console/core"
	"github.com/apexdrive/console/core/identity"
)

const identityTokenKey = "identityToken"

// Claims represents the authorization claims transmitted via a JWT. Tokens
// are issued by the identity provider, not by this API.
type Claims struct {
	jwt.StandardClaims
	Username   string   `json:"username,omitempty"`
	Role       string   `json:"role,omitempty"`
	OrgIDs     []string `json:"org_ids,omitempty"`
	TeamOrgIDs []string `json:"team_org_ids,omitempty"`
}

func newAppJWTConfig(conf *core.Config) middleware.JWTConfig {
	return middleware.JWTConfig{
		SigningKey:    []byte(conf.SecretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    identityTokenKey,
		Claims:        new(Claims),
	}
}

// GenerateToken signs a token for the given claims; exposed for tests and
// local tooling.
func GenerateToken(claims *Claims, conf *core.Config) (string, error) {
	token := jwt.NewWithClaims(jwt.GetSigningMethod(middleware.AlgorithmHS256), claims)
	return token.SignedString([]byte(conf.SecretKey))
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(identityTokenKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

// getContextIdentity maps the token claims onto the domain identity.
func getContextIdentity(ctx echo.Context) (identity.Identity, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return identity.Identity{}, err
	}
	ident := identity.Identity{
		Role:       identity.Role(claims.Role),
		OrgIDs:     claims.OrgIDs,
		TeamOrgIDs: claims.TeamOrgIDs,
	}
	if !ident.Role.Valid() {
		return identity.Identity{}, errUnauthorized
	}
	return ident, nil
}
