package middleware

import (
	"context"
	"strings"

	"github.com/pokequest-lab/backend/internal/model"
	"github.com/pokequest-lab/backend/pkg/authenticator"
	"github.com/pokequest-lab/backend/pkg/errorx"
	"github.com/pokequest-lab/backend/pkg/router"
	"github.com/pokequest-lab/backend/pkg/xcontext"
)

// AuthVerifier resolves the request user from the access token and rejects
// unauthenticated requests.
type AuthVerifier struct{}

func NewAuthVerifier() *AuthVerifier {
	return &AuthVerifier{}
}

func (a *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		token := extractAccessToken(ctx)
		if token == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		engine := authenticator.NewTokenEngine(xcontext.Configs(ctx).Auth.TokenSecret)
		var info model.AccessToken
		if err := engine.Verify(token, &info); err != nil {
			xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
			return nil, errorx.New(errorx.TokenExpired, "Your session is expired")
		}

		return xcontext.WithRequestUserID(ctx, info.ID), nil
	}
}

func extractAccessToken(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)
	if req == nil {
		return ""
	}

	authorization := req.Header.Get("Authorization")
	auth, token, found := strings.Cut(authorization, " ")
	if found && auth == "Bearer" {
		return token
	}

	if cookie, err := req.Cookie(xcontext.Configs(ctx).Auth.AccessToken.Name); err == nil {
		return cookie.Value
	}

	return ""
}
