package service

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/spindlework/a2a-runtime/pkg/catalog"
	"github.com/spindlework/a2a-runtime/pkg/errors"
)

/*
requireAuth gates every endpoint except the well-known card behind the
configured bearer token whenever the card advertises a security scheme.
Failures are JSON-RPC error envelopes carrying the HTTP status as code.
*/
func (srv *A2AServer) requireAuth(ctx fiber.Ctx) error {
	if !srv.card.RequiresAuth() || ctx.Path() == catalog.WellKnownPath {
		return ctx.Next()
	}

	token, ok := strings.CutPrefix(ctx.Get("Authorization"), "Bearer ")

	if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(srv.opts.BearerToken)) != 1 {
		return respondError(ctx, fiber.StatusUnauthorized, nil, &errors.RpcError{
			Code:    fiber.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	return ctx.Next()
}
