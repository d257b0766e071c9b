package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/apexdrive/console/core"
)

type impersonationApi struct {
	deps ServerDeps
}

func registerImpersonationAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := impersonationApi{deps: deps}

	ig := g.Group("/impersonation", jwt)
	ig.GET("", api.retrieve)
	ig.POST("", api.start, internalMiddleware())
	ig.DELETE("", api.exit)
}

// Handlers

func (api *impersonationApi) retrieve(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.deps.Resolver.Impersonation())
}

func (api *impersonationApi) start(ctx echo.Context) error {
	var data ImpersonationRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ImpersonationRequest")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	ident, err := getContextIdentity(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context identity")
	}
	if err := api.deps.Resolver.StartImpersonation(data.OrgID, ident.Role); err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, api.deps.Resolver.Impersonation())
}

// exit is idempotent: exiting while not impersonating is a no-op.
func (api *impersonationApi) exit(ctx echo.Context) error {
	if err := api.deps.Resolver.ExitImpersonation(); err != nil {
		return errors.Wrap(err, "exiting impersonation")
	}
	return ctx.NoContent(http.StatusNoContent)
}

type ImpersonationRequest struct {
	OrgID string `json:"org_id" validate:"required"`
}

func (ir *ImpersonationRequest) Validate(validate *validator.Validate) error {
	ir.OrgID = core.CleanString(ir.OrgID)
	return validate.Struct(ir)
}
