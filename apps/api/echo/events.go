package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/apexdrive/console/core"
	"github.com/apexdrive/console/core/analytics"
	"github.com/apexdrive/console/core/event"
	"github.com/apexdrive/console/core/identity"
)

type eventApi struct {
	deps ServerDeps
}

func registerEventAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := eventApi{deps: deps}

	eg := g.Group("/events", jwt)
	eg.GET("", api.query)
	eg.GET("/upcoming", api.queryUpcoming)
	eg.GET("/past", api.queryPast)
	eg.POST("", api.create, adminMiddleware(identity.RoleSuperadmin, identity.RoleAdmin))
	eg.DELETE("", api.destroyMultiple, adminMiddleware(identity.RoleSuperadmin, identity.RoleAdmin))

	dg := eg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.GET("/report", api.report)
	dg.PUT("", api.update, adminMiddleware(identity.RoleSuperadmin, identity.RoleAdmin))
	dg.DELETE("", api.destroy, adminMiddleware(identity.RoleSuperadmin, identity.RoleAdmin))
	dg.PUT("/allocations", api.setAllocation, adminMiddleware(identity.RoleSuperadmin, identity.RoleAdmin))
}

// Handlers

func (api *eventApi) query(ctx echo.Context) error {
	list, err := api.filter(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, list)
}

func (api *eventApi) queryUpcoming(ctx echo.Context) error {
	list, err := api.filter(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, list.Upcoming)
}

func (api *eventApi) queryPast(ctx echo.Context) error {
	list, err := api.filter(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, list.Past)
}

func (api *eventApi) filter(ctx echo.Context) (event.List, error) {
	ident, err := getContextIdentity(ctx)
	if err != nil {
		return event.List{}, errors.Wrap(err, "getting context identity")
	}

	filter := new(event.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return event.List{}, core.NewValidationError(errors.New("invalid filter parameters"))
	}

	list, err := api.deps.EventSvc.Filter(ctx.Request().Context(), ident, *filter)
	if err != nil {
		return event.List{}, errors.Wrap(err, "querying events")
	}
	return list, nil
}

func (api *eventApi) retrieve(ctx echo.Context) error {
	ident, err := getContextIdentity(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context identity")
	}

	evt, err := api.deps.EventSvc.Get(ctx.Request().Context(), ident, ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == event.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "retrieving event")
	}
	return ctx.JSON(http.StatusOK, evt)
}

func (api *eventApi) report(ctx echo.Context) error {
	ident, err := getContextIdentity(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context identity")
	}

	// scope check first: an out-of-scope report reads as absent
	if _, err = api.deps.EventSvc.Get(ctx.Request().Context(), ident, ctx.Param("id")); err != nil {
		if errors.Cause(err) == event.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "retrieving event")
	}

	view, err := api.deps.AnalyticsSvc.EventReport(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == analytics.ErrReportNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "retrieving event report")
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *eventApi) create(ctx echo.Context) error {
	var data event.NewEvent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEvent")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	raw, err := api.deps.EventSvc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating event")
	}
	return ctx.JSON(http.StatusCreated, raw)
}

func (api *eventApi) update(ctx echo.Context) error {
	var data event.UpdateEvent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateEvent")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	raw, err := api.deps.EventSvc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == event.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating event")
	}
	return ctx.JSON(http.StatusOK, raw)
}

func (api *eventApi) destroy(ctx echo.Context) error {
	if err := api.deps.EventSvc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting event")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *eventApi) destroyMultiple(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}

	if err := api.deps.EventSvc.Delete(ctx.Request().Context(), query.IDs...); err != nil {
		return errors.Wrap(err, "deleting events")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *eventApi) setAllocation(ctx echo.Context) error {
	var data AllocationRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AllocationRequest")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	alloc := event.Allocation{
		EventID:        ctx.Param("id"),
		OrgID:          data.OrgID,
		SeatsAllocated: data.SeatsAllocated,
	}
	if err := api.deps.EventSvc.SetAllocation(ctx.Request().Context(), alloc); err != nil {
		return errors.Wrap(err, "setting allocation")
	}
	return ctx.JSON(http.StatusOK, alloc)
}

type (
	DestroyMultipleRequest struct {
		IDs []string `query:"id"`
	}

	AllocationRequest struct {
		OrgID          string `json:"org_id" validate:"required"`
		SeatsAllocated int    `json:"seats_allocated" validate:"min=0"`
	}
)

func (ar *AllocationRequest) Validate(validate *validator.Validate) error {
	ar.OrgID = core.CleanString(ar.OrgID)
	return validate.Struct(ar)
}
