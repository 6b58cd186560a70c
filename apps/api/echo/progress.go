package echoapi

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/radianlabs/precalc/core"
	"github.com/radianlabs/precalc/core/lesson"
	"github.com/radianlabs/precalc/core/progress"
)

type progressApi struct {
	svc *progress.Service
}

func registerProgressAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *progress.Service) {
	api := progressApi{svc: svc}

	pg := g.Group("/progress", jwt)
	pg.GET("/navigation", api.getNavigation)
	pg.PUT("/navigation", api.putNavigation)
	pg.POST("/advance/*", api.advance)
	pg.POST("/retreat/*", api.retreat)
	pg.GET("/*", api.retrieve)
	pg.PUT("/*", api.save)
	pg.DELETE("/*", api.reset)
}

// retrieve returns the stored snapshot for the authed user, or the page-zero
// empty state when nothing (valid) is stored yet.
func (api *progressApi) retrieve(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	p, err := api.svc.Load(ctx.Request().Context(), claims.Subject, ctx.Param("*"))
	if err != nil {
		if errors.Cause(err) == lesson.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "loading progress")
	}
	return ctx.JSON(http.StatusOK, p)
}

// save overwrites the stored snapshot whole. The payload goes through the
// same defensive decode as a load, so the response is the clamped state
// that actually got stored.
func (api *progressApi) save(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	raw, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return errors.Wrap(err, "reading progress payload")
	}

	p, err := api.svc.Save(ctx.Request().Context(), claims.Subject, ctx.Param("*"), raw)
	if err != nil {
		if errors.Cause(err) == lesson.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "saving progress")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *progressApi) advance(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	p, err := api.svc.Advance(ctx.Request().Context(), claims.Subject, ctx.Param("*"))
	if err != nil {
		if progress.IsBlocked(err) {
			return err // handled as 409 by the error handler
		}
		if errors.Cause(err) == lesson.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "advancing progress")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *progressApi) retreat(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	p, err := api.svc.Retreat(ctx.Request().Context(), claims.Subject, ctx.Param("*"))
	if err != nil {
		if errors.Cause(err) == lesson.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "retreating progress")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *progressApi) reset(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	if err := api.svc.Reset(ctx.Request().Context(), claims.Subject, ctx.Param("*")); err != nil {
		return errors.Wrap(err, "resetting progress")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *progressApi) getNavigation(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	state, err := api.svc.Navigation(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "loading navigation state")
	}
	return ctx.JSON(http.StatusOK, state)
}

func (api *progressApi) putNavigation(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var state progress.NavigationState
	if err := ctx.Bind(&state); err != nil {
		return errors.Wrap(err, "binding to NavigationState")
	}
	if state.View == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "view", Error: "view is required"})
	}

	if err := api.svc.SetNavigation(ctx.Request().Context(), claims.Subject, state); err != nil {
		return errors.Wrap(err, "saving navigation state")
	}
	return ctx.JSON(http.StatusOK, state)
}
