package handler

import (
	"database/sql"
	"errors"

	"luckywheel/internal/pkg"
	"luckywheel/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupDraw struct {
	container *do.Injector
}

func (gr *groupDraw) LatestWinner(c echo.Context) error {
	ctx := c.Request().Context()

	serviceDraw, err := do.Invoke[*services.ServiceDraw](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	winner, err := serviceDraw.LatestWinner(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return httpx.RestAbort(c, map[string]interface{}{"winner": nil}, nil)
		}
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, map[string]interface{}{"winner": winner}, nil)
}

func (gr *groupDraw) TriggerDraw(c echo.Context) error {
	ctx := c.Request().Context()

	serviceDraw, err := do.Invoke[*services.ServiceDraw](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	day := c.QueryParam("day")
	if day == "" {
		day = serviceDraw.Today()
	}
	if !pkg.ValidDayString(day) {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("day must be YYYY-MM-DD"), errorx.Validation))
	}

	result, err := serviceDraw.SelectWinner(ctx, day)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, result, nil)
}
