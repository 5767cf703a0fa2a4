package handler

import (
	"errors"

	"luckywheel/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupWheel struct {
	container *do.Injector
}

func (gr *groupWheel) Spin(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := ResolveValidUser(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceWheel, err := do.Invoke[*services.ServiceWheel](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	outcome, err := serviceWheel.Spin(ctx, user)
	if err != nil {
		var cooldown *services.CooldownError
		if errors.As(err, &cooldown) {
			return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.RateLimiting))
		}
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, outcome, nil)
}
