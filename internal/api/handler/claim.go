package handler

import (
	"luckywheel/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupClaim struct {
	container *do.Injector
}

type quizWinnerPayload struct {
	DeviceID string `json:"device_id"`
	Email    string `json:"email"`
}

func (gr *groupClaim) RegisterQuizWinner(c echo.Context) error {
	ctx := c.Request().Context()

	var payload quizWinnerPayload
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	serviceClaim, err := do.Invoke[*services.ServiceClaim](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	claim, recorded, deviceID, err := serviceClaim.RegisterQuizWinner(ctx, c.RealIP(), payload.DeviceID, payload.Email)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, map[string]interface{}{
		"claim":           claim,
		"already_claimed": !recorded,
		"device_id":       deviceID,
	}, nil)
}

func (gr *groupClaim) Today(c echo.Context) error {
	ctx := c.Request().Context()

	serviceClaim, err := do.Invoke[*services.ServiceClaim](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	day := serviceClaim.Today()
	claims, err := serviceClaim.ClaimsByDay(ctx, day)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, map[string]interface{}{
		"day":    day,
		"claims": claims,
	}, nil)
}
