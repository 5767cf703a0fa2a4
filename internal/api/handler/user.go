package handler

import (
	"errors"

	"luckywheel/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupUser struct {
	container *do.Injector
}

type credentialsPayload struct {
	Code     string `json:"code"`
	Password string `json:"password"`
}

func (gr *groupUser) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var payload credentialsPayload
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	if payload.Password == "" {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("password is required"), errorx.Validation))
	}

	serviceUser, err := do.Invoke[*services.ServiceUser](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	user, token, err := serviceUser.Register(ctx, c.RealIP(), payload.Password)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, map[string]interface{}{
		"token": token,
		"user":  user,
	}, nil)
}

func (gr *groupUser) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var payload credentialsPayload
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	if payload.Code == "" || payload.Password == "" {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("code and password are required"), errorx.Validation))
	}

	serviceUser, err := do.Invoke[*services.ServiceUser](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	user, token, err := serviceUser.Login(ctx, payload.Code, payload.Password)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, map[string]interface{}{
		"token": token,
		"user":  user,
	}, nil)
}

func (gr *groupUser) Me(c echo.Context) error {
	user, err := ResolveValidUser(c.Request().Context(), gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, user, nil)
}
