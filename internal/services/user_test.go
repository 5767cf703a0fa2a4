package services

import (
	"context"
	"strings"
	"testing"
)

func newTestServiceUser(t *testing.T) *ServiceUser {
	t.Helper()

	db := newTestDB(t)

	authentication, err := NewAuthentication("test-secret")
	if err != nil {
		t.Fatal(err)
	}

	return &ServiceUser{nil, db, missCache{}, allowLimiter{}, newTestServiceCodes(db), authentication}
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("register issues a participant code", func(t *testing.T) {
		serviceUser := newTestServiceUser(t)

		user, token, err := serviceUser.Register(ctx, "10.0.0.1", "hunter2")
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(user.Code, NamespaceParticipant.Prefix) {
			t.Fatalf("expected a %q code, got %q", NamespaceParticipant.Prefix, user.Code)
		}
		if token == "" {
			t.Fatal("expected a session token")
		}
	})

	t.Run("login round trip", func(t *testing.T) {
		serviceUser := newTestServiceUser(t)

		registered, _, err := serviceUser.Register(ctx, "10.0.0.1", "hunter2")
		if err != nil {
			t.Fatal(err)
		}

		user, token, err := serviceUser.Login(ctx, registered.Code, "hunter2")
		if err != nil {
			t.Fatal(err)
		}
		if user.ID != registered.ID {
			t.Fatalf("expected user %d, got %d", registered.ID, user.ID)
		}

		auth, err := serviceUser.authentication.Validate(token)
		if err != nil {
			t.Fatal(err)
		}
		if auth.ID != registered.ID || auth.Code != registered.Code {
			t.Fatalf("token does not identify the user: %+v", auth)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		serviceUser := newTestServiceUser(t)

		registered, _, err := serviceUser.Register(ctx, "10.0.0.1", "hunter2")
		if err != nil {
			t.Fatal(err)
		}

		if _, _, err := serviceUser.Login(ctx, registered.Code, "nope"); err == nil {
			t.Fatal("expected an error")
		}
	})

	t.Run("unknown code", func(t *testing.T) {
		serviceUser := newTestServiceUser(t)

		if _, _, err := serviceUser.Login(ctx, "LW000000", "hunter2"); err == nil {
			t.Fatal("expected an error")
		}
	})

	t.Run("rate limited", func(t *testing.T) {
		serviceUser := newTestServiceUser(t)
		serviceUser.limiter = denyLimiter{}

		if _, _, err := serviceUser.Register(ctx, "10.0.0.1", "hunter2"); err == nil {
			t.Fatal("expected an error")
		}
	})
}
