package services

import (
	"context"
	"fmt"
	"math/rand"

	"luckywheel/internal/datastore"

	"github.com/samber/do"
	"github.com/uptrace/bun"
)

// CodeNamespace is one uniqueness domain of shareable codes: a fixed prefix
// plus a fixed-width random numeric suffix drawn from [Min, Min+Span).
type CodeNamespace struct {
	Prefix string
	Min    int
	Span   int
}

var (
	NamespaceParticipant = CodeNamespace{Prefix: "LW", Min: 100000, Span: 900000}
	NamespaceClaim       = CodeNamespace{Prefix: "QZ", Min: 100000, Span: 900000}
)

type ServiceCodes struct {
	container  *do.Injector
	postgresDB *bun.DB
	attempts   int
}

func NewServiceCodes(container *do.Injector) (*ServiceCodes, error) {
	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	return &ServiceCodes{container, postgresDB, CODE_ISSUE_ATTEMPTS}, nil
}

// Issue draws a free code from the namespace. The store lookup is only an
// optimization: the caller's insert still races against concurrent issuers and
// must rely on the owning table's unique index, retrying Issue when that
// insert is rejected.
func (service *ServiceCodes) Issue(ctx context.Context, ns CodeNamespace) (string, error) {
	for i := 0; i < service.attempts; i++ {
		code := fmt.Sprintf("%s%d", ns.Prefix, ns.Min+rand.Intn(ns.Span))

		taken, err := service.taken(ctx, ns, code)
		if err != nil {
			return "", err
		}

		if !taken {
			return code, nil
		}
	}

	return "", ErrCodeSpaceExhausted
}

func (service *ServiceCodes) taken(ctx context.Context, ns CodeNamespace, code string) (bool, error) {
	switch ns.Prefix {
	case NamespaceParticipant.Prefix:
		return datastore.CheckUserCodeExists(ctx, service.postgresDB, code)
	case NamespaceClaim.Prefix:
		return datastore.CheckClaimCodeExists(ctx, service.postgresDB, code)
	}

	return false, fmt.Errorf("unknown code namespace %q", ns.Prefix)
}
