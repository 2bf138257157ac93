package apicollectionv1

import (
	"context"

	"github.com/fulldump/slotdb/service"
)

type servicerKey struct{}

func SetServicer(ctx context.Context, s service.Servicer) context.Context {
	return context.WithValue(ctx, servicerKey{}, s)
}

// GetServicer panics if SetServicer was not called on the request context.
func GetServicer(ctx context.Context) service.Servicer {
	return ctx.Value(servicerKey{}).(service.Servicer)
}
