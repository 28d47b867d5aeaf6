package requestdata

import (
	"context"
	"time"

	"github.com/openmedix/facility-backend/internal/domain"
)

type requestDataKey struct{}

// RequestData carries the authenticated actor from the auth middleware down to
// handlers. Services take the actor as an explicit argument; this only bridges
// the HTTP layer.
type RequestData struct {
	User      *domain.User
	TokenID   string
	ExpiresAt time.Time
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	val := ctx.Value(requestDataKey{})
	if rd, ok := val.(*RequestData); ok {
		return rd
	}
	return nil
}
