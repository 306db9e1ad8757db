// Package requestdata threads the authenticated caller identity through
// context.Context. The identity is the only source of tenant scoping; nothing
// downstream ever reads a tenant id out of a request payload.
package requestdata

import (
	"context"
)

var requestDataKey = struct{}{}

type RequestData struct {
	TokenString string
	UserID      string
	TenantID    string
	Role        string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	val := ctx.Value(requestDataKey)
	if rd, ok := val.(*RequestData); ok {
		return rd
	}
	return nil
}
