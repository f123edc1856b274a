package api

import (
	"context"
)

type keyType string

const actorKey keyType = "actor"

// ctxWithActor records who made the request: the token subject when tokens
// are verified, otherwise the raw bearer token.
func ctxWithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ctxGetActor returns "" for unauthenticated requests.
func ctxGetActor(ctx context.Context) string {
	actor, _ := ctx.Value(actorKey).(string)
	return actor
}
