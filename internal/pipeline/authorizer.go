package pipeline

import (
	"context"

	"desknerd/internal/operation"
)

// Authorizer decides whether an actor may run an operation. The check
// runs before admission: an unauthorized request is never validated,
// never counted against resources.
type Authorizer interface {
	Authorize(ctx context.Context, op *operation.Operation, actor string) bool
}

// AllowAll authorizes every request. Single-user deployments.
type AllowAll struct{}

// Authorize always returns true.
func (AllowAll) Authorize(context.Context, *operation.Operation, string) bool { return true }

// ActorAllowlist authorizes only listed actors.
type ActorAllowlist map[string]struct{}

// NewActorAllowlist builds an allowlist from actor names.
func NewActorAllowlist(actors ...string) ActorAllowlist {
	l := make(ActorAllowlist, len(actors))
	for _, a := range actors {
		l[a] = struct{}{}
	}
	return l
}

// Authorize reports whether the actor is listed.
func (l ActorAllowlist) Authorize(_ context.Context, _ *operation.Operation, actor string) bool {
	_, ok := l[actor]
	return ok
}
