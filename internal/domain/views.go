package domain

import "context"

// View names used for cache invalidation after mutations. They mirror the
// frontend routes whose cached renderings go stale.
const (
	ViewJobs          = "jobs"
	ViewRefer         = "refer"
	ViewMessages      = "messages"
	ViewNotifications = "notifications"
	ViewHome          = "home"
)

// ViewInvalidator signals the presentation layer that cached views of a
// route are stale. Calls are fire-and-forget: invalidation failures are
// logged, never propagated, and correctness does not depend on them.
type ViewInvalidator interface {
	Invalidate(ctx context.Context, views ...string)
}
