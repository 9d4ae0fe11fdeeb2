package rollout

import "context"

type Service interface {
	// Rollout advances the whole roster from the week starting at
	// req.WeekStart to the following week: the destination window is purged,
	// then every shift and role schedule entry of the current window is
	// cloned seven days forward. At-least-once, not transactional; see
	// PartialRolloutError.
	Rollout(ctx context.Context, req RolloutRequest) (RolloutResponse, error)
}
