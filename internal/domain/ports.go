package domain

import "context"

type ReviewRepository interface {
	// Write path
	AddReview(ctx context.Context, r Review) error

	// Read paths
	ListReviews(ctx context.Context) ([]Review, error)
	ListByLocation(ctx context.Context, locationName string) ([]Review, error)
}

// Mailer delivers notification emails to the site owner.
type Mailer interface {
	SendReviewNotification(ctx context.Context, r Review) error
	SendContactMessage(ctx context.Context, m ContactMessage) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
