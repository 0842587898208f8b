package app

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Shriprasad-P/Matrix-abacus-site/internal/domain"
)

const cacheKeyAll = "reviews:all"

func cacheKeyLocation(name string) string {
	return "reviews:loc:" + strings.ToLower(name)
}

type ReviewService struct {
	repo     domain.ReviewRepository
	cache    domain.Cache // optional; nil disables caching
	mailer   domain.Mailer
	cacheTTL time.Duration
}

func NewReviewService(r domain.ReviewRepository, c domain.Cache, m domain.Mailer, ttl time.Duration) *ReviewService {
	return &ReviewService{repo: r, cache: c, mailer: m, cacheTTL: ttl}
}

func (s *ReviewService) List(ctx context.Context) ([]domain.Review, error) {
	if s.cache != nil {
		var out []domain.Review
		if ok, _ := s.cache.Get(ctx, cacheKeyAll, &out); ok {
			return out, nil
		}
	}
	rs, err := s.repo.ListReviews(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, cacheKeyAll, rs)
	return rs, nil
}

func (s *ReviewService) ListByLocation(ctx context.Context, locationName string) ([]domain.Review, error) {
	key := cacheKeyLocation(locationName)
	if s.cache != nil {
		var out []domain.Review
		if ok, _ := s.cache.Get(ctx, key, &out); ok {
			return out, nil
		}
	}
	rs, err := s.repo.ListByLocation(ctx, locationName)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, rs)
	return rs, nil
}

// Submit validates and persists a review, then notifies the site owner.
// The notification is best-effort: a mail failure is logged but never fails
// the submission.
func (s *ReviewService) Submit(ctx context.Context, r domain.Review) (domain.Review, error) {
	if err := r.Validate(); err != nil {
		return domain.Review{}, err
	}
	r.ID = uuid.NewString()
	r.CreatedAt = time.Now().UTC()

	if err := s.repo.AddReview(ctx, r); err != nil {
		return domain.Review{}, err
	}
	s.invalidate(ctx, r.LocationName)

	if s.mailer != nil {
		if err := s.mailer.SendReviewNotification(ctx, r); err != nil {
			log.Warn().Err(err).Str("review_id", r.ID).Msg("review notification failed")
		}
	}
	return r, nil
}

func (s *ReviewService) cacheSet(ctx context.Context, key string, rs []domain.Review) {
	if s.cache == nil {
		return
	}
	// copy before caching so callers can't mutate the cached slice
	cp := make([]domain.Review, len(rs))
	copy(cp, rs)
	_ = s.cache.Set(ctx, key, cp, int(s.cacheTTL.Seconds()))
}

func (s *ReviewService) invalidate(ctx context.Context, locationName string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, cacheKeyAll)
	_ = s.cache.Del(ctx, cacheKeyLocation(locationName))
}
