package service

import (
	"context"
	"fmt"

	"weconnect/internal/models"
	"weconnect/internal/repository"
	"weconnect/internal/validation"
)

// ReviewService owns reviews attached to businesses, with the
// no-self-review restriction and author-scoped mutation.
type ReviewService struct {
	reviewRepo   repository.ReviewRepository
	businessRepo repository.BusinessRepository
}

// NewReviewService returns a new ReviewService.
func NewReviewService(reviewRepo repository.ReviewRepository, businessRepo repository.BusinessRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:   reviewRepo,
		businessRepo: businessRepo,
	}
}

var reviewSchema = validation.Schema{
	"title": {Required: true, NonEmpty: true},
	"body":  {Required: true, NonEmpty: true},
}

// ReviewPage is one page of reviews, newest first.
type ReviewPage struct {
	Reviews []models.Review
	Info    PageInfo
}

// Create attaches a review to the business. The business owner cannot
// review their own business.
func (s *ReviewService) Create(ctx context.Context, userID, businessID uint, payload map[string]string) (*models.Review, error) {
	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if business.UserID == userID {
		return nil, models.NewUnauthorizedError("you cannot review your own business")
	}

	if errs := validation.Validate(reviewSchema, payload); errs != nil {
		return nil, errs
	}
	if len(payload["body"]) > models.MaxReviewBodyLen {
		return nil, models.NewValidationError(
			fmt.Sprintf("review body cannot exceed %d characters", models.MaxReviewBodyLen))
	}

	review := &models.Review{
		Title:      payload["title"],
		Body:       payload["body"],
		UserID:     userID,
		BusinessID: business.ID,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// ListForBusiness returns the business's reviews newest-first. A
// business with no reviews reports a distinct not-found condition
// rather than an empty page.
func (s *ReviewService) ListForBusiness(ctx context.Context, businessID uint, page Page) (*ReviewPage, error) {
	if _, err := s.businessRepo.GetByID(ctx, businessID); err != nil {
		return nil, err
	}

	reviews, total, err := s.reviewRepo.ListByBusiness(ctx, businessID, page.PerPage, page.Offset())
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, models.NewNotFoundError("No Reviews for this business")
	}
	return &ReviewPage{
		Reviews: reviews,
		Info:    NewPageInfo(page, total),
	}, nil
}

// Update overwrites title and body. Only the author may update.
func (s *ReviewService) Update(ctx context.Context, userID, reviewID uint, payload map[string]string) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	if errs := validation.Validate(reviewSchema, payload); errs != nil {
		return nil, errs
	}
	if len(payload["body"]) > models.MaxReviewBodyLen {
		return nil, models.NewValidationError(
			fmt.Sprintf("review body cannot exceed %d characters", models.MaxReviewBodyLen))
	}

	if review.UserID != userID {
		return nil, models.NewForbiddenError("you can only update your own review")
	}

	review.Title = payload["title"]
	review.Body = payload["body"]
	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// Delete removes the review. Only the author may delete; the business
// owner has no say here.
func (s *ReviewService) Delete(ctx context.Context, userID, reviewID uint) error {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.UserID != userID {
		return models.NewForbiddenError("you can only delete your own review")
	}
	return s.reviewRepo.Delete(ctx, reviewID)
}
