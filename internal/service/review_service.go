package service

import (
	"context"
	"errors"
	"strings"

	"renvask/internal/domain"
	"renvask/internal/events"
	"renvask/internal/models"

	"github.com/rs/zerolog"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

type ReviewService struct {
	repo     domain.Repository
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewReviewService(repo domain.Repository, eventBus domain.EventPublisher, logger *zerolog.Logger) *ReviewService {
	return &ReviewService{repo: repo, eventBus: eventBus, logger: logger}
}

func (s *ReviewService) SubmitReview(ctx context.Context, review *models.Review) error {
	if review.Rating < 1 || review.Rating > 5 {
		return ErrInvalidRating
	}
	if strings.TrimSpace(review.CustomerName) == "" {
		return &ValidationError{Fields: map[string]string{"name": "name is required"}}
	}

	if err := s.repo.CreateReview(ctx, review); err != nil {
		return err
	}

	if s.eventBus != nil {
		if err := s.eventBus.PublishJSON(events.EventReviewReceived, review); err != nil {
			s.logger.Error().Err(err).Msg("publish review event error")
		}
	}
	return nil
}

func (s *ReviewService) ListReviews(ctx context.Context, limit int) ([]*models.Review, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.ListReviews(ctx, limit)
}

func (s *ReviewService) AverageRating(ctx context.Context, serviceID string) (float64, int, error) {
	return s.repo.AverageRating(ctx, serviceID)
}

func (s *ReviewService) SubmitMessage(ctx context.Context, message *models.Message) error {
	fields := make(map[string]string)
	if strings.TrimSpace(message.Name) == "" {
		fields["name"] = "name is required"
	}
	if strings.TrimSpace(message.Email) == "" {
		fields["email"] = "email is required"
	} else if !emailPattern.MatchString(message.Email) {
		fields["email"] = "email is invalid"
	}
	if strings.TrimSpace(message.Body) == "" {
		fields["body"] = "message body is required"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	if err := s.repo.CreateMessage(ctx, message); err != nil {
		return err
	}

	if s.eventBus != nil {
		if err := s.eventBus.PublishJSON(events.EventMessageReceived, message); err != nil {
			s.logger.Error().Err(err).Msg("publish message event error")
		}
	}
	return nil
}

func (s *ReviewService) ListMessages(ctx context.Context, limit int) ([]*models.Message, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.ListMessages(ctx, limit)
}
