package service

import (
	"context"

	"renvask/internal/domain"
	"renvask/internal/models"

	"github.com/rs/zerolog"
)

type CustomerService struct {
	repo   domain.Repository
	logger *zerolog.Logger
}

func NewCustomerService(repo domain.Repository, logger *zerolog.Logger) *CustomerService {
	return &CustomerService{repo: repo, logger: logger}
}

func (s *CustomerService) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	return s.repo.CreateCustomer(ctx, customer)
}

func (s *CustomerService) GetCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	return s.repo.GetCustomer(ctx, id)
}

func (s *CustomerService) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	return s.repo.ListCustomers(ctx)
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, customer *models.Customer) error {
	return s.repo.UpdateCustomer(ctx, customer)
}

func (s *CustomerService) DeleteCustomer(ctx context.Context, id int64) error {
	return s.repo.DeleteCustomer(ctx, id)
}
