package policies

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	policyRepo "github.com/m04kA/SMC-GroomingService/internal/infra/storage/policy"
	"github.com/m04kA/SMC-GroomingService/internal/service/policies/models"
)

// Service сервис для работы с политиками бронирования
type Service struct {
	policyRepo PolicyRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса политик
func NewService(policyRepo PolicyRepository, logger Logger) *Service {
	return &Service{
		policyRepo: policyRepo,
		logger:     logger,
	}
}

// Get возвращает политики организации
// Публичный метод - если политики не сохранены, возвращаются значения по умолчанию
func (s *Service) Get(ctx context.Context, organizationID int64) (*models.PoliciesResponse, error) {
	s.logger.Info("Get: fetching booking policies for organization=%d", organizationID)

	if organizationID <= 0 {
		return nil, fmt.Errorf("%w: organizationID must be positive", ErrInvalidInput)
	}

	policies, isDefault, err := s.load(ctx, organizationID)
	if err != nil {
		s.logger.Error("Get: repository error for organization=%d: %v", organizationID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPolicies(policies, isDefault), nil
}

// Update частично обновляет политики организации
// Если политики еще не сохранены, изменения применяются к значениям по умолчанию
func (s *Service) Update(ctx context.Context, req *models.UpdatePoliciesRequest) (*models.PoliciesResponse, error) {
	s.logger.Info("Update: updating booking policies for organization=%d by user=%d", req.OrganizationID, req.UserID)

	// 1. Валидация входных данных
	if req.OrganizationID <= 0 {
		return nil, fmt.Errorf("%w: organizationID must be positive", ErrInvalidInput)
	}
	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	// 2. Получаем текущие политики
	policies, _, err := s.load(ctx, req.OrganizationID)
	if err != nil {
		s.logger.Error("Update: repository error for organization=%d: %v", req.OrganizationID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// 3. Применяем изменения и проверяем результат целиком
	req.ApplyToPolicies(policies)
	if err := policies.Validate(); err != nil {
		s.logger.Warn("Update: validation failed for organization=%d: %v", req.OrganizationID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 4. Сохраняем
	saved, err := s.policyRepo.Upsert(ctx, policies)
	if err != nil {
		s.logger.Error("Update: failed to save policies for organization=%d: %v", req.OrganizationID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated booking policies for organization=%d", req.OrganizationID)
	return models.FromDomainPolicies(saved, false), nil
}

// load возвращает сохраненные политики или значения по умолчанию
func (s *Service) load(ctx context.Context, organizationID int64) (*domain.BookingPolicies, bool, error) {
	policies, err := s.policyRepo.GetByOrganization(ctx, organizationID)
	if err != nil {
		if errors.Is(err, policyRepo.ErrPoliciesNotFound) {
			s.logger.Info("load: no policies stored for organization=%d, using defaults", organizationID)
			return domain.DefaultBookingPolicies(organizationID), true, nil
		}
		return nil, false, err
	}
	return policies, false, nil
}
