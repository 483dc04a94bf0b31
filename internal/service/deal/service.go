package deal

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/optimacrm/crm-backend-go/internal/domain/access"
	"github.com/optimacrm/crm-backend-go/internal/domain/deal"
	"github.com/optimacrm/crm-backend-go/internal/pkg/database"
)

type DealServiceImpl struct {
	db *database.DB
	deal.DealRepository
}

func NewDealService(db *database.DB, dealRepository deal.DealRepository) deal.DealService {
	return &DealServiceImpl{
		db:             db,
		DealRepository: dealRepository,
	}
}

// List implements deal.DealService.
func (s *DealServiceImpl) List(ctx context.Context, scope access.Scope, query deal.ListDealsQuery) ([]deal.DealResponse, int64, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 || query.Limit > 100 {
		query.Limit = 20
	}

	base := access.NewFilter()
	if query.Stage != nil {
		base = base.And("stage = ?", *query.Stage)
	}
	if query.Search != "" {
		base = base.And("title ILIKE ?", "%"+query.Search+"%")
	}
	filter := access.ScopeQuery(scope, access.CollectionDeals, base)

	deals, total, err := s.DealRepository.List(ctx, filter, query.Page, query.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list deals: %w", err)
	}

	return deal.ToResponses(deals), total, nil
}

// Get implements deal.DealService.
func (s *DealServiceImpl) Get(ctx context.Context, scope access.Scope, id string) (deal.DealResponse, error) {
	found, err := s.getScoped(ctx, scope, id)
	if err != nil {
		return deal.DealResponse{}, err
	}
	return deal.ToResponse(found), nil
}

// Create implements deal.DealService.
func (s *DealServiceImpl) Create(ctx context.Context, scope access.Scope, req deal.CreateDealRequest) (deal.DealResponse, error) {
	assignedTo := scope.DefaultAssignee(req.AssignedTo)
	if !scope.AllowsMutation(access.CollectionDeals, access.Ownership{AssignedTo: assignedTo}) {
		return deal.DealResponse{}, access.ErrOwnershipViolation
	}

	created, err := s.DealRepository.Create(ctx, deal.Deal{
		Title:             req.Title,
		Value:             req.Value,
		Stage:             deal.StageProspecting,
		AccountID:         req.AccountID,
		ContactID:         req.ContactID,
		ExpectedCloseDate: req.ExpectedCloseDate,
		AssignedTo:        assignedTo,
		CreatedBy:         scope.UserID,
	})
	if err != nil {
		return deal.DealResponse{}, fmt.Errorf("failed to create deal: %w", err)
	}

	return deal.ToResponse(created), nil
}

// Update implements deal.DealService.
func (s *DealServiceImpl) Update(ctx context.Context, scope access.Scope, req deal.UpdateDealRequest) (deal.DealResponse, error) {
	current, err := s.getScoped(ctx, scope, req.ID)
	if err != nil {
		return deal.DealResponse{}, err
	}
	if !scope.AllowsMutation(access.CollectionDeals, access.Ownership{AssignedTo: current.AssignedTo}) {
		return deal.DealResponse{}, access.ErrOwnershipViolation
	}

	updated, err := s.DealRepository.Update(ctx, req)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return deal.DealResponse{}, deal.ErrDealNotFound
		}
		return deal.DealResponse{}, fmt.Errorf("failed to update deal: %w", err)
	}

	return deal.ToResponse(updated), nil
}

// Delete implements deal.DealService.
func (s *DealServiceImpl) Delete(ctx context.Context, scope access.Scope, id string) error {
	current, err := s.getScoped(ctx, scope, id)
	if err != nil {
		return err
	}
	if !scope.AllowsMutation(access.CollectionDeals, access.Ownership{AssignedTo: current.AssignedTo}) {
		return access.ErrOwnershipViolation
	}

	return s.DealRepository.Delete(ctx, id)
}

func (s *DealServiceImpl) getScoped(ctx context.Context, scope access.Scope, id string) (deal.Deal, error) {
	filter := access.ScopeQuery(scope, access.CollectionDeals, access.NewFilter().And("id = ?", id))

	found, err := s.DealRepository.GetByID(ctx, filter)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return deal.Deal{}, deal.ErrDealNotFound
		}
		return deal.Deal{}, fmt.Errorf("failed to get deal: %w", err)
	}
	return found, nil
}
