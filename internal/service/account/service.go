package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/optimacrm/crm-backend-go/internal/domain/access"
	"github.com/optimacrm/crm-backend-go/internal/domain/account"
	"github.com/optimacrm/crm-backend-go/internal/pkg/database"
)

type AccountServiceImpl struct {
	db *database.DB
	account.AccountRepository
}

func NewAccountService(db *database.DB, accountRepository account.AccountRepository) account.AccountService {
	return &AccountServiceImpl{
		db:                db,
		AccountRepository: accountRepository,
	}
}

// List implements account.AccountService.
func (s *AccountServiceImpl) List(ctx context.Context, scope access.Scope, query account.ListAccountsQuery) ([]account.AccountResponse, int64, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 || query.Limit > 100 {
		query.Limit = 20
	}

	base := access.NewFilter()
	if query.Search != "" {
		pattern := "%" + query.Search + "%"
		base = base.And("(name ILIKE ? OR industry ILIKE ?)", pattern, pattern)
	}
	filter := access.ScopeQuery(scope, access.CollectionAccounts, base)

	accounts, total, err := s.AccountRepository.List(ctx, filter, query.Page, query.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list accounts: %w", err)
	}

	return account.ToResponses(accounts), total, nil
}

// Get implements account.AccountService.
func (s *AccountServiceImpl) Get(ctx context.Context, scope access.Scope, id string) (account.AccountResponse, error) {
	found, err := s.getScoped(ctx, scope, id)
	if err != nil {
		return account.AccountResponse{}, err
	}
	return account.ToResponse(found), nil
}

// Create implements account.AccountService.
func (s *AccountServiceImpl) Create(ctx context.Context, scope access.Scope, req account.CreateAccountRequest) (account.AccountResponse, error) {
	assignedTo := scope.DefaultAssignee(req.AssignedTo)
	if !scope.AllowsMutation(access.CollectionAccounts, access.Ownership{AssignedTo: assignedTo}) {
		return account.AccountResponse{}, access.ErrOwnershipViolation
	}

	created, err := s.AccountRepository.Create(ctx, account.Account{
		Name:       req.Name,
		Industry:   req.Industry,
		Website:    req.Website,
		Phone:      req.Phone,
		AssignedTo: assignedTo,
		CreatedBy:  scope.UserID,
	})
	if err != nil {
		return account.AccountResponse{}, fmt.Errorf("failed to create account: %w", err)
	}

	return account.ToResponse(created), nil
}

// Update implements account.AccountService.
func (s *AccountServiceImpl) Update(ctx context.Context, scope access.Scope, req account.UpdateAccountRequest) (account.AccountResponse, error) {
	current, err := s.getScoped(ctx, scope, req.ID)
	if err != nil {
		return account.AccountResponse{}, err
	}
	if !scope.AllowsMutation(access.CollectionAccounts, access.Ownership{AssignedTo: current.AssignedTo}) {
		return account.AccountResponse{}, access.ErrOwnershipViolation
	}

	updated, err := s.AccountRepository.Update(ctx, req)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return account.AccountResponse{}, account.ErrAccountNotFound
		}
		return account.AccountResponse{}, fmt.Errorf("failed to update account: %w", err)
	}

	return account.ToResponse(updated), nil
}

// Delete implements account.AccountService.
func (s *AccountServiceImpl) Delete(ctx context.Context, scope access.Scope, id string) error {
	current, err := s.getScoped(ctx, scope, id)
	if err != nil {
		return err
	}
	if !scope.AllowsMutation(access.CollectionAccounts, access.Ownership{AssignedTo: current.AssignedTo}) {
		return access.ErrOwnershipViolation
	}

	return s.AccountRepository.Delete(ctx, id)
}

func (s *AccountServiceImpl) getScoped(ctx context.Context, scope access.Scope, id string) (account.Account, error) {
	filter := access.ScopeQuery(scope, access.CollectionAccounts, access.NewFilter().And("id = ?", id))

	found, err := s.AccountRepository.GetByID(ctx, filter)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return account.Account{}, account.ErrAccountNotFound
		}
		return account.Account{}, fmt.Errorf("failed to get account: %w", err)
	}
	return found, nil
}
