package contact

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/optimacrm/crm-backend-go/internal/domain/access"
	"github.com/optimacrm/crm-backend-go/internal/domain/contact"
	"github.com/optimacrm/crm-backend-go/internal/pkg/database"
)

type ContactServiceImpl struct {
	db *database.DB
	contact.ContactRepository
}

func NewContactService(db *database.DB, contactRepository contact.ContactRepository) contact.ContactService {
	return &ContactServiceImpl{
		db:                db,
		ContactRepository: contactRepository,
	}
}

// List implements contact.ContactService.
func (s *ContactServiceImpl) List(ctx context.Context, scope access.Scope, query contact.ListContactsQuery) ([]contact.ContactResponse, int64, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 || query.Limit > 100 {
		query.Limit = 20
	}

	base := access.NewFilter()
	if query.AccountID != nil {
		base = base.And("account_id = ?", *query.AccountID)
	}
	if query.Search != "" {
		pattern := "%" + query.Search + "%"
		base = base.And("(first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?)", pattern, pattern, pattern)
	}
	filter := access.ScopeQuery(scope, access.CollectionContacts, base)

	contacts, total, err := s.ContactRepository.List(ctx, filter, query.Page, query.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list contacts: %w", err)
	}

	return contact.ToResponses(contacts), total, nil
}

// Get implements contact.ContactService.
func (s *ContactServiceImpl) Get(ctx context.Context, scope access.Scope, id string) (contact.ContactResponse, error) {
	found, err := s.getScoped(ctx, scope, id)
	if err != nil {
		return contact.ContactResponse{}, err
	}
	return contact.ToResponse(found), nil
}

// Create implements contact.ContactService.
func (s *ContactServiceImpl) Create(ctx context.Context, scope access.Scope, req contact.CreateContactRequest) (contact.ContactResponse, error) {
	assignedTo := scope.DefaultAssignee(req.AssignedTo)
	if !scope.AllowsMutation(access.CollectionContacts, access.Ownership{AssignedTo: assignedTo}) {
		return contact.ContactResponse{}, access.ErrOwnershipViolation
	}

	created, err := s.ContactRepository.Create(ctx, contact.Contact{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Title:      req.Title,
		AccountID:  req.AccountID,
		AssignedTo: assignedTo,
		CreatedBy:  scope.UserID,
	})
	if err != nil {
		return contact.ContactResponse{}, fmt.Errorf("failed to create contact: %w", err)
	}

	return contact.ToResponse(created), nil
}

// Update implements contact.ContactService.
func (s *ContactServiceImpl) Update(ctx context.Context, scope access.Scope, req contact.UpdateContactRequest) (contact.ContactResponse, error) {
	current, err := s.getScoped(ctx, scope, req.ID)
	if err != nil {
		return contact.ContactResponse{}, err
	}
	if !scope.AllowsMutation(access.CollectionContacts, access.Ownership{AssignedTo: current.AssignedTo}) {
		return contact.ContactResponse{}, access.ErrOwnershipViolation
	}

	updated, err := s.ContactRepository.Update(ctx, req)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return contact.ContactResponse{}, contact.ErrContactNotFound
		}
		return contact.ContactResponse{}, fmt.Errorf("failed to update contact: %w", err)
	}

	return contact.ToResponse(updated), nil
}

// Delete implements contact.ContactService.
func (s *ContactServiceImpl) Delete(ctx context.Context, scope access.Scope, id string) error {
	current, err := s.getScoped(ctx, scope, id)
	if err != nil {
		return err
	}
	if !scope.AllowsMutation(access.CollectionContacts, access.Ownership{AssignedTo: current.AssignedTo}) {
		return access.ErrOwnershipViolation
	}

	return s.ContactRepository.Delete(ctx, id)
}

func (s *ContactServiceImpl) getScoped(ctx context.Context, scope access.Scope, id string) (contact.Contact, error) {
	filter := access.ScopeQuery(scope, access.CollectionContacts, access.NewFilter().And("id = ?", id))

	found, err := s.ContactRepository.GetByID(ctx, filter)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return contact.Contact{}, contact.ErrContactNotFound
		}
		return contact.Contact{}, fmt.Errorf("failed to get contact: %w", err)
	}
	return found, nil
}
