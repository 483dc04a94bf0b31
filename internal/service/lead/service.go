package lead

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/optimacrm/crm-backend-go/internal/domain/access"
	"github.com/optimacrm/crm-backend-go/internal/domain/contact"
	"github.com/optimacrm/crm-backend-go/internal/domain/lead"
	"github.com/optimacrm/crm-backend-go/internal/pkg/database"
	"github.com/optimacrm/crm-backend-go/internal/repository/postgresql"
)

const exportPageSize = 500

type LeadServiceImpl struct {
	db database.TxBeginner
	lead.LeadRepository
	contact.ContactRepository
}

func NewLeadService(db database.TxBeginner, leadRepository lead.LeadRepository, contactRepository contact.ContactRepository) lead.LeadService {
	return &LeadServiceImpl{
		db:                db,
		LeadRepository:    leadRepository,
		ContactRepository: contactRepository,
	}
}

func listFilter(scope access.Scope, query lead.ListLeadsQuery) access.Filter {
	base := access.NewFilter()
	if query.Status != nil {
		base = base.And("status = ?", *query.Status)
	}
	if query.Search != "" {
		pattern := "%" + query.Search + "%"
		base = base.And("(name ILIKE ? OR email ILIKE ? OR company ILIKE ?)", pattern, pattern, pattern)
	}
	return access.ScopeQuery(scope, access.CollectionLeads, base)
}

// List implements lead.LeadService.
func (s *LeadServiceImpl) List(ctx context.Context, scope access.Scope, query lead.ListLeadsQuery) ([]lead.LeadResponse, int64, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 || query.Limit > 100 {
		query.Limit = 20
	}

	leads, total, err := s.LeadRepository.List(ctx, listFilter(scope, query), query.Page, query.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leads: %w", err)
	}

	return lead.ToResponses(leads), total, nil
}

// Get implements lead.LeadService. The id condition and the ownership scope
// travel in one filter, so an out-of-scope record reads as not found.
func (s *LeadServiceImpl) Get(ctx context.Context, scope access.Scope, id string) (lead.LeadResponse, error) {
	found, err := s.getScoped(ctx, scope, id)
	if err != nil {
		return lead.LeadResponse{}, err
	}
	return lead.ToResponse(found), nil
}

// Create implements lead.LeadService.
func (s *LeadServiceImpl) Create(ctx context.Context, scope access.Scope, req lead.CreateLeadRequest) (lead.LeadResponse, error) {
	assignedTo := scope.DefaultAssignee(req.AssignedTo)
	if !scope.AllowsMutation(access.CollectionLeads, access.Ownership{AssignedTo: assignedTo}) {
		return lead.LeadResponse{}, access.ErrOwnershipViolation
	}

	created, err := s.LeadRepository.Create(ctx, lead.Lead{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Company:    req.Company,
		Source:     req.Source,
		Status:     lead.StatusNew,
		Notes:      req.Notes,
		AssignedTo: assignedTo,
		CreatedBy:  scope.UserID,
	})
	if err != nil {
		return lead.LeadResponse{}, fmt.Errorf("failed to create lead: %w", err)
	}

	return lead.ToResponse(created), nil
}

// Update implements lead.LeadService.
func (s *LeadServiceImpl) Update(ctx context.Context, scope access.Scope, req lead.UpdateLeadRequest) (lead.LeadResponse, error) {
	current, err := s.getScoped(ctx, scope, req.ID)
	if err != nil {
		return lead.LeadResponse{}, err
	}
	if !scope.AllowsMutation(access.CollectionLeads, access.Ownership{AssignedTo: current.AssignedTo}) {
		return lead.LeadResponse{}, access.ErrOwnershipViolation
	}

	updated, err := s.LeadRepository.Update(ctx, req)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return lead.LeadResponse{}, lead.ErrLeadNotFound
		}
		return lead.LeadResponse{}, fmt.Errorf("failed to update lead: %w", err)
	}

	return lead.ToResponse(updated), nil
}

// Delete implements lead.LeadService.
func (s *LeadServiceImpl) Delete(ctx context.Context, scope access.Scope, id string) error {
	current, err := s.getScoped(ctx, scope, id)
	if err != nil {
		return err
	}
	if !scope.AllowsMutation(access.CollectionLeads, access.Ownership{AssignedTo: current.AssignedTo}) {
		return access.ErrOwnershipViolation
	}

	return s.LeadRepository.Delete(ctx, id)
}

// Convert implements lead.LeadService. The new contact inherits the lead's
// assignee; the status flip and the contact insert commit together.
func (s *LeadServiceImpl) Convert(ctx context.Context, scope access.Scope, id string) (contact.ContactResponse, error) {
	current, err := s.getScoped(ctx, scope, id)
	if err != nil {
		return contact.ContactResponse{}, err
	}
	if current.Status == lead.StatusConverted {
		return contact.ContactResponse{}, lead.ErrLeadAlreadyConverted
	}
	if !scope.AllowsMutation(access.CollectionLeads, access.Ownership{AssignedTo: current.AssignedTo}) {
		return contact.ContactResponse{}, access.ErrOwnershipViolation
	}

	firstName, lastName := splitName(current.Name)

	var created contact.Contact
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		created, err = s.ContactRepository.Create(txCtx, contact.Contact{
			FirstName:  firstName,
			LastName:   lastName,
			Email:      current.Email,
			Phone:      current.Phone,
			AssignedTo: current.AssignedTo,
			CreatedBy:  scope.UserID,
		})
		if err != nil {
			return fmt.Errorf("failed to create contact: %w", err)
		}

		if err := s.LeadRepository.UpdateStatus(txCtx, current.ID, lead.StatusConverted); err != nil {
			return fmt.Errorf("failed to mark lead converted: %w", err)
		}
		return nil
	})
	if err != nil {
		return contact.ContactResponse{}, err
	}

	return contact.ToResponse(created), nil
}

// ExportCSV implements lead.LeadService.
func (s *LeadServiceImpl) ExportCSV(ctx context.Context, scope access.Scope) ([]byte, error) {
	filter := access.ScopeQuery(scope, access.CollectionLeads, access.NewFilter())

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"id", "name", "email", "phone", "company", "source", "status", "notes", "assigned_to", "created_at"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for page := 1; ; page++ {
		leads, _, err := s.LeadRepository.List(ctx, filter, page, exportPageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to list leads for export: %w", err)
		}
		if len(leads) == 0 {
			break
		}

		for _, l := range leads {
			record := []string{
				l.ID,
				l.Name,
				l.Email,
				deref(l.Phone),
				deref(l.Company),
				deref(l.Source),
				string(l.Status),
				deref(l.Notes),
				l.AssignedTo,
				l.CreatedAt.Format(time.RFC3339),
			}
			if err := w.Write(record); err != nil {
				return nil, fmt.Errorf("failed to write csv record: %w", err)
			}
		}

		if len(leads) < exportPageSize {
			break
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	return buf.Bytes(), nil
}

func (s *LeadServiceImpl) getScoped(ctx context.Context, scope access.Scope, id string) (lead.Lead, error) {
	filter := access.ScopeQuery(scope, access.CollectionLeads, access.NewFilter().And("id = ?", id))

	found, err := s.LeadRepository.GetByID(ctx, filter)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return lead.Lead{}, lead.ErrLeadNotFound
		}
		return lead.Lead{}, fmt.Errorf("failed to get lead: %w", err)
	}
	return found, nil
}

func splitName(full string) (first, last string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return full, ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
