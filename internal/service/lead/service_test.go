package lead

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/optimacrm/crm-backend-go/internal/domain/access"
	"github.com/optimacrm/crm-backend-go/internal/domain/lead"
	"github.com/optimacrm/crm-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLeadRepo struct {
	stored     lead.Lead
	getErr     error
	listLeads  []lead.Lead
	listTotal  int64
	lastFilter access.Filter
	created    *lead.Lead
}

func (r *fakeLeadRepo) List(ctx context.Context, filter access.Filter, page, limit int) ([]lead.Lead, int64, error) {
	r.lastFilter = filter
	if page > 1 {
		return nil, r.listTotal, nil
	}
	return r.listLeads, r.listTotal, nil
}

func (r *fakeLeadRepo) GetByID(ctx context.Context, filter access.Filter) (lead.Lead, error) {
	r.lastFilter = filter
	if r.getErr != nil {
		return lead.Lead{}, r.getErr
	}
	return r.stored, nil
}

func (r *fakeLeadRepo) Create(ctx context.Context, l lead.Lead) (lead.Lead, error) {
	l.ID = "lead-1"
	r.created = &l
	return l, nil
}

func (r *fakeLeadRepo) Update(ctx context.Context, req lead.UpdateLeadRequest) (lead.Lead, error) {
	return r.stored, nil
}

func (r *fakeLeadRepo) UpdateStatus(ctx context.Context, id string, status lead.Status) error {
	return nil
}

func (r *fakeLeadRepo) Delete(ctx context.Context, id string) error { return nil }

func executiveScope() access.Scope {
	return access.Scope{Role: user.RoleSalesExecutive, UserID: "exec-1", Email: "exec@example.com"}
}

func TestLeadService_Get_ScopesQueryByAssignee(t *testing.T) {
	repo := &fakeLeadRepo{getErr: pgx.ErrNoRows}
	service := NewLeadService(nil, repo, nil)

	_, err := service.Get(context.Background(), executiveScope(), "lead-1")

	assert.ErrorIs(t, err, lead.ErrLeadNotFound)

	clause, args := repo.lastFilter.Clause()
	assert.Equal(t, "WHERE id = $1 AND assigned_to = $2", clause)
	assert.Equal(t, []any{"lead-1", "exec-1"}, args)
}

func TestLeadService_Get_ManagerUnrestricted(t *testing.T) {
	repo := &fakeLeadRepo{stored: lead.Lead{ID: "lead-1", AssignedTo: "someone-else"}}
	service := NewLeadService(nil, repo, nil)

	scope := access.Scope{Role: user.RoleSalesManager, UserID: "mgr-1"}
	found, err := service.Get(context.Background(), scope, "lead-1")

	require.NoError(t, err)
	assert.Equal(t, "lead-1", found.ID)

	clause, _ := repo.lastFilter.Clause()
	assert.Equal(t, "WHERE id = $1", clause)
}

func TestLeadService_Create_DefaultsAssigneeToCreator(t *testing.T) {
	repo := &fakeLeadRepo{}
	service := NewLeadService(nil, repo, nil)

	created, err := service.Create(context.Background(), executiveScope(), lead.CreateLeadRequest{
		Name:  "Jordan Blake",
		Email: "jordan@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "exec-1", created.AssignedTo)
	assert.Equal(t, lead.StatusNew, created.Status)
	require.NotNil(t, repo.created)
	assert.Equal(t, "exec-1", repo.created.CreatedBy)
}

func TestLeadService_Create_ExecutiveCannotAssignOthers(t *testing.T) {
	repo := &fakeLeadRepo{}
	service := NewLeadService(nil, repo, nil)

	_, err := service.Create(context.Background(), executiveScope(), lead.CreateLeadRequest{
		Name:       "Jordan Blake",
		Email:      "jordan@example.com",
		AssignedTo: "someone-else",
	})

	assert.ErrorIs(t, err, access.ErrOwnershipViolation)
	assert.Nil(t, repo.created)
}

func TestLeadService_Update_ReassignedRecordRefused(t *testing.T) {
	// The record was visible once, but its current assignee is someone else.
	repo := &fakeLeadRepo{stored: lead.Lead{ID: "lead-1", AssignedTo: "someone-else"}}
	service := NewLeadService(nil, repo, nil)

	_, err := service.Update(context.Background(), executiveScope(), lead.UpdateLeadRequest{ID: "lead-1"})

	assert.ErrorIs(t, err, access.ErrOwnershipViolation)
}

func TestLeadService_Convert_AlreadyConverted(t *testing.T) {
	repo := &fakeLeadRepo{stored: lead.Lead{ID: "lead-1", Name: "Jordan Blake", Status: lead.StatusConverted, AssignedTo: "exec-1"}}
	service := NewLeadService(nil, repo, nil)

	_, err := service.Convert(context.Background(), executiveScope(), "lead-1")

	assert.ErrorIs(t, err, lead.ErrLeadAlreadyConverted)
}

func TestLeadService_ExportCSV(t *testing.T) {
	phone := "+1555123456"
	repo := &fakeLeadRepo{
		listLeads: []lead.Lead{
			{ID: "lead-1", Name: "Jordan Blake", Email: "jordan@example.com", Phone: &phone, Status: lead.StatusNew, AssignedTo: "exec-1"},
			{ID: "lead-2", Name: "Casey Reyes", Email: "casey@example.com", Status: lead.StatusQualified, AssignedTo: "exec-1"},
		},
		listTotal: 2,
	}
	service := NewLeadService(nil, repo, nil)

	data, err := service.ExportCSV(context.Background(), executiveScope())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "id", records[0][0])
	assert.Equal(t, "Jordan Blake", records[1][1])
	assert.Equal(t, "+1555123456", records[1][3])
	assert.Equal(t, "qualified", records[2][6])
	assert.Equal(t, "", records[2][3])

	// The export itself must be scoped like any listing.
	clause, _ := repo.lastFilter.Clause()
	assert.Equal(t, "WHERE assigned_to = $1", clause)
}

func TestSplitName(t *testing.T) {
	cases := []struct {
		full  string
		first string
		last  string
	}{
		{"Jordan Blake", "Jordan", "Blake"},
		{"Jordan", "Jordan", ""},
		{"Jordan van der Berg", "Jordan", "van der Berg"},
		{"", "", ""},
	}

	for _, tc := range cases {
		first, last := splitName(tc.full)
		assert.Equal(t, tc.first, first, tc.full)
		assert.Equal(t, tc.last, last, tc.full)
	}
}
