package rbac_test

import (
	"context"
	"errors"
	"testing"

	"go-personnel/internal/domain"
	"go-personnel/internal/rbac"
	"go-personnel/internal/rbac/infra"
	rbacMock "go-personnel/internal/rbac/mock"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newTestService(t *testing.T, repo rbac.Repository) rbac.Service {
	enforcer, err := infra.NewDefaultEnforcer()
	assert.NoError(t, err)
	return rbac.NewService(repo, enforcer)
}

func TestRBACService_Enforce(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := rbacMock.NewMockRepository(ctrl)
	repo.EXPECT().
		GetPersonnelRoles(gomock.Any(), "company-1").
		Return([]rbac.PersonnelRoleRow{{PersonnelID: "prs-1", RoleID: "role-hr"}}, nil).
		AnyTimes()
	repo.EXPECT().
		GetRolePermissions(gomock.Any(), "company-1").
		Return([]rbac.RolePermissionRow{
			{RoleID: "role-hr", Resource: "personnel", Action: "read"},
			{RoleID: "role-hr", Resource: "salary", Action: "create"},
		}, nil).
		AnyTimes()

	svc := newTestService(t, repo)
	ctx := context.Background()

	t.Run("allowed permission", func(t *testing.T) {
		allowed, err := svc.Enforce(ctx, domain.EnforceRequest{
			PersonnelID: "prs-1", CompanyID: "company-1", Resource: "salary", Action: "create",
		})
		assert.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("missing permission", func(t *testing.T) {
		allowed, err := svc.Enforce(ctx, domain.EnforceRequest{
			PersonnelID: "prs-1", CompanyID: "company-1", Resource: "salary", Action: "delete",
		})
		assert.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("unknown personnel", func(t *testing.T) {
		allowed, err := svc.Enforce(ctx, domain.EnforceRequest{
			PersonnelID: "prs-2", CompanyID: "company-1", Resource: "personnel", Action: "read",
		})
		assert.NoError(t, err)
		assert.False(t, allowed)
	})
}

func TestRBACService_Enforce_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := rbacMock.NewMockRepository(ctrl)
	repo.EXPECT().GetPersonnelRoles(gomock.Any(), "company-1").Return(nil, errors.New("db down"))

	svc := newTestService(t, repo)

	allowed, err := svc.Enforce(context.Background(), domain.EnforceRequest{
		PersonnelID: "prs-1", CompanyID: "company-1", Resource: "personnel", Action: "read",
	})
	assert.Error(t, err)
	assert.False(t, allowed)
}

func TestRBACService_LoadCompanyPolicy_PermissionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := rbacMock.NewMockRepository(ctrl)
	gomock.InOrder(
		repo.EXPECT().GetPersonnelRoles(gomock.Any(), "company-1").Return([]rbac.PersonnelRoleRow{{PersonnelID: "prs-1", RoleID: "role-hr"}}, nil),
		repo.EXPECT().GetRolePermissions(gomock.Any(), "company-1").Return(nil, errors.New("timeout")),
	)

	err := newTestService(t, repo).LoadCompanyPolicy(context.Background(), "company-1")

	assert.EqualError(t, err, "timeout")
}
