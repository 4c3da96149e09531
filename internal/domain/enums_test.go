package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"docflow/internal/domain"
)

func TestStatusFromCode(t *testing.T) {
	status, err := domain.StatusFromCode("LEADER_APPROVED")
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusLeaderApproved, status)

	_, err = domain.StatusFromCode("7")
	assert.ErrorIs(t, err, domain.ErrUnknownStatusCode)

	_, err = domain.StatusFromCode("")
	assert.ErrorIs(t, err, domain.ErrUnknownStatusCode)
}

func TestStatusDisplayNames_Total(t *testing.T) {
	for _, status := range domain.AllStatuses {
		name := status.DisplayName()
		assert.NotEmpty(t, name)
		assert.NotEqual(t, string(status), name, "%s should have a distinct display name", status)
	}
}

func TestResolveRoleGroup(t *testing.T) {
	cases := []struct {
		name  string
		roles []string
		want  domain.RoleGroup
	}{
		{"clerk", []string{domain.RoleClerk}, domain.RoleGroupClerk},
		{"specialist", []string{domain.RoleSpecialist}, domain.RoleGroupStaff},
		{"assistant", []string{domain.RoleAssistant}, domain.RoleGroupStaff},
		{"bureau leader", []string{domain.RoleBureauLeader}, domain.RoleGroupBureauLeader},
		{"deputy bureau leader", []string{domain.RoleDeputyBureau}, domain.RoleGroupBureauLeader},
		{"department head", []string{domain.RoleDepartmentHead}, domain.RoleGroupDepartmentLeader},
		{"no matching role", []string{domain.RoleAdmin}, domain.RoleGroupNone},
		{"empty", nil, domain.RoleGroupNone},
		// Precedence: clerk wins over every other group.
		{"clerk and leader", []string{domain.RoleBureauLeader, domain.RoleClerk}, domain.RoleGroupClerk},
		// Staff wins over department leadership.
		{"specialist and dept head", []string{domain.RoleDepartmentHead, domain.RoleSpecialist}, domain.RoleGroupStaff},
		// Bureau leader wins over department leader.
		{"bureau and dept leader", []string{domain.RoleDepartmentHead, domain.RoleDeputyBureau}, domain.RoleGroupBureauLeader},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.ResolveRoleGroup(tc.roles))
		})
	}
}

func TestRoleClassifiers(t *testing.T) {
	assert.True(t, domain.HasLeaderRole([]string{domain.RoleDeputyBureau}))
	assert.False(t, domain.HasLeaderRole([]string{domain.RoleDepartmentHead}))
	assert.True(t, domain.HasDepartmentHeadRole([]string{domain.RoleDeputyDeptHead}))
	assert.False(t, domain.HasDepartmentHeadRole([]string{domain.RoleClerk}))
}
