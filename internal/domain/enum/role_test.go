package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
	}{
		{"Admin", RoleAdmin},
		{"admin", RoleAdmin},
		{"Branch Officer", RoleBranchOfficer},
		{"branch-officer", RoleBranchOfficer},
		{"Cashier", RoleCashier},
	}
	for _, tc := range cases {
		got, err := ParseRole(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := ParseRole("Janitor")
	assert.Error(t, err)
}

func TestRoleCapabilities(t *testing.T) {
	t.Run("only cashiers may ring sales", func(t *testing.T) {
		assert.True(t, RoleCashier.Can(CapabilityPOS))
		assert.False(t, RoleAdmin.Can(CapabilityPOS))
		assert.False(t, RoleBranchOfficer.Can(CapabilityPOS))
	})

	t.Run("only admins manage branches", func(t *testing.T) {
		assert.True(t, RoleAdmin.Can(CapabilityBranches))
		assert.False(t, RoleBranchOfficer.Can(CapabilityBranches))
		assert.False(t, RoleCashier.Can(CapabilityBranches))
	})

	t.Run("cashiers get nothing else", func(t *testing.T) {
		caps := RoleCashier.Capabilities()
		require.Len(t, caps, 1)
		assert.Equal(t, CapabilityPOS, caps[0])
	})
}

func TestRoleDefaultRoute(t *testing.T) {
	assert.Equal(t, "/admin/branch-management", RoleAdmin.DefaultRoute())
	assert.Equal(t, "/branch-officer/dashboard", RoleBranchOfficer.DefaultRoute())
	assert.Equal(t, "/cashier/pos", RoleCashier.DefaultRoute())
}

func TestRoleJSON(t *testing.T) {
	data, err := json.Marshal(RoleBranchOfficer)
	require.NoError(t, err)
	assert.Equal(t, `"Branch Officer"`, string(data))

	var r Role
	require.NoError(t, json.Unmarshal([]byte(`"Cashier"`), &r))
	assert.Equal(t, RoleCashier, r)
}
