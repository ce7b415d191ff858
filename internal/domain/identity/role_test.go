package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swiftbasket/backend/internal/domain/shared"
)

func TestParseRole(t *testing.T) {
	role, err := ParseRole("vendor")
	require.NoError(t, err)
	assert.Equal(t, RoleVendor, role)

	role, err = ParseRole("buyer")
	require.NoError(t, err)
	assert.Equal(t, RoleBuyer, role)
}

func TestParseRoleUnknown(t *testing.T) {
	_, err := ParseRole("admin")
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_ROLE", domainErr.Code)
}

func TestRoleCapabilities(t *testing.T) {
	assert.True(t, RoleVendor.HasCapability(CapStoreCreate))
	assert.True(t, RoleVendor.HasCapability(CapProductDelete))
	assert.False(t, RoleVendor.HasCapability(CapCartManage))

	assert.True(t, RoleBuyer.HasCapability(CapCartManage))
	assert.True(t, RoleBuyer.HasCapability(CapReviewCreate))
	assert.False(t, RoleBuyer.HasCapability(CapStoreCreate))
}

func TestRoleCapabilityStringsMatchCapabilities(t *testing.T) {
	for _, role := range []Role{RoleVendor, RoleBuyer} {
		caps := role.Capabilities()
		strs := role.CapabilityStrings()
		require.Len(t, strs, len(caps))
		for i, c := range caps {
			assert.Equal(t, string(c), strs[i])
		}
	}
}
