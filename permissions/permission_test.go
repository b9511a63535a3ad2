package permissions_test

import (
	"carrental/permissions"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindPermissions(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	tests := []struct {
		name     string
		path     string
		wantSkip bool
		allowed  []string
		denied   []string
	}{
		{name: "login needs no session", path: "login", wantSkip: true},
		{name: "subcommand inherits parent", path: "vehicles toggle", allowed: []string{"Admin", "Manager", "Staff"}},
		{name: "import is restricted", path: "vehicles import", allowed: []string{"Admin", "Manager"}, denied: []string{"Staff"}},
		{name: "users are admin only", path: "users add", allowed: []string{"Admin"}, denied: []string{"Manager", "Staff"}},
		{name: "unknown command admits any operator", path: "reports weekly", allowed: []string{"Staff"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			permission := data.FindPermissions(tt.path)

			assert.Equal(t, tt.wantSkip, permission.Skip)

			for _, role := range tt.allowed {
				assert.True(t, permission.Allows(role), role)
			}

			for _, role := range tt.denied {
				assert.False(t, permission.Allows(role), role)
			}
		})
	}
}
