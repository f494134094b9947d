package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnforce(t *testing.T) {
	svc, err := NewService()
	assert.NoError(t, err)

	cases := []struct {
		role     string
		resource string
		action   string
		want     bool
	}{
		{"manager", "salary", "set_base", true},
		{"manager", "clock_records", "read_any", true},
		{"manager", "warnings", "read", true},
		{"employee", "salary", "set_base", false},
		{"employee", "clock_records", "read_any", false},
		{"employee", "warnings", "read", false},
		{"", "salary", "set_base", false},
	}
	for _, tc := range cases {
		allowed, err := svc.Enforce(tc.role, tc.resource, tc.action)
		assert.NoError(t, err)
		assert.Equal(t, tc.want, allowed, "%s %s:%s", tc.role, tc.resource, tc.action)
	}
}
