package authz

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestCanActOnAdministrateur exercises the full caller×target level matrix
// for every action.
func TestCanActOnAdministrateur(t *testing.T) {
	levels := []int{1, 2, 3}

	for _, caller := range levels {
		for _, target := range levels {
			t.Run(fmt.Sprintf("view_%d_on_%d", caller, target), func(t *testing.T) {
				want := caller <= target
				assert.Equal(t, want, CanActOnAdministrateur(caller, target, AdminView))
			})

			t.Run(fmt.Sprintf("edit_%d_on_%d", caller, target), func(t *testing.T) {
				want := caller == 1 || (caller == 2 && target == 3)
				assert.Equal(t, want, CanActOnAdministrateur(caller, target, AdminEdit))
			})

			t.Run(fmt.Sprintf("delete_%d_on_%d", caller, target), func(t *testing.T) {
				want := (caller == 1 && (target == 2 || target == 3)) ||
					(caller == 2 && target == 3)
				assert.Equal(t, want, CanActOnAdministrateur(caller, target, AdminDelete))
			})
		}
	}
}

func TestCanAdminSelfDelete(t *testing.T) {
	assert.True(t, CanAdminSelfDelete(1), "root admin may delete itself")
	assert.False(t, CanAdminSelfDelete(2))
	assert.False(t, CanAdminSelfDelete(3))
}

func TestAdminLevelVisible(t *testing.T) {
	tests := []struct {
		caller, target int
		visible        bool
	}{
		{1, 1, true},
		{1, 2, true},
		{1, 3, true},
		{2, 1, false},
		{2, 2, true},
		{2, 3, true},
		{3, 1, false},
		{3, 2, false},
		{3, 3, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("level_%d_sees_%d", tt.caller, tt.target), func(t *testing.T) {
			assert.Equal(t, tt.visible, AdminLevelVisible(tt.caller, tt.target))
		})
	}
}

func TestCanAssignAdminLevel(t *testing.T) {
	tests := []struct {
		name      string
		caller    int
		requested int
		allowed   bool
	}{
		{"root assigns root", 1, 1, true},
		{"root cannot assign supervisor", 1, 2, false},
		{"root cannot assign operator", 1, 3, false},
		{"supervisor cannot assign root", 2, 1, false},
		{"supervisor cannot assign peer", 2, 2, false},
		{"supervisor assigns operator", 2, 3, true},
		{"operator assigns nothing", 3, 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanAssignAdminLevel(tt.caller, tt.requested))
		})
	}
}

func TestUnknownActionDenied(t *testing.T) {
	assert.False(t, CanActOnAdministrateur(1, 3, AdminAction("promote")))
}
