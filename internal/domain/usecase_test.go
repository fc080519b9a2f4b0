package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDepartmentValid(t *testing.T) {
	for _, d := range Departments() {
		assert.True(t, d.Valid(), "department %q should be valid", d)
	}
	assert.False(t, Department("Sales").Valid())
	assert.False(t, Department("").Valid())
	assert.False(t, Department("marketing").Valid(), "enum members are case sensitive")
}

func TestStatusValid(t *testing.T) {
	for _, s := range Statuses() {
		assert.True(t, s.Valid(), "status %q should be valid", s)
	}
	assert.False(t, Status("Production").Valid())
	assert.False(t, Status("").Valid())
}

func TestStatusRankOrder(t *testing.T) {
	assert.Equal(t, 0, StatusIdeation.Rank())
	assert.Equal(t, -1, Status("bogus").Rank())

	// Lifecycle order is meaningful: each stage ranks above the previous.
	statuses := Statuses()
	for i := 1; i < len(statuses); i++ {
		assert.Greater(t, statuses[i].Rank(), statuses[i-1].Rank())
	}
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleEditor.Valid())
	assert.True(t, RoleViewer.Valid())
	assert.False(t, Role("superuser").Valid())
}
