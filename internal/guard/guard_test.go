package guard_test

import (
	"testing"

	"github.com/expense-tracker/internal/guard"
	"github.com/expense-tracker/internal/models"
	"github.com/stretchr/testify/assert"
)

func activeUser(role models.Role) *models.User {
	return &models.User{ID: 1, Username: "alice", Role: role, IsActive: true}
}

func TestEvaluateAnonymous(t *testing.T) {
	for _, policy := range []guard.Policy{guard.LoginRequired, guard.UserOnly, guard.AdminRequired} {
		d := guard.Evaluate(policy, false, nil)
		assert.False(t, d.Allow)
		assert.False(t, d.ClearSession)
		assert.Equal(t, guard.TargetLogin, d.Target)
		assert.Equal(t, "Please log in to access this page.", d.Reason)
	}
}

func TestEvaluateDeletedAccount(t *testing.T) {
	d := guard.Evaluate(guard.LoginRequired, true, nil)
	assert.False(t, d.Allow)
	assert.True(t, d.ClearSession, "a session pointing at a missing account must be destroyed")
	assert.Equal(t, guard.TargetLogin, d.Target)
	assert.Equal(t, "Your session has expired. Please log in again.", d.Reason)
}

func TestEvaluateDeactivatedAccount(t *testing.T) {
	user := activeUser(models.RoleUser)
	user.IsActive = false

	d := guard.Evaluate(guard.LoginRequired, true, user)
	assert.False(t, d.Allow)
	assert.True(t, d.ClearSession)
	assert.Equal(t, "Your session has expired. Please log in again.", d.Reason)
}

func TestEvaluateLoginRequired(t *testing.T) {
	assert.True(t, guard.Evaluate(guard.LoginRequired, true, activeUser(models.RoleUser)).Allow)
	assert.True(t, guard.Evaluate(guard.LoginRequired, true, activeUser(models.RoleAdmin)).Allow)
}

func TestEvaluateUserOnly(t *testing.T) {
	assert.True(t, guard.Evaluate(guard.UserOnly, true, activeUser(models.RoleUser)).Allow)

	d := guard.Evaluate(guard.UserOnly, true, activeUser(models.RoleAdmin))
	assert.False(t, d.Allow)
	assert.False(t, d.ClearSession, "the admin keeps their session")
	assert.Equal(t, guard.TargetAdminDashboard, d.Target)
	assert.Equal(t, "Access denied. This page is for regular users only.", d.Reason)
}

func TestEvaluateAdminRequired(t *testing.T) {
	assert.True(t, guard.Evaluate(guard.AdminRequired, true, activeUser(models.RoleAdmin)).Allow)

	d := guard.Evaluate(guard.AdminRequired, true, activeUser(models.RoleUser))
	assert.False(t, d.Allow)
	assert.False(t, d.ClearSession)
	assert.Equal(t, guard.TargetDashboard, d.Target)
	assert.Equal(t, "Access denied. Admin privileges required.", d.Reason)
}
