package service_test

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/expense-tracker/internal/models"
	"github.com/expense-tracker/internal/service"
	"github.com/expense-tracker/pkg/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	svc      *service.AuthService
	users    *fakeUserStore
	expenses *fakeExpenseStore
	budgets  *fakeBudgetStore
	catStore *fakeCategoryStore
	sessions *fakeSessionManager
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:    newFakeUserStore(),
		expenses: newFakeExpenseStore(),
		budgets:  newFakeBudgetStore(),
		catStore: newFakeCategoryStore(),
		sessions: newFakeSessionManager(),
	}
	f.svc = service.NewAuthService(f.users, f.expenses, f.budgets, f.catStore, f.sessions)
	return f
}

func (f *authFixture) register(t *testing.T) *models.User {
	t.Helper()
	user, err := f.svc.Register(&service.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Password1",
	})
	require.NoError(t, err)
	return user
}

func (f *authFixture) login(t *testing.T) (string, *models.User) {
	t.Helper()
	token, user, err := f.svc.Login(context.Background(), &service.LoginRequest{
		Email:    "alice@example.com",
		Password: "Password1",
	})
	require.NoError(t, err)
	return token, user
}

func TestRegister(t *testing.T) {
	f := newAuthFixture()

	user := f.register(t)
	assert.NotZero(t, user.ID)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.True(t, user.IsActive)
	assert.True(t, crypto.CheckPassword("Password1", user.PasswordHash))
	assert.NotEqual(t, "Password1", user.PasswordHash)

	// Starter categories are seeded in the same transaction
	require.Len(t, f.users.seeded[user.ID], len(models.DefaultCategories))
	assert.Equal(t, "Food", f.users.seeded[user.ID][0].Name)
}

func TestRegisterValidation(t *testing.T) {
	f := newAuthFixture()

	tests := []struct {
		name    string
		req     service.RegisterRequest
		message string
	}{
		{"blank fields", service.RegisterRequest{}, "All fields are required."},
		{"short username", service.RegisterRequest{Username: "ab", Email: "a@b.com", Password: "Password1"}, "Username must be between 3 and 50 characters."},
		{"bad email", service.RegisterRequest{Username: "alice", Email: "not-an-email", Password: "Password1"}, "Please enter a valid email address."},
		{"weak password", service.RegisterRequest{Username: "alice", Email: "a@b.com", Password: "password1"}, "Password must contain at least one uppercase letter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Register(&tt.req)
			assertValidation(t, err, tt.message)
		})
	}
}

func TestRegisterMultibyteUsernameLength(t *testing.T) {
	f := newAuthFixture()

	// The limit counts characters, not bytes
	_, err := f.svc.Register(&service.RegisterRequest{
		Username: strings.Repeat("é", 50),
		Email:    "unicode@example.com",
		Password: "Password1",
	})
	assert.NoError(t, err)

	_, err = f.svc.Register(&service.RegisterRequest{
		Username: strings.Repeat("é", 51),
		Email:    "unicode2@example.com",
		Password: "Password1",
	})
	assertValidation(t, err, "Username must be between 3 and 50 characters.")
}

func TestRegisterTaken(t *testing.T) {
	f := newAuthFixture()
	f.register(t)

	_, err := f.svc.Register(&service.RegisterRequest{
		Username: "alice", Email: "other@example.com", Password: "Password1",
	})
	assert.True(t, errors.Is(err, service.ErrUsernameTaken))

	_, err = f.svc.Register(&service.RegisterRequest{
		Username: "bob", Email: "alice@example.com", Password: "Password1",
	})
	assert.True(t, errors.Is(err, service.ErrEmailTaken))
}

func TestLogin(t *testing.T) {
	f := newAuthFixture()
	f.register(t)

	token, user := f.login(t)
	assert.NotEmpty(t, token)
	require.NotNil(t, user.LastLogin)

	// The session payload identifies the account
	data, ok := f.sessions.sessions[token]
	require.True(t, ok)
	assert.Equal(t, user.ID, data.UserID)
	assert.Equal(t, "alice", data.Username)
	assert.Equal(t, models.RoleUser, data.Role)
}

func TestLoginInvalidCredentials(t *testing.T) {
	f := newAuthFixture()
	f.register(t)

	_, _, err := f.svc.Login(context.Background(), &service.LoginRequest{
		Email: "alice@example.com", Password: "WrongPass1",
	})
	assert.True(t, errors.Is(err, service.ErrInvalidCredentials))

	_, _, err = f.svc.Login(context.Background(), &service.LoginRequest{
		Email: "nobody@example.com", Password: "Password1",
	})
	assert.True(t, errors.Is(err, service.ErrInvalidCredentials))
}

func TestLoginDeactivatedAccount(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t)

	user.IsActive = false
	require.NoError(t, f.users.Update(user))

	_, _, err := f.svc.Login(context.Background(), &service.LoginRequest{
		Email: "alice@example.com", Password: "Password1",
	})
	assert.True(t, errors.Is(err, service.ErrInvalidCredentials))
}

func TestLogout(t *testing.T) {
	f := newAuthFixture()
	f.register(t)
	token, _ := f.login(t)

	require.NoError(t, f.svc.Logout(context.Background(), token))
	_, ok := f.sessions.sessions[token]
	assert.False(t, ok)
}

func TestUpdateProfile(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t)
	token, _ := f.login(t)

	updated, err := f.svc.UpdateProfile(context.Background(), user.ID, token, &service.UpdateProfileRequest{
		Username: "alice2", Email: "alice2@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice2", updated.Username)

	// The session payload follows the rename
	assert.Equal(t, "alice2", f.sessions.sessions[token].Username)
}

func TestUpdateProfileTaken(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t)
	_, err := f.svc.Register(&service.RegisterRequest{
		Username: "bob", Email: "bob@example.com", Password: "Password1",
	})
	require.NoError(t, err)
	token, _ := f.login(t)

	_, err = f.svc.UpdateProfile(context.Background(), user.ID, token, &service.UpdateProfileRequest{
		Username: "bob", Email: "alice@example.com",
	})
	assert.True(t, errors.Is(err, service.ErrUsernameTaken))
}

func TestChangePassword(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t)
	token, _ := f.login(t)

	err := f.svc.ChangePassword(context.Background(), user.ID, token, &service.ChangePasswordRequest{
		CurrentPassword: "Password1",
		NewPassword:     "newpass",
		ConfirmPassword: "newpass",
	})
	require.NoError(t, err)

	// Session destroyed, new password in effect
	_, ok := f.sessions.sessions[token]
	assert.False(t, ok)
	stored, err := f.users.GetByID(user.ID)
	require.NoError(t, err)
	assert.True(t, crypto.CheckPassword("newpass", stored.PasswordHash))
}

func TestChangePasswordRejections(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t)
	token, _ := f.login(t)

	err := f.svc.ChangePassword(context.Background(), user.ID, token, &service.ChangePasswordRequest{
		CurrentPassword: "WrongPass1", NewPassword: "newpass", ConfirmPassword: "newpass",
	})
	assert.True(t, errors.Is(err, service.ErrWrongPassword))

	err = f.svc.ChangePassword(context.Background(), user.ID, token, &service.ChangePasswordRequest{
		CurrentPassword: "Password1", NewPassword: "short", ConfirmPassword: "short",
	})
	assertValidation(t, err, "New password must be at least 6 characters long")

	err = f.svc.ChangePassword(context.Background(), user.ID, token, &service.ChangePasswordRequest{
		CurrentPassword: "Password1", NewPassword: "newpass", ConfirmPassword: "other",
	})
	assertValidation(t, err, "New passwords do not match.")
}

func TestDeleteAccount(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t)
	token, _ := f.login(t)

	err := f.svc.DeleteAccount(context.Background(), user.ID, token, &service.DeleteAccountRequest{
		ConfirmText: "DELETE", Password: "Password1",
	})
	require.NoError(t, err)

	_, err = f.users.GetByID(user.ID)
	assert.Error(t, err)
	_, ok := f.sessions.sessions[token]
	assert.False(t, ok)
}

// countFailingExpenseStore starts failing CountByUserID once tripped,
// simulating a store outage between the delete and its verification reads
type countFailingExpenseStore struct {
	*fakeExpenseStore
	tripped bool
}

func (s *countFailingExpenseStore) CountByUserID(userID uint) (int64, error) {
	if s.tripped {
		return 0, errors.New("connection reset")
	}
	return s.fakeExpenseStore.CountByUserID(userID)
}

type trippingUserStore struct {
	*fakeUserStore
	onDelete func()
}

func (s *trippingUserStore) DeleteWithOwnedData(userID uint, purgeAdminLogs bool) error {
	err := s.fakeUserStore.DeleteWithOwnedData(userID, purgeAdminLogs)
	s.onDelete()
	return err
}

func TestDeleteAccountVerificationFailureLogged(t *testing.T) {
	expenses := &countFailingExpenseStore{fakeExpenseStore: newFakeExpenseStore()}
	users := &trippingUserStore{
		fakeUserStore: newFakeUserStore(),
		onDelete:      func() { expenses.tripped = true },
	}
	sessions := newFakeSessionManager()
	svc := service.NewAuthService(users, expenses, newFakeBudgetStore(), newFakeCategoryStore(), sessions)

	user, err := svc.Register(&service.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "Password1",
	})
	require.NoError(t, err)
	token, _, err := svc.Login(context.Background(), &service.LoginRequest{
		Email: "alice@example.com", Password: "Password1",
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	err = svc.DeleteAccount(context.Background(), user.ID, token, &service.DeleteAccountRequest{
		ConfirmText: "DELETE", Password: "Password1",
	})
	require.NoError(t, err, "the account deletion itself committed")

	// A count failure during verification must surface as an error, not
	// read as zero residue
	assert.Contains(t, buf.String(), "Could not verify data deletion")
	assert.NotContains(t, buf.String(), "Account completely deleted")
}

func TestDeleteAccountRejections(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t)
	token, _ := f.login(t)

	err := f.svc.DeleteAccount(context.Background(), user.ID, token, &service.DeleteAccountRequest{
		ConfirmText: "delete", Password: "Password1",
	})
	assertValidation(t, err, "Please type 'DELETE' to confirm account deletion.")

	err = f.svc.DeleteAccount(context.Background(), user.ID, token, &service.DeleteAccountRequest{
		ConfirmText: "DELETE", Password: "",
	})
	assertValidation(t, err, "Please enter your password to confirm account deletion.")

	err = f.svc.DeleteAccount(context.Background(), user.ID, token, &service.DeleteAccountRequest{
		ConfirmText: "DELETE", Password: "WrongPass1",
	})
	assert.True(t, errors.Is(err, service.ErrWrongPassword))
}
