package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_CreateUser(t *testing.T) {
	db, logger := newTestDB(t)
	svc := NewUserService(db, logger)

	user, err := svc.CreateUser(context.Background(), NewUser{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "Alice", user.Name)
}

func TestUserService_CreateUser_InvalidEmail(t *testing.T) {
	db, logger := newTestDB(t)
	svc := NewUserService(db, logger)

	tests := []string{"", "   ", "not-an-email", "missing@"}
	for _, email := range tests {
		_, err := svc.CreateUser(context.Background(), NewUser{Name: "Alice", Email: email})

		var validation *ValidationError
		require.ErrorAs(t, err, &validation, "email %q", email)
	}
}

func TestUserService_CreateUser_DuplicateEmail(t *testing.T) {
	db, logger := newTestDB(t)
	svc := NewUserService(db, logger)

	_, err := svc.CreateUser(context.Background(), NewUser{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), NewUser{Name: "Clone", Email: "alice@example.com"})
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestUserService_UpdateUser_PartialPatch(t *testing.T) {
	db, logger := newTestDB(t)
	svc := NewUserService(db, logger)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, NewUser{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	name := "Alice B."
	updated, err := svc.UpdateUser(ctx, user.ID, UserPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Alice B.", updated.Name)
	assert.Equal(t, "alice@example.com", updated.Email)

	email := "alice.b@example.com"
	updated, err = svc.UpdateUser(ctx, user.ID, UserPatch{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "Alice B.", updated.Name)
	assert.Equal(t, "alice.b@example.com", updated.Email)
}

func TestUserService_UpdateUser_SameEmailAllowed(t *testing.T) {
	db, logger := newTestDB(t)
	svc := NewUserService(db, logger)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, NewUser{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	email := "alice@example.com"
	_, err = svc.UpdateUser(ctx, user.ID, UserPatch{Email: &email})
	assert.NoError(t, err)
}

func TestUserService_UpdateUser_TakenEmail(t *testing.T) {
	db, logger := newTestDB(t)
	svc := NewUserService(db, logger)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, NewUser{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	bob, err := svc.CreateUser(ctx, NewUser{Name: "Bob", Email: "bob@example.com"})
	require.NoError(t, err)

	email := "alice@example.com"
	_, err = svc.UpdateUser(ctx, bob.ID, UserPatch{Email: &email})

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestUserService_UpdateUser_NotFound(t *testing.T) {
	db, logger := newTestDB(t)
	svc := NewUserService(db, logger)

	name := "Ghost"
	_, err := svc.UpdateUser(context.Background(), 999, UserPatch{Name: &name})

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestUserService_ListUsers_BadPagination(t *testing.T) {
	db, logger := newTestDB(t)
	svc := NewUserService(db, logger)

	_, err := svc.ListUsers(context.Background(), -1, 10)
	var badRequest *BadRequestError
	require.ErrorAs(t, err, &badRequest)

	_, err = svc.ListUsers(context.Background(), 0, 0)
	require.ErrorAs(t, err, &badRequest)
}

func TestUserService_DeleteUser_Idempotent(t *testing.T) {
	db, logger := newTestDB(t)
	svc := NewUserService(db, logger)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, NewUser{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, user.ID))
	require.NoError(t, svc.DeleteUser(ctx, user.ID))

	_, err = svc.GetUser(ctx, user.ID)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}
