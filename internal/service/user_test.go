package service_test

import (
	"strings"
	"testing"

	"github.com/deppfellow/foodgram/internal/errs"
	"github.com/deppfellow/foodgram/internal/model"
	"github.com/deppfellow/foodgram/internal/service"
	"github.com/deppfellow/foodgram/internal/sqlerr"
	"github.com/deppfellow/foodgram/internal/testutil"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Users.Create(f.ctx, service.CreateUserInput{
		Email: "chef@example.com", Username: "chef", FirstName: "Julia", LastName: "Child", Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "chef", created.Username)
	assert.NotZero(t, created.ID)

	stored, err := f.store.GetUserByID(f.ctx, created.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "password123", stored.PasswordHash)
	assert.True(t, service.CheckPassword(stored.PasswordHash, "password123"))
}

func TestCreateUserDuplicate(t *testing.T) {
	f := newFixture(t)
	f.user(t, "chef")

	cases := map[string]service.CreateUserInput{
		"email":    {Email: "CHEF@example.com", Username: "other", Password: "password123"},
		"username": {Email: "other@example.com", Username: "chef", Password: "password123"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.Users.Create(f.ctx, in)
			require.Error(t, err)
			assert.True(t, sqlerr.IsUniqueViolation(err))

			httpErr := httpError(t, sqlerr.HandleError(err), 409)
			assert.Equal(t, "USER_ALREADY_EXISTS", httpErr.Code)
		})
	}
}

func TestListUsersMarksSubscriptions(t *testing.T) {
	f := newFixture(t)
	viewer := f.user(t, "viewer")
	author := f.user(t, "author")
	f.user(t, "zed")

	_, err := f.svc.Subscriptions.Subscribe(f.ctx, viewer, author.ID, 0)
	require.NoError(t, err)

	profiles, total, err := f.svc.Users.List(f.ctx, viewer, model.NewPagination(1, 2))
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, profiles, 2)
	assert.Equal(t, "author", profiles[0].Username)
	assert.True(t, profiles[0].IsSubscribed)
	assert.False(t, profiles[1].IsSubscribed)

	anonymous, _, err := f.svc.Users.List(f.ctx, nil, model.NewPagination(1, 10))
	require.NoError(t, err)
	for _, p := range anonymous {
		assert.False(t, p.IsSubscribed)
	}
}

func TestGetUserNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Users.Get(f.ctx, nil, 42)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.Equal(t, "User not found", sqlerr.HandleError(err).Error())
}

func TestAvatar(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "cook")

	assert.Nil(t, f.svc.Users.Me(user).Avatar)

	resp, err := f.svc.Users.SetAvatar(f.ctx, user, testutil.PNG)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.Avatar, testutil.PublicURL+"/media/avatars/"), resp.Avatar)

	user, err = f.store.GetUserByID(f.ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, f.svc.Users.Me(user).Avatar)
	assert.Equal(t, resp.Avatar, *f.svc.Users.Me(user).Avatar)

	require.NoError(t, f.svc.Users.DeleteAvatar(f.ctx, user))
	user, err = f.store.GetUserByID(f.ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, user.Avatar)
}

func TestSetAvatarRejectsGarbage(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "cook")

	_, err := f.svc.Users.SetAvatar(f.ctx, user, "data:image/png;base64,bm90IGFuIGltYWdl")
	httpErr := httpError(t, err, 400)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "avatar", httpErr.Errors[0].Field)
}

func TestSetPassword(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "cook")

	err := f.svc.Users.SetPassword(f.ctx, user, "wrong-password", "newpassword1")
	httpErr := httpError(t, err, 400)
	assert.Equal(t, []errs.FieldError{{Field: "current_password", Error: "is incorrect"}}, httpErr.Errors)

	require.NoError(t, f.svc.Users.SetPassword(f.ctx, user, "password123", "newpassword1"))

	_, err = f.svc.Auth.Login(f.ctx, "cook@example.com", "password123")
	httpError(t, err, 400)
	_, err = f.svc.Auth.Login(f.ctx, "cook@example.com", "newpassword1")
	assert.NoError(t, err)
}
