package user_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/portal-prestadores/portal/internal/config"
	"github.com/portal-prestadores/portal/internal/db"
	"github.com/portal-prestadores/portal/internal/db/controller/announcement"
	"github.com/portal-prestadores/portal/internal/db/controller/user"
	"github.com/portal-prestadores/portal/internal/db/models"
	"github.com/portal-prestadores/portal/internal/permission"
)

func seeded(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.Open(config.DB{}, nil)
	require.NoError(t, err)
	require.NoError(t, db.Seed(gdb))

	return gdb
}

func TestAuthenticate(t *testing.T) {
	gdb := seeded(t)

	tests := []struct {
		name     string
		email    string
		password string
		err      error
	}{
		{"ok", db.AdminEmail, db.DemoPassword, nil},
		{"email is normalised", "  ADMIN@portal.local ", db.DemoPassword, nil},
		{"unknown", "nobody@portal.local", db.DemoPassword, user.ErrUserNotFound},
		{"wrong password", db.AdminEmail, "nope", user.ErrInvalidPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := user.Authenticate(gdb, tt.email, tt.password)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Administrador", u.Group.Name)
			assert.ElementsMatch(t, permission.All(), u.Group.PermissionCodes())
		})
	}
}

func TestAuthenticate_Disabled(t *testing.T) {
	gdb := seeded(t)

	require.NoError(t, gdb.Model(&models.User{}).Where("email = ?", db.ProviderEmail).Update("active", false).Error)

	_, err := user.Authenticate(gdb, db.ProviderEmail, db.DemoPassword)
	require.ErrorIs(t, err, user.ErrUserAccountDisabled)
}

func TestGetByID(t *testing.T) {
	gdb := seeded(t)

	u, err := user.GetByEmail(gdb, db.ProviderEmail)
	require.NoError(t, err)

	full, err := user.GetByID(gdb, u.ID)
	require.NoError(t, err)
	assert.Contains(t, full.Group.PermissionCodes(), permission.ViewContracts)

	_, err = user.GetByID(gdb, 999)
	require.ErrorIs(t, err, user.ErrUserNotFound)

	_, err = user.GetByID(nil, 1)
	require.ErrorIs(t, err, user.ErrDBNil)
}

func TestGetAll(t *testing.T) {
	users, err := user.GetAll(seeded(t))
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.NotEmpty(t, users[0].Group.Name)
}

func TestAnnouncementFeed(t *testing.T) {
	gdb := seeded(t)

	feed, err := announcement.Feed(gdb, 0)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.True(t, feed[0].PublishedAt.After(feed[1].PublishedAt), "newest first")

	one, err := announcement.Feed(gdb, 1)
	require.NoError(t, err)
	assert.Len(t, one, 1)
}
