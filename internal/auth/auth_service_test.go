package auth_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"team-pulse/internal/auth"
	autherrors "team-pulse/internal/auth/errors"
	mock_auth "team-pulse/internal/auth/mock"
	"team-pulse/internal/domain"
	"team-pulse/internal/shared/token"
	"team-pulse/internal/user"
	mock_user "team-pulse/internal/user/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

type serviceDeps struct {
	sqlMock sqlmock.Sqlmock
	repo    *mock_auth.MockRepository
	users   *mock_user.MockRepository
	svc     auth.Service
}

func setupServiceTest(t *testing.T) serviceDeps {
	t.Helper()
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctrl := gomock.NewController(t)
	repo := mock_auth.NewMockRepository(ctrl)
	users := mock_user.NewMockRepository(ctrl)

	return serviceDeps{
		sqlMock: sqlMock,
		repo:    repo,
		users:   users,
		svc:     auth.NewService(db, repo, users, auth.TokenConfig{Secret: testSecret, TTL: time.Hour}),
	}
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	req := auth.RegisterRequest{
		WorkspaceName: " Acme ",
		Name:          "Alice",
		Email:         "Alice@Acme.io",
		Password:      "s3cret-pass",
	}

	t.Run("success creates workspace and admin", func(t *testing.T) {
		d := setupServiceTest(t)
		d.users.EXPECT().FindByEmail(gomock.Any(), "alice@acme.io").Return(nil, gorm.ErrRecordNotFound)
		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().CreateWorkspace(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, ws *auth.Workspace) error {
				assert.Equal(t, "Acme", ws.Name)
				return nil
			})
		d.users.EXPECT().WithTx(gomock.Any()).Return(d.users)
		d.users.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u *user.User) error {
				assert.Equal(t, domain.RoleAdmin, u.Role)
				assert.True(t, u.IsActive)
				assert.Nil(t, u.TeamID)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)))
				return nil
			})
		d.sqlMock.ExpectCommit()

		res, err := d.svc.Register(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, "alice@acme.io", res.Email)
		assert.Equal(t, "ADMIN", res.Role)
		assert.Equal(t, "Acme", res.WorkspaceName)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative email already registered", func(t *testing.T) {
		d := setupServiceTest(t)
		d.users.EXPECT().FindByEmail(gomock.Any(), "alice@acme.io").Return(&user.User{ID: uuid.New()}, nil)

		_, err := d.svc.Register(ctx, req)

		assert.ErrorIs(t, err, autherrors.ErrEmailInUse)
	})

	t.Run("negative unique race rolls back", func(t *testing.T) {
		d := setupServiceTest(t)
		d.users.EXPECT().FindByEmail(gomock.Any(), "alice@acme.io").Return(nil, gorm.ErrRecordNotFound)
		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().CreateWorkspace(gomock.Any(), gomock.Any()).Return(nil)
		d.users.EXPECT().WithTx(gomock.Any()).Return(d.users)
		d.users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&pgconn.PgError{Code: "23505"})
		d.sqlMock.ExpectRollback()

		_, err := d.svc.Register(ctx, req)

		assert.ErrorIs(t, err, autherrors.ErrEmailInUse)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative workspace insert fails", func(t *testing.T) {
		d := setupServiceTest(t)
		d.users.EXPECT().FindByEmail(gomock.Any(), "alice@acme.io").Return(nil, gorm.ErrRecordNotFound)
		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().CreateWorkspace(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
		d.sqlMock.ExpectRollback()

		_, err := d.svc.Register(ctx, req)

		assert.EqualError(t, err, "db down")
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	teamID := uuid.New()
	active := &user.User{
		ID:           uuid.New(),
		WorkspaceID:  uuid.New(),
		TeamID:       &teamID,
		Name:         "Bob",
		Email:        "bob@acme.io",
		PasswordHash: hashed(t, "password1"),
		Role:         domain.RoleManager,
		IsActive:     true,
	}

	t.Run("success issues token carrying identity", func(t *testing.T) {
		d := setupServiceTest(t)
		d.users.EXPECT().FindByEmail(gomock.Any(), "bob@acme.io").Return(active, nil)

		res, err := d.svc.Login(ctx, auth.LoginRequest{Email: "bob@acme.io", Password: "password1"})

		require.NoError(t, err)
		id, err := token.Parse(testSecret, res.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, active.Identity(), id)
		assert.Equal(t, teamID.String(), *res.User.TeamID)
		assert.NotEmpty(t, res.ExpiresAt)
	})

	t.Run("negative unknown email", func(t *testing.T) {
		d := setupServiceTest(t)
		d.users.EXPECT().FindByEmail(gomock.Any(), "ghost@acme.io").Return(nil, gorm.ErrRecordNotFound)

		_, err := d.svc.Login(ctx, auth.LoginRequest{Email: "ghost@acme.io", Password: "password1"})

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative wrong password", func(t *testing.T) {
		d := setupServiceTest(t)
		d.users.EXPECT().FindByEmail(gomock.Any(), "bob@acme.io").Return(active, nil)

		_, err := d.svc.Login(ctx, auth.LoginRequest{Email: "bob@acme.io", Password: "nope-nope"})

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative inactive user", func(t *testing.T) {
		d := setupServiceTest(t)
		inactive := *active
		inactive.IsActive = false
		d.users.EXPECT().FindByEmail(gomock.Any(), "bob@acme.io").Return(&inactive, nil)

		_, err := d.svc.Login(ctx, auth.LoginRequest{Email: "bob@acme.io", Password: "password1"})

		assert.ErrorIs(t, err, autherrors.ErrUserInactive)
	})

	t.Run("negative lookup error bubbles", func(t *testing.T) {
		d := setupServiceTest(t)
		d.users.EXPECT().FindByEmail(gomock.Any(), "bob@acme.io").Return(nil, sql.ErrConnDone)

		_, err := d.svc.Login(ctx, auth.LoginRequest{Email: "bob@acme.io", Password: "password1"})

		assert.ErrorIs(t, err, sql.ErrConnDone)
	})
}

func TestAuthService_Me(t *testing.T) {
	ctx := context.Background()
	u := &user.User{ID: uuid.New(), WorkspaceID: uuid.New(), Email: "carol@acme.io", Role: domain.RoleUser, IsActive: true}

	t.Run("success includes workspace name", func(t *testing.T) {
		d := setupServiceTest(t)
		d.users.EXPECT().FindByID(gomock.Any(), u.ID).Return(u, nil)
		d.repo.EXPECT().FindWorkspace(gomock.Any(), u.WorkspaceID).Return(&auth.Workspace{ID: u.WorkspaceID, Name: "Acme"}, nil)

		res, err := d.svc.Me(ctx, u.Identity())

		assert.NoError(t, err)
		assert.Equal(t, "Acme", res.WorkspaceName)
		assert.Equal(t, "carol@acme.io", res.Email)
	})

	t.Run("negative deactivated since login", func(t *testing.T) {
		d := setupServiceTest(t)
		off := *u
		off.IsActive = false
		d.users.EXPECT().FindByID(gomock.Any(), u.ID).Return(&off, nil)

		_, err := d.svc.Me(ctx, u.Identity())

		assert.ErrorIs(t, err, autherrors.ErrUserInactive)
	})
}
