package team_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"team-pulse/internal/domain"
	"team-pulse/internal/middleware"
	"team-pulse/internal/team"
	teamerrors "team-pulse/internal/team/errors"
	mock_team "team-pulse/internal/team/mock"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setup(t *testing.T) (*mock_team.MockRepository, team.Service) {
	ctrl := gomock.NewController(t)
	repo := mock_team.NewMockRepository(ctrl)
	return repo, team.NewService(repo)
}

func TestTeamService_Create(t *testing.T) {
	ctx := context.Background()
	caller := domain.Identity{UserID: uuid.New(), WorkspaceID: uuid.New(), Role: domain.RoleAdmin}

	t.Run("success", func(t *testing.T) {
		repo, svc := setup(t)
		repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, tm *team.Team) error {
				assert.Equal(t, caller.WorkspaceID, tm.WorkspaceID)
				assert.Equal(t, "Platform", tm.Name)
				tm.ID = uuid.New()
				return nil
			})

		res, err := svc.Create(ctx, caller, team.CreateTeamRequest{Name: "  Platform "})

		assert.NoError(t, err)
		assert.Equal(t, "Platform", res.Name)
		assert.NotEmpty(t, res.ID)
	})

	t.Run("negative blank name", func(t *testing.T) {
		_, svc := setup(t)

		_, err := svc.Create(ctx, caller, team.CreateTeamRequest{Name: "   "})

		assert.ErrorIs(t, err, teamerrors.ErrInvalidTeamName)
	})

	t.Run("negative duplicate name", func(t *testing.T) {
		repo, svc := setup(t)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&pgconn.PgError{Code: "23505"})

		_, err := svc.Create(ctx, caller, team.CreateTeamRequest{Name: "Platform"})

		assert.ErrorIs(t, err, teamerrors.ErrTeamNameTaken)
	})
}

func TestTeamService_List(t *testing.T) {
	ctx := context.Background()
	caller := domain.Identity{UserID: uuid.New(), WorkspaceID: uuid.New(), Role: domain.RoleUser}

	t.Run("success", func(t *testing.T) {
		repo, svc := setup(t)
		repo.EXPECT().ListByWorkspace(gomock.Any(), caller.WorkspaceID).Return([]team.TeamWithCount{
			{Team: team.Team{ID: uuid.New(), Name: "Design", CreatedAt: time.Now()}, MemberCount: 4},
		}, nil)

		res, err := svc.List(ctx, caller)

		assert.NoError(t, err)
		assert.Len(t, res, 1)
		assert.Equal(t, int64(4), res[0].MemberCount)
	})

	t.Run("negative repository error", func(t *testing.T) {
		repo, svc := setup(t)
		repo.EXPECT().ListByWorkspace(gomock.Any(), caller.WorkspaceID).Return(nil, errors.New("db down"))

		_, err := svc.List(ctx, caller)

		assert.Error(t, err)
	})
}

func TestTeamHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo, svc := setup(t)
	h := team.NewHandler(svc)
	caller := domain.Identity{UserID: uuid.New(), WorkspaceID: uuid.New(), Role: domain.RoleAdmin}

	t.Run("negative bind failure", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/teams", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")
		middleware.SetIdentity(c, caller)

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	})

	t.Run("success", func(t *testing.T) {
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/teams", strings.NewReader(`{"name":"Ops"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		middleware.SetIdentity(c, caller)

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"name":"Ops"`)
	})
}
