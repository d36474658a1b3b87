package user

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"team-pulse/internal/middleware"
	"team-pulse/internal/shared/apperror"
	"team-pulse/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	svc    Service
	logger *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("user.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.handler")
	}
	return &Handler{svc: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	if apperror.CodeOf(err) == apperror.CodeInternalError {
		h.logger.Error("user request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	response.FromError(c, err)
}

// GetAll supports ?q= (name or email), sort_by=name|email, sort_dir and paging.
func (h *Handler) GetAll(c *gin.Context) {
	caller, ok := middleware.GetIdentity(c)
	if !ok {
		response.FromError(c, apperror.ErrUnauthorized)
		return
	}

	resp, err := h.svc.GetAll(c.Request.Context(), caller)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if q := strings.TrimSpace(strings.ToLower(c.Query("q"))); q != "" {
		filtered := make([]UserResponse, 0, len(resp))
		for _, u := range resp {
			if strings.Contains(strings.ToLower(u.Email), q) || strings.Contains(strings.ToLower(u.Name), q) {
				filtered = append(filtered, u)
			}
		}
		resp = filtered
	}

	sortBy := strings.ToLower(c.DefaultQuery("sort_by", "name"))
	desc := strings.ToLower(c.DefaultQuery("sort_dir", "asc")) == "desc"
	sort.SliceStable(resp, func(i, j int) bool {
		a, b := strings.ToLower(resp[i].Name), strings.ToLower(resp[j].Name)
		if sortBy == "email" {
			a, b = resp[i].Email, resp[j].Email
		}
		if desc {
			return a > b
		}
		return a < b
	})

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	items, meta := response.Paginate(resp, page, pageSize)
	response.Success(c, http.StatusOK, items, &meta)
}

func (h *Handler) GetByID(c *gin.Context) {
	caller, ok := middleware.GetIdentity(c)
	if !ok {
		response.FromError(c, apperror.ErrUnauthorized)
		return
	}

	res, err := h.svc.GetByID(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) Create(c *gin.Context) {
	caller, ok := middleware.GetIdentity(c)
	if !ok {
		response.FromError(c, apperror.ErrUnauthorized)
		return
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.svc.Create(c.Request.Context(), caller, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res, nil)
}

func (h *Handler) ToggleStatus(c *gin.Context) {
	caller, ok := middleware.GetIdentity(c)
	if !ok {
		response.FromError(c, apperror.ErrUnauthorized)
		return
	}

	var body struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.svc.ToggleStatus(c.Request.Context(), caller, c.Param("id"), *body.IsActive)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) AssignTeam(c *gin.Context) {
	caller, ok := middleware.GetIdentity(c)
	if !ok {
		response.FromError(c, apperror.ErrUnauthorized)
		return
	}

	var req AssignTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.svc.AssignTeam(c.Request.Context(), caller, c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}
