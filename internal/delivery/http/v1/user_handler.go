package v1

import (
	"net/http"

	"go-triagem-backend/internal/delivery/http/response"
	"go-triagem-backend/internal/domain"
	"go-triagem-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userUC domain.UserUsecase
}

func NewUserHandler(protected *gin.RouterGroup, userUC domain.UserUsecase) {
	handler := &UserHandler{userUC: userUC}

	users := protected.Group("/users")
	{
		users.GET("", handler.List)
		users.GET("/analysts", handler.ListAnalysts)
		users.POST("", handler.Create)
		users.PUT("/:id", handler.Update)
		users.PATCH("/:id/deactivate", handler.Deactivate)
	}

	assignments := protected.Group("/assignments")
	{
		assignments.POST("", handler.Assign)
		assignments.POST("/remove", handler.Unassign)
	}
}

// List godoc
// @Summary      List active users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userUC.ListUsers(c)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Users list", users)
}

// ListAnalysts godoc
// @Summary      List active analysts
// @Description  Only users with the analista role and active=true, ordered by name
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /users/analysts [get]
func (h *UserHandler) ListAnalysts(c *gin.Context) {
	analysts, err := h.userUC.ListAnalysts(c)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Analysts list", analysts)
}

// Create godoc
// @Summary      Create user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        user  body  domain.CreateUserInput  true  "New user"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var input domain.CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	user, err := h.userUC.CreateUser(c, input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "User created", user)
}

// Update godoc
// @Summary      Update user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                  true  "User ID"
// @Param        user  body  domain.UpdateUserInput  true  "Fields to change"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	var input domain.UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	user, err := h.userUC.UpdateUser(c, c.Param("id"), input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User updated", user)
}

// Deactivate godoc
// @Summary      Deactivate user
// @Description  Soft delete; the row stays but the user can no longer sign in
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "User ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /users/{id}/deactivate [patch]
func (h *UserHandler) Deactivate(c *gin.Context) {
	if err := h.userUC.DeactivateUser(c, c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User deactivated", nil)
}

// Assign godoc
// @Summary      Bulk-assign candidates to an analyst
// @Description  One update covers all listed candidates. Status follows the configured assignment policy.
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  domain.AssignmentRequest  true  "Assignment"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /assignments [post]
func (h *UserHandler) Assign(c *gin.Context) {
	var req domain.AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.userUC.AssignCandidates(c, req); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidates assigned", nil)
}

type UnassignRequest struct {
	CandidateIDs []string `json:"candidate_ids" binding:"required,min=1"`
}

// Unassign godoc
// @Summary      Bulk-unassign candidates
// @Description  Clears assignment fields and resets status to pendente
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  UnassignRequest  true  "Candidate IDs"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /assignments/remove [post]
func (h *UserHandler) Unassign(c *gin.Context) {
	var req UnassignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.userUC.UnassignCandidates(c, req.CandidateIDs); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidates unassigned", nil)
}
