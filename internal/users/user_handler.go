package users

import (
	"net/http"
	"strings"

	"github.com/JungleeAadmi/component-storage/internal/middleware"
	custom_error "github.com/JungleeAadmi/component-storage/pkg/errors"
	"github.com/JungleeAadmi/component-storage/pkg/models"
	"github.com/JungleeAadmi/component-storage/pkg/roles"
	"github.com/JungleeAadmi/component-storage/pkg/security"

	"github.com/gin-gonic/gin"
)

type UsersHandler struct {
	Repository UserRepository
	tokens     *security.TokenService
}

func NewHandler(r UserRepository, tokens *security.TokenService) *UsersHandler {
	return &UsersHandler{
		Repository: r,
		tokens:     tokens,
	}
}

func (h *UsersHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.POST("/auth/signup", h.Signup)
}

func (h *UsersHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/auth/me", h.Me)
	router.GET("/users", security.Authorize("moderator"), h.GetUserList)
	router.PATCH("/users/:id", security.Authorize("admin"), h.UpdateUserRole)
}

type userIDParam struct {
	ID int `uri:"id" binding:"required,min=1"`
}

// Signup registers a user with the lowest role and logs them in.
func (h *UsersHandler) Signup(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithValidation(c, "invalid request payload: %s", err.Error())
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Fullname = strings.TrimSpace(req.Fullname)
	if req.Username == "" {
		middleware.AbortWithValidation(c, "username is required")
		return
	}

	passwordHash, err := security.HashPassword(req.Password)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	user, err := h.Repository.PersistUser(req, passwordHash, roles.User.String())
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	token, err := h.tokens.GenerateJWT(user.ID, user.Role, user.Username)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"token":    token,
	})
}

func (h *UsersHandler) Me(c *gin.Context) {
	userID := security.GetUserID(c)
	if userID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error_kind": "unauthorized", "message": "not logged in"})
		return
	}

	user, err := h.Repository.GetUser(userID)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UsersHandler) GetUserList(c *gin.Context) {
	users, err := h.Repository.ListUsers()
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// UpdateUserRole lets an admin promote or demote another account. Admins cannot change
// their own role.
func (h *UsersHandler) UpdateUserRole(c *gin.Context) {
	var param userIDParam
	if err := c.ShouldBindUri(&param); err != nil {
		middleware.AbortWithValidation(c, "invalid user id")
		return
	}

	var req models.UpdateUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithValidation(c, "role must be one of user, moderator, admin")
		return
	}

	if param.ID == security.GetUserID(c) {
		middleware.AbortWithError(c, custom_error.Validation("you cannot change your own role"))
		return
	}

	user, err := h.Repository.UpdateRole(param.ID, req.Role)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// CreateAdmin registers an account with the admin role. It backs the create-admin command
// used to bootstrap a fresh installation.
func CreateAdmin(repo UserRepository, req models.CreateUserRequest) (*models.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Fullname = strings.TrimSpace(req.Fullname)
	if req.Username == "" {
		return nil, custom_error.Validation("username is required")
	}
	if len(req.Password) < 6 {
		return nil, custom_error.Validation("password must be at least 6 characters long")
	}

	passwordHash, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	return repo.PersistUser(req, passwordHash, roles.Admin.String())
}
