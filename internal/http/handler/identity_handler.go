package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devffery/task-two/internal/http/middleware"
	"github.com/devffery/task-two/internal/service"
)

// IdentityHandler exposes the REST surface: registration, login, user
// lookup, and organization management.
type IdentityHandler struct {
	Identity *service.IdentityService
}

// NewIdentityHandler constructs the handler.
func NewIdentityHandler(identity *service.IdentityService) *IdentityHandler {
	return &IdentityHandler{Identity: identity}
}

// Register handles POST /auth/register.
func (h *IdentityHandler) Register(c *gin.Context) {
	var input service.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":     "Bad request",
			"message":    "Registration unsuccessful",
			"statusCode": http.StatusBadRequest,
		})
		return
	}

	data, err := h.Identity.Register(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Registration Successful",
		"data":    data,
	})
}

// Login handles POST /auth/login.
func (h *IdentityHandler) Login(c *gin.Context) {
	var input service.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"errors": []service.FieldError{{Field: "body", Message: "Invalid request body."}},
		})
		return
	}

	data, err := h.Identity.Login(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Login Successful",
		"data":    data,
	})
}

// GetUser handles GET /api/users/:userId.
func (h *IdentityHandler) GetUser(c *gin.Context) {
	caller, ok := middleware.GetCurrentUser(c)
	if !ok {
		respondError(c, errors.New("missing current user"))
		return
	}

	user, err := h.Identity.GetVisibleUser(c.Request.Context(), caller, c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Successful",
		"data":    user,
	})
}

// ListOrganizations handles GET /api/organizations.
func (h *IdentityHandler) ListOrganizations(c *gin.Context) {
	caller, ok := middleware.GetCurrentUser(c)
	if !ok {
		respondError(c, errors.New("missing current user"))
		return
	}

	orgs, err := h.Identity.ListOrganizations(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Retrieval Successful",
		"data":    gin.H{"organizations": orgs},
	})
}

// GetOrganization handles GET /api/organizations/:orgId.
func (h *IdentityHandler) GetOrganization(c *gin.Context) {
	caller, ok := middleware.GetCurrentUser(c)
	if !ok {
		respondError(c, errors.New("missing current user"))
		return
	}

	org, err := h.Identity.GetOrganization(c.Request.Context(), caller, c.Param("orgId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Query Successful",
		"data":    org,
	})
}

// CreateOrganization handles POST /api/organizations.
func (h *IdentityHandler) CreateOrganization(c *gin.Context) {
	caller, ok := middleware.GetCurrentUser(c)
	if !ok {
		respondError(c, errors.New("missing current user"))
		return
	}

	var input service.OrganizationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":     "Bad request",
			"message":    "Client error",
			"statusCode": http.StatusBadRequest,
		})
		return
	}

	org, err := h.Identity.CreateOrganization(c.Request.Context(), caller, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Organization created successfully",
		"data":    org,
	})
}

// AddMember handles POST /api/organizations/:orgId/users.
func (h *IdentityHandler) AddMember(c *gin.Context) {
	caller, ok := middleware.GetCurrentUser(c)
	if !ok {
		respondError(c, errors.New("missing current user"))
		return
	}

	var input service.AddMemberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"errors": []service.FieldError{{Field: "userId", Message: "This field is required."}},
		})
		return
	}

	if err := h.Identity.AddMember(c.Request.Context(), caller, c.Param("orgId"), input); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "User Added to Organization successful",
	})
}

// respondError maps service errors onto the response envelope. Validation
// failures become the per-field 422 list; typed errors keep their status;
// anything else is a server fault and surfaces as 500.
func respondError(c *gin.Context, err error) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		if len(svcErr.Fields) > 0 {
			c.JSON(svcErr.StatusCode, gin.H{"errors": svcErr.Fields})
			return
		}
		c.JSON(svcErr.StatusCode, gin.H{
			"status":     svcErr.Status,
			"message":    svcErr.Message,
			"statusCode": svcErr.StatusCode,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"status":     "error",
		"message":    "Internal server error",
		"statusCode": http.StatusInternalServerError,
	})
}
