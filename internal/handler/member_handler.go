package handler

import (
	"net/http"

	"projectboard/internal/model"
	"projectboard/internal/service"

	"github.com/gin-gonic/gin"
)

// MemberHandler управляет участниками проекта
type MemberHandler struct {
	projects *service.ProjectService
}

func NewMemberHandler(projects *service.ProjectService) *MemberHandler {
	return &MemberHandler{projects: projects}
}

// AddMemberRequest представляет запрос на добавление участника по email
type AddMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required,oneof=owner admin member"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=owner admin member"`
}

// MemberResponse представляет участника проекта с его ролью
type MemberResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

func toMemberResponse(m *model.Membership) MemberResponse {
	return MemberResponse{
		UserID: m.UserID.String(),
		Email:  m.User.Email,
		Name:   m.User.Name,
		Role:   m.Role,
	}
}

// GetMembers возвращает список участников проекта
func (h *MemberHandler) GetMembers(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	memberships, err := h.projects.Members(c.Request.Context(), userID, projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]MemberResponse, len(memberships))
	for i := range memberships {
		response[i] = toMemberResponse(&memberships[i])
	}

	c.JSON(http.StatusOK, response)
}

// AddMember добавляет участника в проект по email
func (h *MemberHandler) AddMember(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	membership, err := h.projects.AddMember(c.Request.Context(), userID, projectID, req.Email, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Member added successfully",
		"member": MemberResponse{
			UserID: membership.UserID.String(),
			Role:   membership.Role,
		},
	})
}

// ChangeRole изменяет роль участника проекта
func (h *MemberHandler) ChangeRole(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	memberUserID, ok := pathUUID(c, "user_id")
	if !ok {
		return
	}

	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	membership, err := h.projects.ChangeMemberRole(c.Request.Context(), userID, projectID, memberUserID, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Role updated successfully",
		"member": MemberResponse{
			UserID: membership.UserID.String(),
			Role:   membership.Role,
		},
	})
}

// RemoveMember удаляет участника из проекта
func (h *MemberHandler) RemoveMember(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	memberUserID, ok := pathUUID(c, "user_id")
	if !ok {
		return
	}

	if err := h.projects.RemoveMember(c.Request.Context(), userID, projectID, memberUserID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member removed successfully"})
}
