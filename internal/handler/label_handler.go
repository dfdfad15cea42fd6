package handler

import (
	"net/http"

	"projectboard/internal/model"
	"projectboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LabelHandler struct {
	labels *service.LabelService
}

func NewLabelHandler(labels *service.LabelService) *LabelHandler {
	return &LabelHandler{labels: labels}
}

type CreateLabelRequest struct {
	ProjectID string `json:"project_id" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Color     string `json:"color"`
}

type UpdateLabelRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type LabelResponse struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
}

func toLabelResponse(label *model.Label) LabelResponse {
	return LabelResponse{
		ID:        label.ID.String(),
		ProjectID: label.ProjectID.String(),
		Name:      label.Name,
		Color:     label.Color,
	}
}

func (h *LabelHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID format"})
		return
	}

	label, err := h.labels.Create(c.Request.Context(), userID, projectID, req.Name, req.Color)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toLabelResponse(label))
}

func (h *LabelHandler) GetByProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	labels, err := h.labels.ListByProject(c.Request.Context(), userID, projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]LabelResponse, len(labels))
	for i := range labels {
		response[i] = toLabelResponse(&labels[i])
	}

	c.JSON(http.StatusOK, response)
}

func (h *LabelHandler) GetByID(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	labelID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	label, err := h.labels.Get(c.Request.Context(), userID, labelID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toLabelResponse(label))
}

func (h *LabelHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	labelID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req UpdateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	label, err := h.labels.Update(c.Request.Context(), userID, labelID, req.Name, req.Color)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toLabelResponse(label))
}

func (h *LabelHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	labelID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.labels.Delete(c.Request.Context(), userID, labelID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Label deleted successfully"})
}

// GetTasks lists the tasks carrying a label.
func (h *LabelHandler) GetTasks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	labelID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	tasks, err := h.labels.Tasks(c.Request.Context(), userID, labelID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]TaskResponse, len(tasks))
	for i := range tasks {
		response[i] = toTaskResponse(&tasks[i])
	}

	c.JSON(http.StatusOK, response)
}
