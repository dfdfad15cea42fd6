package handler

import (
	"net/http"

	"projectboard/internal/model"
	"projectboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ColumnHandler struct {
	columns *service.ColumnService
}

func NewColumnHandler(columns *service.ColumnService) *ColumnHandler {
	return &ColumnHandler{columns: columns}
}

type CreateColumnRequest struct {
	Name     string `json:"name" binding:"required"`
	BoardID  string `json:"board_id" binding:"required"`
	Position *int   `json:"position"`
}

type UpdateColumnRequest struct {
	Name     string `json:"name"`
	Position *int   `json:"position"`
}

type ColumnResponse struct {
	ID       string `json:"id"`
	BoardID  string `json:"board_id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

func toColumnResponse(column *model.Column) ColumnResponse {
	return ColumnResponse{
		ID:       column.ID.String(),
		BoardID:  column.BoardID.String(),
		Name:     column.Name,
		Position: column.Position,
	}
}

func (h *ColumnHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	boardID, err := uuid.Parse(req.BoardID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	column, err := h.columns.Create(c.Request.Context(), userID, boardID, req.Name, req.Position)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toColumnResponse(column))
}

// GetByBoard lists a board's columns in display order.
func (h *ColumnHandler) GetByBoard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	columns, err := h.columns.ListByBoard(c.Request.Context(), userID, boardID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]ColumnResponse, len(columns))
	for i := range columns {
		response[i] = toColumnResponse(&columns[i])
	}

	c.JSON(http.StatusOK, response)
}

func (h *ColumnHandler) GetByID(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	columnID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	column, err := h.columns.Get(c.Request.Context(), userID, columnID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toColumnResponse(column))
}

func (h *ColumnHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	columnID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req UpdateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	column, err := h.columns.Update(c.Request.Context(), userID, columnID, req.Name, req.Position)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toColumnResponse(column))
}

func (h *ColumnHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	columnID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.columns.Delete(c.Request.Context(), userID, columnID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Column deleted successfully"})
}
