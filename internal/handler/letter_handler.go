package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"letter_system/internal/model"
	"letter_system/internal/service"

	"github.com/gin-gonic/gin"
)

// LetterHandler handles letter related requests
type LetterHandler struct {
	service service.LetterService
}

// NewLetterHandler creates a new LetterHandler
func NewLetterHandler(s service.LetterService) *LetterHandler {
	return &LetterHandler{service: s}
}

func (h *LetterHandler) ListLetters(c *gin.Context) {
	letters, err := h.service.ListLetters(c.Request.Context())
	if err != nil {
		log.Printf("Error fetching letters: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, letters)
}

func (h *LetterHandler) GetLetter(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid letter ID"})
		return
	}

	letter, err := h.service.GetLetter(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrLetterNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Letter not found"})
			return
		}
		log.Printf("Error fetching letter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, letter)
}

func (h *LetterHandler) CreateLetter(c *gin.Context) {
	var req model.CreateLetterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	letter, err := h.service.CreateLetter(c.Request.Context(), req)
	if err != nil {
		log.Printf("Error inserting letter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database insert error"})
		return
	}
	c.JSON(http.StatusCreated, letter)
}

func (h *LetterHandler) UpdateLetter(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid letter ID"})
		return
	}

	var req model.UpdateLetterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.service.UpdateLetter(c.Request.Context(), id, req); err != nil {
		if errors.Is(err, service.ErrLetterNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Letter not found"})
			return
		}
		log.Printf("Error updating letter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database update error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Letter updated successfully"})
}

func (h *LetterHandler) DeleteLetter(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid letter ID"})
		return
	}

	if err := h.service.DeleteLetter(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrLetterNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Letter not found"})
			return
		}
		log.Printf("Error deleting letter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database delete error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Letter deleted successfully"})
}

// RegisterLetterRoutes registers letter routes
func (h *LetterHandler) RegisterLetterRoutes(rg *gin.RouterGroup) {
	letterRoutes := rg.Group("/letters")
	{
		letterRoutes.GET("", h.ListLetters)
		letterRoutes.GET("/:id", h.GetLetter)
		letterRoutes.POST("", h.CreateLetter)
		letterRoutes.PUT("/:id", h.UpdateLetter)
		letterRoutes.DELETE("/:id", h.DeleteLetter)
	}
}
