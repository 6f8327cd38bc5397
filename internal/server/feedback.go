package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/introlaser/shop-bot/internal/entity"
)

func (s *Server) addSuggestion(c *gin.Context) {
	var req struct {
		UserID     string `json:"user_id" binding:"required"`
		Suggestion string `json:"suggestion" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sug := &entity.Suggestion{UserID: req.UserID, Suggestion: req.Suggestion}
	if err := s.feedback.AddSuggestion(c.Request.Context(), sug); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Спасибо за предложение!"})
}

func (s *Server) addQuestion(c *gin.Context) {
	var req struct {
		UserID   string `json:"user_id" binding:"required"`
		Question string `json:"question" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	q := &entity.Question{UserID: req.UserID, Question: req.Question}
	if err := s.feedback.AddQuestion(c.Request.Context(), q); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Вопрос передан администратору"})
}
