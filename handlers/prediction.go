package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"views-prediction-api/models"
	"views-prediction-api/services"

	"github.com/gin-gonic/gin"
)

type ModelInfo struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
}

type PredictionHandler struct {
	svc   *services.PredictionService
	model ModelInfo
}

func NewPredictionHandler(svc *services.PredictionService, model ModelInfo) *PredictionHandler {
	return &PredictionHandler{svc: svc, model: model}
}

func (h *PredictionHandler) Create(c *gin.Context) {
	var in models.PredictionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.svc.Predict(c.Request.Context(), in)
	if err != nil {
		_ = c.Error(err)
		status := statusFor(err)
		msg := err.Error()
		if status == http.StatusInternalServerError {
			msg = "prediction failed: " + msg
		}
		respondError(c, status, msg)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *PredictionHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": services.Categories()})
}

func (h *PredictionHandler) Days(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": services.Days()})
}

// Engagement previews the derived rate while the user is still typing.
func (h *PredictionHandler) Engagement(c *gin.Context) {
	likes, err := parseCount(c.DefaultQuery("likes", "0"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid likes parameter, must be a non-negative integer")
		return
	}
	comments, err := parseCount(c.DefaultQuery("comments", "0"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid comments parameter, must be a non-negative integer")
		return
	}

	rate := services.EngagementRate(likes, comments)
	c.JSON(http.StatusOK, gin.H{
		"likes":           likes,
		"comments":        comments,
		"engagement_rate": rate,
		"formatted":       formatRate(rate),
	})
}

func (h *PredictionHandler) Model(c *gin.Context) {
	c.JSON(http.StatusOK, h.model)
}

func formatRate(rate float64) string {
	return fmt.Sprintf("%.2f", rate)
}

func parseCount(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative count %d", n)
	}
	return n, nil
}
