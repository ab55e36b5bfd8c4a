package handlers

import (
	"net/http"
	"strings"

	"views-prediction-api/models"
	"views-prediction-api/services"
	"views-prediction-api/web"

	"github.com/gin-gonic/gin"
)

const formTemplate = "form.html"

type pageData struct {
	Layout         string
	Input          models.PredictionInput
	Categories     []models.Category
	Days           []models.Day
	EngagementRate string
	Result         *models.PredictionResult
	Error          string
	Model          string
}

// FormHandler serves the interactive page. Both layouts share one template.
type FormHandler struct {
	svc    *services.PredictionService
	layout string
}

func NewFormHandler(svc *services.PredictionService, layout string) *FormHandler {
	if !web.ValidLayout(layout) {
		layout = web.LayoutWide
	}
	return &FormHandler{svc: svc, layout: layout}
}

func (h *FormHandler) Show(c *gin.Context) {
	c.HTML(http.StatusOK, formTemplate, h.page(c, models.DefaultInput()))
}

func (h *FormHandler) Submit(c *gin.Context) {
	in := models.DefaultInput()
	if err := c.ShouldBind(&in); err != nil {
		page := h.page(c, in)
		page.Error = "Please check your input: " + err.Error()
		c.HTML(http.StatusBadRequest, formTemplate, page)
		return
	}

	page := h.page(c, in)
	res, err := h.svc.Predict(c.Request.Context(), in)
	if err != nil {
		_ = c.Error(err)
		page.Error = "Prediction failed: " + err.Error()
		c.HTML(statusFor(err), formTemplate, page)
		return
	}

	page.Result = res
	c.HTML(http.StatusOK, formTemplate, page)
}

func (h *FormHandler) page(c *gin.Context, in models.PredictionInput) pageData {
	return pageData{
		Layout:         h.layoutFor(c),
		Input:          in,
		Categories:     services.Categories(),
		Days:           services.Days(),
		EngagementRate: formatRate(services.EngagementRate(in.Likes, in.Comments)),
		Model:          h.svc.ModelID(),
	}
}

func (h *FormHandler) layoutFor(c *gin.Context) string {
	if l := strings.ToLower(c.Query("layout")); web.ValidLayout(l) {
		return l
	}
	return h.layout
}
