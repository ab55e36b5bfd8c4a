package handlers

import (
	"fmt"
	"html/template"
	"net/http"

	"views-prediction-api/config"
	"views-prediction-api/logger"
	"views-prediction-api/middleware"
	"views-prediction-api/services"
	"views-prediction-api/web"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterOptions struct {
	Config  *config.Config
	Service *services.PredictionService
	Model   ModelInfo
	Cache   *services.CacheService
	Log     *logger.Logger
}

func NewRouter(o RouterOptions) (*gin.Engine, error) {
	tmpl, err := web.Templates(template.FuncMap{"count": services.FormatCount})
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(o.Log))
	router.Use(middleware.SetupCORS(o.Config.CORS))
	if o.Config.Metrics.Enabled {
		router.Use(middleware.Metrics())
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
	router.SetHTMLTemplate(tmpl)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "UP",
			"message": "YouTube views prediction API is running",
			"model":   o.Model.ID,
		})
	})

	form := NewFormHandler(o.Service, o.Config.UI.Layout)
	router.GET("/", form.Show)
	router.POST("/predict", form.Submit)

	predictions := NewPredictionHandler(o.Service, o.Model)
	api := router.Group("/api/v1")
	{
		api.POST("/predictions", predictions.Create)
		api.GET("/categories", predictions.Categories)
		api.GET("/days", predictions.Days)
		api.GET("/engagement", predictions.Engagement)
		api.GET("/model", predictions.Model)
	}

	router.GET("/ws/predictions", LivePredictions(o.Cache, o.Log))

	return router, nil
}
