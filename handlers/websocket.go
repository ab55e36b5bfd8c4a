package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"views-prediction-api/logger"
	"views-prediction-api/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// LivePredictions streams every prediction event published to Redis.
func LivePredictions(cache *services.CacheService, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cache.Available() {
			respondError(c, http.StatusServiceUnavailable, "live feed requires redis")
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Warn("websocket upgrade failed", "error", err)
			return
		}
		defer conn.Close()

		ctx, cancel := context.WithCancel(c.Request.Context())
		defer cancel()

		// Read pump: detect client disconnect
		go func() {
			defer cancel()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		pubsub := cache.Subscribe(ctx, services.PredictionsChannel)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				err := conn.WriteJSON(gin.H{
					"type": "prediction",
					"data": json.RawMessage(msg.Payload),
				})
				if err != nil {
					log.Warn("websocket write failed", "error", err)
					return
				}
			}
		}
	}
}
