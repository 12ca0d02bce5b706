package controllers

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// HealthController reports process liveness and store reachability.
type HealthController struct {
	Client *mongo.Client
}

// NewHealthController creates a new HealthController
func NewHealthController(client *mongo.Client) *HealthController {
	return &HealthController{Client: client}
}

// Health pings the store and reports status.
func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := hc.Client.Ping(ctx, readpref.Primary()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
