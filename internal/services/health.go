package services

import (
	"time"

	"github.com/localnerve/expiestack/internal/database"
	"github.com/sirupsen/logrus"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string         `json:"status"`
	Store        string         `json:"store"`
	Uptime       string         `json:"uptime"`
	Collections  map[string]int `json:"collections,omitempty"`
	ErrorMessage string         `json:"error,omitempty"`
}

// HealthCheck reports the state of the in-memory store
func HealthCheck(store *database.Store, started time.Time) HealthCheckResult {
	result := HealthCheckResult{
		Status: "healthy",
		Uptime: time.Since(started).Round(time.Second).String(),
	}

	if store == nil {
		result.Status = "unhealthy"
		result.Store = "missing"
		result.ErrorMessage = "store not initialized"
		logrus.Warn("Health check failed - store not initialized")
		return result
	}

	result.Store = "ok"
	result.Collections = store.Counts()
	return result
}
