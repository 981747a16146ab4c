// File: utils/health.go
package utils

import (
	"context"
	"sync"
	"time"

	"healthhub/config"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// healthCheckInterval is how often dependencies are re-pinged.
const healthCheckInterval = 60 * time.Second

// HealthStatus is the dependency snapshot served on /health: the named
// MongoDB database and each Redis role the server runs on (cache, auth,
// reminderQueue).
type HealthStatus struct {
	Database  string          `json:"database"`
	Mongo     bool            `json:"mongo"`
	Redis     map[string]bool `json:"redis"`
	CheckedAt time.Time       `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the latest stored snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// StartHealthMonitor pings MongoDB and every Redis role once a minute and
// keeps the result in memory for the /health endpoint. redisClients is keyed
// by role name.
func StartHealthMonitor(redisClients map[string]*redis.Client, mongoClient *mongo.Client) {
	go func() {
		ticker := time.NewTicker(healthCheckInterval)
		defer ticker.Stop()

		for range ticker.C {
			status := checkDependencies(context.Background(), redisClients, mongoClient)

			healthMu.Lock()
			currentHealth = status
			healthMu.Unlock()
		}
	}()
}

// checkDependencies builds one snapshot. Each ping gets a short deadline so
// a hung dependency cannot stall the monitor past its tick.
func checkDependencies(ctx context.Context, redisClients map[string]*redis.Client, mongoClient *mongo.Client) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	redisHealth := make(map[string]bool, len(redisClients))
	for role, client := range redisClients {
		redisHealth[role] = client.Ping(ctx).Err() == nil
	}

	return HealthStatus{
		Database:  config.AppConfig.DatabaseName,
		Mongo:     mongoClient.Ping(ctx, nil) == nil,
		Redis:     redisHealth,
		CheckedAt: time.Now(),
	}
}
