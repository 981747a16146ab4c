package utils

import (
	"context"
	"testing"
	"time"

	"healthhub/config"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestCheckDependenciesReportsPerRole(t *testing.T) {
	config.AppConfig.DatabaseName = "healthhub"

	mr := miniredis.RunT(t)
	healthy := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	down := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})

	ctx := context.Background()
	mongoClient, err := mongo.Connect(ctx, options.Client().
		ApplyURI("mongodb://127.0.0.1:1").
		SetServerSelectionTimeout(100*time.Millisecond))
	require.NoError(t, err)
	defer mongoClient.Disconnect(ctx)

	status := checkDependencies(ctx, map[string]*redis.Client{
		"cache": healthy,
		"auth":  down,
	}, mongoClient)

	assert.Equal(t, "healthhub", status.Database)
	assert.True(t, status.Redis["cache"])
	assert.False(t, status.Redis["auth"])
	assert.False(t, status.Mongo)
	assert.WithinDuration(t, time.Now(), status.CheckedAt, 10*time.Second)
}
