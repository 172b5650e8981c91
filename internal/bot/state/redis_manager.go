package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vladimiradmaev/tech-breaks/internal/logger"
)

// SessionTTL bounds how long an abandoned check-in survives in Redis
const SessionTTL = 24 * time.Hour

// RedisManager manages user states using Redis
type RedisManager struct {
	client *redis.Client
}

// NewRedisManager creates a new Redis-based state manager and checks the connection
func NewRedisManager(addr, password string, db int) (*RedisManager, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisManager{
		client: client,
	}, nil
}

func stateKey(userID int64) string {
	return fmt.Sprintf("checkin:%d:state", userID)
}

func tempKey(userID int64) string {
	return fmt.Sprintf("checkin:%d:answers", userID)
}

// SetUserState sets the state for a user with TTL
func (m *RedisManager) SetUserState(userID int64, state string) {
	ctx := context.Background()
	if err := m.client.Set(ctx, stateKey(userID), state, SessionTTL).Err(); err != nil {
		logger.Error("Failed to store dialog state", "user_id", userID, "error", err)
	}
}

// GetUserState gets the state for a user. Lookup failures fall back to None.
func (m *RedisManager) GetUserState(userID int64) string {
	ctx := context.Background()
	result, err := m.client.Get(ctx, stateKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return None
	}
	if err != nil {
		logger.Error("Failed to load dialog state", "user_id", userID, "error", err)
		return None
	}
	return result
}

// ClearUserState clears the state for a user
func (m *RedisManager) ClearUserState(userID int64) {
	m.client.Del(context.Background(), stateKey(userID))
}

// SetTempData sets temporary data for a user
func (m *RedisManager) SetTempData(userID int64, key string, value interface{}) {
	tempData := m.getTempDataMap(userID)
	if tempData == nil {
		tempData = make(map[string]interface{})
	}
	tempData[key] = value
	m.saveTempDataMap(userID, tempData)
}

// GetTempData gets temporary data for a user
func (m *RedisManager) GetTempData(userID int64, key string) (interface{}, bool) {
	tempData := m.getTempDataMap(userID)
	if tempData == nil {
		return nil, false
	}
	value, exists := tempData[key]
	return value, exists
}

// GetAllTempData returns every value stored for a user
func (m *RedisManager) GetAllTempData(userID int64) map[string]interface{} {
	tempData := m.getTempDataMap(userID)
	if tempData == nil {
		return map[string]interface{}{}
	}
	return tempData
}

// ClearTempData clears all temporary data for a user
func (m *RedisManager) ClearTempData(userID int64) {
	m.client.Del(context.Background(), tempKey(userID))
}

// Close closes the Redis connection
func (m *RedisManager) Close() error {
	return m.client.Close()
}

func (m *RedisManager) getTempDataMap(userID int64) map[string]interface{} {
	ctx := context.Background()

	data, err := m.client.Get(ctx, tempKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		logger.Error("Failed to load dialog answers", "user_id", userID, "error", err)
		return nil
	}

	var tempData map[string]interface{}
	if err := json.Unmarshal(data, &tempData); err != nil {
		logger.Warn("Discarding unreadable dialog answers", "user_id", userID, "error", err)
		return nil
	}
	return tempData
}

func (m *RedisManager) saveTempDataMap(userID int64, tempData map[string]interface{}) {
	data, err := json.Marshal(tempData)
	if err != nil {
		logger.Error("Failed to encode dialog answers", "user_id", userID, "error", err)
		return
	}
	if err := m.client.Set(context.Background(), tempKey(userID), data, SessionTTL).Err(); err != nil {
		logger.Error("Failed to store dialog answers", "user_id", userID, "error", err)
	}
}
