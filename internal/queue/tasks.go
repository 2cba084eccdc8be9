package queue

import (
	"encoding/json"
	"strings"

	"github.com/marketplace-next/storefront/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskCartSync 会话购物车同步任务
	TaskCartSync = constants.TaskCartSync
)

// CartSyncPayload 购物车同步任务载荷
type CartSyncPayload struct {
	SessionID string `json:"session_id"`
	UserID    uint   `json:"user_id"`
}

// NewCartSyncTask 创建购物车同步任务
func NewCartSyncTask(payload CartSyncPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCartSync, body), nil
}

// ParseCartSyncPayload 解析购物车同步任务载荷
func ParseCartSyncPayload(body []byte) (CartSyncPayload, error) {
	var payload CartSyncPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return payload, err
	}
	payload.SessionID = strings.TrimSpace(payload.SessionID)
	return payload, nil
}
