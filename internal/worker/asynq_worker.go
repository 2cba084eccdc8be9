package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/marketplace-next/storefront/internal/logger"
	"github.com/marketplace-next/storefront/internal/provider"
	"github.com/marketplace-next/storefront/internal/queue"
	"github.com/marketplace-next/storefront/internal/service"
	"github.com/marketplace-next/storefront/internal/session"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskCartSync, c.handleCartSync)
}

// handleCartSync 将会话购物车与用户的服务端购物车对账
func (c *Consumer) handleCartSync(ctx context.Context, task *asynq.Task) error {
	if c == nil || c.Container == nil || task == nil {
		logger.Debugw("worker_cart_sync_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseCartSyncPayload(task.Payload())
	if err != nil {
		logger.Warnw("worker_cart_sync_unmarshal_failed", "error", err)
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	if payload.SessionID == "" || payload.UserID == 0 {
		logger.Debugw("worker_cart_sync_skip_invalid_payload", "session_id", payload.SessionID, "user_id", payload.UserID)
		return nil
	}
	if c.Sessions == nil || c.CartService == nil || c.WishlistService == nil {
		return errors.New("cart sync dependencies not initialized")
	}

	// 快照可能已被其他进程更新，每个任务都从存储重新加载
	st, err := c.Sessions.Reload(ctx, payload.SessionID)
	if err != nil {
		if errors.Is(err, session.ErrInvalidSessionID) {
			logger.Debugw("worker_cart_sync_skip_invalid_session", "session_id", payload.SessionID)
			return nil
		}
		logger.Warnw("worker_cart_sync_load_failed", "session_id", payload.SessionID, "error", err)
		return err
	}

	backend := service.NewCartBackend(c.CartService, c.WishlistService, payload.UserID)
	if err := st.SyncWith(ctx, backend); err != nil {
		logger.Warnw("worker_cart_sync_failed",
			"session_id", payload.SessionID,
			"user_id", payload.UserID,
			"error", err,
		)
		return err
	}
	logger.Infow("worker_cart_sync_done",
		"session_id", payload.SessionID,
		"user_id", payload.UserID,
		"items", len(st.Items()),
		"wishlist_items", len(st.WishlistItems()),
	)
	return nil
}
