package store

import (
	"context"
	"time"

	"github.com/marketplace-next/storefront/internal/catalog"
	"github.com/marketplace-next/storefront/internal/models"
	"github.com/marketplace-next/storefront/internal/storage"

	"go.uber.org/zap"
)

// Backend 远端购物车与收藏夹接口，对应 /cart 与 /wishlist REST 资源
type Backend interface {
	GetCart(ctx context.Context) (*models.Cart, error)
	AddCartItem(ctx context.Context, req models.AddToCartRequest) (*models.Cart, error)
	UpdateCartItem(ctx context.Context, itemID string, quantity int) (*models.Cart, error)
	RemoveCartItem(ctx context.Context, itemID string) (*models.Cart, error)
	ClearCart(ctx context.Context) error
	MergeCart(ctx context.Context, items []models.AddToCartRequest) (*models.Cart, error)
	GetWishlist(ctx context.Context) ([]models.WishlistEntry, error)
	AddWishlistItem(ctx context.Context, productID string) (*models.WishlistEntry, error)
	RemoveWishlistItem(ctx context.Context, productID string) error
	ClearWishlist(ctx context.Context) error
}

// Options 购物车 Store 依赖
type Options struct {
	Storage     storage.KV
	Catalog     catalog.Lookup
	Backend     Backend
	Key         string
	Currency    string
	// MaxQuantity 单行数量上限，<=0 时使用默认值
	MaxQuantity int
	Clock       func() time.Time
	IDGen       func() string
	Logger      *zap.SugaredLogger
}
