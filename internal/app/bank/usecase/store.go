package usecase

import (
	"context"

	"github.com/JoeShih716/go-bank-ledger/internal/app/bank/domain"
)

// AccountStore 是帳戶儲存層的介面
// 單一 key 的讀寫各自為原子操作，但 read-modify-write 的原子性
// 由上層的帳戶鎖保證，儲存層不負責
type AccountStore interface {
	// Get 讀取帳戶，回傳的是複本，修改後需經 Put 才會生效
	// 帳戶不存在時回傳 domain.ErrAccountNotFound
	Get(ctx context.Context, accountID string) (*domain.Account, error)
	// Put 寫入帳戶 (upsert)
	Put(ctx context.Context, account *domain.Account) error
}
