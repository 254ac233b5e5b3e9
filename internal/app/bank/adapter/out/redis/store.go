package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/JoeShih716/go-bank-ledger/internal/app/bank/domain"
	"github.com/JoeShih716/go-bank-ledger/internal/app/bank/usecase"
)

// keyPrefix 帳戶 Hash 的 key 前綴，完整 key 為 account:<accountID>
const keyPrefix = "account:"

// Hash 欄位名稱
const (
	fieldAccountType = "account_type"
	fieldBalance     = "balance"
)

// Store 是以 Redis Hash 實現的帳戶儲存層
// 每個帳戶一個 Hash，欄位為 account_type 與 balance
// 單一指令的原子性由 Redis 保證，
// read-modify-write 的互斥由上層的帳戶鎖負責
type Store struct {
	client *redis.Client
}

// NewStore 建立 Redis 儲存層
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func accountKey(accountID string) string {
	return keyPrefix + accountID
}

// Get 讀取帳戶，不存在時回傳 domain.ErrAccountNotFound
func (s *Store) Get(ctx context.Context, accountID string) (*domain.Account, error) {
	fields, err := s.client.HGetAll(ctx, accountKey(accountID)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	// HGetAll 對不存在的 key 回傳空 map，不會回傳 redis.Nil
	if len(fields) == 0 {
		return nil, domain.ErrAccountNotFound
	}

	balance, err := strconv.ParseInt(fields[fieldBalance], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("corrupted balance for account %s: %v", accountID, err)
	}
	return &domain.Account{
		ID:      accountID,
		Type:    domain.AccountType(fields[fieldAccountType]),
		Balance: balance,
	}, nil
}

// Put 寫入帳戶 (upsert)
func (s *Store) Put(ctx context.Context, account *domain.Account) error {
	err := s.client.HSet(ctx, accountKey(account.ID),
		fieldAccountType, string(account.Type),
		fieldBalance, strconv.FormatInt(account.Balance, 10),
	).Err()
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

var _ usecase.AccountStore = (*Store)(nil)
