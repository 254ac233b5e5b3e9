package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/JoeShih716/go-bank-ledger/internal/app/bank/domain"
	"github.com/JoeShih716/go-bank-ledger/internal/app/bank/usecase"
	"github.com/JoeShih716/go-bank-ledger/pkg/journal"
)

// Store 是以記憶體 Map 實現的帳戶儲存層
//
// 結構:
//
//	accounts: 帳戶資料 Map
//	mu: RWMutex 用於保護 Map 本身
//	journal: 帳戶快照日誌，nil 表示不落地
//
// Map 鎖只保證單筆 Get/Put 的原子性，
// read-modify-write 的互斥由上層的帳戶鎖負責
type Store struct {
	accounts map[string]*domain.Account
	mu       sync.RWMutex
	journal  *journal.Journal
}

// NewStore 建立記憶體儲存層
//
// 參數:
//
//	jnl: 帳戶快照日誌，可為 nil
//
// 回傳:
//
//	*Store: Store 實例
//	error: 初始化錯誤 (如日誌重播失敗)
func NewStore(jnl *journal.Journal) (*Store, error) {
	store := &Store{
		accounts: make(map[string]*domain.Account),
		journal:  jnl,
	}
	if jnl != nil {
		if err := store.recoverFromJournal(); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// recoverFromJournal 重播日誌還原帳戶狀態
// 日誌記錄的是每次寫入後的帳戶快照，後寫的覆蓋先寫的
// 只有 NewStore 呼叫，無需 Lock (單執行緒)
func (s *Store) recoverFromJournal() error {
	return s.journal.ReadAll(func(raw []byte) error {
		var account domain.Account
		if err := json.Unmarshal(raw, &account); err != nil {
			return err
		}
		s.accounts[account.ID] = &account
		return nil
	})
}

// Get 讀取帳戶
//
// 參數:
//
//	ctx: 上下文
//	accountID: 帳戶 ID
//
// 回傳:
//
//	*domain.Account: 帳戶複本
//	error: 帳戶不存在時回傳 domain.ErrAccountNotFound
func (s *Store) Get(ctx context.Context, accountID string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[accountID]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return account.Clone(), nil
}

// Put 寫入帳戶 (upsert)
//
// 參數:
//
//	ctx: 上下文
//	account: 帳戶
//
// 回傳:
//
//	error: 日誌寫入失敗時回傳 domain.ErrStoreUnavailable
func (s *Store) Put(ctx context.Context, account *domain.Account) error {
	// 1. 先寫日誌 (Critical Path)
	if s.journal != nil {
		if err := s.journal.Append(account); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		}
	}

	// 2. 再更新記憶體
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account.ID] = account.Clone()
	return nil
}

var _ usecase.AccountStore = (*Store)(nil)
