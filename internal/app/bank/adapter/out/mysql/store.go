package mysql

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/JoeShih716/go-bank-ledger/internal/app/bank/domain"
	"github.com/JoeShih716/go-bank-ledger/internal/app/bank/usecase"
	"github.com/JoeShih716/go-bank-ledger/pkg/mysql"
)

// sqlAccount 對應資料庫的 accounts 表
type sqlAccount struct {
	ID        string `gorm:"primaryKey;size:64"`
	Type      string `gorm:"column:account_type;size:16"`
	Balance   int64
	UpdatedAt int64 `gorm:"autoUpdateTime:milli"` // 自動更新時間
}

func (*sqlAccount) TableName() string {
	return "accounts"
}

// Store 是以 MySQL 實現的帳戶儲存層
// 單句讀寫的原子性由資料庫保證，
// read-modify-write 的互斥由上層的帳戶鎖負責
type Store struct {
	client *mysql.Client
}

func NewStore(client *mysql.Client) *Store {
	return &Store{
		client: client,
	}
}

// Migrate 建立 accounts 表 (不存在時)
func (s *Store) Migrate() error {
	return s.client.DB().AutoMigrate(&sqlAccount{})
}

// Get 讀取帳戶，不存在時回傳 domain.ErrAccountNotFound
func (s *Store) Get(ctx context.Context, accountID string) (*domain.Account, error) {
	var record sqlAccount
	err := s.client.DB().WithContext(ctx).Where("id = ?", accountID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return &domain.Account{
		ID:      record.ID,
		Type:    domain.AccountType(record.Type),
		Balance: record.Balance,
	}, nil
}

// Put 寫入帳戶 (upsert)
func (s *Store) Put(ctx context.Context, account *domain.Account) error {
	record := sqlAccount{
		ID:      account.ID,
		Type:    string(account.Type),
		Balance: account.Balance,
	}
	err := s.client.DB().WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&record).Error
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

var _ usecase.AccountStore = (*Store)(nil)
