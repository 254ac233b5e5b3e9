package usecase

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/JoeShih716/go-bank-ledger/internal/app/bank/domain"
	"github.com/JoeShih716/go-bank-ledger/pkg/keylock"
)

// BankUseCase 是核心業務邏輯層
// 所有對帳戶的讀寫都在該帳戶的鎖內進行，
// 確保 read-modify-write 不會與其他請求交錯
type BankUseCase struct {
	store AccountStore
	locks *keylock.Registry
}

func NewBankUseCase(store AccountStore) *BankUseCase {
	return &BankUseCase{
		store: store,
		locks: keylock.NewRegistry(),
	}
}

// CreateAccount 開戶，初始餘額為 0
// 參數:
//   - accountID: 帳戶 ID
//   - accountType: 帳戶類型 (savings 或 checking)
//
// 回傳:
//   - *domain.Account: 新建立的帳戶
//   - error: 帳戶已存在時回傳 domain.ErrAccountAlreadyExists
func (u *BankUseCase) CreateAccount(ctx context.Context, accountID string, accountType domain.AccountType) (*domain.Account, error) {
	if accountID == "" {
		return nil, domain.ErrAccountIDRequired
	}
	if !accountType.Valid() {
		return nil, domain.ErrInvalidAccountType
	}

	lock := u.locks.Get(accountID)
	lock.Lock()
	defer lock.Unlock()

	// 先查再建，兩個並發的建立請求只有一個會成功
	_, err := u.store.Get(ctx, accountID)
	if err == nil {
		return nil, domain.ErrAccountAlreadyExists
	}
	if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}

	account := domain.NewAccount(accountID, accountType)
	if err := u.store.Put(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// GetBalance 查詢帳戶餘額
func (u *BankUseCase) GetBalance(ctx context.Context, accountID string) (int64, error) {
	if accountID == "" {
		return 0, domain.ErrAccountIDRequired
	}

	// 讀鎖，查詢之間可以並行
	lock := u.locks.Get(accountID)
	lock.RLock()
	defer lock.RUnlock()

	account, err := u.store.Get(ctx, accountID)
	if err != nil {
		return 0, err
	}
	return account.Balance, nil
}

// Deposit 存款，回傳存入後的餘額
func (u *BankUseCase) Deposit(ctx context.Context, accountID string, amount int64) (int64, error) {
	if accountID == "" {
		return 0, domain.ErrAccountIDRequired
	}
	if amount <= 0 {
		return 0, domain.ErrAmountMustBePositive
	}

	lock := u.locks.Get(accountID)
	lock.Lock()
	defer lock.Unlock()

	account, err := u.store.Get(ctx, accountID)
	if err != nil {
		return 0, err
	}
	if err := account.Deposit(amount); err != nil {
		return 0, err
	}
	if err := u.store.Put(ctx, account); err != nil {
		return 0, err
	}
	return account.Balance, nil
}

// Withdraw 提款，回傳提領後的餘額
// 餘額不足時回傳 domain.ErrInsufficientBalance，餘額不會變動
func (u *BankUseCase) Withdraw(ctx context.Context, accountID string, amount int64) (int64, error) {
	if accountID == "" {
		return 0, domain.ErrAccountIDRequired
	}
	if amount <= 0 {
		return 0, domain.ErrAmountMustBePositive
	}

	lock := u.locks.Get(accountID)
	lock.Lock()
	defer lock.Unlock()

	account, err := u.store.Get(ctx, accountID)
	if err != nil {
		return 0, err
	}
	if err := account.Withdraw(amount); err != nil {
		return 0, err
	}
	if err := u.store.Put(ctx, account); err != nil {
		return 0, err
	}
	return account.Balance, nil
}

// CalculateInterest 以年利率計算單期利息並存入帳戶
// 參數:
//   - accountID: 帳戶 ID
//   - annualRate: 年利率，百分比表示，範圍 [0, 100]
//
// 回傳:
//   - int64: 計息後的餘額 (cents)
//   - int64: 本次利息 (cents)
//   - error: 利率超出範圍時回傳 domain.ErrInvalidInterestRate
func (u *BankUseCase) CalculateInterest(ctx context.Context, accountID string, annualRate decimal.Decimal) (int64, int64, error) {
	if accountID == "" {
		return 0, 0, domain.ErrAccountIDRequired
	}
	if !domain.ValidAnnualRate(annualRate) {
		return 0, 0, domain.ErrInvalidInterestRate
	}

	lock := u.locks.Get(accountID)
	lock.Lock()
	defer lock.Unlock()

	account, err := u.store.Get(ctx, accountID)
	if err != nil {
		return 0, 0, err
	}
	interest, err := account.AccrueInterest(annualRate)
	if err != nil {
		return 0, 0, err
	}
	if err := u.store.Put(ctx, account); err != nil {
		return 0, 0, err
	}
	return account.Balance, interest, nil
}
