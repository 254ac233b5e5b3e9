package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// AccountType 帳戶類型，儲存與傳輸皆使用小寫字串
type AccountType string

const (
	AccountTypeSavings  AccountType = "savings"
	AccountTypeChecking AccountType = "checking"
)

// Valid 檢查是否為支援的帳戶類型
func (t AccountType) Valid() bool {
	return t == AccountTypeSavings || t == AccountTypeChecking
}

// Account 帳戶
// Balance 為非負整數金額 (cents)，任何時刻皆不得為負
type Account struct {
	ID      string
	Type    AccountType
	Balance int64
}

// NewAccount 建立一個餘額為 0 的新帳戶
func NewAccount(id string, accountType AccountType) *Account {
	return &Account{
		ID:      id,
		Type:    accountType,
		Balance: 0,
	}
}

// Deposit 存款
func (a *Account) Deposit(amount int64) error {
	if amount <= 0 {
		return ErrAmountMustBePositive
	}
	if a.Balance > math.MaxInt64-amount {
		return ErrBalanceOverflow
	}

	a.Balance = a.Balance + amount
	return nil
}

// Withdraw 提款
func (a *Account) Withdraw(amount int64) error {
	if amount <= 0 {
		return ErrAmountMustBePositive
	}

	if a.Balance < amount {
		return ErrInsufficientBalance
	}

	a.Balance = a.Balance - amount
	return nil
}

// AccrueInterest 以年利率 (百分比) 計算單期利息並滾入本金
//
// 參數:
//
//	annualRate: 年利率百分比，範圍 [0, MaxAnnualInterestRate]
//
// 回傳:
//
//	int64: 本次產生的利息 (cents)
//	error: 計算錯誤 (如餘額溢位)
func (a *Account) AccrueInterest(annualRate decimal.Decimal) (int64, error) {
	interest := Interest(a.Balance, annualRate)
	if a.Balance > math.MaxInt64-interest {
		return 0, ErrBalanceOverflow
	}

	a.Balance = a.Balance + interest
	return interest, nil
}

// Clone 複製帳戶，避免呼叫端共用同一份實例
func (a *Account) Clone() *Account {
	cloned := *a
	return &cloned
}
