package domain

import "errors"

var (
	// ErrAccountIDRequired 未提供帳戶 ID
	ErrAccountIDRequired = errors.New("account id is required")

	// ErrInvalidAccountType 不支援的帳戶類型
	ErrInvalidAccountType = errors.New("invalid account type")

	// ErrInvalidAmount 金額字串無法解析或超出精度
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrAmountMustBePositive 金額必須為正數
	ErrAmountMustBePositive = errors.New("amount must be positive")

	// ErrInvalidInterestRate 利率無效或超出範圍
	ErrInvalidInterestRate = errors.New("invalid interest rate")

	// ErrBalanceOverflow 餘額超出可表示範圍
	ErrBalanceOverflow = errors.New("balance overflow")

	// ErrInsufficientBalance 餘額不足
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrAccountNotFound 找不到帳戶
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountAlreadyExists 帳戶已存在
	ErrAccountAlreadyExists = errors.New("account already exists")

	// ErrStoreUnavailable 儲存層無法完成讀寫
	ErrStoreUnavailable = errors.New("store unavailable")
)
