package domain

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountTypeValid(t *testing.T) {
	assert.True(t, AccountTypeSavings.Valid())
	assert.True(t, AccountTypeChecking.Valid())
	assert.False(t, AccountType("").Valid())
	assert.False(t, AccountType("SAVINGS").Valid())
	assert.False(t, AccountType("credit").Valid())
}

func TestNewAccount(t *testing.T) {
	account := NewAccount("123", AccountTypeSavings)
	assert.Equal(t, "123", account.ID)
	assert.Equal(t, AccountTypeSavings, account.Type)
	assert.Equal(t, int64(0), account.Balance)
}

func TestAccountDeposit(t *testing.T) {
	account := NewAccount("123", AccountTypeSavings)

	require.NoError(t, account.Deposit(10000))
	assert.Equal(t, int64(10000), account.Balance)

	require.NoError(t, account.Deposit(50))
	assert.Equal(t, int64(10050), account.Balance)
}

func TestAccountDepositRejectsNonPositive(t *testing.T) {
	account := NewAccount("123", AccountTypeSavings)

	require.ErrorIs(t, account.Deposit(0), ErrAmountMustBePositive)
	require.ErrorIs(t, account.Deposit(-100), ErrAmountMustBePositive)
	assert.Equal(t, int64(0), account.Balance)
}

func TestAccountDepositOverflow(t *testing.T) {
	account := &Account{ID: "123", Type: AccountTypeSavings, Balance: math.MaxInt64 - 5}

	require.ErrorIs(t, account.Deposit(10), ErrBalanceOverflow)
	assert.Equal(t, int64(math.MaxInt64-5), account.Balance)

	// 剛好補到上限則允許
	require.NoError(t, account.Deposit(5))
	assert.Equal(t, int64(math.MaxInt64), account.Balance)
}

func TestAccountWithdraw(t *testing.T) {
	account := &Account{ID: "123", Type: AccountTypeChecking, Balance: 50000}

	require.NoError(t, account.Withdraw(20000))
	assert.Equal(t, int64(30000), account.Balance)

	// 提領到歸零
	require.NoError(t, account.Withdraw(30000))
	assert.Equal(t, int64(0), account.Balance)
}

func TestAccountWithdrawInsufficient(t *testing.T) {
	account := &Account{ID: "123", Type: AccountTypeChecking, Balance: 100}

	require.ErrorIs(t, account.Withdraw(101), ErrInsufficientBalance)
	assert.Equal(t, int64(100), account.Balance)
}

func TestAccountWithdrawRejectsNonPositive(t *testing.T) {
	account := &Account{ID: "123", Type: AccountTypeChecking, Balance: 100}

	require.ErrorIs(t, account.Withdraw(0), ErrAmountMustBePositive)
	require.ErrorIs(t, account.Withdraw(-1), ErrAmountMustBePositive)
	assert.Equal(t, int64(100), account.Balance)
}

func TestAccountAccrueInterest(t *testing.T) {
	account := &Account{ID: "123", Type: AccountTypeSavings, Balance: 50000}

	interest, err := account.AccrueInterest(decimal.RequireFromString("2.5"))
	require.NoError(t, err)
	assert.Equal(t, int64(1250), interest)
	assert.Equal(t, int64(51250), account.Balance)
}

func TestAccountAccrueInterestZeroRate(t *testing.T) {
	account := &Account{ID: "123", Type: AccountTypeSavings, Balance: 50000}

	interest, err := account.AccrueInterest(decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, int64(0), interest)
	assert.Equal(t, int64(50000), account.Balance)
}

func TestAccountAccrueInterestOverflow(t *testing.T) {
	account := &Account{ID: "123", Type: AccountTypeSavings, Balance: math.MaxInt64 - 1}

	_, err := account.AccrueInterest(decimal.RequireFromString("10"))
	require.ErrorIs(t, err, ErrBalanceOverflow)
	assert.Equal(t, int64(math.MaxInt64-1), account.Balance)
}

func TestAccountClone(t *testing.T) {
	account := &Account{ID: "123", Type: AccountTypeSavings, Balance: 100}
	cloned := account.Clone()

	cloned.Balance = 999
	assert.Equal(t, int64(100), account.Balance)
	assert.Equal(t, "123", cloned.ID)
}
