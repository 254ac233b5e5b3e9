package usecase

import (
	"context"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoeShih716/go-bank-ledger/internal/app/bank/domain"
)

// ---- fake store ----

// fakeStore 以 Map 模擬儲存層，copy-in/copy-out 行為與真實儲存一致
// getFn/putFn 可覆寫對應方法以注入錯誤
type fakeStore struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
	getFn    func(ctx context.Context, accountID string) (*domain.Account, error)
	putFn    func(ctx context.Context, account *domain.Account) error
}

func newFakeStore() *fakeStore {
	return &fakeStore{accounts: make(map[string]*domain.Account)}
}

func (f *fakeStore) Get(ctx context.Context, accountID string) (*domain.Account, error) {
	if f.getFn != nil {
		return f.getFn(ctx, accountID)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	account, ok := f.accounts[accountID]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return account.Clone(), nil
}

func (f *fakeStore) Put(ctx context.Context, account *domain.Account) error {
	if f.putFn != nil {
		return f.putFn(ctx, account)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[account.ID] = account.Clone()
	return nil
}

var _ AccountStore = (*fakeStore)(nil)

// seed 直接寫入一個帳戶，跳過業務邏輯
func (f *fakeStore) seed(account *domain.Account) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[account.ID] = account
}

func newTestBank() (*BankUseCase, *fakeStore) {
	store := newFakeStore()
	return NewBankUseCase(store), store
}

// ---- create / read ----

func TestCreateAccount(t *testing.T) {
	bank, _ := newTestBank()
	ctx := context.Background()

	account, err := bank.CreateAccount(ctx, "123", domain.AccountTypeSavings)
	require.NoError(t, err)
	assert.Equal(t, "123", account.ID)
	assert.Equal(t, domain.AccountTypeSavings, account.Type)
	assert.Equal(t, int64(0), account.Balance)
}

func TestCreateAccountValidation(t *testing.T) {
	bank, _ := newTestBank()
	ctx := context.Background()

	_, err := bank.CreateAccount(ctx, "", domain.AccountTypeSavings)
	require.ErrorIs(t, err, domain.ErrAccountIDRequired)

	_, err = bank.CreateAccount(ctx, "123", domain.AccountType("credit"))
	require.ErrorIs(t, err, domain.ErrInvalidAccountType)
}

func TestCreateAccountDuplicate(t *testing.T) {
	bank, _ := newTestBank()
	ctx := context.Background()

	_, err := bank.CreateAccount(ctx, "123", domain.AccountTypeSavings)
	require.NoError(t, err)

	_, err = bank.CreateAccount(ctx, "123", domain.AccountTypeChecking)
	require.ErrorIs(t, err, domain.ErrAccountAlreadyExists)

	// 原帳戶不受影響
	balance, err := bank.GetBalance(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}

func TestCreateAccountConcurrentDuplicate(t *testing.T) {
	bank, _ := newTestBank()
	ctx := context.Background()

	const goroutines = 32
	results := make(chan error, goroutines)

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			_, err := bank.CreateAccount(ctx, "123", domain.AccountTypeSavings)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	// 只有一個建立請求成功，其他都是帳戶已存在
	var succeeded, duplicated int
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		require.ErrorIs(t, err, domain.ErrAccountAlreadyExists)
		duplicated++
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, goroutines-1, duplicated)
}

func TestGetBalance(t *testing.T) {
	bank, store := newTestBank()
	ctx := context.Background()

	store.seed(&domain.Account{ID: "123", Type: domain.AccountTypeSavings, Balance: 51250})

	balance, err := bank.GetBalance(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, int64(51250), balance)
}

func TestGetBalanceNotFound(t *testing.T) {
	bank, _ := newTestBank()
	ctx := context.Background()

	_, err := bank.GetBalance(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)

	_, err = bank.GetBalance(ctx, "")
	require.ErrorIs(t, err, domain.ErrAccountIDRequired)
}

// ---- deposit / withdraw ----

func TestDeposit(t *testing.T) {
	bank, _ := newTestBank()
	ctx := context.Background()

	_, err := bank.CreateAccount(ctx, "123", domain.AccountTypeSavings)
	require.NoError(t, err)

	balance, err := bank.Deposit(ctx, "123", 100000)
	require.NoError(t, err)
	assert.Equal(t, int64(100000), balance)

	balance, err = bank.Deposit(ctx, "123", 50)
	require.NoError(t, err)
	assert.Equal(t, int64(100050), balance)
}

func TestDepositValidation(t *testing.T) {
	bank, _ := newTestBank()
	ctx := context.Background()

	_, err := bank.Deposit(ctx, "", 100)
	require.ErrorIs(t, err, domain.ErrAccountIDRequired)

	_, err = bank.Deposit(ctx, "123", 0)
	require.ErrorIs(t, err, domain.ErrAmountMustBePositive)

	_, err = bank.Deposit(ctx, "123", -5)
	require.ErrorIs(t, err, domain.ErrAmountMustBePositive)

	_, err = bank.Deposit(ctx, "missing", 100)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestDepositOverflow(t *testing.T) {
	bank, store := newTestBank()
	ctx := context.Background()

	store.seed(&domain.Account{ID: "123", Type: domain.AccountTypeSavings, Balance: math.MaxInt64 - 5})

	_, err := bank.Deposit(ctx, "123", 10)
	require.ErrorIs(t, err, domain.ErrBalanceOverflow)

	balance, err := bank.GetBalance(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64-5), balance)
}

func TestWithdraw(t *testing.T) {
	bank, store := newTestBank()
	ctx := context.Background()

	store.seed(&domain.Account{ID: "123", Type: domain.AccountTypeChecking, Balance: 100000})

	balance, err := bank.Withdraw(ctx, "123", 50000)
	require.NoError(t, err)
	assert.Equal(t, int64(50000), balance)

	// 提領到歸零
	balance, err = bank.Withdraw(ctx, "123", 50000)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}

func TestWithdrawInsufficient(t *testing.T) {
	bank, store := newTestBank()
	ctx := context.Background()

	store.seed(&domain.Account{ID: "123", Type: domain.AccountTypeChecking, Balance: 100})

	_, err := bank.Withdraw(ctx, "123", 101)
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)

	// 失敗的提款不得動到餘額
	balance, err := bank.GetBalance(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, int64(100), balance)
}

func TestWithdrawValidation(t *testing.T) {
	bank, _ := newTestBank()
	ctx := context.Background()

	_, err := bank.Withdraw(ctx, "", 100)
	require.ErrorIs(t, err, domain.ErrAccountIDRequired)

	_, err = bank.Withdraw(ctx, "123", -1)
	require.ErrorIs(t, err, domain.ErrAmountMustBePositive)

	_, err = bank.Withdraw(ctx, "missing", 100)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

// ---- interest ----

func TestCalculateInterest(t *testing.T) {
	bank, store := newTestBank()
	ctx := context.Background()

	store.seed(&domain.Account{ID: "123", Type: domain.AccountTypeSavings, Balance: 50000})

	balance, interest, err := bank.CalculateInterest(ctx, "123", decimal.RequireFromString("2.5"))
	require.NoError(t, err)
	assert.Equal(t, int64(1250), interest)
	assert.Equal(t, int64(51250), balance)

	// 計息結果已寫回儲存層
	stored, err := bank.GetBalance(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, int64(51250), stored)
}

func TestCalculateInterestZeroRate(t *testing.T) {
	bank, store := newTestBank()
	ctx := context.Background()

	store.seed(&domain.Account{ID: "123", Type: domain.AccountTypeSavings, Balance: 50000})

	balance, interest, err := bank.CalculateInterest(ctx, "123", decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, int64(0), interest)
	assert.Equal(t, int64(50000), balance)
}

func TestCalculateInterestRateOutOfRange(t *testing.T) {
	bank, store := newTestBank()
	ctx := context.Background()

	store.seed(&domain.Account{ID: "123", Type: domain.AccountTypeSavings, Balance: 50000})

	_, _, err := bank.CalculateInterest(ctx, "123", decimal.RequireFromString("-1"))
	require.ErrorIs(t, err, domain.ErrInvalidInterestRate)

	_, _, err = bank.CalculateInterest(ctx, "123", decimal.RequireFromString("100.01"))
	require.ErrorIs(t, err, domain.ErrInvalidInterestRate)

	balance, err := bank.GetBalance(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, int64(50000), balance)
}

func TestCalculateInterestNotFound(t *testing.T) {
	bank, _ := newTestBank()
	ctx := context.Background()

	_, _, err := bank.CalculateInterest(ctx, "missing", decimal.RequireFromString("2.5"))
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

// ---- concurrency properties ----

func TestConcurrentDepositsSumExactly(t *testing.T) {
	bank, _ := newTestBank()
	ctx := context.Background()

	_, err := bank.CreateAccount(ctx, "123", domain.AccountTypeSavings)
	require.NoError(t, err)

	const goroutines = 100
	const amount = 111

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			_, err := bank.Deposit(ctx, "123", amount)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// 並發存款不會遺失任何一筆
	balance, err := bank.GetBalance(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, int64(goroutines*amount), balance)
}

func TestConcurrentWithdrawalsExactlyOneSucceeds(t *testing.T) {
	bank, store := newTestBank()
	ctx := context.Background()

	// 多輪重複以抓到交錯時序
	for round := 0; round < 25; round++ {
		id := fmt.Sprintf("acct-%d", round)
		store.seed(&domain.Account{ID: id, Type: domain.AccountTypeChecking, Balance: 50000})

		results := make(chan error, 2)
		var wg sync.WaitGroup
		wg.Add(2)
		for i := 0; i < 2; i++ {
			go func() {
				defer wg.Done()
				_, err := bank.Withdraw(ctx, id, 50000)
				results <- err
			}()
		}
		wg.Wait()
		close(results)

		var succeeded, insufficient int
		for err := range results {
			if err == nil {
				succeeded++
				continue
			}
			require.ErrorIs(t, err, domain.ErrInsufficientBalance)
			insufficient++
		}
		assert.Equal(t, 1, succeeded, "round %d", round)
		assert.Equal(t, 1, insufficient, "round %d", round)

		balance, err := bank.GetBalance(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(0), balance, "round %d", round)
	}
}

func TestConcurrentReadsSeeNoTornBalance(t *testing.T) {
	bank, _ := newTestBank()
	ctx := context.Background()

	_, err := bank.CreateAccount(ctx, "123", domain.AccountTypeSavings)
	require.NoError(t, err)

	const deposits = 50
	const amount = 777
	const readers = 50

	var wg sync.WaitGroup
	wg.Add(deposits + readers)

	samples := make(chan int64, readers)

	for i := 0; i < deposits; i++ {
		go func() {
			defer wg.Done()
			_, err := bank.Deposit(ctx, "123", amount)
			assert.NoError(t, err)
		}()
	}
	for i := 0; i < readers; i++ {
		go func() {
			defer wg.Done()
			balance, err := bank.GetBalance(ctx, "123")
			if assert.NoError(t, err) {
				samples <- balance
			}
		}()
	}
	wg.Wait()
	close(samples)

	// 每次讀到的餘額都必須是完整存款的倍數，不會有寫到一半的值
	for balance := range samples {
		assert.Zero(t, balance%amount, "balance %d is not a multiple of %d", balance, amount)
		assert.GreaterOrEqual(t, balance, int64(0))
		assert.LessOrEqual(t, balance, int64(deposits*amount))
	}

	final, err := bank.GetBalance(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, int64(deposits*amount), final)
}

func TestCrossAccountIsolation(t *testing.T) {
	bank, store := newTestBank()
	ctx := context.Background()

	const operations = 50
	store.seed(&domain.Account{ID: "A", Type: domain.AccountTypeSavings, Balance: 0})
	store.seed(&domain.Account{ID: "B", Type: domain.AccountTypeChecking, Balance: operations * 200})

	var wg sync.WaitGroup
	wg.Add(operations * 2)
	for i := 0; i < operations; i++ {
		go func() {
			defer wg.Done()
			_, err := bank.Deposit(ctx, "A", 100)
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := bank.Withdraw(ctx, "B", 200)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// 兩個帳戶的操作互不干擾
	balanceA, err := bank.GetBalance(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, int64(operations*100), balanceA)

	balanceB, err := bank.GetBalance(ctx, "B")
	require.NoError(t, err)
	assert.Equal(t, int64(0), balanceB)
}

// ---- store failure passthrough ----

func TestStoreUnavailablePassthrough(t *testing.T) {
	bank, store := newTestBank()
	ctx := context.Background()

	store.getFn = func(ctx context.Context, accountID string) (*domain.Account, error) {
		return nil, fmt.Errorf("%w: connection refused", domain.ErrStoreUnavailable)
	}

	_, err := bank.GetBalance(ctx, "123")
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)

	_, err = bank.Deposit(ctx, "123", 100)
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)

	_, err = bank.Withdraw(ctx, "123", 100)
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)

	_, _, err = bank.CalculateInterest(ctx, "123", decimal.RequireFromString("2.5"))
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)

	_, err = bank.CreateAccount(ctx, "123", domain.AccountTypeSavings)
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestPutFailureSurfaces(t *testing.T) {
	bank, store := newTestBank()
	ctx := context.Background()

	store.seed(&domain.Account{ID: "123", Type: domain.AccountTypeSavings, Balance: 1000})
	store.putFn = func(ctx context.Context, account *domain.Account) error {
		return fmt.Errorf("%w: write timeout", domain.ErrStoreUnavailable)
	}

	_, err := bank.Deposit(ctx, "123", 100)
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
