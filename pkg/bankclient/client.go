// Package bankclient 封裝 BankService 的 gRPC 客戶端，
// 將金額字串與十進位數值的轉換集中在這裡
package bankclient

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc"

	grpcpool "github.com/JoeShih716/go-bank-ledger/pkg/grpc"
	pb "github.com/JoeShih716/go-bank-ledger/proto"
)

// Client 是 BankService 的客戶端
type Client struct {
	conn *grpc.ClientConn
	svc  pb.BankServiceClient
}

// TxResult 單筆交易的結果
type TxResult struct {
	Balance decimal.Decimal // 交易後的餘額
	Message string
}

// Dial 建立到 target 的客戶端，使用內部服務的預設連線選項
func Dial(target string, opts ...grpc.DialOption) (*Client, error) {
	finalOpts := append(grpcpool.DefaultDialOptions(), opts...)
	conn, err := grpc.NewClient(target, finalOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create grpc client for target %s: %w", target, err)
	}
	client := NewFromConn(conn)
	client.conn = conn
	return client, nil
}

// NewFromConn 以既有的連線建立客戶端 (例如由連線池取得)
// 連線的生命週期由呼叫端管理
func NewFromConn(conn grpc.ClientConnInterface) *Client {
	return &Client{svc: pb.NewBankServiceClient(conn)}
}

// Close 關閉 Dial 建立的連線
// NewFromConn 建立的客戶端不持有連線，Close 不做事
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// CreateAccount 開戶，accountType 為 "savings" 或 "checking"
func (c *Client) CreateAccount(ctx context.Context, accountID, accountType string) (string, error) {
	resp, err := c.svc.CreateAccount(ctx, &pb.AccountRequest{
		AccountId:   accountID,
		AccountType: accountType,
	})
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// GetBalance 查詢餘額
func (c *Client) GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	resp, err := c.svc.GetBalance(ctx, &pb.AccountRequest{AccountId: accountID})
	if err != nil {
		return decimal.Decimal{}, err
	}
	return parseBalance(resp.Balance)
}

// Deposit 存款
func (c *Client) Deposit(ctx context.Context, accountID string, amount decimal.Decimal) (*TxResult, error) {
	resp, err := c.svc.Deposit(ctx, &pb.DepositRequest{
		AccountId: accountID,
		Amount:    amount.String(),
	})
	if err != nil {
		return nil, err
	}
	return newTxResult(resp)
}

// Withdraw 提款
func (c *Client) Withdraw(ctx context.Context, accountID string, amount decimal.Decimal) (*TxResult, error) {
	resp, err := c.svc.Withdraw(ctx, &pb.WithdrawRequest{
		AccountId: accountID,
		Amount:    amount.String(),
	})
	if err != nil {
		return nil, err
	}
	return newTxResult(resp)
}

// CalculateInterest 以年利率 (百分比) 計息一期並滾入本金
func (c *Client) CalculateInterest(ctx context.Context, accountID string, annualRate decimal.Decimal) (*TxResult, error) {
	resp, err := c.svc.CalculateInterest(ctx, &pb.InterestRequest{
		AccountId:          accountID,
		AnnualInterestRate: annualRate.String(),
	})
	if err != nil {
		return nil, err
	}
	return newTxResult(resp)
}

func newTxResult(resp *pb.TransactionResponse) (*TxResult, error) {
	balance, err := parseBalance(resp.Balance)
	if err != nil {
		return nil, err
	}
	return &TxResult{
		Balance: balance,
		Message: resp.Message,
	}, nil
}

func parseBalance(s string) (decimal.Decimal, error) {
	balance, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid balance in response: %w", err)
	}
	return balance, nil
}
