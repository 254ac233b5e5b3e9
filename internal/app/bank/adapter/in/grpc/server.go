package grpc

import (
	"context"
	"fmt"

	"github.com/JoeShih716/go-bank-ledger/internal/app/bank/domain"
	"github.com/JoeShih716/go-bank-ledger/internal/app/bank/usecase"
	pb "github.com/JoeShih716/go-bank-ledger/proto"
)

type GrpcServer struct {
	pb.UnimplementedBankServiceServer
	bank *usecase.BankUseCase
}

func NewGrpcServer(bank *usecase.BankUseCase) *GrpcServer {
	return &GrpcServer{
		bank: bank,
	}
}

// CreateAccount 開戶
func (s *GrpcServer) CreateAccount(ctx context.Context, req *pb.AccountRequest) (*pb.AccountResponse, error) {
	account, err := s.bank.CreateAccount(ctx, req.AccountId, domain.AccountType(req.AccountType))
	if err != nil {
		return nil, handleUseCaseError("CreateAccount", err)
	}
	return &pb.AccountResponse{
		AccountId: account.ID,
		Message:   fmt.Sprintf("Account %s created successfully", account.ID),
	}, nil
}

// GetBalance 查詢餘額
func (s *GrpcServer) GetBalance(ctx context.Context, req *pb.AccountRequest) (*pb.BalanceResponse, error) {
	balance, err := s.bank.GetBalance(ctx, req.AccountId)
	if err != nil {
		return nil, handleUseCaseError("GetBalance", err)
	}
	return &pb.BalanceResponse{
		AccountId: req.AccountId,
		Balance:   domain.FormatAmount(balance),
		Message:   "Balance retrieved successfully",
	}, nil
}

// Deposit 存款
func (s *GrpcServer) Deposit(ctx context.Context, req *pb.DepositRequest) (*pb.TransactionResponse, error) {
	// 1. 解析金額字串
	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		return nil, handleUseCaseError("Deposit", err)
	}

	// 2. 執行存款
	balance, err := s.bank.Deposit(ctx, req.AccountId, amount)
	if err != nil {
		return nil, handleUseCaseError("Deposit", err)
	}

	return &pb.TransactionResponse{
		AccountId: req.AccountId,
		Message:   fmt.Sprintf("Successfully deposited $%s", domain.FormatAmount(amount)),
		Balance:   domain.FormatAmount(balance),
	}, nil
}

// Withdraw 提款
func (s *GrpcServer) Withdraw(ctx context.Context, req *pb.WithdrawRequest) (*pb.TransactionResponse, error) {
	// 1. 解析金額字串
	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		return nil, handleUseCaseError("Withdraw", err)
	}

	// 2. 執行提款
	balance, err := s.bank.Withdraw(ctx, req.AccountId, amount)
	if err != nil {
		return nil, handleUseCaseError("Withdraw", err)
	}

	return &pb.TransactionResponse{
		AccountId: req.AccountId,
		Message:   fmt.Sprintf("Successfully withdrew $%s", domain.FormatAmount(amount)),
		Balance:   domain.FormatAmount(balance),
	}, nil
}

// CalculateInterest 以年利率計息一期並滾入本金
func (s *GrpcServer) CalculateInterest(ctx context.Context, req *pb.InterestRequest) (*pb.TransactionResponse, error) {
	// 1. 解析利率字串
	rate, err := domain.ParseRate(req.AnnualInterestRate)
	if err != nil {
		return nil, handleUseCaseError("CalculateInterest", err)
	}

	// 2. 計息
	balance, interest, err := s.bank.CalculateInterest(ctx, req.AccountId, rate)
	if err != nil {
		return nil, handleUseCaseError("CalculateInterest", err)
	}

	// 訊息中的 bank amount 是計息前的本金
	principal := balance - interest
	return &pb.TransactionResponse{
		AccountId: req.AccountId,
		Message: fmt.Sprintf("Applied daily interest rate of %s%% to bank amount of $%s for interest amount of $%s",
			rate.StringFixed(4),
			domain.FormatAmount(principal),
			domain.FormatAmount(interest),
		),
		Balance: domain.FormatAmount(balance),
	}, nil
}
