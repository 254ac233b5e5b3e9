package grpc

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/JoeShih716/go-bank-ledger/internal/app/bank/domain"
)

// handleUseCaseError 將業務錯誤轉換為 gRPC status
//
// 參數:
//
//	functionName: 發生錯誤的 RPC 名稱
//	err: 業務邏輯層回傳的錯誤
//
// 回傳:
//
//	error: 帶有 gRPC status code 的錯誤
func handleUseCaseError(functionName string, err error) error {
	log.WithFields(log.Fields{
		"function":   functionName,
		"error":      err,
		"error_type": fmt.Sprintf("%T", err),
	}).Error("usecase error")

	switch {
	case errors.Is(err, domain.ErrAccountIDRequired):
		return status.Error(codes.InvalidArgument, "Account ID is required.")
	case errors.Is(err, domain.ErrInvalidAccountType):
		return status.Error(codes.InvalidArgument, "Account type must be 'savings' or 'checking'")
	case errors.Is(err, domain.ErrInvalidAmount):
		return status.Error(codes.InvalidArgument, "Invalid transaction amount.")
	case errors.Is(err, domain.ErrAmountMustBePositive):
		return status.Error(codes.InvalidArgument, "Transaction amount must be positive.")
	case errors.Is(err, domain.ErrInvalidInterestRate):
		return status.Error(codes.InvalidArgument, "Annual interest rate must be between 0 and 100.")
	case errors.Is(err, domain.ErrBalanceOverflow):
		return status.Error(codes.InvalidArgument, "Transaction would overflow the account balance.")
	case errors.Is(err, domain.ErrAccountNotFound):
		return status.Error(codes.NotFound, "Account not found. Please check the account ID.")
	case errors.Is(err, domain.ErrAccountAlreadyExists):
		return status.Error(codes.AlreadyExists, "Account already exists")
	case errors.Is(err, domain.ErrInsufficientBalance):
		return status.Error(codes.FailedPrecondition, "Insufficient funds for the requested withdrawal.")
	case errors.Is(err, domain.ErrStoreUnavailable):
		return status.Error(codes.Unavailable, "Account store is unavailable. Please try again later.")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "request timeout")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request canceled")
	default:
		return status.Error(codes.Internal, "internal server error")
	}
}
