package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/status"

	"github.com/JoeShih716/go-bank-ledger/pkg/bankclient"
	grpcpool "github.com/JoeShih716/go-bank-ledger/pkg/grpc"
)

// 並發存款壓測參數
const (
	TotalCount  = 10000
	Concurrency = 100
)

func main() {
	pool := grpcpool.NewPool()
	defer pool.Close()

	conn, err := pool.GetConnection("localhost:50051")
	if err != nil {
		log.Fatalf("did not connect: %v", err)
	}
	client := bankclient.NewFromConn(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	demo(ctx, client)
	concurrentDeposits(ctx, client)
}

// demo 依序執行開戶、存款、查詢、提款、計息
func demo(ctx context.Context, client *bankclient.Client) {
	if msg, err := client.CreateAccount(ctx, "123", "savings"); err != nil {
		fmt.Println(errorText(err))
	} else {
		fmt.Println(msg)
	}

	if result, err := client.Deposit(ctx, "123", decimal.NewFromInt(1000)); err != nil {
		fmt.Println(errorText(err))
	} else {
		fmt.Println(result.Message)
	}

	if balance, err := client.GetBalance(ctx, "123"); err != nil {
		fmt.Println(errorText(err))
	} else {
		fmt.Printf("Balance: $%s\n", balance.StringFixed(2))
	}

	if result, err := client.Withdraw(ctx, "123", decimal.NewFromInt(500)); err != nil {
		fmt.Println(errorText(err))
	} else {
		fmt.Println(result.Message)
	}

	if result, err := client.CalculateInterest(ctx, "123", decimal.RequireFromString("2.5")); err != nil {
		fmt.Println(errorText(err))
	} else {
		fmt.Println(result.Message)
	}
}

// concurrentDeposits 以固定金額並發存款，結束後驗證總額是否正確
func concurrentDeposits(ctx context.Context, client *bankclient.Client) {
	if _, err := client.CreateAccount(ctx, "777", "checking"); err != nil {
		fmt.Println(errorText(err))
	}

	amount := decimal.NewFromInt(10)

	var wg sync.WaitGroup
	wg.Add(TotalCount)

	sem := make(chan struct{}, Concurrency)

	startTime := time.Now()

	for i := 0; i < TotalCount; i++ {
		sem <- struct{}{}

		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()

			if _, err := client.Deposit(ctx, "777", amount); err != nil {
				if idx%1000 == 0 {
					log.Printf("Deposit %d failed: %v", idx, err)
				}
			}
		}(i)
	}

	wg.Wait()

	elapsed := time.Since(startTime)
	fmt.Printf("Completed %d requests in %v\n", TotalCount, elapsed)
	fmt.Printf("TPS: %.2f\n", float64(TotalCount)/elapsed.Seconds())

	balance, err := client.GetBalance(ctx, "777")
	if err != nil {
		log.Fatalf("GetBalance failed: %v", err)
	}
	expected := amount.Mul(decimal.NewFromInt(TotalCount))
	fmt.Printf("Final balance: $%s (expected $%s)\n", balance.StringFixed(2), expected.StringFixed(2))
}

// errorText 以 status message 組出錯誤訊息
func errorText(err error) string {
	if s, ok := status.FromError(err); ok {
		return "Error: " + s.Message()
	}
	return "Error: " + err.Error()
}
