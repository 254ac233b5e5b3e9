package main

import (
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"
	"gopkg.in/yaml.v3"

	grpc_adapter "github.com/JoeShih716/go-bank-ledger/internal/app/bank/adapter/in/grpc"
	memory_adapter "github.com/JoeShih716/go-bank-ledger/internal/app/bank/adapter/out/memory"
	mysql_adapter "github.com/JoeShih716/go-bank-ledger/internal/app/bank/adapter/out/mysql"
	redis_adapter "github.com/JoeShih716/go-bank-ledger/internal/app/bank/adapter/out/redis"
	"github.com/JoeShih716/go-bank-ledger/internal/app/bank/usecase"
	"github.com/JoeShih716/go-bank-ledger/pkg/journal"
	"github.com/JoeShih716/go-bank-ledger/pkg/mysql"
	"github.com/JoeShih716/go-bank-ledger/pkg/redis"
	pb "github.com/JoeShih716/go-bank-ledger/proto"
)

// 支援的儲存後端
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreMySQL  = "mysql"
)

// JournalConfig 記憶體後端的快照日誌設定
type JournalConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

type Config struct {
	Listen  string        `yaml:"listen"`
	Store   string        `yaml:"store"`
	Redis   redis.Config  `yaml:"redis"`
	MySQL   mysql.Config  `yaml:"mysql"`
	Journal JournalConfig `yaml:"journal"`
}

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	// 1. 載入設定
	cfg := loadConfig()

	// 2. 初始化儲存後端 (Driven Adapter)
	var store usecase.AccountStore
	switch cfg.Store {
	case StoreRedis:
		client, err := redis.NewClient(cfg.Redis)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer client.Close()
		log.Println("Connected to Redis successfully")
		store = redis_adapter.NewStore(client)
	case StoreMySQL:
		client, err := mysql.NewClient(cfg.MySQL)
		if err != nil {
			log.Fatalf("Failed to connect to MySQL: %v", err)
		}
		defer client.Close()
		log.Println("Connected to MySQL successfully")
		mysqlStore := mysql_adapter.NewStore(client)
		if err := mysqlStore.Migrate(); err != nil {
			log.Fatalf("Failed to migrate accounts table: %v", err)
		}
		store = mysqlStore
	case StoreMemory:
		var jnl *journal.Journal
		if cfg.Journal.Enabled {
			var err error
			jnl, err = journal.Open(cfg.Journal.Path)
			if err != nil {
				log.Fatalf("Failed to open journal: %v", err)
			}
			// 程式結束時關閉日誌
			defer jnl.Close()
		}
		memStore, err := memory_adapter.NewStore(jnl)
		if err != nil {
			log.Fatalf("Failed to init memory store: %v", err)
		}
		store = memStore
	default:
		log.Fatalf("Invalid store type: %s", cfg.Store)
	}
	log.Printf("Using %s store", cfg.Store)

	// 3. 初始化 UseCase
	bankUseCase := usecase.NewBankUseCase(store)

	// 4. 初始化 gRPC Adapter (Driving Adapter)
	grpcServer := grpc_adapter.NewGrpcServer(bankUseCase)

	// 5. 啟動 gRPC Server
	lis, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	s := grpc.NewServer(grpc.UnaryInterceptor(grpc_adapter.UnaryLoggingInterceptor()))
	pb.RegisterBankServiceServer(s, grpcServer)
	reflection.Register(s) // 方便 gRPC Client 測試 (如 Postman/BloomRPC)

	// Graceful Shutdown
	go func() {
		log.Printf("Starting gRPC server on %s", cfg.Listen)
		if err := s.Serve(lis); err != nil {
			log.Fatalf("failed to serve: %v", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	s.GracefulStop()
	log.Println("Server exited")
}

func loadConfig() Config {
	cfgData, err := os.ReadFile("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to read config file: %v", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(cfgData, &cfg); err != nil {
		log.Fatalf("Failed to parse config: %v", err)
	}

	// 補全預設配置 (如果 yaml 沒寫)
	if cfg.Listen == "" {
		cfg.Listen = ":50051"
	}
	if cfg.Store == "" {
		cfg.Store = StoreMemory
	}
	if cfg.Journal.Path == "" {
		cfg.Journal.Path = "bank.journal"
	}
	if cfg.Redis.PoolSize == 0 {
		cfg.Redis.PoolSize = 10
	}
	if cfg.Redis.DialTimeout == 0 {
		cfg.Redis.DialTimeout = 5 * time.Second
	}
	if cfg.Redis.ReadTimeout == 0 {
		cfg.Redis.ReadTimeout = 3 * time.Second
	}
	if cfg.Redis.WriteTimeout == 0 {
		cfg.Redis.WriteTimeout = 3 * time.Second
	}
	if cfg.MySQL.MaxOpenConns == 0 {
		cfg.MySQL.MaxOpenConns = 100
	}
	if cfg.MySQL.MaxIdleConns == 0 {
		cfg.MySQL.MaxIdleConns = 10
	}
	if cfg.MySQL.ConnMaxLifetime == 0 {
		cfg.MySQL.ConnMaxLifetime = 30 * time.Minute
	}
	return cfg
}
