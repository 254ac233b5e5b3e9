package redis

import "time"

// Config 定義 Redis 連線與連線池的配置
type Config struct {
	Addr     string // Redis 主機地址 (host:port)
	Password string // 密碼，空字串表示不驗證
	DB       int    // 資料庫編號 (預設 0)

	// 連線池設定 (Connection Pool)
	PoolSize     int           // 連線池大小
	DialTimeout  time.Duration // 建立連線逾時
	ReadTimeout  time.Duration // 讀取逾時
	WriteTimeout time.Duration // 寫入逾時
}
