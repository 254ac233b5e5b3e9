// Package keylock 提供以字串 key 為單位的鎖註冊表。
// 同一個 key 的併發操作取得同一把鎖而互相序列化，
// 不同 key 的操作彼此不阻塞。
package keylock

import "sync"

// Registry 管理 key 對應的 RWMutex。
// 鎖在第一次被引用時建立，建立後不回收，
// 因此同一個 key 永遠拿到同一把鎖。
type Registry struct {
	mu    sync.Mutex
	locks map[string]*sync.RWMutex
}

// NewRegistry 建立一個新的 Registry 實例
func NewRegistry() *Registry {
	return &Registry{
		locks: make(map[string]*sync.RWMutex),
	}
}

// Get 取得 key 對應的鎖，必要時建立
//
// 參數:
//
//	key: 鎖的識別字串 (如帳戶 ID)
//
// 回傳:
//
//	*sync.RWMutex: 該 key 專屬的鎖，呼叫端自行 Lock/Unlock
func (r *Registry) Get(key string) *sync.RWMutex {
	// 短鎖只保護 map 的 lookup-or-create，
	// 避免同一個新 key 的併發首次存取建出兩把鎖
	r.mu.Lock()
	defer r.mu.Unlock()

	lock, ok := r.locks[key]
	if !ok {
		lock = &sync.RWMutex{}
		r.locks[key] = lock
	}
	return lock
}

// Len 回傳目前登記的鎖數量
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.locks)
}
