// Package journal 提供 append-only 的 JSON 行日誌，
// 讓記憶體儲存層能在重啟後還原帳戶狀態
package journal

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"sync"
)

// rw-r--r-- (擁有者讀寫，其他人唯讀)
const fileMode fs.FileMode = 0644

type Journal struct {
	file *os.File
	mu   sync.Mutex
}

// Open 開啟或建立一個日誌檔
// O_APPEND 每次寫入時自動跳到檔案末尾
// O_CREATE 檔案不存在則建立
func Open(path string) (*Journal, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_RDWR, fileMode)
	if err != nil {
		return nil, err
	}
	return &Journal{file: file}, nil
}

// Append 寫入一筆紀錄並立即刷入硬碟
func (j *Journal) Append(v any) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if err := json.NewEncoder(j.file).Encode(v); err != nil {
		return err
	}
	return j.file.Sync()
}

// ReadAll 從頭讀取所有紀錄
// callback 逐筆接收 JSON 原始位元組，避免一次載入全部
func (j *Journal) ReadAll(callback func(raw []byte) error) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if _, err := j.file.Seek(0, io.SeekStart); err != nil {
		return err
	}

	decoder := json.NewDecoder(j.file)
	for {
		var raw json.RawMessage
		if err := decoder.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if err := callback(raw); err != nil {
			return err
		}
	}
	return nil
}

// Close 關閉日誌檔
func (j *Journal) Close() error {
	return j.file.Close()
}
