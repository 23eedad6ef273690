package recorder

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
)

// JSONFileRecorder 以 JSON Lines 追加记录，每条一行
type JSONFileRecorder struct {
	Path string
	mu   sync.Mutex
}

func NewJSONFileRecorder(path string) *JSONFileRecorder {
	return &JSONFileRecorder{Path: path}
}

func (r *JSONFileRecorder) Record(result any) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	r.mu.Lock()
	defer r.mu.Unlock()

	if dir := filepath.Dir(r.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	file, err := os.OpenFile(r.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.Write(data)
	return err
}
