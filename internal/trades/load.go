package trades

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

func Load(path string) (*Metrics, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read trade metrics: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Metrics, error) {
	var m Metrics
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode trade metrics: %w", err)
	}
	return &m, nil
}
