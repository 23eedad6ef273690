package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vaultdash/conf"
)

func TestInitLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	InitLogger(&conf.LogConfig{
		Level:    "debug",
		FileName: path,
		MaxSize:  1,
	}, "vaultdash-test")

	Infof("refresh done vault=%s", "0xabc")
	Info("structured", Pair("return_pct", 1.25))
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	out := string(data)
	for _, want := range []string{"refresh done vault=0xabc", "return_pct", "vaultdash-test"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q: %s", want, out)
		}
	}
}

func TestInitLogger_LevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	InitLogger(&conf.LogConfig{Level: "warn", FileName: path}, "")

	Debugf("hidden debug")
	Warnf("visible warn")
	Sync()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "hidden debug") {
		t.Errorf("debug line should be filtered at warn level")
	}
	if !strings.Contains(string(data), "visible warn") {
		t.Errorf("warn line missing")
	}
}
