package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestWatcher_ReportsYAMLChanges 测试 YAML 文件变更经通道上报
func TestWatcher_ReportsYAMLChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.yaml")
	if err := os.WriteFile(path, []byte("winScore: 1000\n"), 0644); err != nil {
		t.Fatalf("Failed to seed config file: %v", err)
	}

	watcher, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("Failed to create watcher: %v", err)
	}
	defer watcher.Close()

	if err := os.WriteFile(path, []byte("winScore: 2000\n"), 0644); err != nil {
		t.Fatalf("Failed to modify config file: %v", err)
	}

	select {
	case changed := <-watcher.Events:
		if filepath.Base(changed) != "game.yaml" {
			t.Errorf("Expected change event for game.yaml, got %s", changed)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Expected a change event within 3 seconds")
	}
}

// TestWatcher_IgnoresNonConfigFiles 测试非 YAML 文件的变更被过滤
func TestWatcher_IgnoresNonConfigFiles(t *testing.T) {
	dir := t.TempDir()

	watcher, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("Failed to create watcher: %v", err)
	}
	defer watcher.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	select {
	case changed := <-watcher.Events:
		t.Errorf("Expected no event for non-YAML file, got %s", changed)
	case <-time.After(300 * time.Millisecond):
		// 期望超时：txt 变更不上报
	}
}

// TestWatcher_CloseIsIdempotent 测试重复关闭不恐慌
func TestWatcher_CloseIsIdempotent(t *testing.T) {
	watcher, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create watcher: %v", err)
	}

	if err := watcher.Close(); err != nil {
		t.Errorf("Expected clean close, got: %v", err)
	}
	if err := watcher.Close(); err != nil {
		t.Errorf("Expected second close to be a no-op, got: %v", err)
	}
}

// TestIsConfigFile 测试配置文件后缀判断
func TestIsConfigFile(t *testing.T) {
	cases := map[string]bool{
		"game.yaml":      true,
		"game.yml":       true,
		"GAME.YAML":      true,
		"game.yaml.bak":  false,
		"notes.txt":      false,
		"dir/game.yaml":  true,
	}
	for path, want := range cases {
		if got := isConfigFile(path); got != want {
			t.Errorf("isConfigFile(%q) = %v, want %v", path, got, want)
		}
	}
}
