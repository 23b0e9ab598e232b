package embedded

import (
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/grids/default.yaml": {Data: []byte("width: 10\ndepth: 10\n")},
		"data/grids/lawn.yaml":    {Data: []byte("width: 9\ndepth: 5\n")},
	}
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	Init(nil)
	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false for nil FS")
	}

	Init(testFS())
	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}
	Init(nil)
}

// TestReadFileNotInitialized 测试未初始化时读取
func TestReadFileNotInitialized(t *testing.T) {
	Init(nil)
	if _, err := ReadFile("data/grids/default.yaml"); err == nil {
		t.Error("Expected error when reading before Init()")
	}
}

// TestReadFile 测试读取和路径标准化
func TestReadFile(t *testing.T) {
	Init(testFS())
	defer Init(nil)

	for _, path := range []string{"data/grids/default.yaml", "./data/grids/default.yaml"} {
		data, err := ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile(%q) error: %v", path, err)
		}
		if string(data) != "width: 10\ndepth: 10\n" {
			t.Errorf("ReadFile(%q) = %q", path, data)
		}
	}

	if _, err := ReadFile("assets/grid.yaml"); err == nil {
		t.Error("Expected error for path outside data/")
	}
}

// TestExistsAndGlob 测试存在性检查和模式匹配
func TestExistsAndGlob(t *testing.T) {
	Init(testFS())
	defer Init(nil)

	if !Exists("data/grids/lawn.yaml") {
		t.Error("lawn.yaml should exist")
	}
	if Exists("data/grids/missing.yaml") {
		t.Error("missing.yaml should not exist")
	}

	matches, err := Glob("data/grids/*.yaml")
	if err != nil {
		t.Fatalf("Glob() error: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("Glob() returned %d matches, want 2: %v", len(matches), matches)
	}
}
