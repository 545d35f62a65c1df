package output

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLimitTop(t *testing.T) {
	items := []int{1, 2, 3}

	tests := []struct {
		name string
		top  int
		want []int
	}{
		{name: "NoLimitWhenZero", top: 0, want: []int{1, 2, 3}},
		{name: "NoLimitWhenNegative", top: -1, want: []int{1, 2, 3}},
		{name: "Limited", top: 2, want: []int{1, 2}},
		{name: "NoLimitWhenTopExceedsLength", top: 5, want: []int{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := limitTop(items, tt.top)
			if len(got) != len(tt.want) {
				t.Fatalf("len(limitTop(..., %d)) = %d, want %d", tt.top, len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("limitTop(..., %d)[%d] = %d, want %d", tt.top, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTruncateMessage(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		maxLen   int
		expected string
	}{
		{name: "Short message", msg: "hello", maxLen: 40, expected: "hello"},
		{name: "Exact length", msg: "1234567890", maxLen: 10, expected: "1234567890"},
		{name: "Over max length", msg: "a very long message here", maxLen: 10, expected: "a very ..."},
		{name: "Empty message", msg: "", maxLen: 40, expected: ""},
		{name: "Multibyte within limit", msg: "修正: ログ出力", maxLen: 8, expected: "修正: ログ出力"},
		{name: "Multibyte over limit", msg: "修正: ログ出力を追加", maxLen: 8, expected: "修正: ロ..."},
		{name: "Emoji boundary", msg: "🚀🚀🚀🚀🚀", maxLen: 4, expected: "🚀..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := truncateMessage(tt.msg, tt.maxLen)
			if result != tt.expected {
				t.Errorf("truncateMessage(%q, %d) = %q, expected %q", tt.msg, tt.maxLen, result, tt.expected)
			}
		})
	}
}

func TestOpenOutputWriter_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	w, closer, err := openOutputWriter(OutputOptions{OutputPath: path})
	if err != nil {
		t.Fatalf("openOutputWriter: %v", err)
	}
	if closer == nil {
		t.Fatal("expected a closer for file output")
	}
	if _, err := w.Write([]byte("hi")); err != nil {
		t.Fatal(err)
	}
	closer.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hi" {
		t.Errorf("file content = %q, expected %q", data, "hi")
	}
}

func TestOpenOutputWriter_Stdout(t *testing.T) {
	w, closer, err := openOutputWriter(OutputOptions{})
	if err != nil {
		t.Fatalf("openOutputWriter: %v", err)
	}
	if w != os.Stdout || closer != nil {
		t.Errorf("expected stdout without closer, got %T %v", w, closer)
	}
}
