package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateNickname(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		name := GenerateNickname()
		assert.NotEmpty(t, name)
		seen[name] = true
	}

	// 词库组合足够多，100 次不应该只出一个结果
	assert.Greater(t, len(seen), 1)
}
