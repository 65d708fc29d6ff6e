package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_AllowsWithinLimit(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(5, 100, time.Minute)

	for i := 0; i < 5; i++ {
		assert.True(t, rl.Allow("1.2.3.4"))
	}
}

func TestRateLimiter_BansOnSecondBurst(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(3, 100, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("1.2.3.4"))
	}

	// 第 4 次触发封禁
	assert.False(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.IsBanned("1.2.3.4"))

	// 封禁期内持续拒绝
	assert.False(t, rl.Allow("1.2.3.4"))

	// 其他 IP 不受影响
	assert.True(t, rl.Allow("5.6.7.8"))
}

func TestRateLimiter_BansOnMinuteLimit(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(1000, 5, time.Minute)

	for i := 0; i < 5; i++ {
		assert.True(t, rl.Allow("1.2.3.4"))
	}
	assert.False(t, rl.Allow("1.2.3.4"))
}

func TestOriginChecker_AllowAll(t *testing.T) {
	t.Parallel()

	oc := NewOriginChecker([]string{"*"})

	r := httptest.NewRequest(http.MethodGet, "/ws", nil)
	r.Header.Set("Origin", "https://evil.example.com")
	assert.True(t, oc.Check(r))
}

func TestOriginChecker_Whitelist(t *testing.T) {
	t.Parallel()

	oc := NewOriginChecker([]string{"https://belote.example.com"})

	allowed := httptest.NewRequest(http.MethodGet, "/ws", nil)
	allowed.Header.Set("Origin", "https://Belote.Example.Com") // 大小写不敏感
	assert.True(t, oc.Check(allowed))

	denied := httptest.NewRequest(http.MethodGet, "/ws", nil)
	denied.Header.Set("Origin", "https://evil.example.com")
	assert.False(t, oc.Check(denied))

	// 没有 Origin 头的请求放行（原生客户端）
	noOrigin := httptest.NewRequest(http.MethodGet, "/ws", nil)
	assert.True(t, oc.Check(noOrigin))
}

func TestIPFilter(t *testing.T) {
	t.Parallel()

	f := NewIPFilter()

	// 默认全部放行
	assert.True(t, f.IsAllowed("1.2.3.4"))

	f.AddToBlacklist("1.2.3.4")
	assert.False(t, f.IsAllowed("1.2.3.4"))

	f.RemoveFromBlacklist("1.2.3.4")
	assert.True(t, f.IsAllowed("1.2.3.4"))

	// 白名单非空后只放行名单内的 IP
	f.AddToWhitelist("10.0.0.1")
	assert.True(t, f.IsAllowed("10.0.0.1"))
	assert.False(t, f.IsAllowed("1.2.3.4"))
}

func TestMessageRateLimiter(t *testing.T) {
	t.Parallel()

	ml := NewMessageRateLimiter(4)

	// 前两条静默通过
	for i := 0; i < 2; i++ {
		allowed, warning := ml.AllowMessage("c1")
		assert.True(t, allowed)
		assert.False(t, warning)
	}

	// 超过一半开始警告
	allowed, warning := ml.AllowMessage("c1")
	assert.True(t, allowed)
	assert.True(t, warning)

	ml.AllowMessage("c1")

	// 超限拒绝并累计警告
	allowed, warning = ml.AllowMessage("c1")
	assert.False(t, allowed)
	assert.True(t, warning)
	assert.Equal(t, 1, ml.GetWarningCount("c1"))

	ml.RemoveClient("c1")
	assert.Equal(t, 0, ml.GetWarningCount("c1"))
}

func TestGetClientIP(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/ws", nil)
	r.RemoteAddr = "192.168.1.10:54321"
	assert.Equal(t, "192.168.1.10", GetClientIP(r))

	r.Header.Set("X-Real-IP", "203.0.113.7")
	assert.Equal(t, "203.0.113.7", GetClientIP(r))

	// X-Forwarded-For 优先，取最原始的客户端
	r.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.2")
	assert.Equal(t, "198.51.100.1", GetClientIP(r))
}
