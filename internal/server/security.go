package server

import (
	"log"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// RateLimiter 连接速率限制器，按 IP 做秒级和分钟级双重计数
// 超限的 IP 会被暂时封禁
type RateLimiter struct {
	records map[string]*ipRecord
	mu      sync.Mutex

	maxPerSecond    int
	maxPerMinute    int
	banDuration     time.Duration
	cleanupInterval time.Duration
}

type ipRecord struct {
	secondCount int
	minuteCount int
	secondStart time.Time
	minuteStart time.Time
	bannedUntil time.Time
}

// NewRateLimiter 创建连接速率限制器
func NewRateLimiter(maxPerSecond, maxPerMinute int, banDuration time.Duration) *RateLimiter {
	rl := &RateLimiter{
		records:         make(map[string]*ipRecord),
		maxPerSecond:    maxPerSecond,
		maxPerMinute:    maxPerMinute,
		banDuration:     banDuration,
		cleanupInterval: 5 * time.Minute,
	}

	go rl.cleanupLoop()

	return rl
}

// Allow 检查该 IP 是否允许建立新连接
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	rec, ok := rl.records[ip]
	if !ok {
		rl.records[ip] = &ipRecord{
			secondCount: 1,
			minuteCount: 1,
			secondStart: now,
			minuteStart: now,
		}
		return true
	}

	if now.Before(rec.bannedUntil) {
		return false
	}

	if now.Sub(rec.secondStart) >= time.Second {
		rec.secondCount = 0
		rec.secondStart = now
	}
	if now.Sub(rec.minuteStart) >= time.Minute {
		rec.minuteCount = 0
		rec.minuteStart = now
	}

	rec.secondCount++
	rec.minuteCount++

	if rec.secondCount > rl.maxPerSecond || rec.minuteCount > rl.maxPerMinute {
		rec.bannedUntil = now.Add(rl.banDuration)
		log.Printf("⚠️ IP %s 连接过于频繁，封禁 %v", ip, rl.banDuration)
		return false
	}

	return true
}

// IsBanned 检查 IP 是否处于封禁期
func (rl *RateLimiter) IsBanned(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rec, ok := rl.records[ip]
	return ok && time.Now().Before(rec.bannedUntil)
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, rec := range rl.records {
			// 10 分钟没有动作且不在封禁期的记录直接丢弃
			if now.Sub(rec.minuteStart) > 10*time.Minute && now.After(rec.bannedUntil) {
				delete(rl.records, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// --- 来源验证 ---

// OriginChecker 验证 WebSocket 握手的 Origin 头
type OriginChecker struct {
	allowed  map[string]bool
	allowAll bool
}

// NewOriginChecker 创建来源验证器，列表中包含 "*" 时放行所有来源
func NewOriginChecker(origins []string) *OriginChecker {
	oc := &OriginChecker{allowed: make(map[string]bool)}
	for _, origin := range origins {
		if origin == "*" {
			oc.allowAll = true
			return oc
		}
		oc.allowed[strings.ToLower(origin)] = true
	}
	return oc
}

// Check 检查请求来源是否允许
func (oc *OriginChecker) Check(r *http.Request) bool {
	if oc.allowAll {
		return true
	}

	origin := r.Header.Get("Origin")
	if origin == "" {
		// 没有 Origin 头的请求来自同源页面或原生客户端
		return true
	}
	return oc.allowed[strings.ToLower(origin)]
}

// --- IP 黑白名单 ---

// IPFilter 运行时可变的 IP 黑白名单
type IPFilter struct {
	whitelist map[string]bool
	blacklist map[string]bool
	mu        sync.RWMutex
}

// NewIPFilter 创建 IP 过滤器
func NewIPFilter() *IPFilter {
	return &IPFilter{
		whitelist: make(map[string]bool),
		blacklist: make(map[string]bool),
	}
}

// AddToWhitelist 添加白名单；白名单非空时只放行名单内的 IP
func (f *IPFilter) AddToWhitelist(ip string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.whitelist[ip] = true
}

// AddToBlacklist 添加黑名单
func (f *IPFilter) AddToBlacklist(ip string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blacklist[ip] = true
}

// RemoveFromBlacklist 从黑名单移除
func (f *IPFilter) RemoveFromBlacklist(ip string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.blacklist, ip)
}

// IsAllowed 检查 IP 是否允许连接
func (f *IPFilter) IsAllowed(ip string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if len(f.whitelist) > 0 && !f.whitelist[ip] {
		return false
	}
	return !f.blacklist[ip]
}

// --- 消息速率限制 ---

// MessageRateLimiter 已连接客户端的消息速率限制器
type MessageRateLimiter struct {
	records map[string]*messageRecord
	mu      sync.Mutex

	maxPerSecond     int
	warningThreshold int
}

type messageRecord struct {
	count     int
	lastReset time.Time
	warnings  int
}

// NewMessageRateLimiter 创建消息速率限制器
func NewMessageRateLimiter(maxPerSecond int) *MessageRateLimiter {
	return &MessageRateLimiter{
		records:          make(map[string]*messageRecord),
		maxPerSecond:     maxPerSecond,
		warningThreshold: maxPerSecond / 2,
	}
}

// AllowMessage 检查客户端是否允许再发消息
// warning 为 true 时应提醒客户端放慢速度
func (ml *MessageRateLimiter) AllowMessage(clientID string) (allowed, warning bool) {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	now := time.Now()
	rec, ok := ml.records[clientID]
	if !ok {
		ml.records[clientID] = &messageRecord{count: 1, lastReset: now}
		return true, false
	}

	if now.Sub(rec.lastReset) >= time.Second {
		rec.count = 1
		rec.lastReset = now
		return true, false
	}

	rec.count++

	switch {
	case rec.count > ml.maxPerSecond:
		rec.warnings++
		return false, true
	case rec.count > ml.warningThreshold:
		return true, true
	default:
		return true, false
	}
}

// GetWarningCount 获取客户端累计的超速警告次数
func (ml *MessageRateLimiter) GetWarningCount(clientID string) int {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	rec, ok := ml.records[clientID]
	if !ok {
		return 0
	}
	return rec.warnings
}

// RemoveClient 客户端断开后移除记录
func (ml *MessageRateLimiter) RemoveClient(clientID string) {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	delete(ml.records, clientID)
}

// --- 辅助函数 ---

// GetClientIP 获取客户端真实 IP，优先取代理透传的头
func GetClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
