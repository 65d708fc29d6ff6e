//go:build !production

package testutil

import (
	"sync"

	"github.com/palemoky/belote/internal/types"
)

// SimpleServer 实现 types.ServerInterface 的测试服务器：维护一张客户端注册表
type SimpleServer struct {
	Maintenance bool

	mu      sync.RWMutex
	clients map[string]types.ClientInterface
}

// NewSimpleServer 创建测试服务器
func NewSimpleServer() *SimpleServer {
	return &SimpleServer{clients: make(map[string]types.ClientInterface)}
}

func (s *SimpleServer) IsMaintenanceMode() bool { return s.Maintenance }

func (s *SimpleServer) GetOnlineCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *SimpleServer) GetClientByID(id string) types.ClientInterface {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.clients[id]; ok {
		return c
	}
	return nil
}

func (s *SimpleServer) RegisterClient(id string, client types.ClientInterface) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[id] = client
}

func (s *SimpleServer) UnregisterClient(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clients, id)
}
