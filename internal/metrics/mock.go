package metrics

import "sync"

// Mock is a no-op implementation of the Metrics interface for testing.
// It records call counts so tests can assert on them.
type Mock struct {
	mu sync.Mutex

	HTTPRequestsCalls      int
	PlayersRegisteredCalls int
	MembersSyncedTotal     int
	BotCallsSentCalls      int
	BotCallsFailedCalls    int
}

var _ Metrics = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) IncHTTPRequests() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.HTTPRequestsCalls++
}

func (m *Mock) ObserveRequestDuration(duration float64) {}

func (m *Mock) IncPlayersRegistered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PlayersRegisteredCalls++
}

func (m *Mock) AddMembersSynced(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MembersSyncedTotal += count
}

func (m *Mock) IncBotCallsSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BotCallsSentCalls++
}

func (m *Mock) IncBotCallsFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BotCallsFailedCalls++
}

func (m *Mock) SetStartupTime(duration float64) {}
