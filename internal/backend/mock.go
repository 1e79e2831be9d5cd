package backend

import (
	"context"
	"sync"
)

// MockClient is a mock implementation of the Client interface for testing.
type MockClient struct {
	mu sync.Mutex

	RegisterPlayerFunc  func(params RegisterPlayerParams) (Player, error)
	GetPlayerByTgIDFunc func(tgID int64) (Player, error)
	RegisterChatFunc    func(params RegisterChatParams) (ChatRegistration, error)
	SyncMembersFunc     func(tgChatID int64, members []Member) (SyncSummary, error)
	UpdateMemberFunc    func(params UpdateMemberParams) error

	RegisterPlayerCalls []RegisterPlayerParams
	RegisterChatCalls   []RegisterChatParams
	SyncMembersCalls    []SyncSummaryCall
	UpdateMemberCalls   []UpdateMemberParams
}

// SyncSummaryCall records one SyncMembers invocation.
type SyncSummaryCall struct {
	TgChatID int64
	Members  []Member
}

var _ Client = (*MockClient)(nil)

// NewMock creates a new mock instance.
func NewMock() *MockClient {
	return &MockClient{}
}

func (m *MockClient) RegisterPlayer(ctx context.Context, params RegisterPlayerParams) (Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RegisterPlayerCalls = append(m.RegisterPlayerCalls, params)
	if m.RegisterPlayerFunc != nil {
		return m.RegisterPlayerFunc(params)
	}
	return Player{TgID: params.TgID, DisplayName: params.DisplayName}, nil
}

func (m *MockClient) GetPlayerByTgID(ctx context.Context, tgID int64) (Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetPlayerByTgIDFunc != nil {
		return m.GetPlayerByTgIDFunc(tgID)
	}
	return Player{TgID: tgID}, nil
}

func (m *MockClient) RegisterChat(ctx context.Context, params RegisterChatParams) (ChatRegistration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RegisterChatCalls = append(m.RegisterChatCalls, params)
	if m.RegisterChatFunc != nil {
		return m.RegisterChatFunc(params)
	}
	return ChatRegistration{TgChatID: params.TgChatID}, nil
}

func (m *MockClient) SyncMembers(ctx context.Context, tgChatID int64, members []Member) (SyncSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SyncMembersCalls = append(m.SyncMembersCalls, SyncSummaryCall{TgChatID: tgChatID, Members: members})
	if m.SyncMembersFunc != nil {
		return m.SyncMembersFunc(tgChatID, members)
	}
	return SyncSummary{Status: "success", MembersProcessed: len(members)}, nil
}

func (m *MockClient) UpdateMember(ctx context.Context, params UpdateMemberParams) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateMemberCalls = append(m.UpdateMemberCalls, params)
	if m.UpdateMemberFunc != nil {
		return m.UpdateMemberFunc(params)
	}
	return nil
}
