package backend

import "context"

// Client defines the interface the bot uses to talk to the API server.
type Client interface {
	RegisterPlayer(ctx context.Context, params RegisterPlayerParams) (Player, error)
	GetPlayerByTgID(ctx context.Context, tgID int64) (Player, error)
	RegisterChat(ctx context.Context, params RegisterChatParams) (ChatRegistration, error)
	SyncMembers(ctx context.Context, tgChatID int64, members []Member) (SyncSummary, error)
	UpdateMember(ctx context.Context, params UpdateMemberParams) error
}
