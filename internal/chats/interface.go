package chats

// Store defines the interface for interacting with chat membership data.
type Store interface {
	Register(tgChatID int64, title, chatType *string) (Chat, bool, error)
	SyncMembers(tgChatID int64, members []MemberInput) (SyncResult, error)
	UpdateMember(params UpdateMemberParams) (UpdateResult, error)
	GetByID(id int64) (Chat, error)
	IsAdmin(chatID, playerID int64) (bool, error)
	IsActiveMember(chatID, playerID int64) (bool, error)
	UserChats(playerID int64, adminOnly bool) ([]Chat, error)
}
