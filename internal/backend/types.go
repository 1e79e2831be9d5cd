package backend

// Player is the player projection returned by the API.
type Player struct {
	ID            int64   `json:"id"`
	TgID          int64   `json:"tg_id"`
	Username      *string `json:"username"`
	DisplayName   string  `json:"display_name"`
	CurrentRating float64 `json:"current_rating"`
	RatingLetter  *string `json:"rating_letter"`
}

// RegisterPlayerParams carries the /players/register payload.
type RegisterPlayerParams struct {
	TgID        int64   `json:"tg_id"`
	Username    *string `json:"username"`
	DisplayName string  `json:"display_name"`
}

// RegisterChatParams carries the /bot/chats/register payload.
type RegisterChatParams struct {
	TgChatID int64   `json:"tg_chat_id"`
	Title    *string `json:"title"`
	Type     *string `json:"type"`
}

// ChatRegistration is the /bot/chats/register response.
type ChatRegistration struct {
	ID       int64   `json:"id"`
	TgChatID int64   `json:"tg_chat_id"`
	Title    *string `json:"title"`
	Type     *string `json:"type"`
	Created  bool    `json:"created"`
}

// Member is one entry of a membership snapshot sent to the sync endpoint.
type Member struct {
	TgID        int64   `json:"tg_id"`
	Username    *string `json:"username"`
	DisplayName *string `json:"display_name"`
	IsAdmin     bool    `json:"is_admin"`
}

// SyncSummary is the /bot/chats/members/sync response.
type SyncSummary struct {
	Status           string `json:"status"`
	ChatID           int64  `json:"chat_id"`
	MembersProcessed int    `json:"members_processed"`
	PlayersCreated   int    `json:"players_created"`
	PlayersUpdated   int    `json:"players_updated"`
}

// UpdateMemberParams carries the /bot/chats/members/update payload.
type UpdateMemberParams struct {
	TgChatID    int64   `json:"tg_chat_id"`
	TgUserID    int64   `json:"tg_user_id"`
	Username    *string `json:"username,omitempty"`
	DisplayName *string `json:"display_name,omitempty"`
	Status      *string `json:"status,omitempty"`
	IsAdmin     *bool   `json:"is_admin,omitempty"`
}
