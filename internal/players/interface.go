package players

// Store defines the interface for interacting with player data.
type Store interface {
	Register(params RegisterParams) (Player, error)
	GetByTgID(tgID int64) (Player, error)
	List() ([]Player, error)
	Search(query string) ([]Player, error)
	RatingTable(mode string) ([]RatingRow, error)
}
