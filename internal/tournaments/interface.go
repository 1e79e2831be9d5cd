package tournaments

// Store defines the interface for interacting with tournament data.
type Store interface {
	Create(params CreateParams) (Tournament, error)
	CreateMatch(params CreateMatchParams) (Match, error)
}
