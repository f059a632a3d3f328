package repository

type CreateTokenOptions struct {
	TokenHash string
	Username  string
	Scope     string
}
