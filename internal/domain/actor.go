package domain

// ActorRole identifies who is calling: a client or a provider
type ActorRole string

const (
	RoleClient   ActorRole = "client"
	RoleProvider ActorRole = "provider"
)

// Actor is an already-authenticated identity supplied by the transport layer
type Actor struct {
	ID   int64
	Role ActorRole
}

// IsProvider returns true for provider actors
func (a Actor) IsProvider() bool {
	return a.Role == RoleProvider
}

// IsClient returns true for client actors
func (a Actor) IsClient() bool {
	return a.Role == RoleClient
}
