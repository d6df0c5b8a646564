package types

// DefaultVersion is used when no AppContext is bound
const DefaultVersion = "dev"

// AppContext carries application-wide state into command Run methods
type AppContext struct {
	Version string
}
