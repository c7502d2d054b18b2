package literature

import "context"

// Provider searches one upstream publication index.
type Provider interface {
	// Name identifies the provider in results and logs.
	Name() string
	// Search returns up to limit candidate papers for the query.
	Search(ctx context.Context, query string, limit int) ([]Paper, error)
}
