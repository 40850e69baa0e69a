// Package tokenstore is the single source of truth for the persisted
// credential slots. Every component reads and writes tokens through it;
// nothing else touches the underlying storage.
package tokenstore

import "context"

// Storage keys. These match the layout the web client used, so a database
// written by an older build keeps working.
const (
	KeyAccessToken  = "token"
	KeyRefreshToken = "refreshToken"
)

// Store holds named string slots. Get returns "" without error for an
// absent key. No expiry bookkeeping is done here; token expiry is
// discovered reactively via a 401 response.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Clear(ctx context.Context, key string) error
}
