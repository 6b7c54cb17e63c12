package model

import "context"

// ArtifactStore holds exactly one artifact. Save replaces whatever was there.
// Load returns ErrArtifactNotFound or ErrArtifactCorrupt (possibly wrapped).
type ArtifactStore interface {
	Save(ctx context.Context, a *Artifact) error
	Load(ctx context.Context) (*Artifact, error)
	Close() error
}
