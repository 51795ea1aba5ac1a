package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	appErrors "github.com/noah-isme/mentoria-api/pkg/errors"
)

const (
	tagSpace       = 10000
	maxTagAttempts = 20
)

type tagLookup interface {
	ExistsByTag(ctx context.Context, tag string) (bool, error)
}

// TagGenerator draws 4-digit teacher tags that are not yet taken.
type TagGenerator struct {
	repo     tagLookup
	attempts int
	draw     func() (int64, error)
}

// NewTagGenerator constructs a TagGenerator backed by crypto/rand.
func NewTagGenerator(repo tagLookup) *TagGenerator {
	return &TagGenerator{repo: repo, attempts: maxTagAttempts, draw: randomTagNumber}
}

func randomTagNumber() (int64, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(tagSpace))
	if err != nil {
		return 0, err
	}
	return n.Int64(), nil
}

// Generate returns an unused tag or ErrTagSpaceExhausted after maxTagAttempts collisions.
func (g *TagGenerator) Generate(ctx context.Context) (string, error) {
	for i := 0; i < g.attempts; i++ {
		n, err := g.draw()
		if err != nil {
			return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to draw tag")
		}
		candidate := fmt.Sprintf("%04d", n)
		exists, err := g.repo.ExistsByTag(ctx, candidate)
		if err != nil {
			return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check tag")
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", appErrors.ErrTagSpaceExhausted
}
