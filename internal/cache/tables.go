package cache

import (
	"encoding/binary"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark/logger"
	lru "github.com/hashicorp/golang-lru"
	sha256 "github.com/minio/sha256-simd"

	"github.com/Han-16/msmist/msm"
)

// TableCache keeps recently built precomputation tables keyed by a digest of
// their base points and window size. Provers hit the same basis for every
// proof, and rebuilding tables dwarfs the multiexp itself.
type TableCache struct {
	entries *lru.Cache
}

// NewTableCache holds at most maxEntries tables.
func NewTableCache(maxEntries int) (*TableCache, error) {
	c, err := lru.New(maxEntries)
	if err != nil {
		return nil, err
	}
	return &TableCache{entries: c}, nil
}

// TableKey digests a base-point set and window size into a cache key.
func TableKey(points []bn254.G1Affine, windowSize int) string {
	h := sha256.New()
	var ws [8]byte
	binary.LittleEndian.PutUint64(ws[:], uint64(windowSize))
	h.Write(ws[:])
	for i := range points {
		raw := points[i].RawBytes()
		h.Write(raw[:])
	}
	return string(h.Sum(nil))
}

// GetOrBuild returns the cached table for (points, windowSize), building and
// remembering one on a miss.
func (c *TableCache) GetOrBuild(points []bn254.G1Affine, windowSize int) *msm.Precomp[bn254.G1Affine] {
	key := TableKey(points, windowSize)
	if v, ok := c.entries.Get(key); ok {
		return v.(*msm.Precomp[bn254.G1Affine])
	}

	t := msm.Precompute[bn254.G1Affine, bn254.G1Jac](points, windowSize)
	c.entries.Add(key, t)

	log := logger.Logger()
	log.Debug().Int("points", len(points)).Int("windowSize", windowSize).Msg("table cache miss")
	return t
}

// Len reports the number of cached tables.
func (c *TableCache) Len() int { return c.entries.Len() }
