package mesh

import (
	"bytes"
	"context"
	"encoding/gob"
	"log/slog"
	"strconv"
	"sync"

	"github.com/zeebo/xxh3"
)

var (
	// globalCache stores parsed documents keyed by source+options hash.
	// Sound because parsing is pure and Documents are never mutated after
	// construction.
	globalCache sync.Map
)

// state tracks the one-time parse of a cached source.
type state struct {
	once sync.Once
	doc  *Document
	err  error
}

// hashOptions encodes options using gob and hashes with xxh3.
// Returns a hash that uniquely identifies the options configuration.
func hashOptions(opts optionsKey) uint64 {
	var buf bytes.Buffer

	enc := gob.NewEncoder(&buf)

	_ = enc.Encode(opts.maxDepth)
	_ = enc.Encode(opts.consts)

	return xxh3.Hash(buf.Bytes())
}

// parseStringCached parses a string with caching. Only default-option parses
// take this path, so the key is the source hash combined with the hash of
// the default options.
func parseStringCached(ctx context.Context, source string) (*Document, error) {
	var defaults Document

	applyDefaults(&defaults)

	sourceHash := xxh3.Hash([]byte(source))
	sourceKey := strconv.FormatUint(sourceHash^hashOptions(defaults.opts), 36)

	entry := new(state)
	value, _ := globalCache.LoadOrStore(sourceKey, entry)

	metadata, ok := value.(*state)
	if !ok {
		return nil, ErrReadInput.
			With(slog.String("issue", "invalid metadata type in cache"))
	}

	metadata.once.Do(func() {
		metadata.doc, metadata.err = parse(ctx, source)
	})

	return metadata.doc, metadata.err
}

// ClearCache removes all cached documents.
// This is primarily useful for testing or when memory needs to be reclaimed.
func ClearCache() {
	globalCache = sync.Map{}
}
