// Package recorder saves and loads hand records through the codec, archive,
// database and cache layers.
package recorder

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jason-s-yu/riichi/engine"
	"github.com/jason-s-yu/riichi/service/internal/archive"
	"github.com/jason-s-yu/riichi/service/internal/cache"
	"github.com/jason-s-yu/riichi/service/internal/codec"
	"github.com/jason-s-yu/riichi/service/internal/database"
)

// Store is the persistent side. *database.Store satisfies it.
type Store interface {
	Insert(ctx context.Context, rec database.Record) (uuid.UUID, error)
	Get(ctx context.Context, id uuid.UUID) (database.Record, error)
	FindByDigest(ctx context.Context, digest string) (uuid.UUID, error)
}

// Cache is the optional read-through layer. *cache.Cache satisfies it.
type Cache interface {
	Get(ctx context.Context, id uuid.UUID) (cache.Entry, error)
	Set(ctx context.Context, id uuid.UUID, e cache.Entry) error
}

// Recorder persists hands. Cache failures are logged and never fail a call.
type Recorder struct {
	store       Store
	cache       Cache
	compression archive.Compression
	log         logrus.FieldLogger
}

// New returns a recorder. c may be nil to run without a cache.
func New(store Store, c Cache, compression archive.Compression, log logrus.FieldLogger) *Recorder {
	return &Recorder{store: store, cache: c, compression: compression, log: log}
}

// Save stores h and returns its id. A hand already stored, byte for byte,
// keeps its original id. h is not modified.
func (r *Recorder) Save(ctx context.Context, h *engine.Hand) (uuid.UUID, error) {
	data, err := codec.MarshalHand(h)
	if err != nil {
		return uuid.Nil, err
	}
	digest := archive.Digest(data)
	log := r.log.WithFields(logrus.Fields{"digest": digest, "steps": h.Len(), "bytes": len(data)})

	id, err := r.store.FindByDigest(ctx, digest)
	if err == nil {
		log.WithField("hand_id", id).Debug("hand already stored")
		return id, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return uuid.Nil, err
	}

	payload, err := archive.Pack(data, r.compression)
	if err != nil {
		return uuid.Nil, fmt.Errorf("save hand: %w", err)
	}
	id, err = r.store.Insert(ctx, database.Record{
		ID:          uuid.New(),
		Digest:      digest,
		Compression: r.compression,
		Payload:     payload,
		Steps:       h.Len(),
	})
	if err != nil {
		return uuid.Nil, err
	}
	log.WithFields(logrus.Fields{"hand_id": id, "stored_bytes": len(payload)}).Info("hand saved")

	r.fill(ctx, id, cache.Entry{Compression: r.compression, Digest: digest, Payload: payload})
	return id, nil
}

// Load returns the hand stored under id.
func (r *Recorder) Load(ctx context.Context, id uuid.UUID) (*engine.Hand, error) {
	log := r.log.WithField("hand_id", id)

	if r.cache != nil {
		entry, err := r.cache.Get(ctx, id)
		switch {
		case err == nil:
			h, err := unpack(entry.Payload, entry.Compression, entry.Digest)
			if err == nil {
				log.Debug("hand loaded from cache")
				return h, nil
			}
			log.WithError(err).Warn("discarding unreadable cache entry")
		case !errors.Is(err, cache.ErrMiss):
			log.WithError(err).Warn("cache read failed")
		}
	}

	rec, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	h, err := unpack(rec.Payload, rec.Compression, rec.Digest)
	if err != nil {
		return nil, fmt.Errorf("load hand %s: %w", id, err)
	}
	log.WithField("steps", h.Len()).Debug("hand loaded from store")

	r.fill(ctx, id, cache.Entry{Compression: rec.Compression, Digest: rec.Digest, Payload: rec.Payload})
	return h, nil
}

func (r *Recorder) fill(ctx context.Context, id uuid.UUID, e cache.Entry) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Set(ctx, id, e); err != nil {
		r.log.WithError(err).WithField("hand_id", id).Warn("cache write failed")
	}
}

// unpack decompresses payload and decodes it once its digest matches.
func unpack(payload []byte, c archive.Compression, digest string) (*engine.Hand, error) {
	data, err := archive.Unpack(payload, c)
	if err != nil {
		return nil, err
	}
	if got := archive.Digest(data); got != digest {
		return nil, fmt.Errorf("digest mismatch: stored %s, computed %s", digest, got)
	}
	return codec.UnmarshalHand(data)
}
