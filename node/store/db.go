package store

import (
	"fmt"
	"os"
	"path/filepath"

	bolt "go.etcd.io/bbolt"

	"github.com/lomasson/raito/consensus"
)

var (
	bucketChainState   = []byte("chainstate")
	bucketHeaders      = []byte("headers_by_hash")
	bucketHashByHeight = []byte("hash_by_height")

	keyCurrentState = []byte("current")
)

// DB is the single-file chain database: the canonical chain state plus an
// archive of accepted wire headers.
type DB struct {
	path string
	db   *bolt.DB
}

func Open(dataDir string) (*DB, error) {
	if dataDir == "" {
		return nil, fmt.Errorf("datadir required")
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	path := filepath.Join(dataDir, "chain.db")
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketChainState, bucketHeaders, bucketHashByHeight} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &DB{path: path, db: db}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

// PutState writes the canonical 120-byte chain state encoding.
func (d *DB) PutState(s *consensus.ChainState) error {
	enc, err := s.MarshalBinary()
	if err != nil {
		return err
	}
	return d.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketChainState).Put(keyCurrentState, enc)
	})
}

// State loads the persisted chain state.  The second return is false when no
// state has been written yet.
func (d *DB) State() (consensus.ChainState, bool, error) {
	var s consensus.ChainState
	found := false
	err := d.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketChainState).Get(keyCurrentState)
		if v == nil {
			return nil
		}
		found = true
		return s.UnmarshalBinary(v)
	})
	return s, found, err
}

// PutHeader archives an accepted 80-byte wire header under its block hash and
// indexes the hash by height.  Writing the state and the header of the same
// block happens in one transaction via PutAccepted.
func (d *DB) PutHeader(height uint32, hash consensus.Digest, headerBytes []byte) error {
	if len(headerBytes) != consensus.HeaderWireBytes {
		return fmt.Errorf("invalid header length: %d", len(headerBytes))
	}
	return d.db.Update(func(tx *bolt.Tx) error {
		return putHeader(tx, height, hash, headerBytes)
	})
}

// PutAccepted persists a freshly accepted block's header together with the
// post-state it produced, atomically.
func (d *DB) PutAccepted(s *consensus.ChainState, height uint32, hash consensus.Digest, headerBytes []byte) error {
	if len(headerBytes) != consensus.HeaderWireBytes {
		return fmt.Errorf("invalid header length: %d", len(headerBytes))
	}
	enc, err := s.MarshalBinary()
	if err != nil {
		return err
	}
	return d.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketChainState).Put(keyCurrentState, enc); err != nil {
			return err
		}
		return putHeader(tx, height, hash, headerBytes)
	})
}

func putHeader(tx *bolt.Tx, height uint32, hash consensus.Digest, headerBytes []byte) error {
	h := hash.Bytes()
	if err := tx.Bucket(bucketHeaders).Put(h[:], headerBytes); err != nil {
		return err
	}
	return tx.Bucket(bucketHashByHeight).Put(heightKey(height), h[:])
}

// Header returns the archived wire header for the given block hash.
func (d *DB) Header(hash consensus.Digest) ([]byte, bool, error) {
	var out []byte
	err := d.db.View(func(tx *bolt.Tx) error {
		h := hash.Bytes()
		v := tx.Bucket(bucketHeaders).Get(h[:])
		if v != nil {
			out = append([]byte(nil), v...)
		}
		return nil
	})
	return out, out != nil, err
}

// HashAtHeight returns the hash of the accepted block at the given height.
func (d *DB) HashAtHeight(height uint32) (consensus.Digest, bool, error) {
	var dg consensus.Digest
	found := false
	err := d.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketHashByHeight).Get(heightKey(height))
		if v == nil {
			return nil
		}
		var err error
		dg, err = consensus.DigestFromBytes(v)
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	return dg, found, err
}

func heightKey(height uint32) []byte {
	// Big-endian so bucket iteration walks the chain in height order.
	return []byte{byte(height >> 24), byte(height >> 16), byte(height >> 8), byte(height)}
}
