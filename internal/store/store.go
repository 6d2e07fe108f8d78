// Package store persists community records and the wallet session in LevelDB.
// Values are JSON; when the store is opened with a passphrase every value is
// sealed with AES-GCM under a key derived from it.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/AlexZinkM/token-communities/internal/crypto"
	"github.com/AlexZinkM/token-communities/internal/model"
	"github.com/AlexZinkM/token-communities/internal/wallet"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var (
	// ErrNotFound is returned when no community is stored under a contract ID
	ErrNotFound = errors.New("community not found")
	// ErrSealed is returned when a sealed store is opened without a passphrase
	ErrSealed = errors.New("state store is encrypted: passphrase required")
	// ErrNotSealed is returned when a passphrase is given for a store holding plain values
	ErrNotSealed = errors.New("state store is not encrypted: run `communityctl state reseal` first")
)

const (
	communityPrefix = "community/"
	listKey         = "communities"
	sessionKey      = "session/wallet"
	metaPrefix      = "meta/"
	saltKey         = "meta/salt"
	checkKey        = "meta/check"
)

var checkValue = []byte("token-communities")

// Store is the LevelDB backed state store
type Store struct {
	db     *leveldb.DB
	sealer *crypto.Sealer

	// serializes read-modify-write of the aggregated list
	mu sync.Mutex
}

// Open opens (or creates) the store in dir. A nil passphrase opens a plain
// store; otherwise values are sealed. The passphrase is not retained.
func Open(dir string, passphrase []byte, params crypto.Params) (*Store, error) {
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open state store: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSealer(passphrase, params); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Sealed reports whether values are encrypted
func (s *Store) Sealed() bool {
	return s.sealer != nil
}

func (s *Store) initSealer(passphrase []byte, params crypto.Params) error {
	salt, err := s.db.Get([]byte(saltKey), nil)
	if err != nil && !errors.Is(err, leveldb.ErrNotFound) {
		return fmt.Errorf("failed to read salt: %w", err)
	}
	hasSalt := err == nil

	switch {
	case hasSalt && len(passphrase) == 0:
		return ErrSealed
	case !hasSalt && len(passphrase) == 0:
		return nil
	case hasSalt:
		sealer, err := crypto.NewSealer(passphrase, salt, params)
		if err != nil {
			return err
		}
		check, err := s.db.Get([]byte(checkKey), nil)
		if err != nil {
			return fmt.Errorf("failed to read passphrase check: %w", err)
		}
		plain, err := sealer.Open(check)
		if err != nil || !bytes.Equal(plain, checkValue) {
			return crypto.ErrInvalidPassphrase
		}
		s.sealer = sealer
		return nil
	}

	empty, err := s.empty()
	if err != nil {
		return err
	}
	if !empty {
		return ErrNotSealed
	}
	batch := new(leveldb.Batch)
	sealer, err := writeSealMeta(batch, passphrase, params)
	if err != nil {
		return err
	}
	if err := s.db.Write(batch, nil); err != nil {
		return fmt.Errorf("failed to write seal metadata: %w", err)
	}
	s.sealer = sealer
	return nil
}

func writeSealMeta(batch *leveldb.Batch, passphrase []byte, params crypto.Params) (*crypto.Sealer, error) {
	salt, err := crypto.NewSalt()
	if err != nil {
		return nil, err
	}
	sealer, err := crypto.NewSealer(passphrase, salt, params)
	if err != nil {
		return nil, err
	}
	check, err := sealer.Seal(checkValue)
	if err != nil {
		return nil, err
	}
	batch.Put([]byte(saltKey), salt)
	batch.Put([]byte(checkKey), check)
	return sealer, nil
}

func (s *Store) empty() (bool, error) {
	iter := s.db.NewIterator(nil, nil)
	defer iter.Release()
	has := iter.Next()
	return !has, iter.Error()
}

func (s *Store) encode(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode value: %w", err)
	}
	if s.sealer == nil {
		return data, nil
	}
	return s.sealer.Seal(data)
}

func (s *Store) decode(raw []byte, v any) error {
	data := raw
	if s.sealer != nil {
		var err error
		if data, err = s.sealer.Open(raw); err != nil {
			return fmt.Errorf("failed to open value: %w", err)
		}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode value: %w", err)
	}
	return nil
}

// get reads key into v; ok is false when the key is absent
func (s *Store) get(key string, v any) (bool, error) {
	raw, err := s.db.Get([]byte(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return true, s.decode(raw, v)
}

// SaveCommunity stores c under its contract ID and upserts it into the aggregated list
func (s *Store) SaveCommunity(c *model.Community) error {
	if c.ContractID == "" {
		return errors.New("community has no contract id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.listLocked()
	if err != nil {
		return err
	}
	replaced := false
	for i := range list {
		if list[i].ContractID == c.ContractID {
			list[i] = *c
			replaced = true
			break
		}
	}
	if !replaced {
		list = append(list, *c)
	}

	record, err := s.encode(c)
	if err != nil {
		return err
	}
	all, err := s.encode(list)
	if err != nil {
		return err
	}

	batch := new(leveldb.Batch)
	batch.Put([]byte(communityPrefix+c.ContractID), record)
	batch.Put([]byte(listKey), all)
	if err := s.db.Write(batch, nil); err != nil {
		return fmt.Errorf("failed to save community: %w", err)
	}
	return nil
}

// GetCommunity loads the community stored under contractID
func (s *Store) GetCommunity(contractID string) (*model.Community, error) {
	var c model.Community
	ok, err := s.get(communityPrefix+contractID, &c)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, contractID)
	}
	return &c, nil
}

// ListCommunities returns the aggregated list in insertion order
func (s *Store) ListCommunities() ([]model.Community, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listLocked()
}

func (s *Store) listLocked() ([]model.Community, error) {
	var list []model.Community
	if _, err := s.get(listKey, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SaveSession implements wallet.Persister
func (s *Store) SaveSession(p wallet.Persisted) error {
	data, err := s.encode(p)
	if err != nil {
		return err
	}
	if err := s.db.Put([]byte(sessionKey), data, nil); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// LoadSession implements wallet.Loader
func (s *Store) LoadSession() (wallet.Persisted, bool, error) {
	var p wallet.Persisted
	ok, err := s.get(sessionKey, &p)
	return p, ok, err
}

// Reseal rewrites every value under a new passphrase in one batch. An empty
// passphrase leaves the store unencrypted.
func (s *Store) Reseal(passphrase []byte, params crypto.Params) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	batch := new(leveldb.Batch)
	var next *crypto.Sealer
	if len(passphrase) > 0 {
		var err error
		if next, err = writeSealMeta(batch, passphrase, params); err != nil {
			return 0, err
		}
	} else {
		batch.Delete([]byte(saltKey))
		batch.Delete([]byte(checkKey))
	}

	count := 0
	iter := s.db.NewIterator(nil, nil)
	for iter.Next() {
		key := iter.Key()
		if bytes.HasPrefix(key, []byte(metaPrefix)) {
			continue
		}
		plain := iter.Value()
		if s.sealer != nil {
			var err error
			if plain, err = s.sealer.Open(plain); err != nil {
				iter.Release()
				return 0, fmt.Errorf("failed to open %s: %w", key, err)
			}
		}
		value := plain
		if next != nil {
			var err error
			if value, err = next.Seal(plain); err != nil {
				iter.Release()
				return 0, err
			}
		}
		batch.Put(bytes.Clone(key), bytes.Clone(value))
		count++
	}
	iter.Release()
	if err := iter.Error(); err != nil {
		return 0, fmt.Errorf("failed to iterate store: %w", err)
	}

	if err := s.db.Write(batch, nil); err != nil {
		return 0, fmt.Errorf("failed to write resealed values: %w", err)
	}
	s.sealer = next
	return count, nil
}

// CountCommunities returns the number of stored community records
func (s *Store) CountCommunities() (int, error) {
	iter := s.db.NewIterator(util.BytesPrefix([]byte(communityPrefix)), nil)
	defer iter.Release()
	n := 0
	for iter.Next() {
		n++
	}
	return n, iter.Error()
}
