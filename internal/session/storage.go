package session

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage/memory/v2"
	"github.com/gofiber/storage/mysql/v2"
	"github.com/gofiber/storage/postgres/v3"
	"github.com/pkg/errors"

	"github.com/portal-prestadores/portal/internal/config"
)

const (
	// IdentifierKey holds the principal id as a decimal string.
	IdentifierKey = "usuario_id"
	// CredentialKey holds the bearer token.
	CredentialKey = "token"

	keyPrefix = "portal:"
)

// Durable is the per-session durable key/value storage. Get returns "" for absent keys.
type Durable interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// KV implements Durable on top of a fiber.Storage, namespacing keys by session id.
type KV struct {
	storage   fiber.Storage
	sessionID string
	exp       time.Duration
}

// NewKV creates a durable view of storage for sessionID. Values expire after exp; 0 keeps them.
func NewKV(storage fiber.Storage, sessionID string, exp time.Duration) *KV {
	return &KV{storage: storage, sessionID: sessionID, exp: exp}
}

func (kv *KV) key(k string) string {
	return keyPrefix + kv.sessionID + ":" + k
}

// Get returns the value stored under k.
func (kv *KV) Get(k string) (string, error) {
	v, err := kv.storage.Get(kv.key(k))
	if err != nil {
		return "", errors.Wrapf(err, "read %s", k)
	}

	return string(v), nil
}

// Set stores value under k.
func (kv *KV) Set(k, value string) error {
	return errors.Wrapf(kv.storage.Set(kv.key(k), []byte(value), kv.exp), "write %s", k)
}

// Delete removes k.
func (kv *KV) Delete(k string) error {
	return errors.Wrapf(kv.storage.Delete(kv.key(k)), "delete %s", k)
}

// NewStorage opens the storage backend selected in cfg.
func NewStorage(cfg config.Storage) (fiber.Storage, error) {
	table := cfg.Table
	if table == "" {
		table = "portal_sessions"
	}

	switch strings.ToLower(cfg.Driver) {
	case "", config.StorageMemory:
		return memory.New(), nil
	case config.StorageMySQL:
		return mysql.New(mysql.Config{
			ConnectionURI: cfg.ConnectionURI,
			Table:         table,
		}), nil
	case config.StoragePostgres:
		return postgres.New(postgres.Config{
			ConnectionURI: cfg.ConnectionURI,
			Table:         table,
		}), nil
	default:
		return nil, errors.Wrap(ErrUnknownStorageDriver, cfg.Driver)
	}
}
