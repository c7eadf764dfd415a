package common

import (
	"time"

	"github.com/boltdb/bolt"
)

var configMapInstance *ConfigMap

// ConfigMap is a small persistent key-value store backed by boltdb.
type ConfigMap struct {
	db *bolt.DB
}

// NewConfigMap opens the store file at path, creating it if absent.
func NewConfigMap(path string) (*ConfigMap, error) {
	db, err := bolt.Open(path, 0644, &bolt.Options{Timeout: time.Second * 5})
	if err != nil {
		return nil, err
	}
	if err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(BUCKET_KEY_CONFIGMAP))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}
	return &ConfigMap{db: db}, nil
}

// SetConfigMap sets the shared configMap instance.
func SetConfigMap(configMap *ConfigMap) {
	configMapInstance = configMap
}

// GetConfigMap returns the shared configMap instance.
func GetConfigMap() *ConfigMap {
	return configMapInstance
}

// GetConfig gets a config value by key, nil if the key is not set.
func (c *ConfigMap) GetConfig(key string) ([]byte, error) {
	var ret []byte
	err := c.db.View(func(tx *bolt.Tx) error {
		// value is only valid inside the transaction
		v := tx.Bucket([]byte(BUCKET_KEY_CONFIGMAP)).Get([]byte(key))
		if v != nil {
			ret = make([]byte, len(v))
			copy(ret, v)
		}
		return nil
	})
	return ret, err
}

// PutConfig sets a config value by key.
func (c *ConfigMap) PutConfig(key string, value []byte) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(BUCKET_KEY_CONFIGMAP)).Put([]byte(key), value)
	})
}

// BatchUpdate runs fn inside a single read-write transaction.
func (c *ConfigMap) BatchUpdate(fn func(tx *bolt.Tx) error) error {
	return c.db.Update(fn)
}

// Close closes the underlying store.
func (c *ConfigMap) Close() error {
	return c.db.Close()
}
