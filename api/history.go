package api

import (
	"errors"

	"github.com/ahngo/ftclient/common"
	"github.com/boltdb/bolt"
	"github.com/hetianyi/gox/logger"
	json "github.com/json-iterator/go"
)

var (
	NoConfigMapErr = errors.New("configMap store is not initialized")
)

// AppendTransferRecord prepends a finished session record to the stored
// transfer history, newest first, capped at MAX_HISTORY_SIZE entries.
func AppendTransferRecord(configMap *common.ConfigMap, record *common.TransferRecord) error {
	if configMap == nil {
		return NoConfigMapErr
	}
	return configMap.BatchUpdate(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(common.BUCKET_KEY_CONFIGMAP))
		var records []*common.TransferRecord
		v := bucket.Get([]byte(common.CONFIG_KEY_HISTORY))
		if v != nil && len(v) > 0 {
			if err := json.Unmarshal(v, &records); err != nil {
				// unreadable history is discarded
				logger.Warn("resetting transfer history: ", err)
				records = nil
			}
		}
		records = append([]*common.TransferRecord{record}, records...)
		if len(records) > common.MAX_HISTORY_SIZE {
			records = records[:common.MAX_HISTORY_SIZE]
		}
		bs, err := json.Marshal(records)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(common.CONFIG_KEY_HISTORY), bs)
	})
}

// ListTransferRecords returns stored transfer records, newest first.
// A non positive limit returns all of them.
func ListTransferRecords(configMap *common.ConfigMap, limit int) ([]*common.TransferRecord, error) {
	if configMap == nil {
		return nil, NoConfigMapErr
	}
	ret, err := configMap.GetConfig(common.CONFIG_KEY_HISTORY)
	if err != nil {
		return nil, err
	}
	if ret == nil || len(ret) == 0 {
		return []*common.TransferRecord{}, nil
	}
	var records []*common.TransferRecord
	if err = json.Unmarshal(ret, &records); err != nil {
		return nil, err
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}
