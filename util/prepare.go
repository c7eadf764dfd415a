package util

import (
	"github.com/ahngo/ftclient/common"
	"github.com/hetianyi/gox/file"
	"github.com/hetianyi/gox/logger"
	"github.com/hetianyi/gox/uuid"
	"github.com/mitchellh/go-homedir"
)

// LocateBaseDir resolves the client base directory (~/.ftclient),
// creating it if absent.
func LocateBaseDir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	baseDir := home + "/" + common.BASE_DIR_NAME
	if !file.Exists(baseDir) {
		if err := file.CreateDirs(baseDir); err != nil {
			return "", err
		}
	}
	return baseDir, nil
}

// DefaultLogDir returns the default log directory.
func DefaultLogDir() string {
	baseDir, err := LocateBaseDir()
	if err != nil {
		logger.Fatal("cannot locate base directory: ", err)
	}
	return baseDir + "/logs"
}

// DefaultConfigFile returns the default config file location.
func DefaultConfigFile() (string, error) {
	baseDir, err := LocateBaseDir()
	if err != nil {
		return "", err
	}
	return baseDir + "/" + common.CLIENT_CONFIG_FILE, nil
}

// LoadInstanceData loads the instance id from the configMap store,
// generating one on first run.
func LoadInstanceData() string {
	configMap := common.GetConfigMap()
	ret, err := configMap.GetConfig(common.CONFIG_KEY_INSTANCE_ID)
	if err != nil {
		logger.Fatal("cannot load instance data: ", err)
	}
	if ret == nil || len(ret) == 0 {
		instanceId := uuid.UUID()
		if err = configMap.PutConfig(common.CONFIG_KEY_INSTANCE_ID, []byte(instanceId)); err != nil {
			logger.Fatal("cannot save instance data: ", err)
		}
		return instanceId
	}
	return string(ret)
}
