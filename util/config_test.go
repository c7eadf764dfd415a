package util_test

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/ahngo/ftclient/common"
	"github.com/ahngo/ftclient/util"
	"github.com/google/go-cmp/cmp"
	"github.com/hetianyi/gox/logger"
)

func init() {
	logger.Init(&logger.Config{
		Level: logger.DebugLevel,
	})
}

func TestWriteAndLoadConfig(t *testing.T) {
	dir, err := ioutil.TempDir("", "ftclient-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	confFile := dir + "/" + common.CLIENT_CONFIG_FILE
	stored := &common.ClientConfig{
		Server:           "192.168.0.100",
		Port:             30020,
		DataPort:         30021,
		DownloadDir:      dir,
		HandshakeDelayMs: 50,
		LogLevel:         "info",
	}
	if err := util.WriteConfig(confFile, stored); err != nil {
		t.Fatal(err)
	}
	loaded := &common.ClientConfig{}
	if err := util.LoadConfig(confFile, loaded); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(stored, loaded); diff != "" {
		t.Fatal("config round trip mismatch: ", diff)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	loaded := &common.ClientConfig{}
	if err := util.LoadConfig("/no/such/ftclient.conf", loaded); err == nil {
		t.Fatal("expect an error for a missing config file")
	}
}
