package api_test

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/ahngo/ftclient/api"
	"github.com/ahngo/ftclient/common"
	"github.com/google/go-cmp/cmp"
	"github.com/hetianyi/gox/convert"
)

func newTestConfigMap(t *testing.T) (*common.ConfigMap, string) {
	dir, err := ioutil.TempDir("", "ftclient-test")
	if err != nil {
		t.Fatal(err)
	}
	configMap, err := common.NewConfigMap(dir + "/" + common.CONFIG_MAP_FILE)
	if err != nil {
		os.RemoveAll(dir)
		t.Fatal(err)
	}
	return configMap, dir
}

func TestAppendAndListTransferRecords(t *testing.T) {
	configMap, dir := newTestConfigMap(t)
	defer os.RemoveAll(dir)
	defer configMap.Close()

	first := &common.TransferRecord{
		Id:         "1",
		Server:     "127.0.0.1:30020",
		Command:    common.CMD_BODY_LIST,
		Result:     common.RESULT_COMPLETE,
		FinishTime: 100,
	}
	second := &common.TransferRecord{
		Id:         "2",
		Server:     "127.0.0.1:30020",
		Command:    common.CMD_BODY_GET,
		Filename:   "a.txt",
		Bytes:      128,
		Md5:        "0cc175b9c0f1b6a831c399e269772661",
		Result:     common.RESULT_COMPLETE,
		FinishTime: 200,
	}
	if err := api.AppendTransferRecord(configMap, first); err != nil {
		t.Fatal(err)
	}
	if err := api.AppendTransferRecord(configMap, second); err != nil {
		t.Fatal(err)
	}
	records, err := api.ListTransferRecords(configMap, 0)
	if err != nil {
		t.Fatal(err)
	}
	expect := []*common.TransferRecord{second, first}
	if diff := cmp.Diff(expect, records); diff != "" {
		t.Fatal("unexpected records: ", diff)
	}
}

func TestListTransferRecordsLimit(t *testing.T) {
	configMap, dir := newTestConfigMap(t)
	defer os.RemoveAll(dir)
	defer configMap.Close()

	for i := 0; i < 5; i++ {
		record := &common.TransferRecord{
			Id:      convert.IntToStr(i),
			Command: common.CMD_BODY_LIST,
			Result:  common.RESULT_COMPLETE,
		}
		if err := api.AppendTransferRecord(configMap, record); err != nil {
			t.Fatal(err)
		}
	}
	records, err := api.ListTransferRecords(configMap, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatal("expect 2 records, got ", len(records))
	}
	if records[0].Id != "4" || records[1].Id != "3" {
		t.Fatal("records must come newest first, got ", records[0].Id, " and ", records[1].Id)
	}
}

func TestListTransferRecordsEmpty(t *testing.T) {
	configMap, dir := newTestConfigMap(t)
	defer os.RemoveAll(dir)
	defer configMap.Close()

	records, err := api.ListTransferRecords(configMap, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Fatal("expect no records, got ", len(records))
	}
}

func TestTransferHistoryCap(t *testing.T) {
	configMap, dir := newTestConfigMap(t)
	defer os.RemoveAll(dir)
	defer configMap.Close()

	total := common.MAX_HISTORY_SIZE + 5
	for i := 0; i < total; i++ {
		record := &common.TransferRecord{
			Id:      convert.IntToStr(i),
			Command: common.CMD_BODY_LIST,
			Result:  common.RESULT_COMPLETE,
		}
		if err := api.AppendTransferRecord(configMap, record); err != nil {
			t.Fatal(err)
		}
	}
	records, err := api.ListTransferRecords(configMap, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != common.MAX_HISTORY_SIZE {
		t.Fatal("history must be capped at ", common.MAX_HISTORY_SIZE, ", got ", len(records))
	}
	if records[0].Id != convert.IntToStr(total-1) {
		t.Fatal("the newest record must come first, got ", records[0].Id)
	}
}

func TestHistoryWithoutConfigMap(t *testing.T) {
	if err := api.AppendTransferRecord(nil, &common.TransferRecord{Id: "x"}); err != api.NoConfigMapErr {
		t.Fatal("expect NoConfigMapErr, got ", err)
	}
	if _, err := api.ListTransferRecords(nil, 0); err != api.NoConfigMapErr {
		t.Fatal("expect NoConfigMapErr, got ", err)
	}
}
