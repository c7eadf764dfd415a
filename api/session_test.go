package api_test

import (
	"bytes"
	"io"
	"io/ioutil"
	"net"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/ahngo/ftclient/api"
	"github.com/ahngo/ftclient/common"
	"github.com/hetianyi/gox/logger"
)

func init() {
	logger.Init(&logger.Config{
		Level: logger.DebugLevel,
	})
}

// startServer runs a scripted ftserver on a loopback port. The script
// gets the accepted control connection and the done channel closes when
// the script returns.
func startServer(t *testing.T, script func(control net.Conn)) (*common.Server, chan struct{}) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer listener.Close()
		control, err := listener.Accept()
		if err != nil {
			return
		}
		defer control.Close()
		script(control)
	}()
	port := listener.Addr().(*net.TCPAddr).Port
	return &common.Server{Host: "127.0.0.1", Port: uint16(port)}, done
}

// readRequest consumes the fixed size control request.
func readRequest(control net.Conn) ([]byte, error) {
	buf := make([]byte, common.REQUEST_SIZE)
	if _, err := io.ReadFull(control, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// advertisedPort extracts the data port the client announced in its
// request.
func advertisedPort(request []byte) string {
	s := string(request)
	start := strings.Index(s, common.FIELD_PORT_START) + len(common.FIELD_PORT_START)
	end := strings.Index(s, common.FIELD_PORT_END)
	return s[start:end]
}

func newTestClient(server *common.Server, console *bytes.Buffer, input string, downloadDir string) api.ClientAPI {
	client := api.NewClient()
	client.SetConfig(&api.Config{
		Server:      server,
		DataPort:    0, // let the kernel pick a free port
		DownloadDir: downloadDir,
		Console:     console,
		Input:       strings.NewReader(input),
	})
	return client
}

func TestRunWithoutServer(t *testing.T) {
	client := api.NewClient()
	client.SetConfig(&api.Config{})
	if _, err := client.Run(&common.TransferRequest{Command: common.COMMAND_LIST}); err != api.NoServerErr {
		t.Fatal("expect NoServerErr, got ", err)
	}
}

func TestListTransfer(t *testing.T) {
	server, done := startServer(t, func(control net.Conn) {
		request, err := readRequest(control)
		if err != nil {
			t.Error(err)
			return
		}
		if !strings.Contains(string(request), "CMD:LIST") {
			t.Error("expect a LIST request, got ", string(request))
			return
		}
		control.Write([]byte("CONTINUE"))
		data, err := net.Dial("tcp", "127.0.0.1:"+advertisedPort(request))
		if err != nil {
			t.Error(err)
			return
		}
		data.Write([]byte("a.txt\nb.txt\n"))
		data.Close()
	})
	console := new(bytes.Buffer)
	client := newTestClient(server, console, "", "")
	record, err := client.Run(&common.TransferRequest{Command: common.COMMAND_LIST})
	if err != nil {
		t.Fatal(err)
	}
	<-done
	out := console.String()
	if !strings.Contains(out, "Connected to ftserver on control port ") {
		t.Fatal("unexpected console output:\n", out)
	}
	if !strings.Contains(out, "Directory contents:\na.txt\nb.txt\n") {
		t.Fatal("unexpected console output:\n", out)
	}
	if !strings.Contains(out, "** Operations complete. Closing connections. **") {
		t.Fatal("expect the closing line, got:\n", out)
	}
	if record.Result != common.RESULT_COMPLETE {
		t.Fatal("expect result ", common.RESULT_COMPLETE, ", got ", record.Result)
	}
	if record.Command != common.CMD_BODY_LIST {
		t.Fatal("expect command ", common.CMD_BODY_LIST, ", got ", record.Command)
	}
	if record.Server != server.ConnectionString() {
		t.Fatal("expect server ", server.ConnectionString(), ", got ", record.Server)
	}
	if record.Id == "" || record.FinishTime <= 0 {
		t.Fatal("record must carry an id and a finish time")
	}
}

func TestGetTransfer(t *testing.T) {
	payload := "hello over the data channel\n"
	server, done := startServer(t, func(control net.Conn) {
		request, err := readRequest(control)
		if err != nil {
			t.Error(err)
			return
		}
		if !strings.Contains(string(request), "CMD:GETFILENAME:report.csvFILENAMEEND") {
			t.Error("unexpected request: ", string(request))
			return
		}
		control.Write([]byte("CONTINUE"))
		data, err := net.Dial("tcp", "127.0.0.1:"+advertisedPort(request))
		if err != nil {
			t.Error(err)
			return
		}
		// keep the two control messages apart on the wire
		time.Sleep(time.Millisecond * 100)
		control.Write([]byte("SENDING"))
		data.Write([]byte(payload))
		data.Close()
	})
	downloadDir, err := ioutil.TempDir("", "ftclient-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(downloadDir)
	console := new(bytes.Buffer)
	client := newTestClient(server, console, "", downloadDir)
	record, err := client.Run(&common.TransferRequest{Command: common.COMMAND_GET, Filename: "report.csv"})
	if err != nil {
		t.Fatal(err)
	}
	<-done
	saved, err := ioutil.ReadFile(downloadDir + "/report.csv")
	if err != nil {
		t.Fatal(err)
	}
	if string(saved) != payload {
		t.Fatal("unexpected file content: ", string(saved))
	}
	out := console.String()
	if !strings.Contains(out, "Transferring report.csv.") {
		t.Fatal("unexpected console output:\n", out)
	}
	if !strings.Contains(out, "Transfer complete.") {
		t.Fatal("unexpected console output:\n", out)
	}
	if !strings.Contains(out, "** Operations complete. Closing connections. **") {
		t.Fatal("expect the closing line, got:\n", out)
	}
	if record.Bytes != int64(len(payload)) {
		t.Fatal("expect ", len(payload), " bytes, got ", record.Bytes)
	}
	if record.Md5 == "" {
		t.Fatal("record must carry the md5 sum of the download")
	}
	if record.Result != common.RESULT_COMPLETE {
		t.Fatal("expect result ", common.RESULT_COMPLETE, ", got ", record.Result)
	}
}

func TestGetOverwriteDeclined(t *testing.T) {
	server, done := startServer(t, func(control net.Conn) {
		request, err := readRequest(control)
		if err != nil {
			t.Error(err)
			return
		}
		control.Write([]byte("CONTINUE"))
		data, err := net.Dial("tcp", "127.0.0.1:"+advertisedPort(request))
		if err != nil {
			t.Error(err)
			return
		}
		time.Sleep(time.Millisecond * 100)
		control.Write([]byte("SENDING"))
		// the declining client never reads this
		data.Write([]byte("new content"))
		data.Close()
	})
	downloadDir, err := ioutil.TempDir("", "ftclient-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(downloadDir)
	existing := downloadDir + "/report.csv"
	if err := ioutil.WriteFile(existing, []byte("old content"), 0644); err != nil {
		t.Fatal(err)
	}
	console := new(bytes.Buffer)
	client := newTestClient(server, console, "n\n", downloadDir)
	record, err := client.Run(&common.TransferRequest{Command: common.COMMAND_GET, Filename: "report.csv"})
	if err != nil {
		t.Fatal(err)
	}
	<-done
	saved, err := ioutil.ReadFile(existing)
	if err != nil {
		t.Fatal(err)
	}
	if string(saved) != "old content" {
		t.Fatal("a declined overwrite must keep the existing file, got: ", string(saved))
	}
	out := console.String()
	if !strings.Contains(out, "report.csv already exists. Overwrite? N = no, anything else = yes") {
		t.Fatal("unexpected console output:\n", out)
	}
	if !strings.Contains(out, "Transfer aborted.") {
		t.Fatal("unexpected console output:\n", out)
	}
	if record.Result != common.RESULT_ABORTED {
		t.Fatal("expect result ", common.RESULT_ABORTED, ", got ", record.Result)
	}
}

func TestServerRefusesRequest(t *testing.T) {
	server, done := startServer(t, func(control net.Conn) {
		if _, err := readRequest(control); err != nil {
			t.Error(err)
			return
		}
		control.Write([]byte("ERROR: invalid command\n"))
	})
	console := new(bytes.Buffer)
	client := newTestClient(server, console, "", "")
	record, err := client.Run(&common.TransferRequest{Command: common.COMMAND_UNKNOWN, RawToken: "-x"})
	if err != nil {
		t.Fatal("a refusing reply is not a client failure: ", err)
	}
	<-done
	out := console.String()
	if !strings.Contains(out, "ERROR: invalid command") {
		t.Fatal("unexpected console output:\n", out)
	}
	if strings.Contains(out, "Connected to ftserver") {
		t.Fatal("the session must stop before the data channel:\n", out)
	}
	if strings.Contains(out, "** Operations complete") {
		t.Fatal("no closing line after a refused request:\n", out)
	}
	if record.Result != common.RESULT_SERVER_ERROR {
		t.Fatal("expect result ", common.RESULT_SERVER_ERROR, ", got ", record.Result)
	}
}

func TestGetDeferredServerError(t *testing.T) {
	server, done := startServer(t, func(control net.Conn) {
		request, err := readRequest(control)
		if err != nil {
			t.Error(err)
			return
		}
		control.Write([]byte("CONTINUE"))
		data, err := net.Dial("tcp", "127.0.0.1:"+advertisedPort(request))
		if err != nil {
			t.Error(err)
			return
		}
		defer data.Close()
		time.Sleep(time.Millisecond * 100)
		control.Write([]byte("ERROR nope.txt not found."))
	})
	downloadDir, err := ioutil.TempDir("", "ftclient-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(downloadDir)
	console := new(bytes.Buffer)
	client := newTestClient(server, console, "", downloadDir)
	record, err := client.Run(&common.TransferRequest{Command: common.COMMAND_GET, Filename: "nope.txt"})
	if err != nil {
		t.Fatal(err)
	}
	<-done
	out := console.String()
	if !strings.Contains(out, "Message from server: ERROR nope.txt not found.") {
		t.Fatal("unexpected console output:\n", out)
	}
	if !strings.Contains(out, "** Operations complete. Closing connections. **") {
		t.Fatal("the closing line is expected after a deferred error:\n", out)
	}
	if _, err := os.Stat(downloadDir + "/nope.txt"); !os.IsNotExist(err) {
		t.Fatal("no file may be created for a missing remote file")
	}
	if record.Result != common.RESULT_SERVER_ERROR {
		t.Fatal("expect result ", common.RESULT_SERVER_ERROR, ", got ", record.Result)
	}
}
