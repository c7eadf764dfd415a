package api

import (
	"fmt"
	"io"
	"strings"

	"github.com/ahngo/ftclient/bridge"
	"github.com/ahngo/ftclient/common"
	"github.com/ahngo/ftclient/util"
	"github.com/hetianyi/gox/file"
	"github.com/hetianyi/gox/logger"
)

// receivePayload consumes the data channel according to the requested
// command.
func (s *transferSession) receivePayload() error {
	switch s.req.Command {
	case common.COMMAND_LIST:
		return s.receiveListing()
	case common.COMMAND_GET:
		return s.receiveFile()
	default:
		// nothing to receive for an unrecognized command
		logger.Debug("no payload expected for command token ", s.req.RawToken)
		return nil
	}
}

// receiveListing prints the directory listing sent over the data channel.
func (s *transferSession) receiveListing() error {
	message, err := bridge.ReadMessage(s.data)
	if err != nil {
		return err
	}
	listing := bridge.Classify(message)
	fmt.Fprintln(s.config.Console, "Directory contents:")
	fmt.Fprintln(s.config.Console, listing.Message)
	return nil
}

// receiveFile runs the deferred status check and then streams the file
// payload to disk.
func (s *transferSession) receiveFile() error {
	// the verdict about the requested file arrives on the control channel
	// after the data channel is already connected
	message, err := bridge.ReadMessage(s.control)
	if err != nil {
		return err
	}
	status := bridge.Classify(message)
	if status.Kind == common.REPLY_ERROR {
		fmt.Fprintln(s.config.Console, "Message from server: "+status.Message)
		s.result = common.RESULT_SERVER_ERROR
		return nil
	}
	target := s.req.Filename
	if s.config.DownloadDir != "" {
		target = s.config.DownloadDir + "/" + s.req.Filename
	}
	if file.Exists(target) && file.IsFile1(target) {
		fmt.Fprintln(s.config.Console, s.req.Filename+" already exists. Overwrite? N = no, anything else = yes")
		answer, _ := s.reader.ReadString('\n')
		answer = strings.TrimRight(answer, "\r\n")
		if answer == "n" || answer == "N" {
			fmt.Fprintln(s.config.Console, "Transfer aborted.")
			s.result = common.RESULT_ABORTED
			return nil
		}
	}
	out, err := file.CreateFile(target)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.config.Console, "Transferring "+s.req.Filename+".")
	md5Hash := util.CreateMd5Hash()
	buf := make([]byte, common.MAX_MESSAGE_SIZE)
	for {
		n, rerr := s.data.Read(buf)
		if n > 0 {
			if _, werr := out.Write(buf[:n]); werr != nil {
				out.Close()
				s.discardPartial(target)
				return werr
			}
			md5Hash.Write(buf[:n])
			s.bytes += int64(n)
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			out.Close()
			s.discardPartial(target)
			return rerr
		}
	}
	if err = out.Close(); err != nil {
		s.discardPartial(target)
		return err
	}
	s.md5 = util.GetMd5HashString(md5Hash)
	fmt.Fprintln(s.config.Console, "Transfer complete.")
	return nil
}

// discardPartial removes a partially written download.
func (s *transferSession) discardPartial(target string) {
	logger.Warn("removing partial file ", target)
	file.Delete(target)
}
