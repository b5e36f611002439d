package shindo

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

func ConvertUnixtime(unixmilli int64) time.Time {
	return time.UnixMilli(unixmilli)
}

// ServerRecord is one MQTT message stored by the recorder.
type ServerRecord struct {
	ServerTime int64 // ms
	Topic      string
	Content    []byte
}

// WriteServerRecord writes rec as: server time [ms] (8 bytes, little
// endian), topic, NUL, payload size (4 bytes, big endian), payload.
func WriteServerRecord(w io.Writer, rec ServerRecord) error {
	buf := new(bytes.Buffer)
	buf.Grow(8 + len(rec.Topic) + 1 + 4 + len(rec.Content))
	if err := binary.Write(buf, binary.LittleEndian, rec.ServerTime); err != nil {
		return err
	}
	buf.WriteString(rec.Topic)
	buf.WriteByte(0)
	if err := binary.Write(buf, binary.BigEndian, int32(len(rec.Content))); err != nil {
		return err
	}
	buf.Write(rec.Content)
	_, err := buf.WriteTo(w)
	return err
}

// DecodeServerRecords reads records from r until EOF and hands each to fn.
// A record cut short by EOF ends the stream without error.
func DecodeServerRecords(r io.Reader, fn func(ServerRecord) error) error {
	br := bufio.NewReader(r)
	bufct := make([]byte, 8)
	bufsize := make([]byte, 4)
	for {
		if _, err := io.ReadFull(br, bufct); err != nil {
			return ignoreEOF(err)
		}
		ct := int64(binary.LittleEndian.Uint64(bufct))

		topic, err := br.ReadString(0)
		if err != nil {
			return ignoreEOF(err)
		}
		topic = topic[:len(topic)-1]

		if _, err := io.ReadFull(br, bufsize); err != nil {
			return ignoreEOF(err)
		}
		size := int32(binary.BigEndian.Uint32(bufsize))
		if size < 0 {
			return fmt.Errorf("reading data size: %d", size)
		}

		data := make([]byte, size)
		if _, err := io.ReadFull(br, data); err != nil {
			return ignoreEOF(err)
		}
		if err := fn(ServerRecord{ServerTime: ct, Topic: topic, Content: data}); err != nil {
			return err
		}
	}
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return nil
	}
	return err
}

func ReadServerRecord(fn string) ([]ServerRecord, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	records := make([]ServerRecord, 0)
	err = DecodeServerRecords(f, func(rec ServerRecord) error {
		records = append(records, rec)
		return nil
	})
	return records, err
}

// ReadServerRecordChan streams the records of fn to c and closes c.
func ReadServerRecordChan(fn string, c chan<- ServerRecord) error {
	defer close(c)
	f, err := os.Open(fn)
	if err != nil {
		return err
	}
	defer f.Close()
	return DecodeServerRecords(f, func(rec ServerRecord) error {
		c <- rec
		return nil
	})
}
