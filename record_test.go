package shindo

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRecords = []ServerRecord{
	{ServerTime: 1582846003456, Topic: "b8:27:eb:00:00:01/01/acc02", Content: []byte{1, 2, 3, 4}},
	{ServerTime: 1582846003556, Topic: "b8:27:eb:00:00:01/shindo/jma", Content: []byte{}},
	{ServerTime: 1582846003656, Topic: "b8:27:eb:00:00:02/01/info", Content: []byte(`{"name":"rz8"}`)},
}

func encodeRecords(t *testing.T, recs []ServerRecord) []byte {
	var buf bytes.Buffer
	for _, rec := range recs {
		require.NoError(t, WriteServerRecord(&buf, rec))
	}
	return buf.Bytes()
}

func TestDecodeServerRecords(t *testing.T) {
	b := encodeRecords(t, testRecords)
	got := make([]ServerRecord, 0)
	err := DecodeServerRecords(bytes.NewReader(b), func(rec ServerRecord) error {
		got = append(got, rec)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, testRecords, got)
}

func TestDecodeServerRecordsTruncated(t *testing.T) {
	b := encodeRecords(t, testRecords)
	for _, cut := range []int{3, 10, len(b) - 20, len(b) - 1} {
		got := make([]ServerRecord, 0)
		err := DecodeServerRecords(bytes.NewReader(b[:cut]), func(rec ServerRecord) error {
			got = append(got, rec)
			return nil
		})
		require.NoError(t, err, "cut %d", cut)
		assert.Less(t, len(got), len(testRecords))
		for i, rec := range got {
			assert.Equal(t, testRecords[i], rec)
		}
	}
}

func TestReadServerRecord(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "2020-02-28-08-26-43.dat")
	require.NoError(t, os.WriteFile(fn, encodeRecords(t, testRecords), 0644))

	records, err := ReadServerRecord(fn)
	require.NoError(t, err)
	assert.Equal(t, testRecords, records)

	c := make(chan ServerRecord)
	errc := make(chan error, 1)
	go func() {
		errc <- ReadServerRecordChan(fn, c)
	}()
	got := make([]ServerRecord, 0)
	for rec := range c {
		got = append(got, rec)
	}
	require.NoError(t, <-errc)
	assert.Equal(t, testRecords, got)

	_, err = ReadServerRecord(filepath.Join(t.TempDir(), "missing.dat"))
	assert.Error(t, err)
}

func TestConvertUnixtime(t *testing.T) {
	tm := ConvertUnixtime(1582846003456)
	assert.Equal(t, int64(1582846003), tm.Unix())
	assert.Equal(t, 456000000, tm.Nanosecond())
}
