package badger

import (
	"encoding/binary"
	"fmt"
	"time"
)

// Key prefixes for different data types
const (
	mailRecordPrefix     = "mailrec"
	mailRecordDatePrefix = "mailrecd"
)

// makeMailRecordKey generates a key for a mail record by its transport Id.
func makeMailRecordKey(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", mailRecordPrefix, id))
}

// makeMailDateKey generates a composite key for the date index.
// Format: prefix:timestamp:id
func makeMailDateKey(date time.Time, id string) []byte {
	prefix := mailRecordDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 + len(id)
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(date.UnixMicro()))
	offset += 8
	copy(buf[offset:], []byte(id))
	return buf
}

// makePartialMailDateKey generates a partial key for date range queries.
// Format: prefix:timestamp
func makePartialMailDateKey(date time.Time) []byte {
	prefix := mailRecordDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(date.UnixMicro()))
	return buf
}
