package errlog

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate_WritesHeaderOnly(t *testing.T) {
	fsys := memfs.New()

	sink, err := Create(fsys, "scan_errors.log")
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	data, err := util.ReadFile(fsys, "scan_errors.log")
	require.NoError(t, err)
	assert.Equal(t, Header, string(data))
	assert.Equal(t, 0, sink.Count())
}

func TestCreate_TruncatesPreviousLog(t *testing.T) {
	fsys := memfs.New()
	require.NoError(t, util.WriteFile(fsys, "scan_errors.log", []byte("stale content from last run\n"), 0644))

	sink, err := Create(fsys, "scan_errors.log")
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	data, err := util.ReadFile(fsys, "scan_errors.log")
	require.NoError(t, err)
	assert.Equal(t, Header, string(data))
}

func TestRecord_FormatsLines(t *testing.T) {
	fsys := memfs.New()

	sink, err := Create(fsys, "log.txt")
	require.NoError(t, err)

	sink.Record("/docs/bad.pdf", errors.New("parse: not a PDF file: invalid header"))
	sink.Record("/docs/ok.pdf", nil)
	require.NoError(t, sink.Close())

	data, err := util.ReadFile(fsys, "log.txt")
	require.NoError(t, err)
	assert.Equal(t, Header+"/docs/bad.pdf | Error: parse: not a PDF file: invalid header\n", string(data))
	assert.Equal(t, 1, sink.Count())
}

func TestRecord_TruncatesLongMessages(t *testing.T) {
	fsys := memfs.New()

	sink, err := Create(fsys, "log.txt")
	require.NoError(t, err)
	sink.Record("big.pdf", errors.New(strings.Repeat("é", 500)))
	require.NoError(t, sink.Close())

	data, err := util.ReadFile(fsys, "log.txt")
	require.NoError(t, err)

	records := readRecords(string(data))
	require.Len(t, records, 1)
	assert.Equal(t, "big.pdf", records[0].Path)
	assert.Equal(t, MaxMessageLen, len([]rune(records[0].Message)))
}

func TestRecord_ConcurrentWritersDoNotInterleave(t *testing.T) {
	fsys := memfs.New()

	sink, err := Create(fsys, "log.txt")
	require.NoError(t, err)

	const writers, perWriter = 8, 50
	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				sink.Record(fmt.Sprintf("w%d/f%d.pdf", w, i), fmt.Errorf("failure %d from worker %d", i, w))
			}
		}(w)
	}
	wg.Wait()
	require.NoError(t, sink.Close())

	data, err := util.ReadFile(fsys, "log.txt")
	require.NoError(t, err)

	records := readRecords(string(data))
	assert.Len(t, records, writers*perWriter)
	assert.Equal(t, writers*perWriter, sink.Count())
	for _, rec := range records {
		assert.True(t, strings.HasPrefix(rec.Message, "failure "), rec.Message)
	}
}

func TestRecord_AfterCloseIsDropped(t *testing.T) {
	fsys := memfs.New()

	sink, err := Create(fsys, "log.txt")
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	assert.NotPanics(t, func() {
		sink.Record("late.pdf", errors.New("too late"))
	})
	assert.NoError(t, sink.Close())
	assert.Equal(t, 0, sink.Count())
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"short", "oops", 4},
		{"exact", strings.Repeat("a", MaxMessageLen), MaxMessageLen},
		{"long ascii", strings.Repeat("a", 450), MaxMessageLen},
		{"long multibyte", strings.Repeat("日", 300), MaxMessageLen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, []rune(Truncate(tt.in)), tt.want)
		})
	}
}

func TestRecordLine_MessageMayContainSeparator(t *testing.T) {
	content := Header +
		Record{Path: "a.pdf", Message: "x"}.Line() +
		"not a record\n\n" +
		Record{Path: "b.pdf", Message: "y | z"}.Line()

	records := readRecords(content)
	require.Len(t, records, 2)
	assert.Equal(t, Record{Path: "a.pdf", Message: "x"}, records[0])
	assert.Equal(t, Record{Path: "b.pdf", Message: "y | z"}, records[1])
}

// readRecords parses a log written by Sink, skipping the header.
func readRecords(content string) []Record {
	body := strings.TrimPrefix(content, Header)
	var records []Record
	for _, line := range strings.Split(body, "\n") {
		if line == "" {
			continue
		}
		path, msg, ok := strings.Cut(line, " | Error: ")
		if !ok {
			continue
		}
		records = append(records, Record{Path: path, Message: msg})
	}
	return records
}
