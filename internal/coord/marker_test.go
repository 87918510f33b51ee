package coord

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"
)

func TestTouchSyncMarker(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "upcheck.sync")

	before := time.Now().Unix()
	if err := TouchSyncMarker(path); err != nil {
		t.Fatalf("TouchSyncMarker() error = %v", err)
	}
	after := time.Now().Unix()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read marker: %v", err)
	}
	stamp, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		t.Fatalf("marker %q is not a unix timestamp: %v", data, err)
	}
	if stamp < before || stamp > after {
		t.Errorf("timestamp %d outside [%d, %d]", stamp, before, after)
	}

	last, err := LastSync(path)
	if err != nil {
		t.Fatalf("LastSync() error = %v", err)
	}
	if last.Unix() != stamp {
		t.Errorf("LastSync() = %d, want %d", last.Unix(), stamp)
	}
}
