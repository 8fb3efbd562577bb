package imaging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// SaveSnapshot writes img to dir as <prefix>_<timestamp>.png for offline
// debugging. Snapshots are never read back by the system; failures are
// logged and swallowed. A no-op when dir is empty.
func SaveSnapshot(logger *slog.Logger, dir, prefix string, img []byte) {
	if dir == "" {
		return
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Warn("imaging.snapshot.mkdir_failed", "dir", dir, "error", err)
		return
	}
	name := fmt.Sprintf("%s_%s.png", prefix, time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, img, 0o644); err != nil {
		logger.Warn("imaging.snapshot.write_failed", "path", path, "error", err)
		return
	}
	logger.Debug("imaging.snapshot.saved", "path", path, "bytes", len(img))
}
