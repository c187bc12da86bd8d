package mirror

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/prplkane/umazona-website/internal/events"
)

// Mirror keeps a local directory per discovered store folder so offline
// tooling has a place to land downloads. Strictly best-effort.
type Mirror struct {
	root   string
	logger *slog.Logger
}

func New(root string, logger *slog.Logger) *Mirror {
	return &Mirror{root: root, logger: logger}
}

// EnsureDirs creates one directory per folder name under the mirror
// root. Failures are logged and swallowed.
func (m *Mirror) EnsureDirs(names []string) {
	for _, name := range names {
		dir := filepath.Join(m.root, sanitize(name))
		if err := os.MkdirAll(dir, 0755); err != nil {
			m.logger.Warn("failed to create mirror directory", "dir", dir, "error", err)
		}
	}
}

// Handler builds the bus handler fed by folder discoveries.
func (m *Mirror) Handler() events.HandlerFunc {
	return func(ctx context.Context, msg *message.Message) error {
		var payload events.FoldersDiscoveredPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return fmt.Errorf("failed to decode folder payload: %w", err)
		}
		m.EnsureDirs(payload.Names)
		return nil
	}
}

// sanitize strips path separators so a folder name cannot escape the
// mirror root.
func sanitize(name string) string {
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, string(os.PathSeparator), "_")
	return strings.TrimSpace(name)
}
