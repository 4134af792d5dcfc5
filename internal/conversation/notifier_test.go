package conversation

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/hammamikhairi/ottocost/internal/logger"
)

func TestCLINotifier(t *testing.T) {
	var lines []string
	n := NewCLINotifier(logger.New(logger.LevelOff, nil), func(format string, a ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, a...))
	})
	ctx := context.Background()

	if err := n.Notify(ctx, "committed"); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if err := n.NotifyUrgent(ctx, "no recipe selected"); err != nil {
		t.Fatalf("notify urgent: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "committed") || !strings.Contains(lines[1], "no recipe selected") {
		t.Fatalf("unexpected output: %q", lines)
	}
}
