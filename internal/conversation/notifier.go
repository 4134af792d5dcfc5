package conversation

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/ottocost/internal/domain"
	"github.com/hammamikhairi/ottocost/internal/logger"
)

// Compile-time interface check.
var _ domain.Notifier = (*CLINotifier)(nil)

var (
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#bae6fd")).Bold(true)
	urgentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#fca5a5")).Bold(true)
)

// PrintFunc is a function used to print formatted output.
// Matches the signature of both fmt.Printf and display.UI.Printf.
type PrintFunc func(format string, a ...interface{})

// CLINotifier writes notifications to the terminal. Results of commands
// go through Notify; failures go through NotifyUrgent and are logged.
type CLINotifier struct {
	log     *logger.Logger
	printFn PrintFunc
}

// NewCLINotifier creates a terminal notifier.
// If printFn is nil, fmt.Printf is used.
func NewCLINotifier(log *logger.Logger, printFn PrintFunc) *CLINotifier {
	if printFn == nil {
		printFn = func(format string, a ...interface{}) {
			fmt.Printf(format+"\n", a...)
		}
	}
	return &CLINotifier{log: log, printFn: printFn}
}

// Notify prints a normal notification.
func (n *CLINotifier) Notify(ctx context.Context, message string) error {
	n.log.Debug("notify: %s", message)
	n.printFn("  %s", noticeStyle.Render(message))
	return nil
}

// NotifyUrgent prints an error notification.
func (n *CLINotifier) NotifyUrgent(ctx context.Context, message string) error {
	n.log.Warn("notify-urgent: %s", message)
	n.printFn("  %s", urgentStyle.Render(message))
	return nil
}
