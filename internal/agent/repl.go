package agent

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"macrolog/internal/agent/commands"

	"github.com/chzyer/readline"
	"github.com/mark3labs/mcp-go/mcp"
)

// promptPrefix is the word shown at the start of the REPL prompt.
const promptPrefix = "macrolog"

// promptChevronUnicode is the guillemet separator used in the prompt.
const promptChevronUnicode = "»"

// promptChevronASCII is the fallback chevron for terminals without unicode support.
const promptChevronASCII = ">"

// commandExecutionTimeout is the timeout for individual REPL command execution.
// Set to 5 minutes to allow for long-running tool calls while still providing
// a safety net against hung operations.
const commandExecutionTimeout = 5 * time.Minute

// REPL represents an interactive Read-Eval-Print Loop for MCP interaction.
// It provides a command-line interface for exploring and testing the nutrition
// tools with tab completion, command history, and real-time notifications.
//
// The REPL uses a modular command system where each command implements the
// commands.Command interface, enabling extensible functionality and a
// consistent user experience. Commands support aliases, usage documentation,
// and context-aware tab completion.
type REPL struct {
	client           *Client
	logger           *Logger
	rl               *readline.Instance
	notificationChan chan mcp.JSONRPCNotification
	stopChan         chan struct{}
	wg               sync.WaitGroup
	commandRegistry  *commands.Registry
	useUnicode       bool // Whether to use unicode characters in prompt
	showNotifs       bool // Whether to display incoming notifications
	mu               sync.RWMutex
}

// NewREPL creates a new REPL instance with the specified client and logger.
// It initializes the command registry and registers all available commands
// with their respective aliases and completion handlers.
func NewREPL(client *Client, logger *Logger) *REPL {
	repl := &REPL{
		client:           client,
		logger:           logger,
		notificationChan: make(chan mcp.JSONRPCNotification, 10),
		stopChan:         make(chan struct{}),
		commandRegistry:  commands.NewRegistry(),
		useUnicode:       detectUnicodeSupport(),
		showNotifs:       true,
	}

	// Register all commands
	repl.registerCommands()

	return repl
}

// detectUnicodeSupport checks if the terminal likely supports unicode characters.
// Returns true for most modern terminals, false for dumb terminals or when uncertain.
func detectUnicodeSupport() bool {
	term := os.Getenv("TERM")
	lang := os.Getenv("LANG")
	lcAll := os.Getenv("LC_ALL")

	// Dumb terminals or no terminal don't support unicode
	if term == "" || term == "dumb" {
		return false
	}

	// Check for UTF-8 in locale settings
	for _, v := range []string{lang, lcAll} {
		if strings.Contains(strings.ToLower(v), "utf-8") || strings.Contains(strings.ToLower(v), "utf8") {
			return true
		}
	}

	// Common terminals that support unicode
	// Note: vt100 is intentionally excluded as it's a legacy terminal without unicode support
	unicodeTerminals := []string{"xterm", "screen", "tmux", "alacritty", "kitty", "iterm"}
	termLower := strings.ToLower(term)
	for _, ut := range unicodeTerminals {
		if strings.Contains(termLower, ut) {
			return true
		}
	}

	// Default to true for most modern environments
	return true
}

// buildPrompt creates the REPL prompt.
// Falls back to an ASCII chevron if the terminal doesn't support unicode.
func (r *REPL) buildPrompt() string {
	r.mu.RLock()
	useUnicode := r.useUnicode
	r.mu.RUnlock()

	chevron := promptChevronASCII
	if useUnicode {
		chevron = promptChevronUnicode
	}

	return promptPrefix + " " + chevron + " "
}

// setNotificationsEnabled flips whether incoming notifications are displayed.
func (r *REPL) setNotificationsEnabled(enabled bool) {
	r.mu.Lock()
	r.showNotifs = enabled
	r.mu.Unlock()
}

// notificationsEnabled reports whether incoming notifications are displayed.
func (r *REPL) notificationsEnabled() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.showNotifs
}

// registerCommands registers all available commands with the command registry.
//
// Registered commands:
//   - help: Command documentation and usage information
//   - list: Display the available tools
//   - describe: Detailed information about a specific tool
//   - call: Execute tools with argument validation
//   - filter: Pattern-based tool filtering
//   - notifications: Toggle real-time update display
//   - exit: Graceful session termination
func (r *REPL) registerCommands() {
	// Create transport adapter for commands to check capabilities
	transport := &transportAdapter{client: r.client}

	r.commandRegistry.Register("help", commands.NewHelpCommand(r.client, r.logger, transport, r.commandRegistry))
	r.commandRegistry.Register("list", commands.NewListCommand(r.client, r.logger, transport))
	r.commandRegistry.Register("describe", commands.NewDescribeCommand(r.client, r.logger, transport))
	r.commandRegistry.Register("call", commands.NewCallCommand(r.client, r.logger, transport))
	r.commandRegistry.Register("filter", commands.NewFilterCommand(r.client, r.logger, transport))
	r.commandRegistry.Register("notifications", commands.NewNotificationsCommand(r.client, r.logger, transport, r.setNotificationsEnabled))
	r.commandRegistry.Register("exit", commands.NewExitCommand(r.client, r.logger, transport))
}

// transportAdapter adapts Client to TransportInterface for the command system.
// This adapter enables commands to query transport capabilities without
// directly depending on the Client implementation.
type transportAdapter struct {
	client *Client
}

// SupportsNotifications returns whether the underlying transport supports notifications.
func (t *transportAdapter) SupportsNotifications() bool {
	return t.client.SupportsNotifications()
}

// executeCommand parses and executes a command using the registry.
//
// Special handling:
//   - Empty input is silently ignored
//   - "?" is automatically translated to "help" command
//   - Unknown commands provide helpful error messages
//   - Execution uses a separate timeout context to prevent interference
func (r *REPL) executeCommand(input string) error {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return nil
	}

	commandName := strings.ToLower(parts[0])
	args := parts[1:]

	// Handle special case for ? alias to help command
	if commandName == "?" {
		commandName = "help"
	}

	// Get command from registry with alias support
	command, exists := r.commandRegistry.Get(commandName)
	if !exists {
		return fmt.Errorf("unknown command: %s. Type 'help' for available commands", parts[0])
	}

	// Create a separate context for command execution with a reasonable timeout.
	// This prevents tool calls from being canceled by agent lifecycle events
	// but still allows for reasonable timeouts and manual cancellation.
	commandCtx, commandCancel := context.WithTimeout(context.Background(), commandExecutionTimeout)
	defer commandCancel()

	return command.Execute(commandCtx, args)
}

// Run starts the REPL and enters the main interaction loop.
//
// The REPL continues running until:
//   - Context cancellation (Ctrl+C or external signal)
//   - EOF input (Ctrl+D)
//   - Explicit exit command
//   - Fatal readline errors
func (r *REPL) Run(ctx context.Context) error {
	// Route the client's notification channel into the REPL for transports
	// that support notifications
	if r.client.SupportsNotifications() && r.client.NotificationChan != nil {
		go func() {
			for notification := range r.client.NotificationChan {
				select {
				case r.notificationChan <- notification:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	// Set up readline with tab completion and history
	completer := r.createCompleter()
	historyFile := filepath.Join(os.TempDir(), ".macrolog_agent_history")

	config := &readline.Config{
		Prompt:          r.buildPrompt(),
		HistoryFile:     historyFile,
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	}

	rl, err := readline.NewEx(config)
	if err != nil {
		return fmt.Errorf("failed to create readline instance: %w", err)
	}
	defer rl.Close()
	r.rl = rl

	// Start notification listener in background for transports that support notifications
	if r.client.SupportsNotifications() {
		r.wg.Add(1)
		go r.notificationListener(ctx)
		r.logger.Info("MCP REPL started with notification support. Type 'help' for available commands. Use TAB for completion.")
	} else {
		r.logger.Info("MCP REPL started. Type 'help' for available commands. Use TAB for completion.")
		r.logger.Info("Note: Real-time notifications are not supported with %s transport.", r.client.transport)
	}
	fmt.Println()

	// Main REPL loop - process commands until shutdown
	for {
		// Check if context is cancelled before each iteration
		select {
		case <-ctx.Done():
			if r.client.SupportsNotifications() {
				close(r.stopChan)
				r.wg.Wait()
			}
			r.logger.Info("REPL shutting down...")
			return nil
		default:
		}

		// Read input with interrupt and EOF handling
		line, err := r.rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				continue // Empty line on Ctrl+C, continue
			}
		} else if err == io.EOF {
			// Graceful shutdown on Ctrl+D
			if r.client.SupportsNotifications() {
				close(r.stopChan)
				r.wg.Wait()
			}
			r.logger.Info("Goodbye!")
			return nil
		} else if err != nil {
			return fmt.Errorf("readline error: %w", err)
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue // Skip empty input
		}

		// Parse and execute command with error handling
		if err := r.executeCommand(input); err != nil {
			if err.Error() == "exit" {
				// Explicit exit command
				if r.client.SupportsNotifications() {
					close(r.stopChan)
					r.wg.Wait()
				}
				r.logger.Info("Goodbye!")
				return nil
			}
			// Display command execution errors to user
			r.logger.Error("Error: %v", err)
		}

		fmt.Println() // Add spacing between commands
	}
}

// notificationListener handles notifications in the background for real-time updates.
// It pauses readline for clean display, delegates to the client's notification
// handler for processing and cache refreshes, and updates tab completion when
// the tool list changes.
//
// Notifications received while display is disabled are dropped; the tool cache
// catches up the next time the user runs 'list tools'.
//
// This method is only started for transports that support notifications.
func (r *REPL) notificationListener(ctx context.Context) {
	defer r.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stopChan:
			return
		case notification := <-r.notificationChan:
			if !r.notificationsEnabled() {
				continue
			}

			// Temporarily pause readline for clean notification display
			if r.rl != nil {
				r.rl.Stdout().Write([]byte("\r\033[K"))
			}

			// Handle the notification (this will log it and update caches)
			if err := r.client.handleNotification(ctx, notification); err != nil {
				r.logger.Error("Failed to handle notification: %v", err)
			}

			// Update completer if the tool list changed
			if notification.Method == "notifications/tools/list_changed" {
				if r.rl != nil {
					r.rl.Config.AutoComplete = r.createCompleter()
				}
			}

			// Refresh readline prompt for continued interaction
			if r.rl != nil {
				r.rl.Refresh()
			}
		}
	}
}
