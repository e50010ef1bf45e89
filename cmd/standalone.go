package cmd

import (
	"github.com/spf13/cobra"
)

// standaloneCmd defines the standalone command structure.
// This command starts both the macrolog MCP server and the
// interactive agent REPL in a single process.
var standaloneCmd = &cobra.Command{
	Use:   "standalone",
	Short: "Start the macrolog server and REPL in one process",
	Long: `Standalone mode starts the macrolog MCP server and the agent REPL in a
single process. The server runs silently in the background while the
REPL owns the terminal. Exiting the REPL stops the server.`,
	RunE: runStandalone,
}

// runStandalone is the main entry point for the standalone command
func runStandalone(cmd *cobra.Command, args []string) error {
	// Enable agent REPL mode
	agentREPL = true
	// Disable serve logging
	serveSilent = true

	// Start the MCP server in the background
	go runServe(cmd, args)

	// Run the REPL in the foreground; its connection logic retries while
	// the server is still starting up
	return runAgent(cmd, args)
}

// init registers the standalone command and its flags with the root command.
// This is called automatically when the package is imported.
func init() {
	rootCmd.AddCommand(standaloneCmd)

	// Inherit flags from agent and serve commands
	standaloneCmd.Flags().AddFlagSet(agentCmd.Flags())
	standaloneCmd.Flags().AddFlagSet(serveCmd.Flags())
}
