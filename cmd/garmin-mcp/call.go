package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/germanamz/garmin-mcp/pkg/app"
	"github.com/germanamz/garmin-mcp/pkg/config"
	"github.com/germanamz/garmin-mcp/pkg/tools/mcpclient"
)

func newCallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "call <tool> [json-arguments]",
		Short: "Call a tool on a running HTTP server",
		Example: `  garmin-mcp call get_stats '{"date":"2024-01-15"}'
  garmin-mcp call get_devices --url http://localhost:8000/mcp
  garmin-mcp call get_full_name --command "garmin-mcp --transport stdio"`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runCall,
	}

	cmd.Flags().String("url", "", "MCP endpoint URL (default: derived from --host, --port, and --path)")
	cmd.Flags().String("command", "", "spawn this server command and talk to it over stdio instead of HTTP")
	cmd.Flags().Duration("timeout", 30*time.Second, "call timeout")

	return cmd
}

func runCall(cmd *cobra.Command, args []string) error {
	endpoint, _ := cmd.Flags().GetString("url")
	command, _ := cmd.Flags().GetString("command")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	input := json.RawMessage(`{}`)
	if len(args) == 2 {
		if !json.Valid([]byte(args[1])) {
			return &app.ExitError{Code: 2, Err: fmt.Errorf("arguments for %s are not valid JSON", args[0])}
		}
		input = json.RawMessage(args[1])
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	client, err := connect(ctx, cmd, endpoint, command)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	text, err := client.CallTool(ctx, args[0], input)
	if errors.Is(err, mcpclient.ErrToolError) {
		return &app.ExitError{Code: 1, Err: err}
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}

func connect(ctx context.Context, cmd *cobra.Command, endpoint, command string) (*mcpclient.MCPClient, error) {
	if argv := strings.Fields(command); len(argv) > 0 {
		client, err := mcpclient.New(ctx, argv[0], argv[1:]...)
		if err != nil {
			return nil, fmt.Errorf("spawn %s: %w", argv[0], err)
		}
		return client, nil
	}

	if endpoint == "" {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return nil, err
		}
		endpoint = endpointURL(cfg.Server)
	}

	client, err := mcpclient.Dial(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", endpoint, err)
	}
	return client, nil
}

// endpointURL is the URL a local client reaches the server at. A wildcard
// listen host is dialled on loopback.
func endpointURL(s config.ServerConfig) string {
	host := s.Host
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(s.Port)) + s.Path
}
