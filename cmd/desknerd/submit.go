package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"desknerd/internal/operation"
)

func newSubmitCmd() *cobra.Command {
	var (
		fromFile string
		actor    string
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit an operation and wait for its terminal state",
		Long: `Submit reads an operation envelope as JSON and runs it to completion.

The envelope names the operation type and its parameters:

  {"type": "FILE_OPERATION", "params": {"action": "READ", "path": "/etc/hostname"}}
  {"type": "COMMAND_EXECUTION", "params": {"command": "ls -la", "timeout_ms": 5000}}

Input comes from --file, or from stdin when --file is omitted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readEnvelope(fromFile)
			if err != nil {
				return err
			}
			params, err := operation.DecodeEnvelope(data)
			if err != nil {
				return err
			}

			rt, err := buildRuntime(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.close()

			snapshot, runErr := rt.pipeline.SubmitParams(cmd.Context(), params, actor)
			out, err := json.MarshalIndent(snapshot, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))

			if runErr != nil {
				return fmt.Errorf("operation %s: %w", snapshot.Status, runErr)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&fromFile, "file", "f", "", "read the operation envelope from a JSON file")
	cmd.Flags().StringVar(&actor, "actor", "local", "actor submitting the operation")
	return cmd
}

func readEnvelope(path string) ([]byte, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read envelope: %w", err)
	}
	return data, nil
}
