package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"TodoAPI/config"
	"TodoAPI/utils/redislog"

	"github.com/spf13/cobra"
)

func newAuditCommand() *cobra.Command {
	var n int64
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Print the newest audit log entries from Redis",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			rdb, err := config.InitRedis(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if rdb == nil {
				return errors.New("redis_addr is not set, there is no audit log")
			}
			defer rdb.Close()

			audit := redislog.New(rdb, redislog.DefaultKey, redislog.DefaultMax, redislog.DefaultRetention)
			entries, err := audit.Recent(cmd.Context(), n)
			if err != nil {
				return fmt.Errorf("read %s: %w", audit.Key(), err)
			}
			return writeEntries(cmd.OutOrStdout(), entries)
		},
	}
	cmd.Flags().Int64VarP(&n, "count", "n", 20, "number of entries, newest first")
	return cmd
}

// writeEntries prints one JSON object per line.
func writeEntries(w io.Writer, entries []redislog.Entry) error {
	enc := json.NewEncoder(w)
	for _, e := range entries {
		if err := enc.Encode(e); err != nil {
			return err
		}
	}
	return nil
}
