package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Save, list, and restore plan snapshots",
}

var snapshotSaveCmd = &cobra.Command{
	Use:   "save <label>",
	Short: "Capture the current plan under a label",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := GetSession(nil)
		if err != nil {
			return err
		}
		defer func() { _ = sess.Close() }()

		label := strings.Join(args, " ")
		sess.SaveSnapshot(label)
		sess.Flush()

		snaps := sess.Snapshots()
		if len(snaps) == 0 {
			fmt.Println("Nothing saved: label was blank.")
			return nil
		}
		latest := snaps[len(snaps)-1]
		fmt.Printf("Saved snapshot %q at %s.\n", latest.Label, latest.Timestamp.Format(time.RFC3339))
		return nil
	},
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := GetSession(nil)
		if err != nil {
			return err
		}
		defer func() { _ = sess.Close() }()

		snaps := sess.Snapshots()
		if len(snaps) == 0 {
			fmt.Println("No snapshots saved.")
			return nil
		}
		for _, snap := range snaps {
			fmt.Printf("%s  %s  (%d items)\n",
				snap.Timestamp.Format(time.RFC3339), snap.Label, len(snap.Plan.ActionItems))
		}
		return nil
	},
}

var snapshotRestoreCmd = &cobra.Command{
	Use:   "restore <timestamp>",
	Short: "Replace the current plan with a snapshot",
	Long:  "Restores the snapshot whose RFC3339 timestamp matches, e.g. 2026-09-01T14:30:00Z.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ts, err := time.Parse(time.RFC3339, args[0])
		if err != nil {
			return fmt.Errorf("invalid timestamp %q: %w", args[0], err)
		}
		sess, err := GetSession(nil)
		if err != nil {
			return err
		}
		defer func() { _ = sess.Close() }()

		before := sess.Plan().Meta.UpdatedAt
		sess.LoadSnapshot(ts)
		sess.Flush()

		if sess.Plan().Meta.UpdatedAt.Equal(before) {
			fmt.Printf("No snapshot with timestamp %s.\n", args[0])
			return nil
		}
		fmt.Printf("Restored snapshot from %s.\n", args[0])
		return nil
	},
}

func init() {
	snapshotCmd.AddCommand(snapshotSaveCmd, snapshotListCmd, snapshotRestoreCmd)
	rootCmd.AddCommand(snapshotCmd)
}
