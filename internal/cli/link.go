package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/clangoi/judotimer/internal/domain"
	"github.com/clangoi/judotimer/internal/errors"
)

// AddLinkCommand adds the link command and its subcommands.
func AddLinkCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Link this timer with another device",
		Long: `Pair this timer with another device using a short code, and manage the
settings both sides share.

Examples:
  judotimer link code                      # Show a code to type on the other device
  judotimer link connect AB12CD Phone-2    # Link using the other device's code
  judotimer link set work_seconds=30 mode=tabata
  judotimer link status
  judotimer link unlink --force`,
	}

	addLinkCodeCmd(cmd)
	addLinkConnectCmd(cmd)
	addLinkUnlinkCmd(cmd)
	addLinkStatusCmd(cmd)
	addLinkSetCmd(cmd)
	addLinkHeartbeatCmd(cmd)

	root.AddCommand(cmd)
}

// withApp opens the app for a link subcommand.
func withApp(cmd *cobra.Command, fn func(*app, io.Writer, string) error) error {
	ctx := cmd.Context()
	a, err := openApp(ctx, GetLogger())
	if err != nil {
		return err
	}
	defer a.close(ctx)
	return fn(a, cmd.OutOrStdout(), cmd.Flag("output").Value.String())
}

func addLinkCodeCmd(parent *cobra.Command) {
	parent.AddCommand(&cobra.Command{
		Use:   "code",
		Short: "Generate a device code for the other device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *app, w io.Writer, output string) error {
				code, err := a.link.GenerateDeviceCode()
				if err != nil {
					return errors.Wrap(err, "failed to generate device code")
				}
				if output == OutputJSON {
					return writeJSON(w, map[string]any{"code": code, "linked": a.link.Status().IsLinked})
				}
				_, err = fmt.Fprintf(w, "Device code: %s\n", clockStyle.Render(code))
				return err
			})
		},
	})
}

func addLinkConnectCmd(parent *cobra.Command) {
	parent.AddCommand(&cobra.Command{
		Use:   "connect <code> [name]",
		Short: "Link with the device showing code",
		Long: `Link with another device. The name defaults to sync.device_name from the
configuration.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app, w io.Writer, output string) error {
				name := optionalArg(args, 1)
				if name == "" {
					name = a.cfg.Sync.DeviceName
				}
				if err := a.link.LinkDevice(cmd.Context(), args[0], name); err != nil {
					return errors.NewExitCode2Error(err)
				}
				return writeLinkStatus(w, output, a.link.Status(), a.link.Data())
			})
		},
	})
}

func addLinkUnlinkCmd(parent *cobra.Command) {
	var force bool
	cmd := &cobra.Command{
		Use:   "unlink",
		Short: "Forget the linked device and erase shared settings",
		Long: `Forget the linked device and erase the shared settings bag.

This operation cannot be undone. Use --force to skip confirmation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *app, w io.Writer, output string) error {
				status := a.link.Status()
				confirmed, err := confirmUnlink(status, force)
				if err != nil {
					return err
				}
				if !confirmed {
					_, _ = fmt.Fprintln(w, "Operation canceled.")
					return nil
				}
				if err := a.link.UnlinkDevice(cmd.Context()); err != nil {
					return err
				}
				if output == OutputJSON {
					return writeJSON(w, map[string]any{"status": "unlinked"})
				}
				_, err = fmt.Fprintf(w, "%s Device unlinked\n", checkmark())
				return err
			})
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")
	parent.AddCommand(cmd)
}

// confirmUnlink asks before a linked device is forgotten. Nothing is asked
// when there is no link or when force is set.
func confirmUnlink(status domain.SyncStatus, force bool) (bool, error) {
	if force || !status.IsLinked {
		return true, nil
	}
	if !terminalCheck() {
		return false, errors.Wrap(errors.ErrNonInteractiveMode, "cannot unlink")
	}

	var confirm bool
	if err := createUnlinkConfirmForm(status.LinkedDeviceName, &confirm).Run(); err != nil {
		return false, fmt.Errorf("failed to get confirmation: %w", err)
	}
	return confirm, nil
}

func addLinkStatusCmd(parent *cobra.Command) {
	parent.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show link status and shared settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *app, w io.Writer, output string) error {
				return writeLinkStatus(w, output, a.link.Status(), a.link.Data())
			})
		},
	})
}

func addLinkSetCmd(parent *cobra.Command) {
	parent.AddCommand(&cobra.Command{
		Use:   "set key=value...",
		Short: "Merge values into the shared settings",
		Long: `Merge key=value pairs into the shared settings. Values are read as JSON
when they parse (numbers, true/false, quoted strings, objects) and as plain
text otherwise.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			partial, err := parseAssignments(args)
			if err != nil {
				return err
			}
			return withApp(cmd, func(a *app, w io.Writer, output string) error {
				a.link.UpdateRemoteData(partial)
				return writeLinkStatus(w, output, a.link.Status(), a.link.Data())
			})
		},
	})
}

func addLinkHeartbeatCmd(parent *cobra.Command) {
	parent.AddCommand(&cobra.Command{
		Use:   "heartbeat",
		Short: "Record that the link is alive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *app, w io.Writer, output string) error {
				if err := a.link.SyncData(); err != nil {
					return err
				}
				return writeLinkStatus(w, output, a.link.Status(), a.link.Data())
			})
		},
	})
}

// parseAssignments turns key=value arguments into a data bag.
func parseAssignments(args []string) (domain.SyncDataBag, error) {
	bag := make(domain.SyncDataBag, len(args))
	for _, arg := range args {
		key, raw, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, errors.NewExitCode2Error(errors.Wrapf(errors.ErrInvalidArgument, "expected key=value, got %q", arg))
		}
		var value any
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			value = raw
		}
		bag[key] = value
	}
	return bag, nil
}

// linkView is the JSON status output.
type linkView struct {
	Status domain.SyncStatus  `json:"status"`
	Data   domain.SyncDataBag `json:"data"`
}

func writeLinkStatus(w io.Writer, output string, status domain.SyncStatus, data domain.SyncDataBag) error {
	if output == OutputJSON {
		return writeJSON(w, linkView{Status: status, Data: data})
	}

	if status.IsLinked {
		_, _ = fmt.Fprintf(w, "%s Linked with %s (code %s)\n", checkmark(), status.LinkedDeviceName, status.DeviceCode)
	} else {
		_, _ = fmt.Fprintf(w, "%s Not linked\n", warnStyle.Render("○"))
		if status.DeviceCode != "" {
			_, _ = fmt.Fprintf(w, "  pending code: %s\n", status.DeviceCode)
		}
	}
	if status.LastSyncTimestamp != nil {
		_, _ = fmt.Fprintf(w, "  last sync: %s\n", status.LastSyncTimestamp.Local().Format(time.RFC3339))
	}
	if len(data) == 0 {
		return nil
	}
	_, _ = fmt.Fprintln(w, "  shared settings:")
	for _, key := range slices.Sorted(maps.Keys(data)) {
		_, _ = fmt.Fprintf(w, "    %s = %v\n", key, data[key])
	}
	return nil
}
