package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/vencordbg/internal/autostart"
	"github.com/jmylchreest/vencordbg/internal/config"
	"github.com/jmylchreest/vencordbg/internal/i18n"
)

func newAutostartCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "autostart",
		Short: "Manage running vencordbg at login",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "enable",
		Short: "Run vencordbg when you log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.setAutostart(cmd, true)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "disable",
		Short: "Stop running vencordbg at login",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.setAutostart(cmd, false)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show whether vencordbg runs at login",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, _, err := a.loadConfig()
			if err != nil {
				return err
			}
			loc, err := i18n.Load(cfg.Language, a.langDir)
			if err != nil {
				return err
			}

			registered, err := a.loginItems.Registered(autostart.DefaultName)
			if err != nil {
				return err
			}
			if registered {
				fmt.Fprintln(cmd.OutOrStdout(), loc.T("autorun.status.on"))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), loc.T("autorun.status.off"))
			}
			return nil
		},
	})

	return cmd
}

// setAutostart registers or removes the login item and records the choice
// so apply does not ask again.
func (a *app) setAutostart(cmd *cobra.Command, enabled bool) error {
	cfg, path, _, err := a.loadConfig()
	if err != nil {
		return err
	}
	loc, err := i18n.Load(cfg.Language, a.langDir)
	if err != nil {
		return err
	}

	if enabled {
		command, err := a.loginItems.Command()
		if err != nil {
			return err
		}
		if err := a.loginItems.Register(autostart.DefaultName, command); err != nil {
			return errors.New(loc.Tf("autorun.error", err))
		}
		fmt.Fprintln(cmd.OutOrStdout(), loc.T("autorun.registered")+" -> "+command)
	} else {
		if err := a.loginItems.Unregister(autostart.DefaultName); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), loc.T("autorun.removed"))
	}

	cfg.AutoRun = enabled
	cfg.AutoRunSet = true
	if err := config.Save(cfg, path); err != nil {
		return errors.New(loc.Tf("config.save.error", err))
	}
	return nil
}
