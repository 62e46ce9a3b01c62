package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"docsum/internal/config"
)

func (c *cli) settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show, save or clear the saved provider settings",
	}
	cmd.AddCommand(c.settingsShowCmd(), c.settingsSaveCmd(), c.settingsClearCmd())
	return cmd
}

func (c *cli) settingsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := c.settings
			s.APIKey = maskKey(s.APIKey)
			if c.jsonOut {
				return writeJSON(cmd.OutOrStdout(), s)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, titleStyle.Render("Settings")+" "+dimStyle.Render(c.settingsPath))
			fmt.Fprintln(w, field("Key", s.APIKey))
			fmt.Fprintln(w, field("URL", s.BaseURL))
			fmt.Fprintln(w, field("Model", s.Model))
			fmt.Fprintln(w, field("Tokens", fmt.Sprint(s.MaxTokens)))
			fmt.Fprintln(w, field("Temp", fmt.Sprint(s.Temperature)))
			fmt.Fprintln(w, field("Timeout", fmt.Sprintf("%ds", s.Timeout)))
			fmt.Fprintln(w, field("Prompt", s.Prompt))
			return nil
		},
	}
}

func (c *cli) settingsSaveCmd() *cobra.Command {
	var prompt string
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save the provider flags given on the command line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := c.merged(cmd)
			if cmd.Flags().Changed("prompt") {
				s.Prompt = prompt
			}
			if err := config.SaveSettings(c.settingsPath, s); err != nil {
				return err
			}
			c.log.Debug("settings saved", "path", c.settingsPath)
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("✓ Settings saved to "+c.settingsPath))
			return nil
		},
	}
	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "Default summary instructions")
	return cmd
}

func (c *cli) settingsClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the saved settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.ClearSettings(c.settingsPath); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("✓ Settings cleared"))
			return nil
		},
	}
}

func maskKey(key string) string {
	switch {
	case key == "":
		return "(not set)"
	case len(key) <= 8:
		return "****"
	default:
		return key[:4] + "****" + key[len(key)-4:]
	}
}
