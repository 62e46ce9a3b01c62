package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"docsum/internal/app"
)

func (c *cli) summarizeCmd() *cobra.Command {
	var prompt string
	cmd := &cobra.Command{
		Use:   "summarize <file.pdf>",
		Short: "Summarize a PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("prompt") {
				prompt = c.settings.Prompt
			}
			resp := c.api.Summarize(cmd.Context(), app.SummarizeRequest{
				ProviderOptions: c.providerOptions(cmd),
				FilePath:        args[0],
				Prompt:          prompt,
			})
			return c.report(cmd, resp, resp.Success, resp.Error, func(w io.Writer) {
				fmt.Fprintln(w, titleStyle.Render("Summary"))
				fmt.Fprintln(w, resp.Summary)
			})
		},
	}
	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "Summary instructions (default: saved prompt)")
	return cmd
}

func (c *cli) chatCmd() *cobra.Command {
	var includeReasoning bool
	cmd := &cobra.Command{
		Use:   "chat <prompt>...",
		Short: "Send a single prompt to the provider",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp := c.api.Chat(cmd.Context(), app.ChatRequest{
				ProviderOptions:  c.providerOptions(cmd),
				Prompt:           strings.Join(args, " "),
				IncludeReasoning: includeReasoning,
			})
			return c.report(cmd, resp, resp.Success, resp.Error, func(w io.Writer) {
				if resp.Response.Reasoning != nil {
					fmt.Fprintln(w, dimStyle.Render(*resp.Response.Reasoning))
					fmt.Fprintln(w)
				}
				fmt.Fprintln(w, resp.Response.Output)
			})
		},
	}
	cmd.Flags().BoolVar(&includeReasoning, "reasoning", false, "Also print the model's reasoning block")
	return cmd
}

func (c *cli) testCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Check credentials and reachability of the provider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := c.providerOptions(cmd)
			resp := c.api.TestConnection(cmd.Context(), app.ConnectionRequest{
				APIKey:  opts.APIKey,
				BaseURL: opts.BaseURL,
				Model:   opts.Model,
				Timeout: opts.Timeout,
			})
			return c.report(cmd, resp, resp.Success, resp.Error, func(w io.Writer) {
				fmt.Fprintln(w, successStyle.Render("✓ Connection successful"))
				if resp.Message != nil {
					fmt.Fprintln(w, dimStyle.Render(*resp.Message))
				}
			})
		},
	}
}

func (c *cli) analyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <file.pdf>",
		Short: "Show page count, title and size of a PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp := c.api.Analyze(cmd.Context(), app.AnalyzeRequest{FilePath: args[0]})
			return c.report(cmd, resp, resp.Success, resp.Error, func(w io.Writer) {
				hasText := "no"
				if resp.HasText {
					hasText = "yes"
				}
				fmt.Fprintln(w, boxStyle.Render(strings.Join([]string{
					titleStyle.Render(resp.Title),
					field("Pages", fmt.Sprint(resp.PageCount)),
					field("Text", hasText),
					field("Size", resp.FileSize),
				}, "\n")))
			})
		},
	}
}

func (c *cli) extractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <file.pdf>",
		Short: "Print the cleaned text of a PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp := c.api.ExtractText(cmd.Context(), app.AnalyzeRequest{FilePath: args[0]})
			return c.report(cmd, resp, resp.Success, resp.Error, func(w io.Writer) {
				fmt.Fprintln(w, *resp.Content)
			})
		},
	}
}
