package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/prompt-workstation/internal/templates"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the available prompt templates",
	Long: `Templates lists every prompt template identifier: the built-ins plus
any defined in YAML or TOML files under the templates directory. Files are
merged in filename order, so later files override earlier ones.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := templates.Load(cfg.TemplatesDir)
		if err != nil {
			return err
		}

		show, _ := cmd.Flags().GetString("show")
		if show != "" {
			body, err := registry.Get(show)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), body)
			return nil
		}

		for _, id := range registry.IDs() {
			fmt.Fprintln(cmd.OutOrStdout(), id)
		}
		return nil
	},
}

func init() {
	templatesCmd.Flags().String("show", "", "print the body of one template")

	rootCmd.AddCommand(templatesCmd)
}
