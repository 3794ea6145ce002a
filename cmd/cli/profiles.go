package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sevigo/code-lens/internal/llm"
)

var profilesJSON bool

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List the available review profiles",
	Long: `List the available review profiles. Built-in profiles are always
present; files in PROFILES_DIR add to or replace them.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		registry, err := llm.NewProfileRegistry(viper.GetString("PROFILES_DIR"))
		if err != nil {
			return err
		}
		return printProfiles(cmd.OutOrStdout(), registry, viper.GetString("REVIEW_PROFILE"), profilesJSON)
	},
}

func init() { //nolint:gochecknoinits // Cobra command registration
	profilesCmd.Flags().BoolVar(&profilesJSON, "json", false, "Print profiles as JSON")
	rootCmd.AddCommand(profilesCmd)
}

func printProfiles(w io.Writer, registry *llm.ProfileRegistry, active string, asJSON bool) error {
	if active == "" {
		active = llm.DefaultProfile
	}
	profiles := registry.List()

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(profiles)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tACTIVE\tDESCRIPTION")
	for _, p := range profiles {
		mark := ""
		if p.Name == active {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Name, mark, p.Description)
	}
	return tw.Flush()
}
