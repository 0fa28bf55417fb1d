package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/sells-group/leadgen-cli/internal/resolve"
)

var (
	resolveName     string
	resolveFounders []string
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve a company's founder profile and website",
	RunE: func(cmd *cobra.Command, args []string) error {
		res := newResolver().Resolve(cmd.Context(), resolveName, resolveFounders)

		out := struct {
			ProfileURL         string         `json:"profile_url,omitempty"`
			CompanyLinkedInURL string         `json:"company_linkedin_url,omitempty"`
			CompanyWebsite     string         `json:"company_website,omitempty"`
			Method             resolve.Method `json:"method"`
		}{
			ProfileURL:         res.ProfileURL,
			CompanyLinkedInURL: res.CompanyLinkedInURL,
			CompanyWebsite:     res.CompanyWebsite,
			Method:             res.Method,
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func init() {
	resolveCmd.Flags().StringVar(&resolveName, "name", "", "company name (required)")
	resolveCmd.Flags().StringArrayVar(&resolveFounders, "founder", nil, "founder name, repeatable")
	_ = resolveCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(resolveCmd)
}
