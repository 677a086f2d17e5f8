package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"google.golang.org/api/option"
	"md2gdocs/config"
	"md2gdocs/gdocs"
)

func newAuthCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Authorize access to Google Docs and Drive",
		Long: `Run the OAuth installed-app flow and cache the token at token_path.
With auth_mode = "service-account" this only checks that the key loads.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			prompt := gdocs.Prompt{In: cmd.InOrStdin(), Out: cmd.ErrOrStderr()}

			httpClient, err := gdocs.HTTPClient(ctx, a.cfg, prompt)
			if err != nil {
				return err
			}
			if _, err := gdocs.NewClientWithOptions(ctx, option.WithHTTPClient(httpClient)); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			s := newStyles(out)
			fmt.Fprintln(out, s.Success.Render("Authentication complete."))
			if a.cfg.AuthMode == config.AuthOAuth {
				s.field(out, "token", a.cfg.TokenPath)
			}
			return nil
		},
	}
}
