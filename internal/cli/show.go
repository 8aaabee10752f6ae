package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"release-metadata/internal/app"
)

type showOptions struct {
	Path        string
	Insecure    bool
	OmitRepoURL bool
	RequireFile bool
}

func newShowCommand() *cobra.Command {
	opts := showOptions{}
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the metadata an application would expose",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShow(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Path, "path", "", "The metadata file the application reads")
	cmd.Flags().BoolVar(&opts.Insecure, "insecure", false, "Disable security filtering")
	cmd.Flags().BoolVar(&opts.OmitRepoURL, "omit-repo-url", false, "Omit the repository URL in production")
	cmd.Flags().BoolVar(&opts.RequireFile, "require-file", false, "Fail in production when the metadata file is missing")

	_ = viper.BindPFlag("show_path", cmd.Flags().Lookup("path"))
	_ = viper.BindPFlag("show_insecure", cmd.Flags().Lookup("insecure"))
	_ = viper.BindPFlag("show_omit_repo_url", cmd.Flags().Lookup("omit-repo-url"))
	_ = viper.BindPFlag("show_require_file", cmd.Flags().Lookup("require-file"))
	return cmd
}

func runShow(ctx context.Context, cmd *cobra.Command, opts showOptions) error {
	result, err := newAppService().Show(ctx, app.ShowRequest{
		Path:        resolveString(cmd, opts.Path, "show_path", "path"),
		Insecure:    resolveBool(cmd, opts.Insecure, "show_insecure", "insecure"),
		OmitRepoURL: resolveBool(cmd, opts.OmitRepoURL, "show_omit_repo_url", "omit-repo-url"),
		RequireFile: resolveBool(cmd, opts.RequireFile, "show_require_file", "require-file"),
	})
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(result.Output)
	return err
}
