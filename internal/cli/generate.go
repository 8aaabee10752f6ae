package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"release-metadata/internal/app"
)

// mergeFromPath is the value --merge takes when given without ORIGINAL.
const mergeFromPath = "@path"

type generateOptions struct {
	Path               string
	Save               bool
	NoSave             bool
	Merge              string
	MergeOriginal      string
	MergeOverlay       string
	Branch             string
	Remote             string
	NoGit              bool
	Secure             bool
	SecureIfProduction bool
	OmitRepoURL        bool
	ReleaseName        string
	Timestamp          string
}

func addGenerateFlags(cmd *cobra.Command, opts *generateOptions) {
	cmd.Flags().StringVar(&opts.Path, "path", "", "The path and/or filename for the metadata (implies --save)")
	cmd.Flags().BoolVar(&opts.Save, "save", false, "Write the metadata file instead of printing it")
	cmd.Flags().BoolVar(&opts.NoSave, "no-save", false, "Print to standard output even when --path is given")
	cmd.Flags().StringVar(&opts.Merge, "merge", "", "Merge with an existing file: --merge alone reads --path if it exists, --merge=ORIGINAL requires ORIGINAL to exist")
	cmd.Flags().Lookup("merge").NoOptDefVal = mergeFromPath
	cmd.Flags().StringVar(&opts.MergeOriginal, "merge-original", "", "Merge the generated metadata over the ORIGINAL file")
	cmd.Flags().StringVar(&opts.MergeOverlay, "merge-overlay", "", "Merge the OVERLAY file over the generated metadata")
	cmd.Flags().StringVar(&opts.Branch, "branch", "", "The main git branch, if not main or master")
	cmd.Flags().StringVar(&opts.Remote, "remote", "", "The git remote to use, if not origin")
	cmd.Flags().BoolVar(&opts.NoGit, "no-git", false, "Disable git processing")
	cmd.Flags().BoolVar(&opts.Secure, "secure", false, "Resolve only the secure version of the metadata")
	cmd.Flags().BoolVar(&opts.SecureIfProduction, "secure-if-production", false, "Resolve the secure version when APP_ENV is production")
	cmd.Flags().BoolVar(&opts.OmitRepoURL, "omit-repo-url", false, "Omit the repository URL from the secure version")
	cmd.Flags().StringVar(&opts.ReleaseName, "release-name", "", "The release name")
	cmd.Flags().StringVar(&opts.Timestamp, "timestamp", "", "The release timestamp")

	_ = viper.BindPFlag("path", cmd.Flags().Lookup("path"))
	_ = viper.BindPFlag("save", cmd.Flags().Lookup("save"))
	_ = viper.BindPFlag("merge_original", cmd.Flags().Lookup("merge-original"))
	_ = viper.BindPFlag("merge_overlay", cmd.Flags().Lookup("merge-overlay"))
	_ = viper.BindPFlag("branch", cmd.Flags().Lookup("branch"))
	_ = viper.BindPFlag("remote", cmd.Flags().Lookup("remote"))
	_ = viper.BindPFlag("no_git", cmd.Flags().Lookup("no-git"))
	_ = viper.BindPFlag("secure", cmd.Flags().Lookup("secure"))
	_ = viper.BindPFlag("secure_if_production", cmd.Flags().Lookup("secure-if-production"))
	_ = viper.BindPFlag("omit_repo_url", cmd.Flags().Lookup("omit-repo-url"))
	_ = viper.BindPFlag("release_name", cmd.Flags().Lookup("release-name"))
	_ = viper.BindPFlag("timestamp", cmd.Flags().Lookup("timestamp"))
}

func runGenerate(ctx context.Context, cmd *cobra.Command, opts generateOptions) error {
	req := app.GenerateRequest{
		Path:               resolveString(cmd, opts.Path, "path", "path"),
		Save:               resolveSave(cmd, opts),
		MergeOriginal:      resolveString(cmd, opts.MergeOriginal, "merge_original", "merge-original"),
		MergeOverlay:       resolveString(cmd, opts.MergeOverlay, "merge_overlay", "merge-overlay"),
		Branch:             resolveString(cmd, opts.Branch, "branch", "branch"),
		Remote:             resolveString(cmd, opts.Remote, "remote", "remote"),
		NoGit:              resolveBool(cmd, opts.NoGit, "no_git", "no-git"),
		Secure:             resolveBool(cmd, opts.Secure, "secure", "secure"),
		SecureIfProduction: resolveBool(cmd, opts.SecureIfProduction, "secure_if_production", "secure-if-production"),
		OmitRepoURL:        resolveBool(cmd, opts.OmitRepoURL, "omit_repo_url", "omit-repo-url"),
		ReleaseName:        resolveString(cmd, opts.ReleaseName, "release_name", "release-name"),
		Timestamp:          resolveString(cmd, opts.Timestamp, "timestamp", "timestamp"),
	}
	if opts.Merge == mergeFromPath {
		req.MergeFromPath = true
	} else {
		req.Merge = opts.Merge
	}

	result, err := newAppService().Generate(ctx, req)
	if err != nil {
		return err
	}
	if result.Saved {
		return nil
	}
	_, err = cmd.OutOrStdout().Write(result.Output)
	return err
}

// resolveSave is nil when neither flag nor configuration decides, leaving
// --path to imply saving.
func resolveSave(cmd *cobra.Command, opts generateOptions) *bool {
	if flagChanged(cmd, "no-save") && opts.NoSave {
		save := false
		return &save
	}
	if flagChanged(cmd, "save") {
		save := opts.Save
		return &save
	}
	if cmd != nil && viper.IsSet("save") {
		save := viper.GetBool("save")
		return &save
	}
	return nil
}
