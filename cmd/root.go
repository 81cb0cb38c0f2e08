package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/penwyp/tfget/internal/cache"
	"github.com/penwyp/tfget/internal/config"
	"github.com/penwyp/tfget/internal/install"
	"github.com/penwyp/tfget/internal/logger"
	"github.com/penwyp/tfget/internal/manifest"
	"github.com/penwyp/tfget/internal/platform"
	"github.com/penwyp/tfget/internal/resolve"
	"github.com/penwyp/tfget/releases"
	"github.com/penwyp/tfget/ui"
)

// version holds the current version of tfget, set at build time via
// ldflags.
var version = "dev"

// GetVersionString returns a formatted version string.
func GetVersionString() string {
	return fmt.Sprintf("tfget version %s", version)
}

// envExplicitVersion mirrors the --install flag.
const envExplicitVersion = "TFGET_VERSION"

// Key collaborators are package vars so tests can inject deterministic
// stubs; runtime uses the default implementations below.
var (
	appLogger *zap.Logger

	listerProvider     = defaultListerProvider
	downloaderProvider = defaultDownloaderProvider
	constraintProvider = defaultConstraintProvider
	selectVersion      = resolve.SelectFunc(ui.Prompt)
	installBinary      = defaultInstall
)

func defaultListerProvider(baseURL string) resolve.Lister {
	return releases.NewClient(baseURL, appLogger)
}

func defaultDownloaderProvider(baseURL string) cache.Downloader {
	return releases.NewClient(baseURL, appLogger)
}

func defaultConstraintProvider(dir string) resolve.ConstraintSource {
	return manifest.NewLocator(dir, appLogger)
}

func defaultInstall(a *cache.Archive, target string) error {
	return install.NewInstaller(appLogger).Install(a, target)
}

// -------------------------------------------------

var rootCmd = &cobra.Command{
	Use:   "tfget",
	Short: "Install a terraform release, resolved from flags, project constraints, or a picker",
	Long: `tfget resolves which terraform version to install and installs it.

Resolution order:
  1. an explicit version (--install flag or ` + envExplicitVersion + ` env var), used verbatim;
  2. the required_version constraint of the surrounding terraform project,
     matched against the published release listing;
  3. an interactive picker over the release listing.

Archives are cached next to the installed binary, so reinstalling a
version never refetches it.`,
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	flagListAll bool
	flagInstall string
	flagDryRun  bool
	flagDebug   bool
	flagVersion bool
)

func init() {
	rootCmd.Flags().BoolVarP(&flagListAll, "list-all", "l", false, "include pre-release versions in listings")
	rootCmd.Flags().StringVarP(&flagInstall, "install", "i", "", "install this exact version (env "+envExplicitVersion+")")
	rootCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "resolve and print the version but do not install")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "enable debug output for troubleshooting")
	rootCmd.Flags().BoolVar(&flagVersion, "version", false, "show version information")
}

func Execute() error { return rootCmd.Execute() }

func ExecuteContext(ctx context.Context) error { return rootCmd.ExecuteContext(ctx) }

func run(cmd *cobra.Command, _ []string) error {
	if flagVersion {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), GetVersionString())
		return nil
	}

	var err error
	appLogger, err = logger.New(flagDebug)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = appLogger.Sync() }()

	ctx := cmd.Context()

	home, _ := os.UserHomeDir()
	cfg, err := config.Load(home)
	if err != nil {
		return err
	}

	// Install-path resolution is a pre-flight check: without a writable
	// target there is no point fetching anything.
	targetPath, usedFallback, err := install.NewTargetResolver(os.Getenv("PATH"), home, cfg.Tool).Resolve()
	if err != nil {
		return err
	}
	if usedFallback {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(),
			"could not locate %s, installing to %s\nmake sure to include the directory in your $PATH\n",
			cfg.Tool, targetPath)
	}

	explicit := flagInstall
	if explicit == "" {
		explicit = os.Getenv(envExplicitVersion)
	}

	workDir, err := os.Getwd()
	if err != nil {
		workDir = "."
	}

	resolver := resolve.NewResolver(resolve.Config{
		ExplicitVersion:   explicit,
		IncludePrerelease: flagListAll,
		Lister:            listerProvider(cfg.BaseURL),
		Constraints:       constraintProvider(workDir),
		SelectVersion:     selectVersion,
		Logger:            appLogger,
	})

	resolved, err := resolver.Resolve(ctx)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(),
		ui.RenderStatusBar(fmt.Sprintf("%s %s will be installed to %s", cfg.Tool, resolved, targetPath), false))
	if flagDryRun {
		return nil
	}

	target := platform.NewDetector().Detect()
	fetcher := cache.NewFetcher(cfg.CacheDir, cfg.Tool, target, downloaderProvider(cfg.BaseURL), appLogger)

	archive, err := fetcher.Fetch(ctx, resolved)
	if err != nil {
		return err
	}

	if err := installBinary(archive, targetPath); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(),
		ui.RenderStatusBar(fmt.Sprintf("installed %s %s", cfg.Tool, resolved), true))
	return nil
}
