package cmd

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aweris/filecache"
	"github.com/aweris/filecache/internal/todo"
)

var rootCmd = &cobra.Command{
	Use:          "filecache",
	Short:        "JSON file backed to-do cache",
	Long:         "CLI for managing to-do items kept in a JSON cache file.",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = newLogger(cmd.ErrOrStderr(), viper.GetBool("verbose"))
	},
}

var logger = slog.New(slog.DiscardHandler)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ~/.config/filecache/config.yaml)")
	rootCmd.PersistentFlags().String("dir", "", "base directory (default: ~/Documents)")
	rootCmd.PersistentFlags().String("subdir", "", "directory created under the base directory (default: "+filecache.DefaultSubdir+")")
	rootCmd.PersistentFlags().StringP("file", "f", "", "cache file name (default: "+filecache.DefaultFileName+")")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	bindFlags()
}

func bindFlags() {
	viper.BindPFlag("dir", rootCmd.PersistentFlags().Lookup("dir"))
	viper.BindPFlag("subdir", rootCmd.PersistentFlags().Lookup("subdir"))
	viper.BindPFlag("file", rootCmd.PersistentFlags().Lookup("file"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	if cfg := rootCmd.PersistentFlags().Lookup("config").Value.String(); cfg != "" {
		viper.SetConfigFile(cfg)
	} else {
		viper.AddConfigPath(configDir())
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("FILECACHE")
	viper.AutomaticEnv()
	viper.SetDefault("subdir", filecache.DefaultSubdir)
	viper.SetDefault("file", filecache.DefaultFileName)

	viper.ReadInConfig()
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "filecache")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "filecache")
	}
	return ".filecache"
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    noColor,
	}))
}

func cacheFile() string {
	return viper.GetString("file")
}

func openCache() (*filecache.Cache[todo.Item], error) {
	opts := []filecache.Option{
		filecache.WithSubdir(viper.GetString("subdir")),
		filecache.WithLogger(logger),
	}
	if dir := viper.GetString("dir"); dir != "" {
		opts = append(opts, filecache.WithBaseDir(dir))
	}
	return filecache.New[todo.Item](todo.Codec{}, opts...)
}

// loadCache opens the cache and loads the configured file into it.
func loadCache() (*filecache.Cache[todo.Item], error) {
	c, err := openCache()
	if err != nil {
		return nil, err
	}

	res, err := c.Load(cacheFile())
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	if res.Skipped > 0 {
		logger.Warn("skipped unreadable items", "path", res.Path, "count", res.Skipped)
	}
	logger.Debug("loaded", "path", res.Path, "status", res.Status, "items", res.Count)
	return c, nil
}

func saveCache(c *filecache.Cache[todo.Item]) error {
	res, err := c.Save(cacheFile())
	if err != nil {
		return err
	}
	logger.Debug("saved", "path", res.Path, "items", res.Count)
	return nil
}
