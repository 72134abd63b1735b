package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/notekeeper/internal/noteapi"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend  string `yaml:"backend"`
	DataDir  string `yaml:"data_dir,omitempty"`
	LogLevel string `yaml:"log_level"`
}

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize notekeeper configuration and storage",
		Long: "Create the configuration directory with a default config.yaml, then\n" +
			"create the data directory with an empty note store if none exists.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(cmd)
		},
	}
}

func (a *app) runInit(cmd *cobra.Command) error {
	if err := os.MkdirAll(a.dirs.Config, 0o755); err != nil {
		return sysError(fmt.Errorf("create config directory: %w", err))
	}

	created, err := writeConfigIfMissing(a.dirs.ConfigFile(), configFile{
		Backend:  a.backend,
		DataDir:  a.flags.dataDir,
		LogLevel: a.config.GetString(cfgKeyLogLevel),
	})
	if err != nil {
		return sysError(fmt.Errorf("write config: %w", err))
	}
	if created {
		a.log.Info("config written", "path", a.dirs.ConfigFile())
	}

	store, err := a.openStore()
	if err != nil {
		return sysError(err)
	}
	api := noteapi.New(store)
	err = api.Load()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		err = api.Save()
	case err == nil:
		a.log.Info("existing notes kept", "count", api.NumberOfNotes())
	}
	if derr := store.Detach(); err == nil {
		err = derr
	}
	if err != nil {
		return sysError(fmt.Errorf("initialize storage: %w", err))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Notekeeper initialized (%s store in %s)\n", a.backend, a.dirs.Data)
	return nil
}

// writeConfigIfMissing creates config.yaml from cfg if the file does not
// exist. An existing file is left untouched.
func writeConfigIfMissing(path string, cfg configFile) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}
