// Package config resolves pfx settings and filesystem paths.
//
// Settings come from an optional config.yaml in the user config
// directory, overridden by environment variables. The default layout is
// ~/.opt/ holding one directory per installed program/version plus the
// reserved bookkeeping entries (dummy base layer, overlay work area,
// and the live prefix mount point).
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	// Config keys.
	cfgKeyOptDir        = "opt_dir"
	cfgKeyPrefixDir     = "prefix_dir"
	cfgKeyMountBinary   = "mount_binary"
	cfgKeyUnmountBinary = "unmount_binary"

	// Environment overrides, kept compatible with the original tool.
	envOptDir    = "PFX_OPT"
	envPrefixDir = "PFX_PREFIX"

	// Unprivileged overlay by default; both binaries are overridable so a
	// root user can point them at mount(8)/umount(8) instead.
	defaultMountBinary   = "fuse-overlayfs"
	defaultUnmountBinary = "fusermount3"
)

// ReservedPrefix marks bookkeeping entries inside the opt directory.
// Entries starting with it never participate in catalog scans.
const ReservedPrefix = "."

// Reserved entry names inside the opt directory.
const (
	baseDirName   = ReservedPrefix + "base"
	workDirName   = ReservedPrefix + "work"
	prefixDirName = ReservedPrefix + "prefix"
	recordName    = ReservedPrefix + "config.json"
)

// Paths contains all the filesystem paths used by pfx.
type Paths struct {
	// Opt is the catalog home holding one <name>|<version> directory per install
	Opt string

	// Base is the dummy lower layer that is always mounted first
	Base string

	// Work is the overlay mechanism's scratch/work directory
	Work string

	// Prefix is the live mount point of the composed prefix
	Prefix string

	// Record is the persisted overrides/exclusions file
	Record string
}

// Settings is the resolved pfx configuration.
type Settings struct {
	Paths Paths

	// MountBinary is the overlay mount command
	MountBinary string

	// UnmountBinary is the overlay unmount command
	UnmountBinary string
}

// Load resolves settings from config.yaml (if present) and the
// PFX_OPT/PFX_PREFIX environment variables. A missing config file is
// not an error.
func Load() (*Settings, error) {
	v := viper.New()
	v.SetDefault(cfgKeyMountBinary, defaultMountBinary)
	v.SetDefault(cfgKeyUnmountBinary, defaultUnmountBinary)
	_ = v.BindEnv(cfgKeyOptDir, envOptDir)
	_ = v.BindEnv(cfgKeyPrefixDir, envPrefixDir)

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	if configDir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(configDir, "pfx"))
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	opt := v.GetString(cfgKeyOptDir)
	if opt == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		opt = filepath.Join(home, ".opt")
	}

	prefix := v.GetString(cfgKeyPrefixDir)
	if prefix == "" {
		prefix = filepath.Join(opt, prefixDirName)
	}

	return &Settings{
		Paths:         PathsIn(opt, prefix),
		MountBinary:   v.GetString(cfgKeyMountBinary),
		UnmountBinary: v.GetString(cfgKeyUnmountBinary),
	}, nil
}

// PathsIn returns the path layout for a given opt directory and prefix
// mount point.
func PathsIn(opt, prefix string) Paths {
	return Paths{
		Opt:    opt,
		Base:   filepath.Join(opt, baseDirName),
		Work:   filepath.Join(opt, workDirName),
		Prefix: prefix,
		Record: filepath.Join(opt, recordName),
	}
}

// EnsureDirectories creates all necessary directories if they don't exist.
func (p *Paths) EnsureDirectories() error {
	dirs := []string{
		p.Opt,
		p.Base,
		p.Work,
		p.Prefix,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
