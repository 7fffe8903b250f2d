// File: lixenwraith/settings/flags.go
package settings

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	ConfigFlagName    = "config_filepath"
	SettingsFlagName  = "settings_filepath"
	ConfigFlagShort   = "c"
	SettingsFlagShort = "s"
)

// FilepathSetter is implemented by *Container.
type FilepathSetter interface {
	SetFilepath(path string, load bool) error
}

// FlagBinding connects a file path flag to a container.
type FlagBinding struct {
	fs     *pflag.FlagSet
	name   string
	value  *string
	target FilepathSetter
	load   bool
}

// BindConfigFlag adds -c/--config_filepath to fs for target.
func BindConfigFlag(fs *pflag.FlagSet, target FilepathSetter, load bool) *FlagBinding {
	return BindFilepathFlag(fs, ConfigFlagName, ConfigFlagShort, "Path of the configuration file", target, load)
}

// BindSettingsFlag adds -s/--settings_filepath to fs for target.
func BindSettingsFlag(fs *pflag.FlagSet, target FilepathSetter, load bool) *FlagBinding {
	return BindFilepathFlag(fs, SettingsFlagName, SettingsFlagShort, "Path of the settings file", target, load)
}

// BindFilepathFlag adds a file path flag to fs. The flag takes effect when
// Apply is called after parsing.
func BindFilepathFlag(fs *pflag.FlagSet, name, shorthand, usage string, target FilepathSetter, load bool) *FlagBinding {
	return &FlagBinding{
		fs:     fs,
		name:   name,
		value:  fs.StringP(name, shorthand, "", usage),
		target: target,
		load:   load,
	}
}

// Apply calls SetFilepath on the target when the flag was given.
func (b *FlagBinding) Apply() error {
	if !b.fs.Changed(b.name) || *b.value == "" {
		return nil
	}
	return b.target.SetFilepath(*b.value, b.load)
}

// BindCommand lets bind register file path flags as persistent flags of cmd,
// and applies them before cmd or any subcommand runs, ahead of an existing
// PersistentPreRunE.
func BindCommand(cmd *cobra.Command, bind func(fs *pflag.FlagSet) []*FlagBinding) {
	bindings := bind(cmd.PersistentFlags())

	next := cmd.PersistentPreRunE
	cmd.PersistentPreRunE = func(c *cobra.Command, args []string) error {
		for _, b := range bindings {
			if err := b.Apply(); err != nil {
				return err
			}
		}
		if next != nil {
			return next(c, args)
		}
		return nil
	}
}
