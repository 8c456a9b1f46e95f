package main

import (
	"fmt"

	"github.com/NethermindEth/blsserde/utils"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Version string

const (
	configF    = "config"
	verbosityF = "verbosity"
	formatF    = "format"
	colourF    = "colour"

	defaultConfig    = ""
	defaultVerbosity = utils.WARN
	defaultFormat    = formatHex
	defaultColour    = true

	configFlagUsage    = "The yaml configuration file."
	verbosityFlagUsage = "Verbosity of the logs. Options: debug, info, warn, error."
	formatUsage        = `Byte representation used for input and output. Options:
hex  = 0x prefixed codec bytes
cbor = 0x prefixed CBOR byte string holding the codec bytes
json = JSON string holding the 0x prefixed codec bytes`
	colourUsage = "Uses --colour=false command to disable colourized outputs (ANSI Escape Codes)."
)

const (
	formatHex  = "hex"
	formatCBOR = "cbor"
	formatJSON = "json"
)

type Config struct {
	Verbosity utils.LogLevel `mapstructure:"verbosity"`
	Format    string         `mapstructure:"format" validate:"oneof=hex cbor json"`
	Colour    bool           `mapstructure:"colour"`
}

// NewLoggerFn builds the logger once the configuration is known.
type NewLoggerFn func(level *utils.LogLevel, colour bool) (utils.SimpleLogger, error)

func newZapLogger(level *utils.LogLevel, colour bool) (utils.SimpleLogger, error) {
	return utils.NewZapLogger(level, colour)
}

// app is the state shared by every subcommand of a single invocation.
type app struct {
	cfg *Config
	log utils.SimpleLogger
}

func NewCmd(newLoggerFn NewLoggerFn) *cobra.Command {
	var cfgFile string
	a := new(app)

	rootCmd := &cobra.Command{
		Use:           "blsserde",
		Short:         "Encode and decode BLS12-381 scalars and G1 points.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, configF, defaultConfig, configFlagUsage)
	rootCmd.PersistentFlags().Var(utils.NewLogLevel(defaultVerbosity), verbosityF, verbosityFlagUsage)
	rootCmd.PersistentFlags().String(formatF, defaultFormat, formatUsage)
	rootCmd.PersistentFlags().Bool(colourF, defaultColour, colourUsage)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		v := viper.New()
		if cfgFile != "" {
			v.SetConfigType("yaml")
			v.SetConfigFile(cfgFile)
			if err := v.ReadInConfig(); err != nil {
				return err
			}
		}

		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return err
		}

		cfg := new(Config)
		if err := v.Unmarshal(cfg, viper.DecodeHook(mapstructure.TextUnmarshallerHookFunc())); err != nil {
			return err
		}

		if err := validator.New().Struct(cfg); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		log, err := newLoggerFn(&cfg.Verbosity, cfg.Colour)
		if err != nil {
			return err
		}

		a.cfg, a.log = cfg, log
		return nil
	}

	rootCmd.AddCommand(scalarCmd(a), pointCmd(a))
	return rootCmd
}
