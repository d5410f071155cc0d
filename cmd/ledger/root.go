package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/go-ledger/common/types"
	"github.com/spacemeshos/go-ledger/config"
	"github.com/spacemeshos/go-ledger/config/presets"
	"github.com/spacemeshos/go-ledger/log"
)

// Logger names.
const (
	CLILogger      = "cli"
	LedgerLogger   = "ledger"
	JournalLogger  = "journal"
	DatabaseLogger = "database"
	MetricsLogger  = "metrics"
)

// app is shared by all subcommands. It is populated before a subcommand runs.
type app struct {
	fs  afero.Fs
	in  io.Reader
	out io.Writer

	configFile string
	preset     string

	conf    config.Config
	modules *log.Modules
	logger  *zap.Logger
}

func newRootCmd(fs afero.Fs, in io.Reader, out io.Writer) *cobra.Command {
	a := &app{fs: fs, in: in, out: out}
	defaults := config.DefaultConfig()

	root := &cobra.Command{
		Use:           "ledger",
		Short:         "ledger with a single issuer",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.Flags())
		},
	}
	root.SetOut(out)
	flags := root.PersistentFlags()
	flags.StringVarP(&a.configFile, "config", "c", "", "load configuration from file")
	flags.StringVarP(&a.preset, "preset", "p", "",
		fmt.Sprintf("preset overwrites default values of the config. options %+s", presets.Options()))
	flags.StringP("data-dir", "d", defaults.DataDir, "directory with the issuer key, the journal and the lock")
	flags.String("issuer-key", defaults.IssuerKey, "file with the issuer private key, created if missing")
	flags.String("keys-dir", defaults.KeysDir, "directory with private keys of the senders")
	flags.String("signing-prefix", defaults.SigningPrefix, "prefix mixed into every signed message")
	flags.String("network-hrp", defaults.Address.NetworkHRP, "human readable part of addresses")
	flags.String("log-encoder", defaults.Logging.Encoder, "console or json")
	flags.String("log-level", defaults.Logging.LedgerLevel, "log level of every module")

	root.AddCommand(
		newKeygenCmd(a),
		newAddressCmd(a),
		newRunCmd(a),
		newHistoryCmd(a),
		newBalancesCmd(a),
	)
	return root
}

// setup loads the configuration in the order: defaults, preset, config file, flags.
func (a *app) setup(flags *pflag.FlagSet) error {
	conf := config.DefaultConfig()
	vip := viper.New()
	if err := config.LoadConfig(a.configFile, vip); err != nil {
		return err
	}
	preset := a.preset
	if len(preset) == 0 && vip.IsSet("preset") {
		preset = vip.GetString("preset")
	}
	if len(preset) > 0 {
		p, err := presets.Get(preset)
		if err != nil {
			return err
		}
		conf = p
	}
	if err := config.Decode(vip, &conf); err != nil {
		return err
	}
	applyFlags(flags, &conf)
	if err := conf.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	types.SetNetworkHRP(conf.Address.NetworkHRP)

	encoder, err := log.NewEncoder(conf.Logging.Encoder)
	if err != nil {
		return err
	}
	// root is at debug so that modules can lower their level independently
	root := log.NewWithLevel(os.Stderr, zap.NewAtomicLevelAt(zapcore.DebugLevel), encoder)
	a.modules = log.NewModules(root)
	a.conf = conf
	a.logger, err = a.named(CLILogger)
	return err
}

// applyFlags overwrites values that were set explicitly on the command line.
func applyFlags(flags *pflag.FlagSet, conf *config.Config) {
	str := func(name string, dst *string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	str("data-dir", &conf.DataDir)
	str("issuer-key", &conf.IssuerKey)
	str("keys-dir", &conf.KeysDir)
	str("signing-prefix", &conf.SigningPrefix)
	str("network-hrp", &conf.Address.NetworkHRP)
	str("log-encoder", &conf.Logging.Encoder)
	if flags.Changed("log-level") {
		level, _ := flags.GetString("log-level")
		conf.Logging.LedgerLevel = level
		conf.Logging.JournalLevel = level
		conf.Logging.DatabaseLevel = level
		conf.Logging.MetricsLevel = level
		conf.Logging.CLILevel = level
	}
}

func (a *app) named(module string) (*zap.Logger, error) {
	levels := map[string]string{
		CLILogger:      a.conf.Logging.CLILevel,
		LedgerLogger:   a.conf.Logging.LedgerLevel,
		JournalLogger:  a.conf.Logging.JournalLevel,
		DatabaseLogger: a.conf.Logging.DatabaseLevel,
		MetricsLogger:  a.conf.Logging.MetricsLevel,
	}
	return a.modules.Named(module, levels[module])
}
