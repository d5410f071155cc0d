package presets

import (
	"os"
	"path/filepath"

	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/go-ledger/common/types"
	"github.com/spacemeshos/go-ledger/config"
)

func init() {
	register("standalone", standalone())
}

// standalone keeps everything in a temporary directory and logs verbosely.
func standalone() config.Config {
	conf := config.DefaultConfig()
	conf.Preset = "standalone"
	conf.Address = types.DefaultTestAddressConfig()
	conf.DataDir = filepath.Join(os.TempDir(), "ledger")
	conf.Logging.LedgerLevel = zapcore.DebugLevel.String()
	conf.Logging.JournalLevel = zapcore.DebugLevel.String()
	return conf
}
