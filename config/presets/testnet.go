package presets

import (
	"github.com/spacemeshos/go-ledger/common/types"
	"github.com/spacemeshos/go-ledger/config"
	"github.com/spacemeshos/go-ledger/log"
)

func init() {
	register("testnet", testnet())
}

func testnet() config.Config {
	conf := config.DefaultConfig()
	conf.Preset = "testnet"
	conf.Address = types.DefaultTestAddressConfig()
	conf.SigningPrefix = "testnet"
	conf.Metrics.Enabled = true
	conf.Logging.Encoder = log.JSONEncoder
	return conf
}
