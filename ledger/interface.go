package ledger

import (
	"context"

	"github.com/spacemeshos/go-ledger/common/types"
	"github.com/spacemeshos/go-ledger/signing"
)

//go:generate mockgen -typed -package=mocks -destination=./mocks/mocks.go -source=./interface.go

type verifier interface {
	Verify(d signing.Domain, address types.Address, msg []byte, sig types.EdSignature) bool
}

// Journal archives applied transactions. It is called while the engine lock is held.
type Journal interface {
	Record(ctx context.Context, receipt *types.Receipt) error
}
