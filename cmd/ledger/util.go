package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/spacemeshos/go-ledger/common/types"
)

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	}
	return false, fmt.Errorf("stat %s: %w", path, err)
}

func zapPath(path string) zap.Field {
	return zap.String("path", path)
}

func zapAddress(address types.Address) zap.Field {
	return zap.Stringer("address", address)
}
