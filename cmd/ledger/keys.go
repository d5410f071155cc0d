package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spacemeshos/go-ledger/signing"
)

const (
	issuerName = "issuer"
	keySuffix  = ".key"
)

// keyPath returns the file with the private key of the signer with name.
func (a *app) keyPath(name string) (string, error) {
	if name == issuerName {
		return a.conf.Path(a.conf.IssuerKey), nil
	}
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid key name %q", name)
	}
	return filepath.Join(a.conf.Path(a.conf.KeysDir), name+keySuffix), nil
}

func (a *app) signerOpts() []signing.EdSignerOptionFunc {
	if a.conf.SigningPrefix == "" {
		return nil
	}
	return []signing.EdSignerOptionFunc{signing.WithPrefix([]byte(a.conf.SigningPrefix))}
}

// loadSigner loads the key from path.
func (a *app) loadSigner(path string) (*signing.EdSigner, error) {
	return signing.NewEdSigner(append(a.signerOpts(), signing.FromFile(path))...)
}

// issuer loads the issuer key or creates it on the first run.
func (a *app) issuer() (*signing.EdSigner, error) {
	path := a.conf.Path(a.conf.IssuerKey)
	exists, err := fileExists(path)
	if err != nil {
		return nil, err
	}
	if exists {
		return a.loadSigner(path)
	}
	signer, err := signing.NewEdSigner(append(a.signerOpts(), signing.ToFile(path))...)
	if err != nil {
		return nil, fmt.Errorf("create issuer key: %w", err)
	}
	a.logger.Info("created issuer key", zapPath(path), zapAddress(signer.Address()))
	return signer, nil
}

func newKeygenCmd(a *app) *cobra.Command {
	var name, out string
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "generate a private key and print its address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if name != "" && out != "" {
				return errors.New("--name and --out are mutually exclusive")
			}
			path := out
			if path == "" {
				if name == "" {
					return errors.New("either --name or --out is required")
				}
				var err error
				if path, err = a.keyPath(name); err != nil {
					return err
				}
			}
			exists, err := fileExists(path)
			if err != nil {
				return err
			}
			if exists {
				return fmt.Errorf("key file %s already exists", path)
			}
			signer, err := signing.NewEdSigner(append(a.signerOpts(), signing.ToFile(path))...)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, signer.Address())
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "name of the key in the keys directory, issuer for the issuer key")
	cmd.Flags().StringVarP(&out, "out", "o", "", "path of the key file")
	return cmd
}

func newAddressCmd(a *app) *cobra.Command {
	var name, key string
	cmd := &cobra.Command{
		Use:   "address",
		Short: "print the address of a private key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := key
			if path == "" {
				var err error
				if path, err = a.keyPath(name); err != nil {
					return err
				}
			}
			signer, err := a.loadSigner(path)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, signer.Address())
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", issuerName, "name of the key in the keys directory")
	cmd.Flags().StringVarP(&key, "key", "k", "", "path of the key file, overwrites --name")
	return cmd
}
