package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/spacemeshos/go-ledger/common/types"
	"github.com/spacemeshos/go-ledger/sql"
	"github.com/spacemeshos/go-ledger/sql/accounts"
	"github.com/spacemeshos/go-ledger/sql/transactions"
)

type archivedTx struct {
	Index     uint64    `json:"index"`
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	From      string    `json:"from"`
	To        string    `json:"to,omitempty"`
	Amount    uint64    `json:"amount"`
	AppliedAt time.Time `json:"applied_at"`
}

type archivedAccount struct {
	Address   string    `json:"address"`
	Balance   uint64    `json:"balance"`
	Index     uint64    `json:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *app) openArchive() (*sql.Database, error) {
	path := a.conf.Path(a.conf.Journal.DB)
	exists, err := fileExists(path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("journal %s doesn't exist", path)
	}
	logger, err := a.named(DatabaseLogger)
	if err != nil {
		return nil, err
	}
	return sql.Open("file:"+path, sql.WithLogger(logger), sql.WithConnections(1))
}

func newHistoryCmd(a *app) *cobra.Command {
	var (
		from    uint64
		address string
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "print archived transactions in the order they were applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openArchive()
			if err != nil {
				return err
			}
			defer db.Close()

			enc := json.NewEncoder(a.out)
			var werr error
			write := func(r *transactions.Record) bool {
				if r.Index < from {
					return true
				}
				out := archivedTx{
					Index:     r.Index,
					ID:        r.Tx.ID().String(),
					Type:      r.Tx.Contents.Type.String(),
					From:      r.Tx.Contents.From.String(),
					Amount:    r.Tx.Contents.Amount,
					AppliedAt: r.AppliedAt,
				}
				if r.Tx.Contents.To != nil {
					out.To = r.Tx.Contents.To.String()
				}
				werr = enc.Encode(out)
				return werr == nil
			}
			if address != "" {
				addr, err := types.StringToAddress(address)
				if err != nil {
					return fmt.Errorf("parse address: %w", err)
				}
				err = transactions.IterateByAddress(db, addr, write)
			} else {
				err = transactions.IterateFrom(db, from, write)
			}
			if err != nil {
				return err
			}
			return werr
		},
	}
	cmd.Flags().Uint64Var(&from, "from", 0, "first history index to print")
	cmd.Flags().StringVar(&address, "address", "", "print only transactions sent or received by the address")
	return cmd
}

func newBalancesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "balances",
		Short: "print archived balances of accounts touched by applied transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openArchive()
			if err != nil {
				return err
			}
			defer db.Close()

			records, err := accounts.All(db)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(a.out)
			for _, r := range records {
				if err := enc.Encode(archivedAccount{
					Address:   r.Address.String(),
					Balance:   r.Balance,
					Index:     r.Index,
					UpdatedAt: r.UpdatedAt,
				}); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
