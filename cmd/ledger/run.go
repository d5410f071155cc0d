package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gofrs/flock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spacemeshos/go-ledger/common/types"
	"github.com/spacemeshos/go-ledger/config"
	"github.com/spacemeshos/go-ledger/journal"
	"github.com/spacemeshos/go-ledger/ledger"
	"github.com/spacemeshos/go-ledger/metrics"
	"github.com/spacemeshos/go-ledger/signing"
	"github.com/spacemeshos/go-ledger/sql"
)

// request is one line of the input.
type request struct {
	Type   string `json:"type"`
	Signer string `json:"signer"`
	// To is a bech32 address or a name of the key in the keys directory.
	To     string `json:"to,omitempty"`
	Amount uint64 `json:"amount"`
}

// response is written for every request.
type response struct {
	Line    int     `json:"line"`
	ID      string  `json:"id,omitempty"`
	Type    string  `json:"type,omitempty"`
	From    string  `json:"from,omitempty"`
	Status  string  `json:"status"`
	Reason  string  `json:"reason"`
	Balance *uint64 `json:"balance,omitempty"`
	Index   *uint64 `json:"index,omitempty"`
	Error   string  `json:"error,omitempty"`
}

const statusInvalid = "invalid"

func newRunCmd(a *app) *cobra.Command {
	var wait bool
	cmd := &cobra.Command{
		Use:   "run [requests.jsonl]",
		Short: "apply json line requests to a new ledger and print one result per request",
		Long: `Requests are read from the file or from stdin if the file is omitted or "-".
Every request names the key that signs it:

  {"type":"send","signer":"issuer","to":"alice","amount":500}
  {"type":"check","signer":"alice"}
  {"type":"mint","signer":"issuer","amount":1000}`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("journal") {
				a.conf.Journal.Enabled, _ = flags.GetBool("journal")
			}
			if flags.Changed("metrics") {
				a.conf.Metrics.Enabled, _ = flags.GetBool("metrics")
			}
			if flags.Changed("metrics-listen") {
				a.conf.Metrics.Listen, _ = flags.GetString("metrics-listen")
			}
			input := "-"
			if len(args) > 0 {
				input = args[0]
			}
			return a.run(cmd.Context(), input, wait)
		},
	}
	defaults := config.DefaultConfig()
	cmd.Flags().Bool("journal", defaults.Journal.Enabled, "archive applied transactions")
	cmd.Flags().Bool("metrics", defaults.Metrics.Enabled, "serve prometheus metrics")
	cmd.Flags().String("metrics-listen", defaults.Metrics.Listen, "address of the metrics server")
	cmd.Flags().BoolVar(&wait, "wait", false,
		"keep serving metrics after requests are processed, until interrupted")
	return cmd
}

func (a *app) run(ctx context.Context, input string, wait bool) error {
	dataDir := a.conf.DataDir
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	lock := flock.New(a.conf.LockFile())
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("lock data dir: %w", err)
	}
	if !locked {
		return fmt.Errorf("data dir %s is used by another process", dataDir)
	}
	defer lock.Unlock()

	issuer, err := a.issuer()
	if err != nil {
		return err
	}
	verifier, err := a.verifier()
	if err != nil {
		return err
	}
	ledgerLogger, err := a.named(LedgerLogger)
	if err != nil {
		return err
	}
	opts := []ledger.Opt{
		ledger.WithLogger(ledgerLogger),
		ledger.WithInitialBalance(a.conf.Ledger.InitialBalance),
	}
	if a.conf.Journal.Enabled {
		db, j, err := a.openJournal()
		if err != nil {
			return err
		}
		defer db.Close()
		opts = append(opts, ledger.WithJournal(j))
	}
	engine := ledger.New(issuer.Address(), verifier, opts...)

	rd, err := a.input(input)
	if err != nil {
		return err
	}
	defer rd.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	eg, ctx := errgroup.WithContext(ctx)
	if err := a.startMetrics(ctx, eg); err != nil {
		return err
	}
	eg.Go(func() error {
		p := &processor{
			app:     a,
			engine:  engine,
			signers: map[string]*signing.EdSigner{issuerName: issuer},
			enc:     json.NewEncoder(a.out),
		}
		if err := p.process(ctx, rd); err != nil {
			return err
		}
		a.logger.Info("requests processed",
			zap.Int("requests", p.lines),
			zap.Int("history", engine.HistoryLen()),
			zap.Int("accounts", len(engine.Accounts())),
			zap.Uint64("total supply", engine.TotalSupply()),
		)
		if !wait {
			cancel()
		}
		return nil
	})
	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (a *app) verifier() (signing.Verifier, error) {
	var opts []signing.VerifierOptionFunc
	if a.conf.SigningPrefix != "" {
		opts = append(opts, signing.WithVerifierPrefix([]byte(a.conf.SigningPrefix)))
	}
	verifier := signing.NewEdVerifier(opts...)
	if a.conf.Ledger.VerifyCacheSize == 0 {
		return verifier, nil
	}
	return signing.NewCachedVerifier(verifier, a.conf.Ledger.VerifyCacheSize)
}

// openJournal opens the archive. The ledger starts empty on every run, so the archive must be empty too.
func (a *app) openJournal() (*sql.Database, *journal.Journal, error) {
	dbLogger, err := a.named(DatabaseLogger)
	if err != nil {
		return nil, nil, err
	}
	journalLogger, err := a.named(JournalLogger)
	if err != nil {
		return nil, nil, err
	}
	path := a.conf.Path(a.conf.Journal.DB)
	db, err := sql.Open("file:"+path,
		sql.WithLogger(dbLogger),
		sql.WithConnections(a.conf.Journal.Connections),
	)
	if err != nil {
		return nil, nil, err
	}
	j := journal.New(db, journal.WithLogger(journalLogger))
	next, err := j.Next()
	if err != nil {
		return nil, nil, errors.Join(err, db.Close())
	}
	if next != 0 {
		return nil, nil, errors.Join(
			fmt.Errorf("journal %s already holds %d transactions", path, next),
			db.Close(),
		)
	}
	return db, j, nil
}

func (a *app) startMetrics(ctx context.Context, eg *errgroup.Group) error {
	if !a.conf.Metrics.Enabled && a.conf.Metrics.Push.URL == "" {
		return nil
	}
	logger, err := a.named(MetricsLogger)
	if err != nil {
		return err
	}
	if a.conf.Metrics.Enabled {
		srv, err := metrics.NewServer(a.conf.Metrics.Listen, metrics.WithServerLogger(logger))
		if err != nil {
			return err
		}
		eg.Go(func() error {
			return srv.Serve(ctx)
		})
	}
	if a.conf.Metrics.Push.URL != "" {
		eg.Go(func() error {
			return metrics.Push(ctx, logger, prometheus.DefaultGatherer, a.conf.Metrics.Push, a.conf.DataDir)
		})
	}
	return nil
}

func (a *app) input(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(a.in), nil
	}
	f, err := a.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open requests: %w", err)
	}
	return f, nil
}

type processor struct {
	*app
	engine  *ledger.Engine
	signers map[string]*signing.EdSigner
	enc     *json.Encoder
	lines   int
}

func (p *processor) process(ctx context.Context, rd io.Reader) error {
	scanner := bufio.NewScanner(rd)
	line := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		p.lines++
		resp := p.handle(text)
		resp.Line = line
		if err := p.enc.Encode(resp); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read requests: %w", err)
	}
	return nil
}

func (p *processor) handle(text string) response {
	tx, err := p.build(text)
	if err != nil {
		return response{
			Status: statusInvalid,
			Reason: string(ledger.ReasonMalformed),
			Error:  err.Error(),
		}
	}
	res, err := p.engine.Submit(tx)
	resp := response{
		ID:     res.ID.String(),
		Type:   res.Type.String(),
		From:   tx.Contents.From.String(),
		Status: res.Status.String(),
		Reason: string(res.Reason),
	}
	switch res.Status {
	case ledger.StatusApplied:
		resp.Balance = &res.Balance
		resp.Index = &res.Index
	case ledger.StatusQueried:
		resp.Balance = &res.Balance
	}
	if err != nil {
		resp.Error = err.Error()
	}
	return resp
}

// build signs the request with the key of the signer.
func (p *processor) build(text string) (*types.Transaction, error) {
	var req request
	dec := json.NewDecoder(strings.NewReader(text))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("decode request: %w", err)
	}
	var typ types.TxType
	if err := typ.UnmarshalText([]byte(req.Type)); err != nil {
		return nil, err
	}
	signer, err := p.signer(req.Signer)
	if err != nil {
		return nil, err
	}
	contents := types.TxContents{
		Type:   typ,
		From:   signer.Address(),
		Amount: req.Amount,
	}
	if req.To != "" {
		to, err := p.address(req.To)
		if err != nil {
			return nil, err
		}
		contents.To = &to
	}
	return signer.SignTx(contents), nil
}

func (p *processor) signer(name string) (*signing.EdSigner, error) {
	if signer, ok := p.signers[name]; ok {
		return signer, nil
	}
	path, err := p.keyPath(name)
	if err != nil {
		return nil, err
	}
	signer, err := p.loadSigner(path)
	if err != nil {
		return nil, fmt.Errorf("signer %s: %w", name, err)
	}
	p.signers[name] = signer
	return signer, nil
}

// address parses a bech32 address or loads the key with that name.
func (p *processor) address(value string) (types.Address, error) {
	address, err := types.StringToAddress(value)
	if err == nil {
		return address, nil
	}
	signer, serr := p.signer(value)
	if serr != nil {
		return types.Address{}, fmt.Errorf("recipient %s is neither an address (%w) nor a key", value, err)
	}
	return signer.Address(), nil
}
