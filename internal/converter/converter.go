// =============================================================================
// PayPal to QuickBooks Converter - Batch Driver
// =============================================================================
//
// This module orchestrates the whole conversion pipeline:
//
//   load -> normalize -> date filter -> resolve cancellations
//        -> customer ledger -> sales deposits -> platform fees
//        -> unprocessed dump
//
// Each classifier stage consumes the rows it understood and hands the
// remainder to the next; whatever survives the last stage is written to the
// unprocessed CSV so no input row is ever silently lost. The pipeline is
// strictly sequential and single-writer: the IIF file is opened once,
// appended to by every stage in order, and closed after the last one.
//
// A failed integrity check anywhere aborts the run with no output kept;
// there is no safe partial-output policy for accounting data.
//
// =============================================================================

package converter

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/paypal-to-qb/internal/config"
	"github.com/ginjaninja78/paypal-to-qb/internal/iif"
	"github.com/ginjaninja78/paypal-to-qb/internal/paypal"
	"github.com/ginjaninja78/paypal-to-qb/internal/qb"
	"github.com/ginjaninja78/paypal-to-qb/pkg/utils"
)

// =============================================================================
// CONVERTER
// =============================================================================

// Converter runs the PayPal-to-QuickBooks batch pipeline.
type Converter struct {
	cfg *config.Config
	log zerolog.Logger
}

// New creates a Converter for one run.
func New(cfg *config.Config, log zerolog.Logger) *Converter {
	return &Converter{cfg: cfg, log: log}
}

// Result summarizes a completed conversion run.
type Result struct {
	// RunID uniquely identifies this run in logs and output names.
	RunID string

	InputFile       string
	OutputFile      string
	UnprocessedFile string

	// Transcoded reports whether the input had to be converted to UTF-8.
	Transcoded bool

	// LoadedRows is the row count after normalization and date filtering.
	LoadedRows int

	// NettedRows / DiscardedRows are the cancellation resolver's removals.
	NettedRows    int
	DiscardedRows int

	// ResidualFees is the count of surviving fee-on-refund rows.
	ResidualFees int

	// Customers is the number of customer records emitted.
	Customers int

	// DepositEntries / FeeEntries are emitted accounting entries per stage.
	DepositEntries int
	FeeEntries     int

	// UnprocessedRows is the size of the leftover dump.
	UnprocessedRows int

	Elapsed time.Duration
}

// =============================================================================
// MAIN PIPELINE
// =============================================================================

// Run executes the full pipeline and writes the IIF and unprocessed files.
func (c *Converter) Run() (*Result, error) {
	start := time.Now()

	result := &Result{
		RunID:     uuid.NewString(),
		InputFile: c.cfg.InputPath,
	}
	log := c.log.With().Str("run_id", result.RunID).Logger()

	res, err := c.prepare(&log, result)
	if err != nil {
		return nil, err
	}

	outputPath, unprocessedPath := c.outputPaths(result.RunID)
	result.OutputFile = outputPath
	result.UnprocessedFile = unprocessedPath

	epsilon, err := c.cfg.EpsilonAmount()
	if err != nil {
		return nil, err
	}

	// We always delete the output and start fresh.
	if err := utils.RemoveIfExists(outputPath); err != nil {
		return nil, err
	}
	out, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	w := iif.NewWriter(out)

	// Names first: QuickBooks needs every customer declared before the
	// first transaction that references it.
	customers, err := qb.AppendCustomers(w, res.Remainder)
	if err != nil {
		return nil, fmt.Errorf("customer ledger: %w", err)
	}
	result.Customers = customers
	log.Debug().Int("customers", customers).Msg("customer ledger written")

	// Sales receipts make up the bulk of the transactions.
	deposits, err := qb.AppendSalesDeposits(w, res.Remainder, c.cfg.Accounts, epsilon)
	if err != nil {
		return nil, fmt.Errorf("sales deposits: %w", err)
	}
	result.DepositEntries = deposits.Entries
	log.Debug().
		Int("entries", deposits.Entries).
		Int("consumed", deposits.Consumed).
		Msg("sales deposits written")

	// Platform usage fees, as payable checks.
	fees, err := qb.AppendPlatformFees(w, deposits.Remainder, c.cfg.Accounts)
	if err != nil {
		return nil, fmt.Errorf("platform fees: %w", err)
	}
	result.FeeEntries = fees.Entries
	log.Debug().
		Int("entries", fees.Entries).
		Int("consumed", fees.Consumed).
		Msg("platform fees written")

	if err := w.Flush(); err != nil {
		return nil, fmt.Errorf("failed to write IIF file: %w", err)
	}
	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("failed to close IIF file: %w", err)
	}

	// Whatever no classifier understood goes to the unprocessed dump.
	if err := writeUnprocessed(unprocessedPath, fees.Remainder); err != nil {
		return nil, err
	}
	result.UnprocessedRows = len(fees.Remainder)

	if c.cfg.ArchiveOnSuccess && c.cfg.InputArchiveDir != "" {
		dest, err := utils.ArchiveFile(c.cfg.InputPath, c.cfg.InputArchiveDir)
		if err != nil {
			return nil, err
		}
		log.Debug().Str("archived_to", dest).Msg("input archived")
	}

	result.Elapsed = time.Since(start)
	log.Info().
		Int("customers", result.Customers).
		Int("deposit_entries", result.DepositEntries).
		Int("fee_entries", result.FeeEntries).
		Int("unprocessed_rows", result.UnprocessedRows).
		Dur("elapsed", result.Elapsed).
		Msg("conversion complete")

	return result, nil
}

// =============================================================================
// INTEGRITY CHECK
// =============================================================================

// CheckReport is the outcome of a dry integrity check.
type CheckReport struct {
	LoadedRows    int
	Transcoded    bool
	NettedRows    int
	DiscardedRows int
	NettedGross   decimal.Decimal
	NettedFee     decimal.Decimal
	ResidualFees  int
}

// Check runs the pipeline up to and including cancellation resolution and
// reports the netting results without writing any output.
func (c *Converter) Check() (*CheckReport, error) {
	result := &Result{RunID: uuid.NewString(), InputFile: c.cfg.InputPath}
	log := c.log.With().Str("run_id", result.RunID).Logger()

	res, err := c.prepare(&log, result)
	if err != nil {
		return nil, err
	}

	return &CheckReport{
		LoadedRows:    result.LoadedRows,
		Transcoded:    result.Transcoded,
		NettedRows:    len(res.Netted),
		DiscardedRows: len(res.Discarded),
		NettedGross:   res.Netted.SumGross(),
		NettedFee:     res.Netted.SumFee(),
		ResidualFees:  res.ResidualFeeCount,
	}, nil
}

// =============================================================================
// PIPELINE FRONT HALF
// =============================================================================

// prepare loads, normalizes, date-filters, and resolves cancellations.
func (c *Converter) prepare(log *zerolog.Logger, result *Result) (*paypal.CancellationResult, error) {
	raw, err := paypal.LoadExport(c.cfg.InputPath, c.cfg.FallbackEncoding)
	if err != nil {
		return nil, err
	}
	result.Transcoded = raw.Transcoded
	if raw.Transcoded {
		log.Warn().
			Str("encoding", c.cfg.FallbackEncoding).
			Msg("input was not valid UTF-8; transcoded before parsing")
	}
	log.Info().Int("rows", len(raw.Rows)).Str("file", raw.SourceFile).Msg("loaded PayPal export")

	dataset, err := paypal.Normalize(raw)
	if err != nil {
		return nil, err
	}

	startDate, endDate, err := c.cfg.DateBounds()
	if err != nil {
		return nil, err
	}
	dataset = dataset.BetweenDates(startDate, endDate)
	result.LoadedRows = len(dataset)

	residualFee, err := c.cfg.ResidualFeeAmount()
	if err != nil {
		return nil, err
	}
	epsilon, err := c.cfg.EpsilonAmount()
	if err != nil {
		return nil, err
	}

	res, err := paypal.ResolveCancellations(dataset, residualFee, epsilon)
	if err != nil {
		return nil, err
	}
	result.NettedRows = len(res.Netted)
	result.DiscardedRows = len(res.Discarded)
	result.ResidualFees = res.ResidualFeeCount
	log.Debug().
		Int("netted", len(res.Netted)).
		Int("discarded", len(res.Discarded)).
		Int("residual_fees", res.ResidualFeeCount).
		Msg("cancellations resolved")

	return res, nil
}

// outputPaths resolves the IIF and unprocessed paths, defaulting to the
// input file's directory and expanding name placeholders.
func (c *Converter) outputPaths(runID string) (outputPath, unprocessedPath string) {
	dir := filepath.Dir(c.cfg.InputPath)

	outputPath = c.cfg.OutputPath
	if outputPath == "" {
		outputPath = filepath.Join(dir, "output.iif")
	}
	outputPath = utils.ExpandName(outputPath, runID)

	unprocessedPath = c.cfg.UnprocessedPath
	if unprocessedPath == "" {
		unprocessedPath = filepath.Join(dir, "unprocessed.csv")
	}
	unprocessedPath = utils.ExpandName(unprocessedPath, runID)

	return outputPath, unprocessedPath
}

// writeUnprocessed dumps the leftover rows as a header-less CSV.
func writeUnprocessed(path string, d paypal.Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create unprocessed file: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	for _, r := range d {
		if err := cw.Write(r.DumpRow()); err != nil {
			return fmt.Errorf("failed to write unprocessed row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write unprocessed file: %w", err)
	}
	return f.Close()
}
