// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package usage records token consumption for every LLM call in a
// SQLite ledger so API spend is trackable across runs.
package usage

import (
	"database/sql"
	"fmt"
	"io"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/quantcoder/quantcoder/internal/llm"
	"github.com/quantcoder/quantcoder/pkg/types"
)

// Pricing is the USD cost per 1M tokens for a model.
type Pricing struct {
	InputPerM  float64
	OutputPerM float64
}

// defaultPricing holds per-1M-token USD prices for the models this tool
// commonly runs against. Unknown models record zero cost.
var defaultPricing = map[string]Pricing{
	"gpt-4o-2024-11-20":          {InputPerM: 2.50, OutputPerM: 10.00},
	"gpt-4o-mini":                {InputPerM: 0.15, OutputPerM: 0.60},
	"claude-sonnet-4-5-20250929": {InputPerM: 3.00, OutputPerM: 15.00},
}

// ResolvePricing returns the pricing for a model, zero when unknown.
func ResolvePricing(model string) Pricing {
	return defaultPricing[model]
}

// Cost converts token counts to USD using per-1M pricing.
func (p Pricing) Cost(promptTokens, completionTokens int) float64 {
	return p.InputPerM*float64(promptTokens)/1_000_000.0 +
		p.OutputPerM*float64(completionTokens)/1_000_000.0
}

// Ledger is the SQLite-backed usage store. It implements llm.Recorder.
type Ledger struct {
	db *sql.DB
}

// Open opens or creates the ledger database at cfg.Path, creating the
// schema if it does not exist.
func Open(cfg types.UsageConfig) (*Ledger, error) {
	path := cfg.Path
	if path == "" {
		path = "usage.db"
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening usage database: %w", err)
	}

	l := &Ledger{db: db}
	if err := l.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating usage schema: %w", err)
	}
	return l, nil
}

// Close releases the database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}

func (l *Ledger) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS llm_calls (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			called_at TEXT NOT NULL,
			stage TEXT NOT NULL,
			provider TEXT NOT NULL,
			model TEXT NOT NULL,
			prompt_tokens INTEGER NOT NULL,
			completion_tokens INTEGER NOT NULL,
			total_tokens INTEGER NOT NULL,
			cost_usd REAL NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_llm_calls_stage ON llm_calls(stage)`,
		`CREATE INDEX IF NOT EXISTS idx_llm_calls_model ON llm_calls(model)`,
	}
	for _, stmt := range statements {
		if _, err := l.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts one call's usage into the ledger.
func (l *Ledger) Record(stage, provider string, resp llm.Response) error {
	cost := ResolvePricing(resp.Model).Cost(resp.PromptTokens, resp.CompletionTokens)
	_, err := l.db.Exec(
		`INSERT INTO llm_calls
			(called_at, stage, provider, model, prompt_tokens, completion_tokens, total_tokens, cost_usd)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339), stage, provider, resp.Model,
		resp.PromptTokens, resp.CompletionTokens, resp.TotalTokens, cost,
	)
	if err != nil {
		return fmt.Errorf("recording usage: %w", err)
	}
	return nil
}

// lineTotal is one aggregated row of the usage report.
type lineTotal struct {
	key              string
	calls            int
	promptTokens     int
	completionTokens int
	costUSD          float64
}

// Report writes per-model and per-stage usage totals to w.
func (l *Ledger) Report(w io.Writer) error {
	byModel, err := l.totals("model")
	if err != nil {
		return err
	}
	byStage, err := l.totals("stage")
	if err != nil {
		return err
	}

	if len(byModel) == 0 {
		fmt.Fprintln(w, "No LLM calls recorded.")
		return nil
	}

	fmt.Fprintln(w, "By model:")
	writeTotals(w, byModel)
	fmt.Fprintln(w, "\nBy stage:")
	writeTotals(w, byStage)
	return nil
}

func (l *Ledger) totals(column string) ([]lineTotal, error) {
	// column is one of the fixed names "model" or "stage", never user input.
	query := fmt.Sprintf(
		`SELECT %s, COUNT(*), SUM(prompt_tokens), SUM(completion_tokens), SUM(cost_usd)
		 FROM llm_calls GROUP BY %s ORDER BY SUM(cost_usd) DESC`, column, column)
	rows, err := l.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying usage totals: %w", err)
	}
	defer rows.Close()

	var totals []lineTotal
	for rows.Next() {
		var t lineTotal
		if err := rows.Scan(&t.key, &t.calls, &t.promptTokens, &t.completionTokens, &t.costUSD); err != nil {
			return nil, fmt.Errorf("scanning usage row: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

func writeTotals(w io.Writer, totals []lineTotal) {
	fmt.Fprintf(w, "  %-32s  %6s  %10s  %10s  %10s\n", "", "calls", "prompt", "completion", "cost USD")
	for _, t := range totals {
		fmt.Fprintf(w, "  %-32s  %6d  %10d  %10d  %10.4f\n",
			t.key, t.calls, t.promptTokens, t.completionTokens, t.costUSD)
	}
}
