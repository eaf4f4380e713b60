package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"StrataScan/internal/model"
)

// SQLiteRecorder persists runs and their recommended candidates to SQLite.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log zerolog.Logger
}

// NewSQLiteRecorder opens (or creates) the database and runs migrations.
func NewSQLiteRecorder(dbPath string, log zerolog.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode keeps reads cheap while the scheduler writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: log.With().Str("component", "recorder").Logger()}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	r.log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analysis_runs (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id          TEXT NOT NULL UNIQUE,
			timestamp       INTEGER NOT NULL,
			market_phase    TEXT,
			risk_appetite   TEXT,
			strategy_focus  TEXT,
			sentiment_index REAL,
			total_screened  INTEGER,
			selected_count  INTEGER,
			confirmed_count INTEGER,
			strong_signals  INTEGER,
			degraded        INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON analysis_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS run_candidates (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id         TEXT NOT NULL,
			symbol         TEXT NOT NULL,
			name           TEXT,
			current_price  REAL,
			sector         TEXT,
			total_score    REAL,
			final_rating   REAL,
			signal         TEXT,
			strength       INTEGER,
			confidence     REAL,
			risk_level     TEXT,
			volatility     REAL,
			max_drawdown   REAL,
			sharpe_ratio   REAL,
			beta           REAL,
			degraded       INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_candidates_run ON run_candidates(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_candidates_symbol ON run_candidates(symbol)`,
	}
	for _, stmt := range stmts {
		if _, err := r.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
	}
	return nil
}

// RecordRun writes the run header and its top picks in one transaction.
func (r *SQLiteRecorder) RecordRun(result *model.AnalysisResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var (
		phase, appetite, focus string
		sentiment              float64
		screened, selected     int
		confirmed, strong      int
	)
	if result.Macro != nil {
		phase = string(result.Macro.MarketPhase)
		appetite = string(result.Macro.RiskAppetite)
		sentiment = result.Macro.Snapshot.SentimentIndex
	}
	if result.Strategy != nil {
		focus = string(result.Strategy.PrimaryFocus)
	}
	if result.Screening != nil {
		screened = result.Screening.TotalScreened
		selected = len(result.Screening.SelectedStocks)
	}
	if result.Confirmation != nil {
		confirmed = len(result.Confirmation.ConfirmedStocks)
		strong = result.Confirmation.StrongSignals
	}

	if _, err := tx.Exec(`INSERT INTO analysis_runs
		(run_id, timestamp, market_phase, risk_appetite, strategy_focus,
		 sentiment_index, total_screened, selected_count, confirmed_count,
		 strong_signals, degraded)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.RunID, result.AnalysisTime.Unix(), phase, appetite, focus,
		sentiment, screened, selected, confirmed, strong,
		boolToInt(result.Degraded),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	if result.Recommendations != nil {
		for _, c := range result.Recommendations.TopPicks {
			if err := insertCandidate(tx, result.RunID, c); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	r.log.Debug().Str("run_id", result.RunID).Msg("run recorded")
	return nil
}

func insertCandidate(tx *sql.Tx, runID string, c *model.Candidate) error {
	var (
		signal          string
		strength        int
		confidence      float64
		riskLevel       string
		vol, dd, sharpe float64
		beta            float64
	)
	if c.Strength != nil {
		signal = string(c.Strength.Signal)
		strength = c.Strength.Strength
		confidence = c.Strength.Confidence
	}
	if c.Risk != nil {
		riskLevel = c.Risk.RiskLevel
		vol = c.Risk.Volatility
		dd = c.Risk.MaxDrawdown
		sharpe = c.Risk.SharpeRatio
		beta = c.Risk.Beta
	}

	if _, err := tx.Exec(`INSERT INTO run_candidates
		(run_id, symbol, name, current_price, sector, total_score,
		 final_rating, signal, strength, confidence, risk_level,
		 volatility, max_drawdown, sharpe_ratio, beta, degraded)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, c.Symbol, c.Name, c.CurrentPrice, c.Sector, c.TotalScore,
		c.FinalRating, signal, strength, confidence, riskLevel,
		vol, dd, sharpe, beta, boolToInt(c.Degraded),
	); err != nil {
		return fmt.Errorf("insert candidate %s: %w", c.Symbol, err)
	}
	return nil
}

// RecentRuns returns headers for the most recent runs, newest first.
func (r *SQLiteRecorder) RecentRuns(limit int) ([]RunHeader, error) {
	rows, err := r.db.Query(`SELECT run_id, timestamp, market_phase,
		strategy_focus, confirmed_count, degraded
		FROM analysis_runs ORDER BY timestamp DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var headers []RunHeader
	for rows.Next() {
		var h RunHeader
		var ts int64
		var degraded int
		if err := rows.Scan(&h.RunID, &ts, &h.MarketPhase, &h.StrategyFocus, &h.ConfirmedCount, &degraded); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		h.Timestamp = time.Unix(ts, 0)
		h.Degraded = degraded != 0
		headers = append(headers, h)
	}
	return headers, rows.Err()
}

// RunHeader is a compact row from the run history.
type RunHeader struct {
	RunID          string    `json:"run_id"`
	Timestamp      time.Time `json:"timestamp"`
	MarketPhase    string    `json:"market_phase"`
	StrategyFocus  string    `json:"strategy_focus"`
	ConfirmedCount int       `json:"confirmed_count"`
	Degraded       bool      `json:"degraded"`
}

func (r *SQLiteRecorder) Close() error { return r.db.Close() }

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
