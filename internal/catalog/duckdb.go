package catalog

import (
	"database/sql"
	"fmt"

	_ "github.com/marcboeker/go-duckdb"
)

// Store provides access to marker and rule tables kept in a DuckDB
// database, for sites that maintain their own panel instead of the
// built-in one.
type Store struct {
	db   *sql.DB
	path string
}

// OpenStore opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateSchema creates the markers and guideline_rules tables.
func (s *Store) CreateSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS markers (
			id VARCHAR PRIMARY KEY,
			gene VARCHAR NOT NULL,
			ref VARCHAR NOT NULL,
			alt VARCHAR NOT NULL,
			ref_star VARCHAR NOT NULL,
			alt_star VARCHAR NOT NULL,
			impact VARCHAR NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS guideline_rules (
			gene VARCHAR NOT NULL,
			drug VARCHAR NOT NULL,
			phenotype VARCHAR NOT NULL,
			risk_label VARCHAR NOT NULL,
			severity VARCHAR NOT NULL,
			confidence DOUBLE NOT NULL,
			action VARCHAR NOT NULL,
			dosage_adjustment VARCHAR NOT NULL,
			summary VARCHAR NOT NULL,
			mechanism VARCHAR NOT NULL,
			PRIMARY KEY (gene, drug, phenotype)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// Export writes a Tables value into the database, replacing any
// existing rows.
func (s *Store) Export(t *Tables) error {
	if err := s.CreateSchema(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin export: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM markers`); err != nil {
		return fmt.Errorf("clear markers: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM guideline_rules`); err != nil {
		return fmt.Errorf("clear guideline_rules: %w", err)
	}

	for _, m := range t.Markers() {
		_, err := tx.Exec(
			`INSERT INTO markers (id, gene, ref, alt, ref_star, alt_star, impact)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			m.ID, m.Gene, m.Ref, m.Alt, m.RefStar, m.AltStar, string(m.Impact))
		if err != nil {
			return fmt.Errorf("insert marker %s: %w", m.ID, err)
		}
	}

	for _, r := range t.Rules() {
		_, err := tx.Exec(
			`INSERT INTO guideline_rules
			 (gene, drug, phenotype, risk_label, severity, confidence,
			  action, dosage_adjustment, summary, mechanism)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.Gene, r.Drug, string(r.Phenotype), string(r.RiskLabel), string(r.Severity),
			r.Confidence, r.Action, r.DosageAdjustment, r.Summary, r.Mechanism)
		if err != nil {
			return fmt.Errorf("insert rule %s/%s/%s: %w", r.Gene, r.Drug, r.Phenotype, err)
		}
	}

	return tx.Commit()
}

// Load reads the markers and guideline_rules tables into a Tables value.
func (s *Store) Load() (*Tables, error) {
	mappings, err := s.loadMarkers()
	if err != nil {
		return nil, err
	}
	ruleList, err := s.loadRules()
	if err != nil {
		return nil, err
	}
	return New(mappings, ruleList), nil
}

func (s *Store) loadMarkers() ([]MarkerMapping, error) {
	rows, err := s.db.Query(`
		SELECT id, gene, ref, alt, ref_star, alt_star, impact
		FROM markers
		ORDER BY gene, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query markers: %w", err)
	}
	defer rows.Close()

	var mappings []MarkerMapping
	for rows.Next() {
		var m MarkerMapping
		var impact string
		if err := rows.Scan(&m.ID, &m.Gene, &m.Ref, &m.Alt, &m.RefStar, &m.AltStar, &impact); err != nil {
			return nil, fmt.Errorf("scan marker: %w", err)
		}
		m.Impact = Impact(impact)
		mappings = append(mappings, m)
	}
	return mappings, rows.Err()
}

func (s *Store) loadRules() ([]GuidelineRule, error) {
	rows, err := s.db.Query(`
		SELECT gene, drug, phenotype, risk_label, severity, confidence,
		       action, dosage_adjustment, summary, mechanism
		FROM guideline_rules
		ORDER BY gene, drug, phenotype
	`)
	if err != nil {
		return nil, fmt.Errorf("query guideline_rules: %w", err)
	}
	defer rows.Close()

	var list []GuidelineRule
	for rows.Next() {
		var r GuidelineRule
		var phenotype, riskLabel, severity string
		err := rows.Scan(&r.Gene, &r.Drug, &phenotype, &riskLabel, &severity,
			&r.Confidence, &r.Action, &r.DosageAdjustment, &r.Summary, &r.Mechanism)
		if err != nil {
			return nil, fmt.Errorf("scan rule: %w", err)
		}
		r.Phenotype = Phenotype(phenotype)
		r.RiskLabel = RiskLabel(riskLabel)
		r.Severity = Severity(severity)
		list = append(list, r)
	}
	return list, rows.Err()
}
