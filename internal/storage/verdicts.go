package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/spamsift/internal/common"
	"github.com/Veraticus/spamsift/internal/model"
)

// SaveVerdict records the verdict for message and returns the stored record.
func (s *SQLiteStorage) SaveVerdict(ctx context.Context, message string, verdict *model.Verdict) (*model.VerdictRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateVerdict(verdict); err != nil {
		return nil, err
	}

	hits := verdict.Explanation.GroupHits
	if hits == nil {
		hits = map[string]int{}
	}
	hitsJSON, err := json.Marshal(hits)
	if err != nil {
		return nil, fmt.Errorf("failed to encode group hits: %w", err)
	}

	matches := verdict.Matches
	if matches == nil {
		matches = []model.MatchedPattern{}
	}
	matchesJSON, err := json.Marshal(matches)
	if err != nil {
		return nil, fmt.Errorf("failed to encode matches: %w", err)
	}

	record := &model.VerdictRecord{
		ID:           uuid.NewString(),
		Message:      message,
		Verdict:      *verdict,
		ClassifiedAt: time.Now().UTC(),
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO verdicts (id, message, label, via, triggered_by, total_score, group_hits, matches, classified_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		message,
		string(verdict.Label),
		string(verdict.Explanation.Via),
		verdict.Explanation.TriggeredBy,
		verdict.Explanation.TotalScore,
		string(hitsJSON),
		string(matchesJSON),
		record.ClassifiedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save verdict: %w", err)
	}

	return record, nil
}

// GetVerdict returns the record with the given id or common.ErrNotFound.
func (s *SQLiteStorage) GetVerdict(ctx context.Context, id string) (*model.VerdictRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, message, label, via, triggered_by, total_score, group_hits, matches, classified_at
		FROM verdicts WHERE id = ?`, id)

	record, err := scanVerdict(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("verdict %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get verdict: %w", err)
	}
	return record, nil
}

// RecentVerdicts returns up to limit records, newest first.
func (s *SQLiteStorage) RecentVerdicts(ctx context.Context, limit int) ([]model.VerdictRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateLimit(limit); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, message, label, via, triggered_by, total_score, group_hits, matches, classified_at
		FROM verdicts
		ORDER BY classified_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query verdicts: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	records := make([]model.VerdictRecord, 0, limit)
	for rows.Next() {
		record, err := scanVerdict(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan verdict: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate verdicts: %w", err)
	}

	return records, nil
}

// VerdictStats counts stored verdicts by label and decision layer.
func (s *SQLiteStorage) VerdictStats(ctx context.Context) (*model.VerdictStats, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	stats := &model.VerdictStats{
		ByLabel: make(map[model.Label]int),
		ByVia:   make(map[model.Via]int),
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT label, via, COUNT(*) FROM verdicts GROUP BY label, via`)
	if err != nil {
		return nil, fmt.Errorf("failed to query verdict stats: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var (
			label, via string
			count      int
		)
		if err := rows.Scan(&label, &via, &count); err != nil {
			return nil, fmt.Errorf("failed to scan verdict stats: %w", err)
		}
		stats.ByLabel[model.Label(label)] += count
		stats.ByVia[model.Via(via)] += count
		stats.Total += count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate verdict stats: %w", err)
	}

	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVerdict(row rowScanner) (*model.VerdictRecord, error) {
	var (
		record      model.VerdictRecord
		label, via  string
		triggeredBy sql.NullString
		hitsJSON    string
		matchesJSON string
	)

	if err := row.Scan(
		&record.ID,
		&record.Message,
		&label,
		&via,
		&triggeredBy,
		&record.Verdict.Explanation.TotalScore,
		&hitsJSON,
		&matchesJSON,
		&record.ClassifiedAt,
	); err != nil {
		return nil, err
	}

	record.Verdict.Label = model.Label(label)
	record.Verdict.Explanation.Via = model.Via(via)
	record.Verdict.Explanation.TriggeredBy = triggeredBy.String

	if err := json.Unmarshal([]byte(hitsJSON), &record.Verdict.Explanation.GroupHits); err != nil {
		return nil, fmt.Errorf("failed to decode group hits: %w", err)
	}
	if err := json.Unmarshal([]byte(matchesJSON), &record.Verdict.Matches); err != nil {
		return nil, fmt.Errorf("failed to decode matches: %w", err)
	}
	if len(record.Verdict.Matches) == 0 {
		record.Verdict.Matches = nil
	}

	return &record, nil
}
