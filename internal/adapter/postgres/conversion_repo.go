package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/tlb-lemrabott/mauriexchange/internal/entity"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

var (
	psql        = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	ErrNotFound = errors.New("not found")
)

// ConversionRepo persists the audit trail of performed conversions.
type ConversionRepo struct {
	pool   Pool
	logger *logrus.Logger
}

func NewConversionRepo(pool Pool, logger *logrus.Logger) *ConversionRepo {
	return &ConversionRepo{
		pool:   pool,
		logger: logger,
	}
}

func (r *ConversionRepo) StoreConversion(ctx context.Context, record entity.ConversionRecord) error {
	query, args, err := psql.Insert("currency_conversions").
		Columns("id", "from_code", "to_code", "amount", "rate", "converted_amount", "user_ip", "user_agent", "created_at").
		Values(record.ID, record.FromCode, record.ToCode, record.Amount, record.Rate, record.ConvertedAmount, record.UserIP, record.UserAgent, record.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert for conversion %s: %w", record.ID, err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		r.logger.WithError(err).WithFields(logrus.Fields{
			"from": record.FromCode,
			"to":   record.ToCode,
		}).Error("Failed to store conversion record")
		return fmt.Errorf("store conversion: %w", err)
	}

	r.logger.WithField("id", record.ID).Debug("Stored conversion record")
	return nil
}

func (r *ConversionRepo) RecentConversions(ctx context.Context, limit int) ([]entity.ConversionRecord, error) {
	query, args, err := psql.
		Select("id", "from_code", "to_code", "amount", "rate", "converted_amount", "user_ip", "user_agent", "created_at").
		From("currency_conversions").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		r.logger.WithError(err).Error("Failed to query recent conversions")
		return nil, fmt.Errorf("query recent conversions: %w", err)
	}
	defer rows.Close()

	var records []entity.ConversionRecord
	var scanErrs error
	for rows.Next() {
		var rec entity.ConversionRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.FromCode,
			&rec.ToCode,
			&rec.Amount,
			&rec.Rate,
			&rec.ConvertedAmount,
			&rec.UserIP,
			&rec.UserAgent,
			&rec.CreatedAt,
		); err != nil {
			scanErrs = multierr.Append(scanErrs, err)
			continue
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recent conversions: %w", err)
	}
	if scanErrs != nil {
		return records, fmt.Errorf("scan recent conversions: %w", scanErrs)
	}

	return records, nil
}
