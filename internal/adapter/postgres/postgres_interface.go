package postgres

import (
	"context"

	"github.com/tlb-lemrabott/mauriexchange/internal/entity"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type ConversionRepository interface {
	StoreConversion(ctx context.Context, record entity.ConversionRecord) error
	RecentConversions(ctx context.Context, limit int) ([]entity.ConversionRecord, error)
}

type Pool interface {
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
}
