package repositories

import (
	"context"

	"biobank-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CustodyRepository struct {
	DB *pgxpool.Pool
}

func NewCustodyRepository(db *pgxpool.Pool) *CustodyRepository {
	return &CustodyRepository{DB: db}
}

const custodyColumns = `sequence_no, sample_id, event_type, from_value, to_value, actor, created_at`

// History returns a sample's custody events in ascending sequence order.
func (r *CustodyRepository) History(ctx context.Context, sampleID string) ([]*models.CustodyEvent, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+custodyColumns+`
         FROM custody_events WHERE sample_id=$1 ORDER BY sequence_no`, sampleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*models.CustodyEvent
	for rows.Next() {
		var e models.CustodyEvent
		if err := rows.Scan(&e.SequenceNo, &e.SampleID, &e.EventType,
			&e.FromValue, &e.ToValue, &e.Actor, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, &e)
	}
	return events, rows.Err()
}

// ListAfter pages the whole ledger in global sequence order, for archive
// export. Restart from the last sequence number seen to resume.
func (r *CustodyRepository) ListAfter(ctx context.Context, afterSeq int64, limit int) ([]*models.CustodyEvent, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+custodyColumns+`
         FROM custody_events WHERE sequence_no > $1
         ORDER BY sequence_no LIMIT $2`, afterSeq, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*models.CustodyEvent
	for rows.Next() {
		var e models.CustodyEvent
		if err := rows.Scan(&e.SequenceNo, &e.SampleID, &e.EventType,
			&e.FromValue, &e.ToValue, &e.Actor, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, &e)
	}
	return events, rows.Err()
}
