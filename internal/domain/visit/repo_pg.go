package visit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eyecare/clinic/internal/platform/db"
)

type visitRepoPG struct{ pool *pgxpool.Pool }

func NewVisitRepoPG(pool *pgxpool.Pool) Repository {
	return &visitRepoPG{pool: pool}
}

// payload is the JSONB document holding the type specific part of a visit.
type payload struct {
	Consultation *ConsultationPayload `json:"consultation,omitempty"`
	Medicines    []MedicineLine       `json:"medicines,omitempty"`
	Optical      *OpticalPayload      `json:"optical,omitempty"`
}

const visitCols = `id, patient_id, type, visit_date, doctor, diagnosis,
	amount::float8, status, payload`

func (r *visitRepoPG) scanVisit(row pgx.Row) (*Visit, error) {
	var (
		v   Visit
		raw []byte
	)
	err := row.Scan(&v.ID, &v.PatientID, &v.Type, &v.Date, &v.Doctor,
		&v.Diagnosis, &v.Amount, &v.Status, &raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode visit payload: %w", err)
	}
	v.Consultation, v.Medicines, v.Optical = p.Consultation, p.Medicines, p.Optical
	return &v, nil
}

func (r *visitRepoPG) Create(ctx context.Context, v *Visit) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	raw, err := json.Marshal(payload{Consultation: v.Consultation, Medicines: v.Medicines, Optical: v.Optical})
	if err != nil {
		return fmt.Errorf("encode visit payload: %w", err)
	}
	_, err = db.Conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO visit (id, patient_id, type, visit_date, doctor, diagnosis,
			amount, status, payload)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		v.ID, v.PatientID, v.Type, v.Date, v.Doctor, v.Diagnosis,
		v.Amount, v.Status, raw)
	return err
}

func (r *visitRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Visit, error) {
	return r.scanVisit(db.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+visitCols+` FROM visit WHERE id = $1`, id))
}

func (r *visitRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Visit, error) {
	return r.query(ctx, `SELECT `+visitCols+` FROM visit WHERE patient_id = $1 ORDER BY seq`, patientID)
}

func (r *visitRepoPG) ListBetween(ctx context.Context, from, to time.Time) ([]*Visit, error) {
	return r.query(ctx, `SELECT `+visitCols+` FROM visit
		WHERE visit_date >= $1 AND visit_date < $2 ORDER BY seq`, from, to)
}

func (r *visitRepoPG) List(ctx context.Context) ([]*Visit, error) {
	return r.query(ctx, `SELECT `+visitCols+` FROM visit ORDER BY seq`)
}

func (r *visitRepoPG) DeleteByPatient(ctx context.Context, patientID uuid.UUID) error {
	_, err := db.Conn(ctx, r.pool).Exec(ctx, `DELETE FROM visit WHERE patient_id = $1`, patientID)
	return err
}

func (r *visitRepoPG) query(ctx context.Context, sql string, args ...interface{}) ([]*Visit, error) {
	rows, err := db.Conn(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Visit
	for rows.Next() {
		v, err := r.scanVisit(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, rows.Err()
}
