package rxtemplate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eyecare/clinic/internal/platform/db"
)

type templateRepoPG struct{ pool *pgxpool.Pool }

func NewTemplateRepoPG(pool *pgxpool.Pool) Repository {
	return &templateRepoPG{pool: pool}
}

const templateCols = `id, name, category, description, medications, instructions,
	follow_up, created_by, last_used, usage_count`

func (r *templateRepoPG) scanTemplate(row pgx.Row) (*Template, error) {
	var (
		t    Template
		meds []byte
	)
	err := row.Scan(&t.ID, &t.Name, &t.Category, &t.Description, &meds,
		&t.Instructions, &t.FollowUp, &t.CreatedBy, &t.LastUsed, &t.UsageCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(meds, &t.Medications); err != nil {
		return nil, fmt.Errorf("decode medications: %w", err)
	}
	return &t, nil
}

func (r *templateRepoPG) Create(ctx context.Context, t *Template) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	meds, err := json.Marshal(t.Medications)
	if err != nil {
		return err
	}
	_, err = db.Conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO prescription_template (id, name, category, description,
			medications, instructions, follow_up, created_by, last_used, usage_count)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		t.ID, t.Name, t.Category, t.Description, meds, t.Instructions,
		t.FollowUp, t.CreatedBy, t.LastUsed, t.UsageCount)
	return err
}

func (r *templateRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Template, error) {
	return r.scanTemplate(db.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+templateCols+` FROM prescription_template WHERE id = $1`, id))
}

func (r *templateRepoPG) Update(ctx context.Context, t *Template) error {
	meds, err := json.Marshal(t.Medications)
	if err != nil {
		return err
	}
	tag, err := db.Conn(ctx, r.pool).Exec(ctx, `
		UPDATE prescription_template SET name=$2, category=$3, description=$4,
			medications=$5, instructions=$6, follow_up=$7, created_by=$8,
			last_used=$9, usage_count=$10, updated_at=NOW()
		WHERE id = $1`,
		t.ID, t.Name, t.Category, t.Description, meds, t.Instructions,
		t.FollowUp, t.CreatedBy, t.LastUsed, t.UsageCount)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *templateRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := db.Conn(ctx, r.pool).Exec(ctx, `DELETE FROM prescription_template WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *templateRepoPG) List(ctx context.Context) ([]*Template, error) {
	rows, err := db.Conn(ctx, r.pool).Query(ctx,
		`SELECT `+templateCols+` FROM prescription_template ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Template
	for rows.Next() {
		t, err := r.scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}
