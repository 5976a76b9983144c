package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/m4lucen4/alquilandia-dashboard/internal/domain"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/entity"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/repository"
)

var _ repository.TaxesTypeRepository = (*TaxesTypeRepo)(nil)

// TaxesTypeRepo implementación de TaxesTypeRepository.
type TaxesTypeRepo struct {
	q Querier
}

func NewTaxesTypeRepository(q Querier) *TaxesTypeRepo {
	return &TaxesTypeRepo{q: q}
}

func (r *TaxesTypeRepo) Create(ctx context.Context, t *entity.TaxesType) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO taxes_types (id, name, tax, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		t.ID, t.Name, t.Tax, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return storeError("insert taxes_type", err)
	}
	return nil
}

func (r *TaxesTypeRepo) GetByID(ctx context.Context, id string) (*entity.TaxesType, error) {
	if !isUUID(id) {
		return nil, nil
	}
	var t entity.TaxesType
	err := r.q.QueryRow(ctx, `
		SELECT id, name, tax, created_at, updated_at FROM taxes_types WHERE id = $1`, id,
	).Scan(&t.ID, &t.Name, &t.Tax, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get taxes_type: %w", err)
	}
	return &t, nil
}

func (r *TaxesTypeRepo) Update(ctx context.Context, t *entity.TaxesType) error {
	if !isUUID(t.ID) {
		return domain.ErrNotFound
	}
	cmd, err := r.q.Exec(ctx, `
		UPDATE taxes_types SET name = $2, tax = $3, updated_at = $4 WHERE id = $1`,
		t.ID, t.Name, t.Tax, t.UpdatedAt,
	)
	if err != nil {
		return storeError("update taxes_type", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TaxesTypeRepo) List(ctx context.Context) ([]*entity.TaxesType, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, tax, created_at, updated_at FROM taxes_types ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list taxes_type: %w", err)
	}
	defer rows.Close()

	var list []*entity.TaxesType
	for rows.Next() {
		var t entity.TaxesType
		if err := rows.Scan(&t.ID, &t.Name, &t.Tax, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan taxes_type: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

func (r *TaxesTypeRepo) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return domain.ErrNotFound
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM taxes_types WHERE id = $1`, id)
	if err != nil {
		return storeError("delete taxes_type", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
