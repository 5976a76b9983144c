package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/m4lucen4/alquilandia-dashboard/internal/domain"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/entity"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/repository"
)

var _ repository.InvoicesTypeRepository = (*InvoicesTypeRepo)(nil)

// InvoicesTypeRepo implementación de InvoicesTypeRepository.
type InvoicesTypeRepo struct {
	q Querier
}

func NewInvoicesTypeRepository(q Querier) *InvoicesTypeRepo {
	return &InvoicesTypeRepo{q: q}
}

func (r *InvoicesTypeRepo) Create(ctx context.Context, t *entity.InvoicesType) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO invoices_types (id, invoices, percentage, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		t.ID, t.Invoices, t.Percentage, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return storeError("insert invoices_type", err)
	}
	return nil
}

func (r *InvoicesTypeRepo) GetByID(ctx context.Context, id string) (*entity.InvoicesType, error) {
	if !isUUID(id) {
		return nil, nil
	}
	var t entity.InvoicesType
	err := r.q.QueryRow(ctx, `
		SELECT id, invoices, percentage, created_at, updated_at FROM invoices_types WHERE id = $1`, id,
	).Scan(&t.ID, &t.Invoices, &t.Percentage, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoices_type: %w", err)
	}
	return &t, nil
}

func (r *InvoicesTypeRepo) Update(ctx context.Context, t *entity.InvoicesType) error {
	if !isUUID(t.ID) {
		return domain.ErrNotFound
	}
	cmd, err := r.q.Exec(ctx, `
		UPDATE invoices_types SET invoices = $2, percentage = $3, updated_at = $4 WHERE id = $1`,
		t.ID, t.Invoices, t.Percentage, t.UpdatedAt,
	)
	if err != nil {
		return storeError("update invoices_type", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *InvoicesTypeRepo) List(ctx context.Context) ([]*entity.InvoicesType, error) {
	rows, err := r.q.Query(ctx, `SELECT id, invoices, percentage, created_at, updated_at FROM invoices_types ORDER BY invoices`)
	if err != nil {
		return nil, fmt.Errorf("list invoices_type: %w", err)
	}
	defer rows.Close()

	var list []*entity.InvoicesType
	for rows.Next() {
		var t entity.InvoicesType
		if err := rows.Scan(&t.ID, &t.Invoices, &t.Percentage, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan invoices_type: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

func (r *InvoicesTypeRepo) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return domain.ErrNotFound
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM invoices_types WHERE id = $1`, id)
	if err != nil {
		return storeError("delete invoices_type", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
