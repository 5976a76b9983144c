package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/m4lucen4/alquilandia-dashboard/internal/domain"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/entity"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/repository"
)

// Asegura que BusinessRepo implementa repository.BusinessRepository.
var _ repository.BusinessRepository = (*BusinessRepo)(nil)

// BusinessRepo implementación del puerto BusinessRepository sobre PostgreSQL (pool o tx).
type BusinessRepo struct {
	q Querier
}

// NewBusinessRepository construye el adaptador de persistencia para empresas.
func NewBusinessRepository(q Querier) *BusinessRepo {
	return &BusinessRepo{q: q}
}

const businessColumns = `id, name, nif, address, postal_code, locality, province, phone, created_at, updated_at`

// Create persiste una nueva empresa.
func (r *BusinessRepo) Create(ctx context.Context, b *entity.Business) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	query := `
		INSERT INTO business (` + businessColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.Name, b.NIF, b.Address, b.PostalCode, b.Locality, b.Province, b.Phone,
		b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return storeError("insert business", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *BusinessRepo) GetByID(ctx context.Context, id string) (*entity.Business, error) {
	if !isUUID(id) {
		return nil, nil
	}
	query := `SELECT ` + businessColumns + ` FROM business WHERE id = $1`
	var b entity.Business
	err := r.q.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Name, &b.NIF, &b.Address, &b.PostalCode, &b.Locality, &b.Province, &b.Phone,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get business: %w", err)
	}
	return &b, nil
}

// Update actualiza una empresa existente.
func (r *BusinessRepo) Update(ctx context.Context, b *entity.Business) error {
	if !isUUID(b.ID) {
		return domain.ErrNotFound
	}
	query := `
		UPDATE business
		SET name = $2, nif = $3, address = $4, postal_code = $5, locality = $6, province = $7, phone = $8, updated_at = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		b.ID, b.Name, b.NIF, b.Address, b.PostalCode, b.Locality, b.Province, b.Phone, b.UpdatedAt,
	)
	if err != nil {
		return storeError("update business", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve todas las empresas, las más recientes primero.
func (r *BusinessRepo) List(ctx context.Context) ([]*entity.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM business ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list business: %w", err)
	}
	defer rows.Close()

	var list []*entity.Business
	for rows.Next() {
		var b entity.Business
		if err := rows.Scan(&b.ID, &b.Name, &b.NIF, &b.Address, &b.PostalCode, &b.Locality, &b.Province, &b.Phone, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan business: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// Delete elimina una empresa. Si tiene facturas asociadas devuelve domain.ErrConflict con el mensaje del motor.
func (r *BusinessRepo) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return domain.ErrNotFound
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM business WHERE id = $1`, id)
	if err != nil {
		return storeError("delete business", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
