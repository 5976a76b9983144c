package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m4lucen4/alquilandia-dashboard/internal/application/dto"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/entity"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/repository"
)

// BusinessUseCase aplica reglas de negocio para empresas emisoras.
type BusinessUseCase struct {
	repo repository.BusinessRepository
}

// NewBusinessUseCase construye el caso de uso con el puerto de persistencia.
func NewBusinessUseCase(repo repository.BusinessRepository) *BusinessUseCase {
	return &BusinessUseCase{repo: repo}
}

// List devuelve las empresas, la más reciente primero.
func (uc *BusinessUseCase) List(ctx context.Context) ([]*entity.Business, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*entity.Business{}
	}
	return list, nil
}

// GetByID obtiene una empresa o domain.ErrNotFound.
func (uc *BusinessUseCase) GetByID(ctx context.Context, id string) (*entity.Business, error) {
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

// Create valida todos los campos y persiste la empresa.
func (uc *BusinessUseCase) Create(ctx context.Context, in dto.BusinessRequest) (*entity.Business, error) {
	now := time.Now()
	b := &entity.Business{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now}
	applyBusiness(b, in)
	if err := ValidateBusiness(b); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Update aplica solo los campos presentes en la petición y revalida el resultado.
func (uc *BusinessUseCase) Update(ctx context.Context, id string, in dto.BusinessRequest) (*entity.Business, error) {
	b, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyBusiness(b, in)
	if err := ValidateBusiness(b); err != nil {
		return nil, err
	}
	b.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Delete elimina la empresa. Si tiene facturas el almacén lo rechaza (domain.ErrConflict).
func (uc *BusinessUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// ValidateBusiness reglas del formulario de empresa.
func ValidateBusiness(b *entity.Business) error {
	errs := FieldErrors{}
	errs.required("name", b.Name, "El nombre es obligatorio")
	if errs.required("nif", b.NIF, "El NIF es obligatorio") && !nifRegex.MatchString(strings.ToUpper(b.NIF)) {
		errs["nif"] = "El NIF debe tener 9 caracteres alfanuméricos"
	}
	errs.required("address", b.Address, "La dirección es obligatoria")
	errs.required("locality", b.Locality, "La localidad es obligatoria")
	errs.required("province", b.Province, "La provincia es obligatoria")
	if errs.required("phone", b.Phone, "El teléfono es obligatorio") && !phoneRegex.MatchString(b.Phone) {
		errs["phone"] = "El teléfono debe tener 9 dígitos"
	}
	if errs.required("postal_code", b.PostalCode, "El código postal es obligatorio") && !postalCodeRegex.MatchString(b.PostalCode) {
		errs["postal_code"] = "El código postal debe tener 5 dígitos"
	}
	return errs.err()
}

func applyBusiness(b *entity.Business, in dto.BusinessRequest) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&b.Name, in.Name)
	set(&b.NIF, in.NIF)
	set(&b.Address, in.Address)
	set(&b.PostalCode, in.PostalCode)
	set(&b.Locality, in.Locality)
	set(&b.Province, in.Province)
	set(&b.Phone, in.Phone)
	b.NIF = strings.ToUpper(b.NIF)
}
