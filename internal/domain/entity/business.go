package entity

import "time"

// Business representa la empresa emisora de las facturas.
type Business struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	NIF        string    `json:"nif"`
	Address    string    `json:"address"`
	PostalCode string    `json:"postal_code"`
	Locality   string    `json:"locality"`
	Province   string    `json:"province"`
	Phone      string    `json:"phone"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Snapshot copia los datos visibles en factura. Ediciones posteriores de la empresa no la alteran.
func (b *Business) Snapshot() BusinessSnapshot {
	return BusinessSnapshot{
		Name:       b.Name,
		NIF:        b.NIF,
		Address:    b.Address,
		PostalCode: b.PostalCode,
		Locality:   b.Locality,
		Province:   b.Province,
		Phone:      b.Phone,
	}
}

// BusinessSnapshot datos de la empresa congelados dentro de una factura.
type BusinessSnapshot struct {
	Name       string `json:"name"`
	NIF        string `json:"nif"`
	Address    string `json:"address"`
	PostalCode string `json:"postal_code"`
	Locality   string `json:"locality"`
	Province   string `json:"province"`
	Phone      string `json:"phone"`
}
