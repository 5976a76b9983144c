package entity

import "github.com/shopspring/decimal"

// Budget es un presupuesto tal como lo devuelve el servicio externo de presupuestos.
// Solo se lee; el ciclo de vida lo gestiona ese servicio.
type Budget struct {
	ID              string       `json:"id"`
	BudgetID        string       `json:"budgetId"`
	BudgetReference int64        `json:"budgetReference"`
	Client          string       `json:"client"`
	Phone           string       `json:"phone"`
	Address         string       `json:"address"`
	Locality        string       `json:"locality"`
	Concepto        string       `json:"concepto"`
	Comments        string       `json:"comments"`
	Status          string       `json:"status"`
	EventDate       string       `json:"eventDate"`
	CreationDate    string       `json:"creationDate"`
	LastUpdatedDate string       `json:"lastUpdatedDate"`
	Cancelled       bool         `json:"cancelled"`
	Finished        bool         `json:"finished"`
	NReceipt        int64        `json:"nReceipt"`
	User            *BudgetUser  `json:"user,omitempty"`
	Price           *Price       `json:"price"`
	BudgetLines     []BudgetLine `json:"budgetLines"`
}

// BudgetUser datos mínimos del cliente registrado asociado al presupuesto.
type BudgetUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"FullName"`
	Phone    string `json:"phone"`
}

// ClientName nombre a mostrar: cliente del presupuesto, si no el usuario, si no "-".
func (b *Budget) ClientName() string {
	if b.Client != "" {
		return b.Client
	}
	if b.User != nil && b.User.FullName != "" {
		return b.User.FullName
	}
	return "-"
}

// Price desglose económico del presupuesto. VAT es opcional: un presupuesto sin IVA
// no trae el campo y la factura no debe mostrar la fila.
type Price struct {
	CostSend               decimal.Decimal     `json:"costSend"`
	SubTotalWithExtras     decimal.Decimal     `json:"subTotalWithExtras"`
	UserDiscountPercentage decimal.Decimal     `json:"userDiscountPercentage"`
	UserDiscount           decimal.Decimal     `json:"userDiscount"`
	Extras                 decimal.Decimal     `json:"extras"`
	Total                  decimal.Decimal     `json:"total"`
	VAT                    decimal.NullDecimal `json:"vat"`
	Packs                  decimal.Decimal     `json:"packs"`
	SubTotal               decimal.Decimal     `json:"subTotal"`
	WithIVA                bool                `json:"withIVA"`
	AlreadyPaid            decimal.Decimal     `json:"alreadyPaid"`
}

// HasVAT indica si el IVA viene informado y es distinto de cero.
func (p Price) HasVAT() bool {
	return p.VAT.Valid && !p.VAT.Decimal.IsZero()
}

// PriceException precio especial de una línea para una fecha concreta.
type PriceException struct {
	ID    string          `json:"id"`
	Price decimal.Decimal `json:"price"`
	Date  string          `json:"date"`
}

// Extra complemento opcional de una línea de presupuesto.
type Extra struct {
	ID        string          `json:"id"`
	Checked   bool            `json:"checked"`
	Price     decimal.Decimal `json:"price"`
	ExtraName string          `json:"extraName"`
	Units     decimal.Decimal `json:"units"`
}

// Archivo adjunto de una línea.
type Archivo struct {
	ID       string `json:"id"`
	FileName string `json:"fileName"`
	FileID   string `json:"fileId"`
	FileURI  string `json:"fileUri"`
}

// BudgetLine una partida del presupuesto (y, copiada, de la factura).
type BudgetLine struct {
	ID                 string              `json:"id"`
	Elemento           string              `json:"elemento"`
	Unidades           decimal.NullDecimal `json:"unidades"`
	Observaciones      string              `json:"observaciones"`
	Codigo             *string             `json:"codigo"`
	Nombre             *string             `json:"nombre"`
	Categoria          string              `json:"categoria"`
	PrecioUd           decimal.Decimal     `json:"precioUd"`
	PrecioCoste        decimal.Decimal     `json:"preciocoste"`
	CosteTotal         decimal.Decimal     `json:"costetotal"`
	Bloqueo            int                 `json:"bloqueo"`
	ObjetoID           string              `json:"objetoid"`
	Private            bool                `json:"private"`
	PriceExceptionList []PriceException    `json:"priceExceptionList"`
	Extras             []Extra             `json:"extras"`
	Archivo            []Archivo           `json:"archivo"`
	Datetime           string              `json:"datetime"`
	OriginalPrice      decimal.Decimal     `json:"originalPrice"`
	Units              decimal.Decimal     `json:"units"`
	Descuento          decimal.Decimal     `json:"descuento"`
	Extra              string              `json:"extra"`
	TotalPrice         decimal.Decimal     `json:"totalPrice"`
}

// DisplayName nombre de la línea: nombre si existe, si no el elemento.
func (l BudgetLine) DisplayName() string {
	if l.Nombre != nil && *l.Nombre != "" {
		return *l.Nombre
	}
	return l.Elemento
}

// Clone devuelve una copia profunda: ni slices ni punteros quedan compartidos con el original.
func (l BudgetLine) Clone() BudgetLine {
	out := l
	out.Codigo = cloneString(l.Codigo)
	out.Nombre = cloneString(l.Nombre)
	if l.PriceExceptionList != nil {
		out.PriceExceptionList = append([]PriceException(nil), l.PriceExceptionList...)
	}
	if l.Extras != nil {
		out.Extras = append([]Extra(nil), l.Extras...)
	}
	if l.Archivo != nil {
		out.Archivo = append([]Archivo(nil), l.Archivo...)
	}
	return out
}

// CloneBudgetLines copia profunda de una secuencia de líneas.
func CloneBudgetLines(lines []BudgetLine) []BudgetLine {
	if lines == nil {
		return nil
	}
	out := make([]BudgetLine, len(lines))
	for i, l := range lines {
		out[i] = l.Clone()
	}
	return out
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	s := *p
	return &s
}
