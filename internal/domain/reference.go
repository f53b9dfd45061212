// internal/domain/reference.go
package domain

// Country is reference data loaded once at startup.
type Country struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"nombre" json:"nombre"`
	ISO2 string `db:"iso2" json:"iso2"`
}

// Province belongs to exactly one country; the pair (name, country) is
// unique.
type Province struct {
	ID        int64  `db:"id" json:"id"`
	Name      string `db:"nombre" json:"nombre"`
	CountryID int64  `db:"pais_id" json:"paisId"`
}

// DollarRate stores the last observed sell price per upstream source so the
// quote proxy can annotate movement direction.
type DollarRate struct {
	Source   string  `db:"nombre" json:"nombre"`
	LastSell float64 `db:"ultima_venta" json:"ultimaVenta"`
}
