package enums

// OrderStatus is the pedidos.status value. The system only ever writes
// "Pendente"; the column is kept free-form for compatibility with rows
// edited out of band.
type OrderStatus string

const (
	OrderStatusPendente OrderStatus = "Pendente"
)

func (s OrderStatus) String() string {
	return string(s)
}
