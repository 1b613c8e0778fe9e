package entities

// SupplierID uniquely identifies a supplier
type SupplierID string

// Supplier represents an equipment vendor
type Supplier struct {
	ID      SupplierID
	Name    string
	Contact string
	Email   string
	Phone   string
	Address string
}
