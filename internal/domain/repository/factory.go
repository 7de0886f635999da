package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Addresses() AddressRepository
	Categories() CategoryRepository
	Products() ProductRepository
	Variants() VariantRepository
	Orders() OrderRepository
	Payments() PaymentRepository
	Shipments() ShipmentRepository
	Reports() ReportRepository
}
