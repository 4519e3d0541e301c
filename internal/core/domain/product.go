package domain

// Product is a marketplace item. A persisted product always has an admin
// (role ADMIN) and a seller (role SELLER); the client reference (role CLIENT)
// is optional and toggles freely through the purchase/return workflow.
type Product struct {
	ID          string  `bson:"_id,omitempty"`
	Name        string  `bson:"name"`
	Price       float64 `bson:"price"`
	Description string  `bson:"description,omitempty"`
	Stock       int     `bson:"stock"`
	AdminID     string  `bson:"admin_id"`
	SellerID    string  `bson:"seller_id"`
	ClientID    string  `bson:"client_id,omitempty"` // empty = available
}

// Available reports whether the product has no client assigned.
func (p *Product) Available() bool {
	return p.ClientID == ""
}
