package order

import "storefront/internal/core/domain/model/orderid"

// ShippingAddress is the delivery destination as entered by the customer.
// Several fields are alternatives of each other (Address/Street,
// PostalCode/ZipCode) because different checkout forms submit different names.
type ShippingAddress struct {
	Name       string
	Email      string
	Phone      string
	Address    string
	Street     string
	Upazilla   string
	State      string
	Division   string
	City       string
	PostalCode string
	ZipCode    string
	Country    string
}

// RegionKey derives the identifier prefix: State, then Division, then City,
// then the generic region.
func (a ShippingAddress) RegionKey() orderid.RegionKey {
	return orderid.ResolveRegionKey(a.State, a.Division, a.City)
}
