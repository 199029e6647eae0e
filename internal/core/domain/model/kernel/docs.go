// Package kernel provides the shared value objects of the order domain.
//
// The package includes:
//   - UUID: identity of orders, users and products, with validation and comparison
//
// Values in this package are immutable and safe for concurrent use.
package kernel
