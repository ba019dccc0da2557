// Package kernel holds the value objects shared by the delivery portal domain:
//   - UUID: identifiers for orders, companies and couriers
//   - Money: exact non-negative BRL amounts backed by shopspring/decimal
//   - Address: pickup and drop-off endpoints of an order
package kernel
