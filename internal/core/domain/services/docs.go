// Package services provides domain services of the delivery portal that do not
// belong to a single aggregate.
//
// The package includes:
//   - FeeEstimator: the pricing contract used before an order is created
//   - RandomFeeEstimator: the placeholder policy, base 15.00 plus up to 20.00
package services
