// Package order holds the Order aggregate of the delivery portal: a company's
// request to move a parcel from a pickup address to a drop-off address.
//
// The package includes:
//   - Order: the aggregate root, created from a Draft by NewOrder or rehydrated by RestoreOrder
//   - Status: the lifecycle state machine with its transition table
//   - ValidationError and IllegalTransitionError: the typed refusals of the aggregate
//
// Key business rules:
//   - pickup and drop-off street and city are mandatory
//   - a positive shipping fee must have been estimated before creation
//   - the total value is product value plus shipping fee, fixed at creation
//   - status flows Received -> Sent -> InTransit -> Delivered, with Cancelled
//     reachable from every non-terminal state
//   - completedAt is stamped exactly when the order is delivered
//
// The order number is not chosen here: storage allocates it and hands it back
// through AssignNumber.
package order
