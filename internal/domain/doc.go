// Package domain defines the entity shapes the admin BFF relays between the
// backend services and the dashboard.
//
// Every type here is backend-owned: the BFF never computes authoritative
// state transitions, it only renders server-reported state and issues
// mutation requests. Types are pure value objects with no behavior beyond
// pure helper methods.
//
// Rules for this package:
//   - No imports from other internal/ packages
//   - No *sql.DB, no http.Request, no context.Context in struct fields
//   - JSON tags follow the backend wire format (camelCase)
//   - Enum values are the literal strings the backends emit (UPPERCASE)
package domain
