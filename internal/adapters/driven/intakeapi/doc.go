// Package intakeapi implements driven.IntakeAPI over HTTP.
//
// Every request passes through a token-bucket rate limiter and a circuit
// breaker, carries an X-Request-ID header, and is made exactly once.
// Non-2xx responses and network faults are reported as
// *domain.TransportError with the server's "detail" message when present.
//
// JSON objects whose key order matters for display (metadata,
// extracted_info, the category grouping) are decoded token by token so
// the server's order survives.
package intakeapi
