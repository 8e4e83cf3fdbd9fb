// Package requestid correlates an incoming request with the records it
// produces and the Mesto API calls made on its behalf.
//
// Middleware reuses a well-formed X-Request-ID header or generates a UUID,
// echoes the id in the response and stores it in the request context.
// Extractor exposes it to the logger as "request_id", and the mesto client
// forwards it on outgoing calls.
package requestid
