// Package httpclient provides the HTTP plumbing shared by the catalog and FDC clients.
//
// It builds a transport with strict connection, TLS and header timeouts, sends JSON
// requests, and maps failures onto core/errors: network failures become
// TransportError, non-2xx statuses and undecodable bodies become ProtocolError.
//
// GET requests are retried with exponential backoff (cenkalti/backoff) when the
// failure is a transport error or a temporary status (429, 5xx). PATCH and other
// mutating requests are sent exactly once.
//
// # Usage
//
//	client := httpclient.New(30 * time.Second)
//	var page foodPage
//	header, err := client.GetJSON(ctx, url, auth, &page)
package httpclient
