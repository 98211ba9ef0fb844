// Package httpapi exposes the question answering workflow over HTTP.
//
// POST /v1/run accepts {"questions": [...]} and responds with
// {"answers": [...]}, aligned by position. The endpoint is guarded by a
// bearer token; GET /healthz stays open for probes.
package httpapi
