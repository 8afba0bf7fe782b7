// Package httpsource provides HttpSource, a node whose forward performs an
// HTTP GET on each cycle and emits the response body length. It is
// grounded in the teacher's modules/http_client: a lazily-created
// *http.Client held as instance state and torn down in Close, the same
// asset-lifecycle shape the teacher expresses as a separate asset handler
// pair (CreateHttpClient / DestroyHttpClient).
package httpsource
