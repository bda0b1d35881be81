// Package prism is a small client for the Nutanix Prism REST API v2.0.
//
// It covers the calls the console needs:
//
//   - ListContainers: GET storage_containers
//   - ListNetworks: GET networks
//   - GetCluster: GET cluster
//   - CreateVM: POST vms
//
// Every HTTP status is handed back to the caller. Only failures to reach the
// cluster or to read a response are returned as errors, wrapped in
// ErrTransport. List calls additionally report non-2xx statuses as *APIError.
//
// Raw response payloads can be mirrored to a PayloadSink (see WithPayloadSink)
// for debugging.
package prism
