// Package services contains the sync engines that reconcile the local
// durable store, the remote service and the pending-operation queue.
//
// Each service serializes its own public operations and publishes a
// snapshot (items, loading, offline, last error) through a state.Value.
// Remote and storage failures never escape a service: remote failures
// degrade to offline mode with locally consistent data, storage failures
// fall back to an empty or previous snapshot. The only error a public
// mutation returns is a *common.ValidationError, raised before any side
// effect.
package services
