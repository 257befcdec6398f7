/*
Package ports defines the driven ports (interfaces) for the routekit runtime.

These interfaces decouple the coordination layer from the external graph
engine and from cache-owning collaborators, allowing the runtime to supervise
any backend that can produce a connection handle.

# Key Interfaces

  - Shutdownable: Capability implemented by every live engine handle; the exit sweep calls it exactly once per handle.
  - CacheOwner: Zero-argument invalidation hook cleared on hot-reload.
  - StageObserver: Notification interface the engine's pipeline builder calls once per stage constructed.
  - Pipeline: A lazily-built traversal that can be driven to its terminal result.
*/
package ports
