/*
Package ports defines the driven ports (interfaces) for the winmate core.

These interfaces decouple the catalog/router/executor core from external
implementations, allowing it to work with various journal backends,
remote planners, and notification sinks.

# Key Interfaces

  - Journal: Responsible for durably recording events and action lifecycle entries.
  - Notifier: Responsible for delivering health alerts to the user.
*/
package ports
