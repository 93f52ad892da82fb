/*
Package domain contains the core domain models for winmate.

It defines the fundamental entities of the maintenance assistant: Actions
(registered maintenance operations), the groups they belong to, and the
ExecutionRecord produced every time one runs. This package is kept pure and
free of external dependencies like I/O or persistence, following Hexagonal
Architecture principles.

# Key Entities

  - Action: One registered maintenance operation (id, metadata, danger flag, handler).
  - ExecutionRecord: The outcome of running one Action once.
  - ActionSummary: The compact catalog view handed to the remote planner.
*/
package domain
