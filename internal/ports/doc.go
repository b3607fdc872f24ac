// Package ports defines the interfaces that connect the coverage engine to
// infrastructure adapters.
//
// # Port Interfaces
//
//   - [SelectionLookup]: resolves a field/band pair to a selection file path
//   - [SelectionReader]: turns a selection file into validated intervals
//   - [ReportSink]: receives a finished coverage report
//   - [Logger]: structured logging abstraction
//
// The application layer (internal/app) depends only on these interfaces.
// Adapters in internal/adapters implement them against the file system.
package ports
