// Package demand composes synthetic demand series from independent factors.
//
// # Reading Guide
//
// Start with these files:
//   - factor.go: the Factor interface, kinds, combination rules and Apply
//   - graph.go: the validated dependency arena a Row is built from
//   - row.go: activation of a factor list over one date axis
//   - seasonality.go: the multi-peak oscillation model
//
// # Architecture
//
// Every factor produces its own values from its parameters, the shared
// DateAxis and an explicitly passed *rand.Rand. A Row applies factors in list
// order; each factor receives the already-applied factors it depends on and
// folds in the effects its kind declares rules for (Sales multiplies in
// stock-outs, trend, change points, seasonality, promos and multipliers).
// Kinds without rules ignore their dependencies.
//
// Grouped dataset sampling lives in demand/dataset, CSV rendering in
// demand/export.
//
// All construction and protocol failures are reported as *ConfigError.
package demand
