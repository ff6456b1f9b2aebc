// Package sizing resolves the electrical bill of quantities of an EV charging
// station from the authority reference dataset.
//
// The resolver is a pure function of a model.StationRequest and a
// reftable.Accessor. It locates each charger position's row in the dataset,
// selects the transformer and wiring rows with tiered threshold ladders,
// projects multi-column cable and conduit specifications according to the
// chosen wiring methods and groups charger lines that share a cable run.
//
// Missing reference data never produces an error. Values that cannot be
// determined are rendered as model.Placeholder and blank projections as the
// empty string. Only structurally invalid requests fail, with an error
// wrapping ErrInvalidRequest.
package sizing
