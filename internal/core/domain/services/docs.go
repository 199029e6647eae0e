// Package services provides the domain services that keep order identity and
// order state consistent across every write path.
//
// The package includes:
//   - SequenceAllocator: mints region-prefixed sequential identifiers ("DHA0007")
//     from an atomic counter store
//   - OrderConsistencyPipeline: the two pre-write stages, BeforeSave for
//     full-document saves and BeforeUpdate for partial change-sets
//
// Handlers compose the pipeline explicitly: they call the stage, then the
// repository. No hidden hooks run inside storage adapters.
package services
