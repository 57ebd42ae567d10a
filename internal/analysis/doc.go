// Package analysis provides the business boundary for SpecGenie's heuristic
// specification pipeline. It defines the Engine (pure keyword-driven
// extraction), the extractor Registry, the Service (session-scoped analyze
// and result operations), the Store interface (session persistence), and the
// domain models.
package analysis
