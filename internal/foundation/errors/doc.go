// Package errors provides the classified error primitives used across lexrender.
//
// Every failure the renderer can report falls into one of a small number of
// categories that decide what the caller does with it:
//
//   - CategoryConfig: a configuration tree or settings problem. Fails fast.
//   - CategoryAsset: unreadable or corrupt media. The media reference is dropped.
//   - CategoryEncoding: invalid text in source data. Replaced, never raised.
//   - CategoryRender: any other failure while rendering one entry.
//
// Errors are built with a fluent API:
//
//	err := errors.ConfigError("reference item not found").
//		AtNode(node.Path()).
//		WithContext("reference_item", name).
//		Build()
package errors
