// Package ir defines the intermediate representation consumed by the
// effect shader code generators.
//
// The IR is supplied by an external parser/semantic analyzer: a module
// of techniques, passes, textures, samplers, uniforms and functions,
// where every function body is a structured control-flow graph of
// typed, SSA-style access-chain expressions. This package only defines
// the types and the invariants a well-formed module must satisfy — it
// does not parse source text.
//
// # Structure
//
// A Module aggregates:
//   - Structs: struct type definitions, interned by shape
//   - Constants: folded literal values, interned by type + bit pattern
//   - Textures, Samplers, Uniforms: resource descriptors
//   - Functions: function bodies as a block graph of statements and
//     access-chain expressions
//   - Techniques: ordered passes referencing functions and textures by name
//
// # Translation pipeline
//
// The typical pipeline is:
//
//	Parser/analyzer → ir.Module → codegen.Generator (spirv | hlsl) → codegen.Result
//
// # References
//
// This IR's shape follows the access-chain/structured-CFG model used by
// ReShade's effect compiler, generalized into a backend-neutral Go package.
package ir
