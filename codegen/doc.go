// Package codegen defines the backend-neutral contract implemented by the
// spirv and hlsl packages, and the Lower walker that drives any Generator
// from an *ir.Module.
//
// A frontend (or, here, the Lower walker standing in for one) is expected
// to visit a module in a fixed order — structs, then resources, then
// functions block by block — calling the matching Generator method as it
// goes. A Generator never reads from the ir.Module itself; every piece of
// information it needs arrives as an argument to one of its methods. This
// keeps the two backends (and a future third one) free to keep their own
// internal numbering and defer output assembly to WriteResult.
package codegen
