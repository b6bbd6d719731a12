// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"fmt"
	"strings"

	"github.com/gogpu/effectc/ir"
)

// writeEntryStub wraps req.fn in a stage-entry function carrying the
// parameter/return semantics DirectX requires of vs_main/ps_main,
// mirroring spirv.Backend.emitEntryPoint's interface-global wrapping but
// expressed as a thin call-through rather than separate load/store
// globals, since HLSL lets a semantic attach directly to a parameter.
func (b *Backend) writeEntryStub(out *strings.Builder, req entryRequest) {
	sig := b.funcSigs[req.fn]
	stage := "vs_main"
	if req.pixel {
		stage = "ps_main"
	}
	stubName := b.names.callWithPrefix(sig.Name+"_", stage)
	b.entryPointNames[sig.Name] = stubName

	params := make([]string, len(sig.Params))
	args := make([]string, len(sig.Params))
	for i, p := range sig.Params {
		sem := p.Semantic
		if sem == "" {
			sem = fmt.Sprintf("TEXCOORD%d", i)
		}
		pname := fmt.Sprintf("p%d", i)
		interp := InterpolationToHLSL(p.Type.Qualifiers)
		if interp != "" {
			interp += " "
		}
		params[i] = fmt.Sprintf("%s%s %s : %s", interp, b.typeString(p.Type), pname, sem)
		args[i] = pname
	}

	hasResult := sig.Result.Type.Base != ir.BaseVoid
	retSemantic := sig.Result.Semantic
	if retSemantic == "" {
		if req.pixel {
			retSemantic = "SV_TARGET"
		} else {
			retSemantic = "SV_POSITION"
		}
	}

	retType := "void"
	if hasResult {
		retType = b.typeString(sig.Result.Type)
	}

	fmt.Fprintf(out, "%s %s(%s)", retType, stubName, strings.Join(params, ", "))
	if hasResult {
		fmt.Fprintf(out, " : %s", retSemantic)
	}
	out.WriteString(" {\n")
	if hasResult {
		fmt.Fprintf(out, "    return %s(%s);\n", b.funcNames[req.fn], strings.Join(args, ", "))
	} else {
		fmt.Fprintf(out, "    %s(%s);\n", b.funcNames[req.fn], strings.Join(args, ", "))
	}
	out.WriteString("}\n\n")
}
