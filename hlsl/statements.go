// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package hlsl reconstructs structured control flow (if/else, for,
// switch) from the IR's flat block graph and SelectionHint/LoopHint/
// SwitchHint merge announcements.
package hlsl

import (
	"fmt"
	"strings"

	"github.com/gogpu/effectc/ir"
)

// --- block structure ---------------------------------------------------

func (b *Backend) SetBlock(bh ir.BlockHandle) { b.cur.curBlock = bh }

func (b *Backend) EnterBlock(bh ir.BlockHandle) { b.cur.curBlock = bh }

func (b *Backend) LeaveBlockAndBranch(target ir.BlockHandle) {
	b.cur.terminators[b.cur.curBlock] = ir.Terminator{Branch: &ir.TermBranch{Target: target}}
}

func (b *Backend) LeaveBlockAndBranchConditional(cond ir.ValueHandle, trueBlock, falseBlock ir.BlockHandle) {
	b.cur.terminators[b.cur.curBlock] = ir.Terminator{
		BranchConditional: &ir.TermBranchConditional{Condition: cond, True: trueBlock, False: falseBlock},
	}
}

func (b *Backend) LeaveBlockAndSwitch(selector ir.ValueHandle, cases []ir.SwitchCase, def ir.BlockHandle) {
	b.cur.terminators[b.cur.curBlock] = ir.Terminator{
		Switch: &ir.TermSwitch{Selector: selector, Cases: cases, Default: def},
	}
}

func (b *Backend) LeaveBlockAndReturn(value *ir.ValueHandle) {
	b.cur.terminators[b.cur.curBlock] = ir.Terminator{Return: &ir.TermReturn{Value: value}}
}

func (b *Backend) LeaveBlockAndKill() {
	b.cur.terminators[b.cur.curBlock] = ir.Terminator{Kill: true}
}

// --- structure hints -----------------------------------------------------

// The hints themselves are looked up again by header block straight off
// fn.Selections/Loops/Switches while rendering (see renderRegion), so
// these three only need to exist to satisfy codegen.Generator.
func (b *Backend) EmitIf(hint ir.SelectionHint) {}
func (b *Backend) EmitLoop(hint ir.LoopHint)    {}
func (b *Backend) EmitSwitch(hint ir.SwitchHint) {}

// --- structured-text assembly ----------------------------------------------

// renderFunctionBody walks fn's blocks from its entry, reconstructing
// if/else, for and switch statements from the SelectionHint/LoopHint/
// SwitchHint merge points the IR announces at each header block. Every
// block's own statement text was already buffered into cur.blockText by
// the flat EmitXxx calls codegen.Lower drives during the walk; this
// pass only decides how those buffers nest.
func renderFunctionBody(cur *functionState) string {
	return renderRegion(cur, cur.sig.EntryBlock, nil)
}

// renderRegion renders blocks starting at start, following branches,
// until it reaches stopAt (exclusive: stopAt's own text is rendered by
// whichever caller resumes at it, not by this call).
func renderRegion(cur *functionState, start ir.BlockHandle, stopAt *ir.BlockHandle) string {
	var out strings.Builder
	b := start
	for {
		if stopAt != nil && b == *stopAt {
			break
		}

		// A loop header's statements (its condition check) must rerun
		// every iteration, so they're written inside the for(;;), not
		// before it like a selection/switch header's statements are.
		if loop, ok := cur.sig.LoopAt(b); ok {
			switch loop.Flags {
			case ir.LoopUnroll:
				out.WriteString("[unroll]\n")
			case ir.LoopDontUnroll:
				out.WriteString("[loop]\n")
			}
			out.WriteString("for (;;) {\n")
			var body strings.Builder
			body.WriteString(cur.blockText[b])
			switch term := cur.terminators[b]; {
			case term.BranchConditional != nil:
				cond := cur.names[term.BranchConditional.Condition]
				fmt.Fprintf(&body, "if (!(%s)) break;\n", cond)
				body.WriteString(renderRegion(cur, term.BranchConditional.True, &loop.Continue))
			case term.Branch != nil:
				body.WriteString(renderRegion(cur, term.Branch.Target, &loop.Continue))
			}
			if loop.Continue != b {
				body.WriteString(cur.blockText[loop.Continue])
			}
			out.WriteString(indentText(body.String(), "    "))
			out.WriteString("}\n")
			b = loop.Merge
			continue
		}

		out.WriteString(cur.blockText[b])

		if sel, ok := cur.sig.SelectionAt(b); ok {
			term := cur.terminators[b].BranchConditional
			cond := cur.names[term.Condition]
			switch sel.Flags {
			case ir.SelectionFlatten:
				out.WriteString("[flatten]\n")
			case ir.SelectionDontFlatten:
				out.WriteString("[branch]\n")
			}
			fmt.Fprintf(&out, "if (%s) {\n", cond)
			out.WriteString(indentText(renderRegion(cur, term.True, &sel.Merge), "    "))
			out.WriteString("}\n")
			if term.False != sel.Merge {
				out.WriteString("else {\n")
				out.WriteString(indentText(renderRegion(cur, term.False, &sel.Merge), "    "))
				out.WriteString("}\n")
			}
			b = sel.Merge
			continue
		}

		if sw, ok := cur.sig.SwitchAt(b); ok {
			term := cur.terminators[b].Switch
			fmt.Fprintf(&out, "switch (%s) {\n", cur.names[term.Selector])
			for _, c := range term.Cases {
				fmt.Fprintf(&out, "case %d: {\n", c.Value)
				out.WriteString(indentText(renderRegion(cur, c.Target, &sw.Merge), "    "))
				if !c.FallThrough {
					out.WriteString("    break;\n")
				}
				out.WriteString("}\n")
			}
			out.WriteString("default: {\n")
			out.WriteString(indentText(renderRegion(cur, term.Default, &sw.Merge), "    "))
			out.WriteString("    break;\n")
			out.WriteString("}\n")
			out.WriteString("}\n")
			b = sw.Merge
			continue
		}

		term := cur.terminators[b]
		switch {
		case term.Branch != nil:
			b = term.Branch.Target
			continue
		case term.Return != nil:
			if term.Return.Value != nil {
				fmt.Fprintf(&out, "return %s;\n", cur.names[*term.Return.Value])
			} else {
				out.WriteString("return;\n")
			}
		case term.Kill:
			out.WriteString("discard;\n")
		}
		break
	}
	return out.String()
}
