// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/effectc/ir"
)

// bind records a value-producing statement's rendered expression as a
// fresh temporary, the uniform policy every EmitXxx in this file follows:
// no constant-folding or inlining, so every intermediate result is
// traceable to exactly one line of generated HLSL.
func (b *Backend) bind(result ir.ValueHandle, t ir.Type, expr string) {
	name := b.cur.newTemp()
	b.cur.emit(fmt.Sprintf("const %s %s = %s;\n", b.typeString(t), name, expr))
	b.cur.names[result] = name
	b.cur.types[result] = t
}

// --- constants -------------------------------------------------------------

func (b *Backend) EmitConstant(result ir.ValueHandle, c ir.Constant) {
	b.bind(result, c.Type, b.constantLiteral(c))
	if c.Type.IsScalar() {
		switch c.Type.Base {
		case ir.BaseInt:
			b.cur.constInts[result] = int64(c.AsInt(0))
		case ir.BaseUint:
			b.cur.constInts[result] = int64(c.AsUint(0))
		}
	}
}

func (b *Backend) constantLiteral(c ir.Constant) string {
	if c.Type.Base == ir.BaseString {
		return strconv.Quote(c.String)
	}
	n := c.Type.ComponentCount()
	if n <= 1 {
		return scalarLiteral(c.Type.Base, c.Bits[0])
	}
	lanes := make([]string, n)
	for i := 0; i < n; i++ {
		lanes[i] = scalarLiteral(c.Type.Base, c.Bits[i])
	}
	return fmt.Sprintf("%s(%s)", b.typeString(c.Type), strings.Join(lanes, ", "))
}

func scalarLiteral(base ir.TypeBase, bits uint32) string {
	switch base {
	case ir.BaseBool:
		if bits != 0 {
			return "true"
		}
		return "false"
	case ir.BaseInt:
		return strconv.FormatInt(int64(int32(bits)), 10)
	case ir.BaseUint:
		return strconv.FormatUint(uint64(bits), 10) + "u"
	case ir.BaseFloat:
		return formatFloat(math.Float32frombits(bits))
	default:
		return "0"
	}
}

func formatFloat(f float32) string {
	s := strconv.FormatFloat(float64(f), 'g', -1, 32)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

func (b *Backend) zeroLiteral(t ir.Type) string {
	return fmt.Sprintf("(%s)0", b.typeString(t))
}

// --- operators ---------------------------------------------------------

func (b *Backend) EmitUnaryOp(result ir.ValueHandle, op ir.UnaryOp, t ir.Type, operand ir.ValueHandle) {
	o := b.cur.names[operand]
	var expr string
	switch op {
	case ir.UnaryNegate:
		expr = "-" + o
	case ir.UnaryNot:
		expr = "!" + o
	case ir.UnaryBitwiseNot:
		expr = "~" + o
	case ir.UnaryPreIncrement, ir.UnaryPostIncrement:
		// Pre/post increment are treated identically: both bind the
		// operand's successor value without writing it back through the
		// original storage location.
		expr = fmt.Sprintf("(%s + 1)", o)
	case ir.UnaryPreDecrement, ir.UnaryPostDecrement:
		expr = fmt.Sprintf("(%s - 1)", o)
	}
	b.bind(result, t, expr)
}

var binaryTokens = map[ir.BinaryOp]string{
	ir.BinaryAdd:          "+",
	ir.BinarySubtract:     "-",
	ir.BinaryMultiply:     "*",
	ir.BinaryDivide:       "/",
	ir.BinaryModulo:       "%",
	ir.BinaryEqual:        "==",
	ir.BinaryNotEqual:     "!=",
	ir.BinaryLess:         "<",
	ir.BinaryLessEqual:    "<=",
	ir.BinaryGreater:      ">",
	ir.BinaryGreaterEqual: ">=",
	ir.BinaryAnd:          "&",
	ir.BinaryXor:          "^",
	ir.BinaryOr:           "|",
	ir.BinaryLogicalAnd:   "&&",
	ir.BinaryLogicalOr:    "||",
	ir.BinaryShiftLeft:    "<<",
	ir.BinaryShiftRight:   ">>",
}

func (b *Backend) EmitBinaryOp(result ir.ValueHandle, op ir.BinaryOp, t ir.Type, left, right ir.ValueHandle) {
	resultType := binaryResultType(op, t)
	expr := fmt.Sprintf("(%s %s %s)", b.cur.names[left], binaryTokens[op], b.cur.names[right])
	b.bind(result, resultType, expr)
}

// binaryResultType mirrors the SPIR-V backend's rule: comparisons and
// logical operators produce bool (or a bool vector), every other
// operator preserves the operand type.
func binaryResultType(op ir.BinaryOp, t ir.Type) ir.Type {
	switch op {
	case ir.BinaryEqual, ir.BinaryNotEqual, ir.BinaryLess, ir.BinaryLessEqual,
		ir.BinaryGreater, ir.BinaryGreaterEqual, ir.BinaryLogicalAnd, ir.BinaryLogicalOr:
		if t.Rows > 1 {
			return ir.VectorType(ir.BaseBool, t.Rows)
		}
		return ir.ScalarType(ir.BaseBool)
	default:
		return t
	}
}

func (b *Backend) EmitTernaryOp(result ir.ValueHandle, t ir.Type, cond, accept, reject ir.ValueHandle) {
	expr := fmt.Sprintf("(%s ? %s : %s)", b.cur.names[cond], b.cur.names[accept], b.cur.names[reject])
	b.bind(result, t, expr)
}

// EmitPhi eliminates the phi by hoisting an uninitialized local and
// assigning it at the tail of every predecessor block's already-rendered
// text; renderRegion then reads it back once control reaches the merge
// block. This is the standard out-of-SSA copy-insertion lowering, and it
// composes with the flat, real-time buffering every other EmitXxx uses.
func (b *Backend) EmitPhi(result ir.ValueHandle, t ir.Type, incoming []ir.PhiEdge) {
	name := b.cur.newTemp()
	b.cur.localDecls = append(b.cur.localDecls, fmt.Sprintf("%s %s;\n", b.typeString(t), name))
	for _, e := range incoming {
		b.cur.blockText[e.Block] += fmt.Sprintf("%s = %s;\n", name, b.cur.names[e.Value])
	}
	b.cur.names[result] = name
	b.cur.types[result] = t
}

func (b *Backend) EmitCall(result *ir.ValueHandle, fn ir.FunctionHandle, args []ir.ValueHandle) {
	argExprs := make([]string, len(args))
	for i, a := range args {
		argExprs[i] = b.cur.names[a]
	}
	call := fmt.Sprintf("%s(%s)", b.funcNames[fn], strings.Join(argExprs, ", "))
	if result == nil {
		b.cur.emit(call + ";\n")
		return
	}
	b.bind(*result, b.funcSigs[fn].Result.Type, call)
}

// --- intrinsics --------------------------------------------------------

// hlslIntrinsicNames covers every intrinsic whose HLSL spelling is a
// direct n-ary call with unchanged argument order; cases needing a
// reshaped call (mad, saturate, texture sampling, dimension queries) are
// handled directly in intrinsicExpr.
var hlslIntrinsicNames = map[ir.Intrinsic]string{
	ir.IntrinsicAbs:         "abs",
	ir.IntrinsicMin:         "min",
	ir.IntrinsicMax:         "max",
	ir.IntrinsicClamp:       "clamp",
	ir.IntrinsicCos:         "cos",
	ir.IntrinsicCosh:        "cosh",
	ir.IntrinsicSin:         "sin",
	ir.IntrinsicSinh:        "sinh",
	ir.IntrinsicTan:         "tan",
	ir.IntrinsicTanh:        "tanh",
	ir.IntrinsicAcos:        "acos",
	ir.IntrinsicAsin:        "asin",
	ir.IntrinsicAtan:        "atan",
	ir.IntrinsicAtan2:       "atan2",
	ir.IntrinsicRadians:     "radians",
	ir.IntrinsicDegrees:     "degrees",
	ir.IntrinsicCeil:        "ceil",
	ir.IntrinsicFloor:       "floor",
	ir.IntrinsicRound:       "round",
	ir.IntrinsicFrac:        "frac",
	ir.IntrinsicTrunc:       "trunc",
	ir.IntrinsicExp:         "exp",
	ir.IntrinsicExp2:        "exp2",
	ir.IntrinsicLog:         "log",
	ir.IntrinsicLog2:        "log2",
	ir.IntrinsicPow:         "pow",
	ir.IntrinsicDot:         "dot",
	ir.IntrinsicCross:       "cross",
	ir.IntrinsicDistance:    "distance",
	ir.IntrinsicLength:      "length",
	ir.IntrinsicNormalize:   "normalize",
	ir.IntrinsicReflect:     "reflect",
	ir.IntrinsicRefract:     "refract",
	ir.IntrinsicSign:        "sign",
	ir.IntrinsicLerp:        "lerp",
	ir.IntrinsicStep:        "step",
	ir.IntrinsicSmoothstep:  "smoothstep",
	ir.IntrinsicSqrt:        "sqrt",
	ir.IntrinsicRsqrt:       "rsqrt",
	ir.IntrinsicTranspose:   "transpose",
	ir.IntrinsicDeterminant: "determinant",
	ir.IntrinsicDdx:         "ddx",
	ir.IntrinsicDdy:         "ddy",
	ir.IntrinsicFwidth:      "fwidth",
}

func (b *Backend) EmitCallIntrinsic(result ir.ValueHandle, intr ir.Intrinsic, t ir.Type, args []ir.ValueHandle) {
	a := make([]string, len(args))
	for i, arg := range args {
		a[i] = b.cur.names[arg]
	}
	b.bind(result, t, b.intrinsicExpr(intr, t, a))
}

func (b *Backend) intrinsicExpr(intr ir.Intrinsic, t ir.Type, a []string) string {
	switch intr {
	case ir.IntrinsicSaturate:
		return fmt.Sprintf("saturate(%s)", a[0])
	case ir.IntrinsicMad:
		return fmt.Sprintf("mad(%s, %s, %s)", a[0], a[1], a[2])
	case ir.IntrinsicSampleTexture:
		return fmt.Sprintf("%s.Sample(%s, %s)", a[0], a[1], a[2])
	case ir.IntrinsicSampleTextureBias:
		return fmt.Sprintf("%s.SampleBias(%s, %s, %s)", a[0], a[1], a[2], a[3])
	case ir.IntrinsicSampleTextureLevel:
		return fmt.Sprintf("%s.SampleLevel(%s, %s, %s)", a[0], a[1], a[2], a[3])
	case ir.IntrinsicSampleTextureGrad:
		return fmt.Sprintf("%s.SampleGrad(%s, %s, %s, %s)", a[0], a[1], a[2], a[3], a[4])
	case ir.IntrinsicLoadTexture:
		return fmt.Sprintf("%s.Load(%s)", a[0], a[1])
	case ir.IntrinsicGetTextureDimensions:
		// HLSL's GetDimensions writes through out-parameters rather than
		// returning a value, so it can't sit inline in an expression
		// statement; the query is replaced by a zero value of the result
		// type, with a warning.
		b.diags.Warning("", "texture dimension queries are approximated as zero in this target")
		return b.zeroLiteral(t)
	}
	if name, ok := hlslIntrinsicNames[intr]; ok {
		return fmt.Sprintf("%s(%s)", name, strings.Join(a, ", "))
	}
	b.diags.Error("", fmt.Sprintf("unsupported intrinsic %d", intr))
	if len(a) > 0 {
		return a[0]
	}
	return b.zeroLiteral(t)
}

func (b *Backend) EmitConstruct(result ir.ValueHandle, t ir.Type, components []ir.ValueHandle) {
	names := make([]string, len(components))
	for i, c := range components {
		names[i] = b.cur.names[c]
	}
	b.bind(result, t, fmt.Sprintf("%s(%s)", b.typeString(t), strings.Join(names, ", ")))
}

// --- access-chain load/store --------------------------------------------

func (b *Backend) EmitLoad(result ir.ValueHandle, chain ir.Expression) {
	expr, t := b.renderChain(chain)
	b.bind(result, t, expr)
}

func (b *Backend) EmitStore(chain ir.Expression, value ir.ValueHandle, valueType ir.Type) {
	expr, _ := b.renderChain(chain)
	b.cur.emit(fmt.Sprintf("%s = %s;\n", expr, b.cur.names[value]))
}

// renderChain renders chain as an HLSL lvalue/rvalue expression and
// returns the type the fully-applied chain carries.
func (b *Backend) renderChain(chain ir.Expression) (string, ir.Type) {
	text := b.cur.names[chain.Base]
	curType := b.cur.types[chain.Base]
	indices, rest := chain.Leading()

	for _, op := range indices {
		if curType.Base == ir.BaseStruct {
			idx, ok := b.cur.constInts[op.IndexValue]
			if !ok {
				b.diags.Error("", "struct member access requires a compile-time constant index")
			}
			members := b.structs[curType.Struct].Members
			if idx >= 0 && int(idx) < len(members) {
				text += "." + members[idx].Name
			}
		} else {
			text += fmt.Sprintf("[%s]", b.cur.names[op.IndexValue])
		}
		curType = op.IndexTarget
	}

	for _, op := range rest {
		switch op.Kind {
		case ir.OpCast:
			text = b.castExpr(op.CastFrom, op.CastTo, text)
			curType = op.CastTo
		case ir.OpSwizzle:
			w := op.SwizzleWidth()
			text += "." + swizzleString(op)
			if w == 1 {
				curType = ir.ScalarType(curType.Base)
			} else {
				curType = ir.VectorType(curType.Base, uint8(w))
			}
		case ir.OpIndex:
			// A dynamic index applied after a cast/swizzle addresses an
			// rvalue composite; HLSL text assembly doesn't track enough
			// about the intermediate to rebuild a safe index expression,
			// so - matching the SPIR-V backend's handling of the same
			// case - it's passed through unchanged with a diagnostic.
			b.diags.Warning("", "dynamic index on an rvalue composite is not supported; value passed through unchanged")
		}
	}
	return text, curType
}

func swizzleString(op ir.AccessOp) string {
	const lanes = "xyzw"
	w := op.SwizzleWidth()
	var sb strings.Builder
	for i := 0; i < w; i++ {
		sb.WriteByte(lanes[op.SwizzlePattern[i]])
	}
	return sb.String()
}

func (b *Backend) castExpr(from, to ir.Type, expr string) string {
	if (from.Base == ir.BaseInt && to.Base == ir.BaseUint) || (from.Base == ir.BaseUint && to.Base == ir.BaseInt) {
		return fmt.Sprintf("%s(%s)", ScalarCast(to.Base), expr)
	}
	return fmt.Sprintf("(%s)(%s)", b.typeString(to), expr)
}
