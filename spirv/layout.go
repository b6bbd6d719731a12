package spirv

import "github.com/gogpu/effectc/ir"

// std140Align returns the alignment (in bytes) a type requires inside the
// effect's uniform block, following the std140 rule that vec3/vec4 and
// every array element align to 16 bytes and a matrix is stored as an
// array of aligned column vectors.
func std140Align(t ir.Type) uint32 {
	if t.IsArray() {
		return 16
	}
	if t.IsMatrix() {
		return 16
	}
	if t.IsVector() {
		switch t.Rows {
		case 2:
			return 8
		default:
			return 16
		}
	}
	return 4
}

// std140Size returns the storage size (in bytes) a type occupies inside
// the uniform block.
func std140Size(t ir.Type) uint32 {
	if t.IsArray() {
		n := t.ArrayLength
		if n < 1 {
			n = 1
		}
		elem := t.Elem()
		stride := alignUp32(std140Size(elem), 16)
		return stride * uint32(n)
	}
	if t.IsMatrix() {
		return 16 * uint32(t.Cols)
	}
	if t.IsVector() {
		switch t.Rows {
		case 2:
			return 8
		case 3:
			return 12
		default:
			return 16
		}
	}
	return 4
}

func alignUp32(v, align uint32) uint32 {
	if align == 0 {
		return v
	}
	return (v + align - 1) / align * align
}

// uniformLayout assigns Offset/Size to each uniform in place, in
// declaration order, following std140 packing rules.
func uniformLayout(uniforms []ir.Uniform) uint32 {
	var offset uint32
	for i := range uniforms {
		align := std140Align(uniforms[i].Type)
		size := std140Size(uniforms[i].Type)
		offset = alignUp32(offset, align)
		uniforms[i].Offset = offset
		uniforms[i].Size = size
		offset += size
	}
	return alignUp32(offset, 16)
}
