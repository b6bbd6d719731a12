package ir

import "strconv"

// Registry interns struct definitions and constants while a Module is
// being built: a structural key maps to a stable handle, so two equal
// shapes never produce two entries.
type Registry struct {
	structs   []StructDef
	structMap map[string]StructHandle

	constants []Constant
	constMap  map[string]ConstantHandle
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		structMap: make(map[string]StructHandle, 16),
		constMap:  make(map[string]ConstantHandle, 16),
	}
}

// InternStruct returns the handle for a struct definition, creating a new
// entry if no structurally identical one (same member names/types/
// semantics in order) has already been interned. Name is carried for
// debug info only and does not affect the key.
func (r *Registry) InternStruct(name string, members []StructMember) StructHandle {
	key := structKey(members)
	if h, ok := r.structMap[key]; ok {
		return h
	}
	h := StructHandle(len(r.structs))
	r.structs = append(r.structs, StructDef{ID: h, Name: name, Members: members})
	r.structMap[key] = h
	return h
}

func structKey(members []StructMember) string {
	buf := make([]byte, 0, 64)
	for _, m := range members {
		buf = appendTypeKey(buf, m.Type)
		buf = append(buf, ':')
		buf = append(buf, m.Name...)
		buf = append(buf, ':')
		buf = append(buf, m.Semantic...)
		buf = append(buf, ';')
	}
	return string(buf)
}

// InternConstant returns the handle for a constant value, creating a new
// entry if no equal (type, bits, string, array) value has already been
// interned (spec §4.2 constant interning rule).
func (r *Registry) InternConstant(c Constant) ConstantHandle {
	key := c.key()
	if h, ok := r.constMap[key]; ok {
		return h
	}
	h := ConstantHandle(len(r.constants))
	r.constants = append(r.constants, c)
	r.constMap[key] = h
	return h
}

// Structs returns every interned struct definition in handle order.
func (r *Registry) Structs() []StructDef { return r.structs }

// Constants returns every interned constant in handle order.
func (r *Registry) Constants() []Constant { return r.constants }

// String renders a human-readable summary, useful in test failure
// messages and CLI diagnostics.
func (r *Registry) String() string {
	return "ir.Registry{structs:" + strconv.Itoa(len(r.structs)) +
		", constants:" + strconv.Itoa(len(r.constants)) + "}"
}
