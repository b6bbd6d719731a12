// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package d3d11

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

// samplerDescSize is the byte size of a packed D3D11_SAMPLER_DESC: three
// address-mode enums, a filter enum, three LOD/bias floats, a comparison
// function enum, a 4-float border color and the max-anisotropy field -
// 52 bytes total (spec §6 "FNV-1a 32-bit over the raw 52-byte
// D3D11_SAMPLER_DESC layout").
const samplerDescSize = 52

// hashSamplerDesc returns the FNV-1a 32-bit hash of d's packed
// representation, used to intern device sampler-state objects. No
// third-party FNV implementation appears anywhere in the example pack,
// so this one concern is served by the standard library's hash/fnv
// (see DESIGN.md).
func hashSamplerDesc(d SamplerDesc) uint32 {
	var buf [samplerDescSize]byte
	buf[0] = byte(d.Filter)
	buf[1] = byte(d.AddressU)
	buf[2] = byte(d.AddressV)
	buf[3] = byte(d.AddressW)
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(d.MinLOD))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(d.MaxLOD))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(d.LODBias))

	h := fnv.New32a()
	h.Write(buf[:])
	return h.Sum32()
}
