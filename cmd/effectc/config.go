// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package main

import (
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"github.com/gogpu/effectc/hlsl"
	"github.com/gogpu/effectc/spirv"
)

// Manifest describes one compile job: which entry points a technique
// wraps, the resources it touches, and where each backend's output
// should land. It deliberately says nothing about expression bodies -
// this tool builds a synthetic module to smoke-test the backends, not
// a full shader front end.
type Manifest struct {
	Output struct {
		SPIRV string `toml:"spirv"`
		HLSL  string `toml:"hlsl"`
	} `toml:"output"`

	SPIRV struct {
		VersionMajor uint8 `toml:"version_major"`
		VersionMinor uint8 `toml:"version_minor"`
		Debug        bool  `toml:"debug"`
	} `toml:"spirv"`

	HLSL struct {
		ShaderModel         string `toml:"shader_model"`
		FakeMissingBindings bool   `toml:"fake_missing_bindings"`
	} `toml:"hlsl"`

	Technique struct {
		Name    string `toml:"name"`
		VSEntry string `toml:"vs_entry"`
		PSEntry string `toml:"ps_entry"`
	} `toml:"technique"`

	Textures []string `toml:"textures"`
	Samplers []string `toml:"samplers"`
	Uniforms []string `toml:"uniforms"`
}

// defaultManifest is used when no manifest path is given on the command
// line, enough to exercise both backends end to end.
func defaultManifest() *Manifest {
	m := &Manifest{}
	m.Output.SPIRV = "effect.spv"
	m.Output.HLSL = "effect.hlsl"
	m.SPIRV.VersionMajor, m.SPIRV.VersionMinor = 1, 3
	m.HLSL.ShaderModel = "5_1"
	m.HLSL.FakeMissingBindings = true
	m.Technique.Name = "Unlit"
	m.Technique.VSEntry = "VSMain"
	m.Technique.PSEntry = "PSMain"
	m.Textures = []string{"baseColor"}
	m.Samplers = []string{"baseSampler"}
	m.Uniforms = []string{"tint"}
	return m
}

// loadManifest reads and parses a TOML manifest file.
func loadManifest(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading manifest")
	}
	m := &Manifest{}
	if err := toml.Unmarshal(raw, m); err != nil {
		return nil, errors.Wrap(err, "parsing manifest")
	}
	return m, nil
}

func (m *Manifest) spirvOptions() spirv.Options {
	opts := spirv.DefaultOptions()
	if m.SPIRV.VersionMajor != 0 {
		opts.Version = spirv.Version{Major: m.SPIRV.VersionMajor, Minor: m.SPIRV.VersionMinor}
	}
	opts.Debug = m.SPIRV.Debug
	return opts
}

func (m *Manifest) hlslOptions() *hlsl.Options {
	opts := hlsl.DefaultOptions()
	if sm, ok := shaderModelByName[m.HLSL.ShaderModel]; ok {
		opts.ShaderModel = sm
	}
	opts.FakeMissingBindings = m.HLSL.FakeMissingBindings
	return opts
}

var shaderModelByName = map[string]hlsl.ShaderModel{
	"5_0": hlsl.ShaderModel5_0,
	"5_1": hlsl.ShaderModel5_1,
	"6_0": hlsl.ShaderModel6_0,
}
