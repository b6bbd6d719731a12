// Command effectc compiles a post-processing effect module to SPIR-V
// and HLSL, the way an offline content pipeline would before handing
// the result to a runtime's d3d11.Linker.
//
// Usage:
//
//	effectc [options]
//	effectc -manifest effect.toml
//	effectc -manifest effect.toml -watch
package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/effectc/codegen"
	"github.com/gogpu/effectc/hlsl"
	"github.com/gogpu/effectc/ir"
	"github.com/gogpu/effectc/spirv"
)

var (
	manifestPath = flag.String("manifest", "", "path to a TOML compile manifest (default: built-in smoke module)")
	watch        = flag.Bool("watch", false, "recompile whenever the manifest changes")
	disassemble  = flag.Bool("dis", false, "print a .spvasm-style disassembly of the SPIR-V output")
	verbose      = flag.Bool("v", false, "enable debug logging")
)

func main() {
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	if err := run(logger); err != nil {
		logger.Fatal(err)
	}

	if *watch {
		if *manifestPath == "" {
			logger.Fatal("-watch requires -manifest")
		}
		watchManifest(logger, *manifestPath)
	}
}

func run(logger *log.Logger) error {
	manifest := defaultManifest()
	if *manifestPath != "" {
		m, err := loadManifest(*manifestPath)
		if err != nil {
			return err
		}
		manifest = m
	}

	mod := buildSmokeModule(manifest)
	logger.Info("built module", "technique", manifest.Technique.Name, "textures", len(mod.Textures), "uniforms", len(mod.Uniforms))

	if err := compileAndWrite(logger, mod, manifest); err != nil {
		return err
	}
	return nil
}

func compileAndWrite(logger *log.Logger, mod *ir.Module, manifest *Manifest) error {
	spirvBackend := spirv.NewBackend(manifest.spirvOptions())
	spirvResult, err := codegen.Lower(mod, spirvBackend)
	if err != nil {
		return err
	}
	if spirvResult.Diagnostics.HasErrors() {
		logger.Warn("SPIR-V diagnostics", "report", spirvResult.Diagnostics.Render())
	}
	if err := writeFile(manifest.Output.SPIRV, spirvResult.SPIRV); err != nil {
		return err
	}
	logger.Info("wrote SPIR-V", "path", manifest.Output.SPIRV, "bytes", len(spirvResult.SPIRV))

	if *disassemble {
		text, err := spirv.Disassemble(spirvResult.SPIRV)
		if err != nil {
			logger.Warn("disassembly failed", "err", err)
		} else {
			os.Stdout.WriteString(text)
		}
	}

	hlslBackend := hlsl.NewBackend(manifest.hlslOptions())
	hlslResult, err := codegen.Lower(mod, hlslBackend)
	if err != nil {
		return err
	}
	if hlslResult.Diagnostics.HasErrors() {
		logger.Warn("HLSL diagnostics", "report", hlslResult.Diagnostics.Render())
	}
	if err := writeFile(manifest.Output.HLSL, []byte(hlslResult.HLSL)); err != nil {
		return err
	}
	logger.Info("wrote HLSL", "path", manifest.Output.HLSL, "bytes", len(hlslResult.HLSL))
	return nil
}

func writeFile(path string, data []byte) error {
	if path == "" {
		return nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// watchManifest recompiles every time the manifest file changes,
// mirroring the asset hot-reload loop an engine's asset manager runs
// over its shader configs.
func watchManifest(logger *log.Logger, path string) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Fatal(err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(path)); err != nil {
		logger.Fatal(err)
	}
	logger.Info("watching for changes", "path", path)

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logger.Info("manifest changed, recompiling", "path", path)
			if err := run(logger); err != nil {
				logger.Error("recompile failed", "err", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			logger.Error("watch error", "err", err)
		}
	}
}
