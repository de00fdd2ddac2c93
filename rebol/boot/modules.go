package boot

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/rhencke/rebol-sub017/rebol/eval"
	"github.com/rhencke/rebol-sub017/rebol/logger"
	"github.com/rhencke/rebol-sub017/rebol/source"
	"github.com/rhencke/rebol-sub017/rebol/value"
)

// ErrModuleNotFound is returned when no search path holds the module.
var ErrModuleNotFound = errors.New("boot: module not found on search path")

// LoadModule finds name (as name.r / name.reb) on the configured search
// paths, runs it, and records it in system/modules. Top-level set-words
// bind into lib, which is how a module's exports become visible (§6
// "a module's exports are added to the lib context").
func (rt *Runtime) LoadModule(name string) error {
	path, err := rt.findModule(name)
	if err != nil {
		return err
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	res, err := source.LoadAndBind(src, rt.Syms, rt.Lib)
	if err != nil {
		return err
	}
	out, err := eval.DoBlock(rt.It, res.Body.Cells, nil)
	if err != nil {
		return err
	}
	if out.Thrown {
		return eval.ErrNoCatcher
	}

	if mods, ok := rt.System.Get(rt.Syms.Intern("modules")); ok {
		if s := mods.Series(); s != nil {
			_ = s.Append(rt.stringCell(value.KindString, name))
		}
	}
	logger.Info("module loaded", "name", name, "path", path)
	return nil
}

func (rt *Runtime) findModule(name string) (string, error) {
	for _, dir := range rt.opts.SearchPaths {
		for _, ext := range []string{".r", ".reb"} {
			path := filepath.Join(dir, name+ext)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
	}
	return "", ErrModuleNotFound
}
