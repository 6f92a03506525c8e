package keymap

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// Load builds the maps for a built-in layout name or a .json or .lua keymap file.
func Load(nameOrPath string) (*Maps, error) {
	cfg, err := LoadConfig(nameOrPath)
	if err != nil {
		return nil, err
	}
	return Build(cfg)
}

// LoadConfig reads the configuration for a built-in layout name or a keymap file.
func LoadConfig(nameOrPath string) (Config, error) {
	ext := strings.ToLower(filepath.Ext(nameOrPath))
	if ext == "" {
		return Builtin(nameOrPath)
	}
	data, err := os.ReadFile(nameOrPath)
	if err != nil {
		return nil, &ConfigError{Err: err}
	}
	switch ext {
	case ".json":
		return ParseJSON(data)
	case ".lua":
		return ParseLua(string(data))
	default:
		return nil, &ConfigError{Err: fmt.Errorf("unsupported keymap file type %q", ext)}
	}
}

// ParseJSON parses an object of key names to pitches, where null leaves a key unmapped.
func ParseJSON(data []byte) (Config, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ConfigError{Err: err}
	}
	cfg := make(Config, len(raw))
	for name, value := range raw {
		var p *int
		if err := json.Unmarshal(value, &p); err != nil {
			return nil, &ConfigError{Key: name, Value: string(value), Err: errPitchInvalid}
		}
		cfg[name] = p
	}
	return cfg, nil
}

var luaLibs = []struct {
	name string
	open lua.LGFunction
}{
	{lua.BaseLibName, lua.OpenBase},
	{lua.TabLibName, lua.OpenTable},
	{lua.StringLibName, lua.OpenString},
	{lua.MathLibName, lua.OpenMath},
}

// ParseLua runs a Lua chunk that returns a table of key names to pitches. A value of
// false leaves a key unmapped. Only the base, table, string and math libraries are
// available to the script.
func ParseLua(src string) (Config, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	for _, lib := range luaLibs {
		if err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(lib.open),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name)); err != nil {
			return nil, &ConfigError{Err: err}
		}
	}

	if err := L.DoString(src); err != nil {
		return nil, &ConfigError{Err: err}
	}
	tbl, ok := L.Get(-1).(*lua.LTable)
	if !ok {
		return nil, &ConfigError{Err: errors.New("lua keymap must return a table")}
	}

	cfg := make(Config)
	var err error
	tbl.ForEach(func(k, v lua.LValue) {
		if err != nil {
			return
		}
		name, ok := k.(lua.LString)
		if !ok {
			err = &ConfigError{Key: k.String(), Err: errUnknownKey}
			return
		}
		switch v := v.(type) {
		case lua.LNumber:
			f := float64(v)
			if f != math.Trunc(f) || math.IsInf(f, 0) {
				err = &ConfigError{Key: string(name), Value: v.String(), Err: errPitchInvalid}
				return
			}
			if f < math.MinInt32 || f > math.MaxInt32 {
				err = &ConfigError{Key: string(name), Value: v.String(), Err: errPitchRange}
				return
			}
			cfg[string(name)] = pitch(int(f))
		case lua.LBool:
			if bool(v) {
				err = &ConfigError{Key: string(name), Value: v.String(), Err: errPitchInvalid}
				return
			}
			cfg[string(name)] = nil
		default:
			err = &ConfigError{Key: string(name), Value: v.String(), Err: errPitchInvalid}
		}
	})
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
