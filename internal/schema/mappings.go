package schema

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"unicode"
)

// Mappings is a parsed ProGuard mapping file, indexed by obfuscated names.
// Lookups fall back to the obfuscated name itself when no entry exists, so
// a partially mapped dump still generates something inspectable.
type Mappings struct {
	classes map[string]string
	fields  map[string]string
	methods map[string]string
}

// NewMappings returns an empty mapping table. Every lookup falls back to
// the queried name, which makes an already-readable dump usable without a
// mapping file.
func NewMappings() *Mappings {
	return &Mappings{
		classes: make(map[string]string),
		fields:  make(map[string]string),
		methods: make(map[string]string),
	}
}

// LoadMappings parses a ProGuard mapping file. Class lines look like
//
//	net.minecraft.world.entity.Entity -> bfv:
//
// and indented member lines like
//
//	int DATA_AIR_SUPPLY_ID -> aH
//	123:125:boolean isOnFire() -> bn
func LoadMappings(path string) (*Mappings, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mappings: %w", err)
	}
	defer f.Close()

	m := NewMappings()

	var obfClass string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		indented := line[0] == ' ' || line[0] == '\t'
		line = strings.TrimSpace(line)
		real, obf, ok := strings.Cut(line, " -> ")
		if !ok {
			continue
		}

		if !indented && strings.HasSuffix(obf, ":") {
			obfClass = strings.TrimSuffix(obf, ":")
			m.classes[obfClass] = real
			continue
		}
		if obfClass == "" {
			continue
		}

		// Member line: "[from:to:]type name[(args)]".
		if i := strings.LastIndexByte(real, ':'); i >= 0 {
			real = real[i+1:]
		}
		_, name, ok := strings.Cut(real, " ")
		if !ok {
			continue
		}
		if i := strings.IndexByte(name, '('); i >= 0 {
			m.methods[obfClass+" "+name[:i]] = name[:i]
			m.methods[obfClass+" "+obf] = name[:i]
		} else {
			m.fields[obfClass+" "+obf] = name
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read mappings: %w", err)
	}
	return m, nil
}

// Class returns the readable name of an obfuscated class.
func (m *Mappings) Class(obf string) string {
	if real, ok := m.classes[obf]; ok {
		return real
	}
	return obf
}

// Field returns the readable name of an obfuscated field.
func (m *Mappings) Field(obfClass, obfField string) string {
	if real, ok := m.fields[obfClass+" "+obfField]; ok {
		return real
	}
	return obfField
}

// Method returns the readable name of an obfuscated method. A trailing
// descriptor in the query ("a()Z") is ignored.
func (m *Mappings) Method(obfClass, obfMethod string) string {
	if i := strings.IndexByte(obfMethod, '('); i >= 0 {
		obfMethod = obfMethod[:i]
	}
	if real, ok := m.methods[obfClass+" "+obfMethod]; ok {
		return real
	}
	return obfMethod
}

// PrettifyField turns a mapped field name like "DATA_AIR_SUPPLY_ID" into
// "air_supply".
func PrettifyField(name string) string {
	name = strings.TrimPrefix(name, "DATA_")
	name = strings.TrimSuffix(name, "_ID")
	name = strings.TrimPrefix(name, "ID_")
	return strings.ToLower(name)
}

// PrettifyMethod turns a mapped accessor name like "isOnFire()" into
// "on_fire".
func PrettifyMethod(name string) string {
	name = strings.TrimSuffix(name, "()")
	if len(name) > 2 && strings.HasPrefix(name, "is") && unicode.IsUpper(rune(name[2])) {
		name = name[2:]
	}
	return ToSnake(name)
}

// ToSnake converts a camelCase name to snake_case.
func ToSnake(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
