package reflection

import (
	"fmt"
	"reflect"
	"strconv"
	"sync"
	"time"
)

// In marks a struct as a parameter object. A constructor taking a single
// struct that embeds In receives one argument per exported field.
type In struct{}

var (
	inType       = reflect.TypeOf((*In)(nil)).Elem()
	errType      = reflect.TypeOf((*error)(nil)).Elem()
	durationType = reflect.TypeOf(time.Duration(0))
)

// Kind tells the invoker how an implementation is built.
type Kind int

const (
	// KindFunc is a constructor function.
	KindFunc Kind = iota

	// KindStruct is a struct (or pointer to struct) built by setting its
	// exported fields.
	KindStruct
)

func (k Kind) String() string {
	switch k {
	case KindFunc:
		return "func"
	case KindStruct:
		return "struct"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Analyzer performs reflection-based analysis of constructors and struct types.
// It caches analysis results for performance.
type Analyzer struct {
	mu    sync.RWMutex
	cache map[cacheKey]*ConstructorInfo
}

type cacheKey struct {
	fn  uintptr
	typ reflect.Type
}

// ConstructorInfo contains analyzed information about how to build an implementation.
type ConstructorInfo struct {
	Kind Kind

	// Type is the constructor's function type, or the target type for KindStruct.
	Type reflect.Type

	// Value is the constructor function. Invalid for KindStruct.
	Value reflect.Value

	// Implementation is the type of the value the constructor produces.
	Implementation reflect.Type

	// Parameters are listed in declaration order.
	Parameters []ParameterInfo

	IsParamObject   bool         // Single parameter embedding In
	ParamObjectType reflect.Type // Type of that parameter, possibly a pointer
	HasErrorReturn  bool         // Returns error as last value
}

// ParameterInfo describes a constructor parameter or a settable struct field.
type ParameterInfo struct {
	Name       string
	Type       reflect.Type
	Index      int           // Parameter index or field index
	Tag        string        // Full tag string, empty for positional parameters
	Default    reflect.Value // Declared default, invalid when HasDefault is false
	HasDefault bool
	Injectable bool // Type can be satisfied by a registration
}

// ZeroOrDefault returns the declared default, or the zero value of the parameter type.
func (p ParameterInfo) ZeroOrDefault() reflect.Value {
	if p.HasDefault {
		return p.Default
	}
	return reflect.Zero(p.Type)
}

// tagInfo contains parsed struct tag information.
type tagInfo struct {
	Name       string
	Default    string
	HasDefault bool
	Ignore     bool
}

// New creates a new Analyzer.
func New() *Analyzer {
	return &Analyzer{
		cache: make(map[cacheKey]*ConstructorInfo),
	}
}

// Analyze analyzes a constructor function, or a reflect.Type naming a struct
// or pointer-to-struct, and extracts its parameter list.
func (a *Analyzer) Analyze(target any) (*ConstructorInfo, error) {
	if target == nil {
		return nil, fmt.Errorf("target cannot be nil")
	}

	var key cacheKey
	if t, ok := target.(reflect.Type); ok {
		key.typ = t
	} else {
		val := reflect.ValueOf(target)
		if val.Kind() != reflect.Func {
			return nil, fmt.Errorf("target must be a function or a reflect.Type, got %T", target)
		}
		if val.IsNil() {
			return nil, fmt.Errorf("constructor cannot be nil")
		}
		key.fn = val.Pointer()
		key.typ = val.Type()
	}

	a.mu.RLock()
	if cached, ok := a.cache[key]; ok {
		a.mu.RUnlock()
		return rebind(cached, target), nil
	}
	a.mu.RUnlock()

	var (
		info *ConstructorInfo
		err  error
	)
	if key.fn != 0 {
		info, err = a.analyzeFunc(reflect.ValueOf(target))
	} else {
		info, err = a.analyzeStruct(key.typ)
	}
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.cache[key] = info
	a.mu.Unlock()

	return info, nil
}

func (a *Analyzer) analyzeFunc(fn reflect.Value) (*ConstructorInfo, error) {
	fnType := fn.Type()

	if fnType.IsVariadic() {
		return nil, fmt.Errorf("variadic constructor %s is not supported", fnType)
	}

	info := &ConstructorInfo{
		Kind:  KindFunc,
		Type:  fnType,
		Value: fn,
	}

	if err := a.analyzeReturns(info); err != nil {
		return nil, fmt.Errorf("failed to analyze returns: %w", err)
	}

	if err := a.analyzeParameters(info); err != nil {
		return nil, fmt.Errorf("failed to analyze parameters: %w", err)
	}

	return info, nil
}

// analyzeReturns accepts func(...) T and func(...) (T, error).
func (a *Analyzer) analyzeReturns(info *ConstructorInfo) error {
	fnType := info.Type

	switch fnType.NumOut() {
	case 0:
		return fmt.Errorf("constructor %s has no return values", fnType)
	case 1:
	case 2:
		if !fnType.Out(1).Implements(errType) {
			return fmt.Errorf("second return value of %s must be error, got %s", fnType, fnType.Out(1))
		}
		info.HasErrorReturn = true
	default:
		return fmt.Errorf("constructor %s returns %d values, want at most 2", fnType, fnType.NumOut())
	}

	if fnType.Out(0) == errType {
		return fmt.Errorf("constructor %s only returns error", fnType)
	}

	info.Implementation = fnType.Out(0)
	return nil
}

// analyzeParameters analyzes function parameters or In struct fields.
func (a *Analyzer) analyzeParameters(info *ConstructorInfo) error {
	fnType := info.Type

	if fnType.NumIn() == 1 && hasEmbeddedIn(fnType.In(0)) {
		info.IsParamObject = true
		info.ParamObjectType = fnType.In(0)
		params, err := a.analyzeFields(structOf(fnType.In(0)))
		if err != nil {
			return err
		}
		info.Parameters = params
		return nil
	}

	info.Parameters = make([]ParameterInfo, fnType.NumIn())
	for i := 0; i < fnType.NumIn(); i++ {
		paramType := fnType.In(i)
		info.Parameters[i] = ParameterInfo{
			Type:       paramType,
			Index:      i,
			Injectable: IsInjectable(paramType),
		}
	}

	return nil
}

func (a *Analyzer) analyzeStruct(t reflect.Type) (*ConstructorInfo, error) {
	structType := structOf(t)
	if structType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("type %s must be a struct or a pointer to a struct", t)
	}

	params, err := a.analyzeFields(structType)
	if err != nil {
		return nil, err
	}

	return &ConstructorInfo{
		Kind:           KindStruct,
		Type:           t,
		Implementation: t,
		Parameters:     params,
	}, nil
}

// analyzeFields lists the exported, non-ignored fields of a struct.
func (a *Analyzer) analyzeFields(structType reflect.Type) ([]ParameterInfo, error) {
	params := make([]ParameterInfo, 0, structType.NumField())
	seen := make(map[string]struct{}, structType.NumField())

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if !field.IsExported() {
			continue
		}

		if field.Anonymous && field.Type == inType {
			continue
		}

		tagInfo := a.parseFieldTags(field.Tag)
		if tagInfo.Ignore {
			continue
		}

		param := ParameterInfo{
			Name:       field.Name,
			Type:       field.Type,
			Index:      i,
			Tag:        string(field.Tag),
			Injectable: IsInjectable(field.Type),
		}

		if tagInfo.Name != "" {
			param.Name = tagInfo.Name
		}

		if _, dup := seen[param.Name]; dup {
			return nil, fmt.Errorf("duplicate parameter name %q in %s", param.Name, structType)
		}
		seen[param.Name] = struct{}{}

		if tagInfo.HasDefault {
			def, err := parseDefault(field.Type, tagInfo.Default)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", field.Name, err)
			}
			param.Default = def
			param.HasDefault = true
		}

		params = append(params, param)
	}

	return params, nil
}

// WithNames returns a copy of info whose positional parameters carry the
// given names, in order. Names cannot be applied to parameter objects or
// struct targets, whose names come from their fields.
func (info *ConstructorInfo) WithNames(names []string) (*ConstructorInfo, error) {
	if len(names) == 0 {
		return info, nil
	}

	if info.Kind != KindFunc || info.IsParamObject {
		return nil, fmt.Errorf("parameter names only apply to positional parameters; %s takes its names from struct fields", info.Type)
	}

	if len(names) > len(info.Parameters) {
		return nil, fmt.Errorf("%d parameter names given for %s, which takes %d parameters", len(names), info.Type, len(info.Parameters))
	}

	named := *info
	named.Parameters = make([]ParameterInfo, len(info.Parameters))
	copy(named.Parameters, info.Parameters)

	seen := make(map[string]struct{}, len(names))
	for i, name := range names {
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("duplicate parameter name %q", name)
		}
		seen[name] = struct{}{}
		named.Parameters[i].Name = name
	}

	return &named, nil
}

// parseFieldTags parses struct field tags for DI-specific annotations.
func (a *Analyzer) parseFieldTags(tag reflect.StructTag) tagInfo {
	info := tagInfo{}

	if val, ok := tag.Lookup("hypo"); ok {
		info.Name = val
	}

	if val, ok := tag.Lookup("default"); ok {
		info.Default = val
		info.HasDefault = true
	}

	if val, ok := tag.Lookup("inject"); ok && val == "-" {
		info.Ignore = true
	}

	return info
}

// rebind returns info with Value set to fn. Closures created from the same
// function literal share a code pointer, and so a cache entry, but each
// captures its own variables.
func rebind(info *ConstructorInfo, target any) *ConstructorInfo {
	if info.Kind != KindFunc {
		return info
	}

	bound := *info
	bound.Value = reflect.ValueOf(target)
	return &bound
}

func (a *Analyzer) cacheSize() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.cache)
}

// IsInjectable reports whether a value of type t can come from a registration.
// Basic kinds (numbers, strings, bools) are only ever supplied as overrides.
func IsInjectable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Struct, reflect.Func,
		reflect.Map, reflect.Slice, reflect.Chan:
		return true
	default:
		return false
	}
}

// parseDefault converts a default tag into a value of type t.
func parseDefault(t reflect.Type, s string) (reflect.Value, error) {
	v := reflect.New(t).Elem()

	if t == durationType {
		d, err := time.ParseDuration(s)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("invalid default %q: %w", s, err)
		}
		v.SetInt(int64(d))
		return v, nil
	}

	switch t.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("invalid default %q: %w", s, err)
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 0, t.Bits())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("invalid default %q: %w", s, err)
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, err := strconv.ParseUint(s, 0, t.Bits())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("invalid default %q: %w", s, err)
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, t.Bits())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("invalid default %q: %w", s, err)
		}
		v.SetFloat(f)
	default:
		return reflect.Value{}, fmt.Errorf("default tag is not supported for type %s", t)
	}

	return v, nil
}

// hasEmbeddedIn checks if a struct (or pointer to struct) embeds In.
func hasEmbeddedIn(t reflect.Type) bool {
	t = structOf(t)
	if t.Kind() != reflect.Struct {
		return false
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous && field.Type == inType {
			return true
		}
	}

	return false
}

func structOf(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return t
}
