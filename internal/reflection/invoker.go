package reflection

import (
	"fmt"
	"math"
	"reflect"
)

// ArgumentFunc supplies the value for one parameter. An invalid value leaves
// the parameter at its declared default or zero value.
type ArgumentFunc func(param ParameterInfo) (reflect.Value, error)

// Invoke builds an implementation from info, asking args for every parameter
// in declaration order. A non-nil error returned by the constructor itself is
// returned unchanged.
func Invoke(info *ConstructorInfo, args ArgumentFunc) (any, error) {
	if info == nil {
		return nil, fmt.Errorf("constructor info cannot be nil")
	}

	if args == nil {
		return nil, fmt.Errorf("argument func cannot be nil")
	}

	values, err := collectArguments(info, args)
	if err != nil {
		return nil, err
	}

	switch info.Kind {
	case KindStruct:
		return buildStruct(info.Type, info.Parameters, values).Interface(), nil
	case KindFunc:
		return call(info, values)
	default:
		return nil, fmt.Errorf("unknown constructor kind %v", info.Kind)
	}
}

func collectArguments(info *ConstructorInfo, args ArgumentFunc) ([]reflect.Value, error) {
	values := make([]reflect.Value, len(info.Parameters))

	for i, param := range info.Parameters {
		value, err := args(param)
		if err != nil {
			return nil, err
		}

		if !value.IsValid() {
			value = param.ZeroOrDefault()
		}

		if !value.Type().AssignableTo(param.Type) {
			return nil, fmt.Errorf("value of type %s is not assignable to parameter %q of type %s",
				value.Type(), param.Name, param.Type)
		}

		values[i] = value
	}

	return values, nil
}

func call(info *ConstructorInfo, values []reflect.Value) (any, error) {
	in := values
	if info.IsParamObject {
		in = []reflect.Value{buildStruct(info.ParamObjectType, info.Parameters, values)}
	}

	results := info.Value.Call(in)

	if info.HasErrorReturn {
		if errValue := results[len(results)-1]; !errValue.IsNil() {
			return nil, errValue.Interface().(error)
		}
	}

	return results[0].Interface(), nil
}

// buildStruct creates a value of t (a struct or pointer to struct) with the
// parameter fields set.
func buildStruct(t reflect.Type, params []ParameterInfo, values []reflect.Value) reflect.Value {
	ptr := reflect.New(structOf(t))
	elem := ptr.Elem()

	for i, param := range params {
		elem.Field(param.Index).Set(values[i])
	}

	if t.Kind() == reflect.Pointer {
		return ptr
	}
	return elem
}

// Coerce converts value into a reflect.Value assignable to t. Nil becomes the
// zero value; numeric values convert between numeric kinds only when the value
// is unchanged by the conversion. The second result is false otherwise.
func Coerce(value any, t reflect.Type) (reflect.Value, bool) {
	if value == nil {
		return reflect.Zero(t), true
	}

	v := reflect.ValueOf(value)
	if v.Type().AssignableTo(t) {
		return v, true
	}

	if isNumeric(v.Kind()) && isNumeric(t.Kind()) && v.Type().ConvertibleTo(t) {
		if !fitsNumeric(v, t) {
			return reflect.Value{}, false
		}
		return v.Convert(t), true
	}

	if v.Kind() == reflect.String && t.Kind() == reflect.String {
		return v.Convert(t), true
	}

	return reflect.Value{}, false
}

// fitsNumeric reports whether v converts to t without changing its value.
func fitsNumeric(v reflect.Value, t reflect.Type) bool {
	target := reflect.New(t).Elem()

	switch {
	case v.CanInt():
		n := v.Int()
		switch {
		case target.CanInt():
			return !target.OverflowInt(n)
		case target.CanUint():
			return n >= 0 && !target.OverflowUint(uint64(n))
		default:
			return !target.OverflowFloat(float64(n))
		}
	case v.CanUint():
		n := v.Uint()
		switch {
		case target.CanInt():
			return n <= math.MaxInt64 && !target.OverflowInt(int64(n))
		case target.CanUint():
			return !target.OverflowUint(n)
		default:
			return !target.OverflowFloat(float64(n))
		}
	default:
		f := v.Float()
		switch {
		case target.CanFloat():
			return !target.OverflowFloat(f)
		case math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f):
			return false
		case target.CanInt():
			return f >= math.MinInt64 && f < math.MaxInt64 && !target.OverflowInt(int64(f))
		default:
			return f >= 0 && f < math.MaxUint64 && !target.OverflowUint(uint64(f))
		}
	}
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
