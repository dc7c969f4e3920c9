package basic

import (
	"fmt"
	"reflect"

	"github.com/funvibe/basic/internal/evaluator"
)

// Marshaller handles conversion between Go and interpreter values.
//
// Go numbers become Numbers, bools become 1 or 0, strings become Strings and
// slices or arrays become Lists. Go functions, maps and structs have no
// counterpart and are rejected.
type Marshaller struct{}

func NewMarshaller() *Marshaller {
	return &Marshaller{}
}

var objectType = reflect.TypeOf((*evaluator.Object)(nil)).Elem()

// ToValue converts a Go value to an interpreter Object.
func (m *Marshaller) ToValue(val interface{}) (evaluator.Object, error) {
	if val == nil {
		return evaluator.Null(), nil
	}
	if obj, ok := val.(evaluator.Object); ok {
		return obj, nil
	}

	v := reflect.ValueOf(val)
	if v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	if !v.IsValid() {
		return evaluator.Null(), nil
	}

	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return evaluator.NewNumber(float64(v.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return evaluator.NewNumber(float64(v.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return evaluator.NewNumber(v.Float()), nil
	case reflect.Bool:
		return evaluator.Bool(v.Bool()), nil
	case reflect.String:
		return evaluator.NewString(v.String()), nil
	case reflect.Slice, reflect.Array:
		return m.sliceToList(v)
	case reflect.Ptr:
		if v.IsNil() {
			return evaluator.Null(), nil
		}
		return m.ToValue(v.Elem().Interface())
	case reflect.Func:
		return nil, fmt.Errorf("cannot convert Go function %s: functions must be defined in BASIC", v.Type())
	}
	return nil, fmt.Errorf("unsupported Go type %s", v.Type())
}

// FromValue converts an Object to a Go value.
// targetType is optional; if provided, tries to convert to that type.
func (m *Marshaller) FromValue(obj evaluator.Object, targetType reflect.Type) (interface{}, error) {
	if obj == nil {
		return nil, nil
	}
	if targetType != nil && targetType == objectType {
		return obj, nil
	}

	switch o := obj.(type) {
	case *evaluator.Number:
		return m.numberToGo(o, targetType)
	case *evaluator.String:
		if targetType != nil && targetType.Kind() != reflect.String && targetType.Kind() != reflect.Interface {
			return nil, fmt.Errorf("cannot convert String to %s", targetType)
		}
		return o.Value, nil
	case *evaluator.List:
		return m.listToSlice(o, targetType)
	case *evaluator.Function, *evaluator.Builtin:
		// handed back as is so it can be passed to Call
		return obj, nil
	}
	return nil, fmt.Errorf("unsupported type for conversion: %s", obj.Type())
}

func (m *Marshaller) numberToGo(n *evaluator.Number, targetType reflect.Type) (interface{}, error) {
	if targetType == nil || targetType.Kind() == reflect.Interface {
		if n.IsInteger() {
			return int(n.Value), nil
		}
		return n.Value, nil
	}

	switch targetType.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if !n.IsInteger() {
			return nil, fmt.Errorf("cannot convert %s to %s: not a whole number", n.Inspect(), targetType)
		}
		if targetType.Kind() >= reflect.Uint && n.Value < 0 {
			return nil, fmt.Errorf("cannot convert %s to %s: negative", n.Inspect(), targetType)
		}
		return reflect.ValueOf(n.Value).Convert(targetType).Interface(), nil
	case reflect.Float32, reflect.Float64:
		return reflect.ValueOf(n.Value).Convert(targetType).Interface(), nil
	case reflect.Bool:
		return n.IsTrue(), nil
	}
	return nil, fmt.Errorf("cannot convert Number to %s", targetType)
}

func (m *Marshaller) sliceToList(v reflect.Value) (*evaluator.List, error) {
	elements := make([]evaluator.Object, v.Len())
	for i := 0; i < v.Len(); i++ {
		val, err := m.ToValue(v.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		elements[i] = val
	}
	return evaluator.NewList(elements), nil
}

func (m *Marshaller) listToSlice(l *evaluator.List, targetType reflect.Type) (interface{}, error) {
	// If targetType is nil, default to []interface{}
	elemType := reflect.TypeOf((*interface{})(nil)).Elem()
	if targetType != nil {
		switch targetType.Kind() {
		case reflect.Slice:
			elemType = targetType.Elem()
		case reflect.Interface:
		default:
			return nil, fmt.Errorf("cannot convert List to %s", targetType)
		}
	}

	slice := reflect.MakeSlice(reflect.SliceOf(elemType), 0, l.Len())
	for i, el := range l.Elements() {
		val, err := m.FromValue(el, elemType)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		if val == nil {
			slice = reflect.Append(slice, reflect.Zero(elemType))
			continue
		}
		rv := reflect.ValueOf(val)
		switch {
		case rv.Type().AssignableTo(elemType):
			slice = reflect.Append(slice, rv)
		case rv.Type().ConvertibleTo(elemType):
			slice = reflect.Append(slice, rv.Convert(elemType))
		default:
			return nil, fmt.Errorf("cannot convert %s to %s", rv.Type(), elemType)
		}
	}
	return slice.Interface(), nil
}
