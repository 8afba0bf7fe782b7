package method

import (
	"reflect"

	"github.com/vk/easywork/internal/convert"
	"github.com/vk/easywork/internal/packet"
	"github.com/vk/easywork/internal/typesystem"
)

// Invoker is a type-erased call (node, []Packet) -> (Packet, error). It
// validates argument count, casts each argument to its declared input
// type (exact match first, then the converter registry), calls the
// underlying function, and wraps the return — or produces the empty
// packet for a void method.
type Invoker func(self any, inputs []packet.Packet) (packet.Packet, error)

var errType = reflect.TypeOf((*error)(nil)).Elem()

// NewInvoker builds a Signature and an Invoker from a Go method
// expression, e.g. (*NumberSource).Forward — a function whose first
// parameter is the receiver. The function may optionally return a
// trailing error in addition to its result value; a non-nil error
// becomes an *InvocationError from the returned Invoker.
//
// name is used only for diagnostics in errors produced by the Invoker.
func NewInvoker(name string, fn any) (Signature, Invoker) {
	ft := reflect.TypeOf(fn)
	if ft == nil || ft.Kind() != reflect.Func || ft.NumIn() < 1 {
		panic("method: NewInvoker requires a method expression (receiver, args...) -> (result?, error?)")
	}

	hasErr := ft.NumOut() > 0 && ft.Out(ft.NumOut()-1) == errType
	numResults := ft.NumOut()
	if hasErr {
		numResults--
	}
	if numResults > 1 {
		panic("method: a node method may return at most one value besides a trailing error")
	}

	argTypes := make([]typesystem.Descriptor, ft.NumIn()-1)
	for i := range argTypes {
		argTypes[i] = typesystem.FromReflectType(ft.In(i + 1))
	}

	returnType := typesystem.Void
	if numResults == 1 {
		returnType = typesystem.FromReflectType(ft.Out(0))
	}

	sig := Signature{ArgTypes: argTypes, ReturnType: returnType}
	fnVal := reflect.ValueOf(fn)

	invoke := func(self any, inputs []packet.Packet) (packet.Packet, error) {
		if len(inputs) != len(argTypes) {
			return packet.Empty(), &InvocationError{MethodName: name, Err: &ArityError{
				MethodName: name, Want: len(argTypes), Got: len(inputs),
			}}
		}

		callArgs := make([]reflect.Value, ft.NumIn())
		callArgs[0] = reflect.ValueOf(self)
		for i, in := range inputs {
			argType := ft.In(i + 1)
			v, err := castArg(in, argType)
			if err != nil {
				return packet.Empty(), &InvocationError{MethodName: name, Err: &CastError{
					MethodName: name, ArgIndex: i, From: in.Type().Name(), To: typesystem.FromReflectType(argType).Name(),
				}}
			}
			callArgs[i+1] = v
		}

		results := fnVal.Call(callArgs)
		if hasErr {
			if errVal := results[len(results)-1]; !errVal.IsNil() {
				return packet.Empty(), &InvocationError{MethodName: name, Err: errVal.Interface().(error)}
			}
			results = results[:len(results)-1]
		}
		if len(results) == 0 {
			return packet.Empty(), nil
		}
		return packet.FromAny(results[0].Interface(), 0), nil
	}

	return sig, invoke
}

// castArg casts p's payload to argType, first trying an exact match and
// falling back to the converter registry.
func castArg(p packet.Packet, argType reflect.Type) (reflect.Value, error) {
	if !p.HasValue() {
		return reflect.Value{}, &CastError{From: "empty", To: argType.String()}
	}
	v := p.Any()
	rv := reflect.ValueOf(v)
	if rv.Type() == argType || rv.Type().AssignableTo(argType) {
		return rv, nil
	}

	from := p.Type()
	to := typesystem.FromReflectType(argType)
	converted, ok := convert.Convert(v, from, to)
	if !ok {
		return reflect.Value{}, &CastError{From: from.Name(), To: to.Name()}
	}
	return reflect.ValueOf(converted), nil
}
