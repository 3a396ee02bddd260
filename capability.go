package di

import (
	"fmt"
	"reflect"
)

// checkCapabilities verifies that a built object satisfies
// every capability type declared in the Is field of its definition.
func checkCapabilities(name string, obj interface{}, types []reflect.Type) error {
	if len(types) == 0 {
		return nil
	}

	if _, ok := obj.(*Placeholder); ok {
		// A placeholder stands for the real object. It checks the
		// capability set itself when it resolves the goroutine instance.
		return nil
	}

	t := reflect.TypeOf(obj)

	for _, typ := range types {
		if !satisfiesType(t, typ) {
			return fmt.Errorf("could not build `%s`: %s does not satisfy %s", name, typeName(t), typ)
		}
	}

	return nil
}

func satisfiesType(t reflect.Type, contract reflect.Type) bool {
	if t == nil {
		return false
	}
	if contract.Kind() == reflect.Interface {
		return t.Implements(contract)
	}
	return t.AssignableTo(contract)
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "untyped nil"
	}
	return t.String()
}
