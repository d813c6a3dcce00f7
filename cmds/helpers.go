package cmds

// Switch defines a boolean flag: the bare name sets true, the "!"-prefixed
// name sets false.
func Switch(name string) *bool {
	var value bool

	Define(name, Func(func() {
		value = true
	}))
	Define("!"+name, Func(func() {
		value = false
	}))

	return &value
}

// Var defines a flag taking one value of type T.
func Var[T any](name string) *T {
	var value T

	Define(name, Func(func(v T) {
		value = v
	}))

	return &value
}
