package cmds

var defaultExecutor = NewExecutor()

func Define(name string, command *Command) {
	defaultExecutor.Define(name, command)
}

func Execute(args []string) (rest []string, err error) {
	return defaultExecutor.Execute(args)
}

func MustExecute(args []string) []string {
	rest, err := defaultExecutor.Execute(args)
	if err != nil {
		panic(err)
	}
	return rest
}
