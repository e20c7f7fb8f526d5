package builtins

func registerClasses(r *Registry) {
	// Core
	r.RegisterClass(
		"stdClass", "Closure", "Generator", "WeakMap", "WeakReference",
		"ArrayObject", "ArrayIterator", "SplStack", "SplQueue", "SplObjectStorage",
		"SplFixedArray", "SplPriorityQueue", "SplHeap", "SplFileInfo", "SplFileObject",
		"DateTime", "DateTimeImmutable", "DateTimeZone", "DateInterval", "DatePeriod",
		"PDO", "PDOStatement", "ReflectionClass", "ReflectionMethod",
		"ReflectionProperty", "ReflectionFunction", "ReflectionObject",
	)

	// Interfaces
	r.RegisterClass(
		"Traversable", "Iterator", "IteratorAggregate", "ArrayAccess", "Countable",
		"Serializable", "JsonSerializable", "Stringable", "Throwable",
		"DateTimeInterface", "UnitEnum", "BackedEnum",
	)

	// Exceptions and errors
	r.RegisterClass(
		"Exception", "ErrorException", "Error", "TypeError", "ValueError",
		"ArithmeticError", "DivisionByZeroError", "ArgumentCountError",
		"LogicException", "BadFunctionCallException", "BadMethodCallException",
		"DomainException", "InvalidArgumentException", "LengthException",
		"OutOfRangeException", "RuntimeException", "OutOfBoundsException",
		"OverflowException", "RangeException", "UnderflowException",
		"UnexpectedValueException", "JsonException", "PDOException",
	)
}
