package tuple

// Value is the marker interface a tuple-shaped method return type
// implements in place of std::tuple. TupleSize reports the field count;
// Field returns the i-th field as an any, the Go analogue of
// std::get<i>(tuple).
type Value interface {
	TupleSize() int
	Field(i int) any
}
