package javaio

// String marks a field as the host's chosen Go representation of
// java.lang.String when a distinct wrapper type (rather than a plain Go
// string) is convenient, e.g. to pass through ClassName/SerialVersionUID
// to code that inspects decoded values generically.
type String struct {
	Value string `javaio:"-"`
}

func (String) ClassName() string {
	return "java.lang.String"
}

func (String) SerialVersionUID() int64 {
	return -6849794470754667710
}
