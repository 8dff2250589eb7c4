package javaio

// Serializable is a generic marker wrapper for a decoded value whose only
// known contract is java.io.Serializable itself (no more specific Go type
// is registered for it).
type Serializable struct {
	Value interface{} `javaio:"-"`
}

func (Serializable) ClassName() string {
	return "java.io.Serializable"
}

func (Serializable) SerialVersionUID() int64 {
	return 1196656838076753133
}
