package javaio

// GetField is the detached view of one descriptor level's primitive and
// object fields, for a custom readObject-style hook that wants selective
// access, grounded on the original ObjectInputStream.GetField inner class.
type GetField struct {
	desc   *ClassDescriptor
	values map[string]interface{}
}

func newGetField(desc *ClassDescriptor, values map[string]interface{}) *GetField {
	return &GetField{desc: desc, values: values}
}

// Descriptor returns the class descriptor this view was read against.
func (g *GetField) Descriptor() *ClassDescriptor {
	return g.desc
}

// Defaulted reports whether name was absent from the stream's descriptor
// for this level: fields declared locally but absent from the stream
// read as their zero value, and Defaulted reports true for them.
func (g *GetField) Defaulted(name string) bool {
	_, ok := g.values[name]
	return !ok
}

func (g *GetField) value(name string) interface{} {
	return g.values[name]
}

func (g *GetField) Bool(name string, def bool) bool {
	if v, ok := g.values[name].(bool); ok {
		return v
	}
	return def
}

func (g *GetField) Byte(name string, def byte) byte {
	if v, ok := g.values[name].(byte); ok {
		return v
	}
	return def
}

func (g *GetField) Char(name string, def uint16) uint16 {
	if v, ok := g.values[name].(uint16); ok {
		return v
	}
	return def
}

func (g *GetField) Short(name string, def int16) int16 {
	if v, ok := g.values[name].(int16); ok {
		return v
	}
	return def
}

func (g *GetField) Int(name string, def int32) int32 {
	if v, ok := g.values[name].(int32); ok {
		return v
	}
	return def
}

func (g *GetField) Long(name string, def int64) int64 {
	if v, ok := g.values[name].(int64); ok {
		return v
	}
	return def
}

func (g *GetField) Float(name string, def float32) float32 {
	if v, ok := g.values[name].(float32); ok {
		return v
	}
	return def
}

func (g *GetField) Double(name string, def float64) float64 {
	if v, ok := g.values[name].(float64); ok {
		return v
	}
	return def
}

// Object returns name's reference-typed value, or def if absent.
func (g *GetField) Object(name string, def interface{}) interface{} {
	if v, ok := g.values[name]; ok {
		return v
	}
	return def
}
