// Package javaio decodes the wire format produced by
// java.io.ObjectOutputStream: a self-describing, possibly-cyclic graph of
// typed records interleaved with raw primitive payloads.
//
// The package is a reader only. Construct a Decoder over an io.Reader with
// NewDecoder and call ReadObject to pull items off the stream one at a
// time. Host types opt into field assignment by implementing Materializer
// or by registering a reflect.Type with a Resolver; unregistered classes
// fail ClassNotFound unless Config.AllowUnregisteredClasses is set, in
// which case they decode into a *GenericObject.
package javaio
