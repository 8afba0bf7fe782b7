// Package method builds and stores the per-node-class reflected method
// table the spec calls the MethodRegistry: methodId -> (signature,
// invoker). A method is registered as a Go method expression
// (e.g. (*NumberSource).Forward, written NumberSource.Forward when taken
// off a value receiver) so that one invoker closure, built once via
// reflect at registration time, serves every instance of that node
// class — the closest Go analogue to the spec's compile-time-generated
// invoker table.
package method
