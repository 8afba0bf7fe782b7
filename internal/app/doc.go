// Package app contains the core application logic: the Config shape, the
// App struct, and the primary run lifecycle (load a graph definition, open
// it, run it to completion or cancellation, close it), decoupled from any
// particular entrypoint like a CLI.
package app
