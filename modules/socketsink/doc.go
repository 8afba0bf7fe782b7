// Package socketsink provides SocketSink, a node whose forward method
// relays every packet it receives as a socket.io event over a persistent
// connection, using github.com/zishang520/socket.io-client-go. It is
// grounded in the teacher's modules/socketio_client (connect-and-hold
// asset lifecycle) and modules/socketio (event emission over that
// connection) — this is the module's one link to the teacher's
// real-time-transport dependency family.
package socketsink
