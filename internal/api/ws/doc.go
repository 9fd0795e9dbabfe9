/*
Package ws streams render events to browser front ends over WebSocket.

Protocol (JSON text frames):

	server -> client  {"type":"state","state":{...}}            on connect
	server -> client  {"type":"render","event":{"kind":...}}    every change
	client -> server  {"type":"ping"}   -> {"type":"pong"}
	client -> server  {"type":"state"}  -> {"type":"state",...}

The hub is the device's render sink. Broadcasting never blocks the device
loop: each client has a buffered queue and is disconnected when it fills.
*/
package ws
