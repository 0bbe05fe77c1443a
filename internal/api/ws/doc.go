// Package ws provides WebSocket handling for real-time session updates.
//
// Each connection subscribes to the session store's snapshot feed: the full
// session state is pushed after every mutation, so clients render from
// snapshots instead of polling REST endpoints.
//
// Message Types (Client → Server):
//   - ping: Keep-alive ping
//   - snapshot: Request an immediate state push
//
// Message Types (Server → Client):
//   - system: Connection established
//   - snapshot: Full session state
//   - pong: Keep-alive reply
//   - error: Unknown message type
//
// Example Usage:
//
//	handler := ws.NewHandler(store, logger)
//	router.GET("/ws", handler.HandleConnection)
package ws
