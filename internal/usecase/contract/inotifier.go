package usecasecontract

// IRealtimeNotifier pushes server events to connected realtime clients.
type IRealtimeNotifier interface {
	// EmitToRoom delivers an event to every client that joined room.
	EmitToRoom(room, event string, payload interface{})
	// Broadcast delivers an event to every authenticated client.
	Broadcast(event string, payload interface{})
}
