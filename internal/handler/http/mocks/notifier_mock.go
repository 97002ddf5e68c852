package mocks

import (
	"sync"

	usecasecontract "github.com/mapmark/pinpoint/internal/usecase/contract"
)

// Emission is one event recorded by MockNotifier. Room is empty for broadcasts.
type Emission struct {
	Room    string
	Event   string
	Payload interface{}
}

type MockNotifier struct {
	mu        sync.Mutex
	Emissions []Emission
}

var _ usecasecontract.IRealtimeNotifier = (*MockNotifier)(nil)

func (n *MockNotifier) EmitToRoom(room, event string, payload interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Emissions = append(n.Emissions, Emission{Room: room, Event: event, Payload: payload})
}

func (n *MockNotifier) Broadcast(event string, payload interface{}) {
	n.EmitToRoom("", event, payload)
}
