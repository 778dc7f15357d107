package lib

// Hands feedback from a goroutine executing orders over to the one
// presenting it, one message at a time. The sender blocks until the
// receiver asks for the next message or stops.
type MessageSync struct {
	update chan Message
	cont   chan bool
}

func NewMessageSync() *MessageSync {
	return &MessageSync{
		update: make(chan Message),
		cont:   make(chan bool)}
}

// Returns false if the receiver stopped listening.
func (s *MessageSync) SendUpdate(msg Message) bool {
	if !<-s.cont {
		return false
	}
	s.update <- msg
	return true
}

// Sends all the messages, stopping early if the receiver stopped listening.
func (s *MessageSync) SendUpdates(msgs []Message) bool {
	for _, msg := range msgs {
		if !s.SendUpdate(msg) {
			return false
		}
	}
	return true
}

// Tells the receiver nothing more is coming.
func (s *MessageSync) Close() {
	if <-s.cont {
		close(s.update)
	}
}

// Returns false once the sender closed the channel.
func (s *MessageSync) GetUpdate() (Message, bool) {
	s.cont <- true
	msg, ok := <-s.update
	return msg, ok
}

func (s *MessageSync) Stop() {
	s.cont <- false
}
