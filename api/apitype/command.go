package apitype

// Command is a marker for payloads published on the event bus.
type Command interface{}
