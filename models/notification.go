package models

// NotificationKind names the event a notification is sent for.
type NotificationKind string

const (
	NotifyQuoteCreated  NotificationKind = "quote.created"
	NotifyResponseAdded NotificationKind = "response.added"
)

// NotificationChannel restricts delivery to one transport. The zero value
// delivers on every channel the event calls for.
type NotificationChannel string

const (
	ChannelAll   NotificationChannel = ""
	ChannelEmail NotificationChannel = "email"
	ChannelPush  NotificationChannel = "push"
)

// NotificationEvent is the unit of background notification work. It is queued
// as JSON when the task queue is enabled.
type NotificationEvent struct {
	Kind     NotificationKind    `json:"kind"`
	Channel  NotificationChannel `json:"channel,omitempty"`
	Quote    Quote               `json:"quote"`
	Response *Response           `json:"response,omitempty"`
}

// Wants reports whether the event should be delivered on ch.
func (ev NotificationEvent) Wants(ch NotificationChannel) bool {
	return ev.Channel == ChannelAll || ev.Channel == ch
}

// PerChannel splits the event into one event per delivery channel, so each
// can be retried without repeating the others.
func (ev NotificationEvent) PerChannel() []NotificationEvent {
	if ev.Channel != ChannelAll {
		return []NotificationEvent{ev}
	}
	switch ev.Kind {
	case NotifyQuoteCreated:
		mail, push := ev, ev
		mail.Channel = ChannelEmail
		push.Channel = ChannelPush
		return []NotificationEvent{mail, push}
	case NotifyResponseAdded:
		ev.Channel = ChannelEmail
	}
	return []NotificationEvent{ev}
}
