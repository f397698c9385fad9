// internal/event/event.go
package event

// EventType — тип события
type EventType string

// Event — структура события
type Event struct {
	Type EventType
	Data any // полезная нагрузка, см. types.go
}

// Listener — интерфейс для подписчиков на события
type Listener interface {
	OnEvent(event Event)
}

// Dispatcher — синхронный диспетчер: Dispatch вызывает подписчиков
// в порядке подписки, прежде чем вернуть управление.
type Dispatcher struct {
	listeners map[EventType][]Listener
}

// NewDispatcher — создаёт новый диспетчер
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]Listener),
	}
}

// Subscribe — подписка на событие
func (d *Dispatcher) Subscribe(eventType EventType, listener Listener) {
	d.listeners[eventType] = append(d.listeners[eventType], listener)
}

// SubscribeAll подписывает listener на каждый тип из списка.
func (d *Dispatcher) SubscribeAll(types []EventType, listener Listener) {
	for _, t := range types {
		d.Subscribe(t, listener)
	}
}

// Unsubscribe — отписка от события
func (d *Dispatcher) Unsubscribe(eventType EventType, listener Listener) {
	listeners := d.listeners[eventType]
	for i, l := range listeners {
		if l == listener {
			d.listeners[eventType] = append(listeners[:i:i], listeners[i+1:]...)
			return
		}
	}
}

// Dispatch — отправка события всем подписчикам. Подписки, изменённые
// во время рассылки, вступают в силу со следующего события.
func (d *Dispatcher) Dispatch(event Event) {
	listeners := d.listeners[event.Type]
	for _, listener := range listeners[:len(listeners):len(listeners)] {
		listener.OnEvent(event)
	}
}

// ListenerFunc adapts a plain function to Listener.
type ListenerFunc func(Event)

func (f ListenerFunc) OnEvent(e Event) {
	f(e)
}
