package event

import "testing"

type recorder struct {
	name string
	log  *[]string
}

func (r *recorder) OnEvent(e Event) {
	*r.log = append(*r.log, r.name+":"+string(e.Type))
}

func TestDispatchOrder(t *testing.T) {
	var log []string
	d := NewDispatcher()
	a := &recorder{name: "a", log: &log}
	b := &recorder{name: "b", log: &log}
	d.Subscribe(EnemyKilled, a)
	d.Subscribe(EnemyKilled, b)
	d.Subscribe(TowerBuilt, b)

	d.Dispatch(Event{Type: EnemyKilled})
	d.Dispatch(Event{Type: TowerBuilt})
	d.Dispatch(Event{Type: GameOver})

	want := []string{"a:EnemyKilled", "b:EnemyKilled", "b:TowerBuilt"}
	if len(log) != len(want) {
		t.Fatalf("Expected %v, got %v", want, log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("Expected %s at %d, got %s", want[i], i, log[i])
		}
	}
}

func TestUnsubscribeDuringDispatch(t *testing.T) {
	d := NewDispatcher()
	other := &recorder{name: "other", log: new([]string)}
	d.Subscribe(WaveStarted, other)

	wrapper := &onceListener{d: d}
	d.Subscribe(WaveStarted, wrapper)
	d.Subscribe(WaveStarted, other)

	d.Dispatch(Event{Type: WaveStarted})
	d.Dispatch(Event{Type: WaveStarted})

	if wrapper.calls != 1 {
		t.Errorf("Expected the listener to run once, got %d", wrapper.calls)
	}
	if got := len(*other.log); got != 4 {
		t.Errorf("Expected the other listener to run 4 times, got %d", got)
	}
}

type onceListener struct {
	d     *Dispatcher
	calls int
}

func (o *onceListener) OnEvent(e Event) {
	o.calls++
	o.d.Unsubscribe(e.Type, o)
}

func TestSubscribeAll(t *testing.T) {
	d := NewDispatcher()
	seen := map[EventType]int{}
	d.SubscribeAll(AllTypes, ListenerFunc(func(e Event) { seen[e.Type]++ }))
	for _, typ := range AllTypes {
		d.Dispatch(Event{Type: typ})
	}
	for _, typ := range AllTypes {
		if seen[typ] != 1 {
			t.Errorf("Expected one %s, got %d", typ, seen[typ])
		}
	}
}
