// Package broadcast jarayon ichidagi "savatcha yangilandi" signali.
// Signal hech qanday ma'lumot tashimaydi: obunachi holatni o'zi qayta o'qiydi.
package broadcast

import "sync"

// Bus topic bo'yicha signal tarqatuvchi
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[string]map[int]chan struct{}
}

// NewBus yangi Bus yaratish
func NewBus() *Bus {
	return &Bus{subs: make(map[string]map[int]chan struct{})}
}

// Subscribe topicga obuna bo'lish. Qaytgan cancel kanalni yopadi.
// Kanal buferi 1 ta: ketma-ket signallar bittaga qo'shiladi.
func (b *Bus) Subscribe(topic string) (<-chan struct{}, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan struct{}, 1)
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[int]chan struct{})
	}
	b.subs[topic][id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if subs, ok := b.subs[topic]; ok {
				delete(subs, id)
				if len(subs) == 0 {
					delete(b.subs, topic)
				}
			}
			close(ch)
		})
	}
	return ch, cancel
}

// Publish topic obunachilariga signal yuborish. Hech qachon bloklanmaydi.
func (b *Bus) Publish(topic string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs[topic] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Subscribers topic obunachilari soni
func (b *Bus) Subscribers(topic string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[topic])
}
