package devserver

import (
	"sync"

	"botpanel/internal/bot"
)

// Store holds the authoritative state. Every mutation reports the new state
// to the change callback. Mutations and their callbacks are serialized, so
// the last state reported is always the stored one.
type Store struct {
	// pub is held across a mutation and its callback; mu only guards state.
	pub      sync.Mutex
	mu       sync.RWMutex
	state    bot.State
	onChange func(bot.State)
}

func NewStore(initial bot.State, onChange func(bot.State)) *Store {
	return &Store{state: initial, onChange: onChange}
}

func (s *Store) Get() bot.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Store) SetEnabled(enabled bool) bot.State {
	return s.update(func(st *bot.State) { st.IsEnabled = enabled })
}

func (s *Store) Toggle() bot.State {
	return s.update(func(st *bot.State) { st.IsEnabled = !st.IsEnabled })
}

func (s *Store) SetMode(mode bot.Mode) bot.State {
	return s.update(func(st *bot.State) { st.Mode = mode })
}

func (s *Store) update(fn func(*bot.State)) bot.State {
	s.pub.Lock()
	defer s.pub.Unlock()

	s.mu.Lock()
	fn(&s.state)
	st := s.state
	s.mu.Unlock()
	if s.onChange != nil {
		s.onChange(st)
	}
	return st
}
