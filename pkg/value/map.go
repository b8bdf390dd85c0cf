package value

// Entry is a single key/value pair of a Map.
type Entry struct {
	Key   string
	Value Value
}

// Map is an object that remembers the order in which keys were first set.
// The zero value is an empty map ready to use.
type Map struct {
	entries []Entry
	index   map[string]int
}

// NewMap builds a map from entries. A repeated key keeps its first position
// and takes the last value, matching how JSON parsers treat duplicates.
func NewMap(entries ...Entry) *Map {
	m := &Map{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		m.Set(e.Key, e.Value)
	}
	return m
}

func (*Map) Kind() Kind { return KindMap }
func (*Map) sealed()    {}

// Set stores v under key, appending the key if it is new.
func (m *Map) Set(key string, v Value) {
	if v == nil {
		v = Null{}
	}
	if m.index == nil {
		m.index = make(map[string]int)
	}
	if i, ok := m.index[key]; ok {
		m.entries[i].Value = v
		return
	}
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, Entry{Key: key, Value: v})
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (Value, bool) {
	if m == nil {
		return nil, false
	}
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.entries[i].Value, true
}

// Len returns the number of keys.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}
	return keys
}

// Entries returns a copy of the entries in insertion order.
func (m *Map) Entries() []Entry {
	if m == nil {
		return nil
	}
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Range calls fn for every entry in order until fn returns false.
func (m *Map) Range(fn func(key string, v Value) bool) {
	if m == nil {
		return
	}
	for _, e := range m.entries {
		if !fn(e.Key, e.Value) {
			return
		}
	}
}
