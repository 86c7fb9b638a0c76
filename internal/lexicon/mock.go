package lexicon

// MockSource is an in-memory Source for tests.
type MockSource struct {
	Lexicon Lexicon
	Err     error
	Calls   int
}

// Load returns the configured lexicon or error.
func (m *MockSource) Load() (Lexicon, error) {
	m.Calls++
	if m.Err != nil {
		return Lexicon{}, m.Err
	}
	return m.Lexicon, nil
}
