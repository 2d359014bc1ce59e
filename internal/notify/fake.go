package notify

import "sync"

// Fake records published notices for tests.
type Fake struct {
	mu      sync.Mutex
	notices []RunNotice
	levels  []byte

	// Err, if set, is returned by PublishRun.
	Err    error
	Closed bool
}

func (f *Fake) PublishRun(n RunNotice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.notices = append(f.notices, n)
	f.levels = append(f.levels, qos(n))
	return nil
}

func (f *Fake) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}

// Notices returns a copy of what was published.
func (f *Fake) Notices() []RunNotice {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]RunNotice(nil), f.notices...)
}

// QoS returns the QoS level each notice was published with.
func (f *Fake) QoS() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]byte(nil), f.levels...)
}
