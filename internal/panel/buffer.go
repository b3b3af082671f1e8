package panel

import "sync"

// Buffer is a View that keeps the latest content of each region.
type Buffer struct {
	mu      sync.Mutex
	warning *Block
	log     *Block
	status  []Block
}

func (b *Buffer) ShowWarning(block Block) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.warning = &block
}

func (b *Buffer) ShowLog(block Block) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.log = &block
}

func (b *Buffer) ShowStatus(blocks []Block) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status = blocks
}

func (b *Buffer) Warning() (Block, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.warning == nil {
		return Block{}, false
	}
	return *b.warning, true
}

func (b *Buffer) Log() (Block, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.log == nil {
		return Block{}, false
	}
	return *b.log, true
}

func (b *Buffer) Status() []Block {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status
}
