// Package xrf generates the per-request anti-forgery keys the control-plane
// API expects in both the xrfkey query parameter and the X-Qlik-Xrfkey header.
package xrf

import (
	"math/rand"
	"sync"
	"time"
)

const (
	alphabet  = "abcdefghijklmnopqrstuvwxyz0123456789"
	keyLength = 16
)

type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewGenerator(src rand.Source) *Generator {
	return &Generator{rnd: rand.New(src)}
}

func NewDefaultGenerator() *Generator {
	return NewGenerator(rand.NewSource(time.Now().UnixNano()))
}

// Token returns a fresh key. Callers must not reuse a key across requests.
func (g *Generator) Token() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	b := make([]byte, keyLength)
	for i := range b {
		b[i] = alphabet[g.rnd.Intn(len(alphabet))]
	}
	return string(b)
}
