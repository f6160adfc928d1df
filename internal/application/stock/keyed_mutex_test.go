package stock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutex_SerializaPorClave(t *testing.T) {
	km := NewKeyedMutex()
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := km.Lock("p1")
			counter++
			unlock()
		}()
	}
	wg.Wait()
	assert.Equal(t, 100, counter)
	assert.Equal(t, 0, km.size(), "las claves sin uso se liberan")
}

func TestKeyedMutex_ClavesDuplicadasNoSeBloquean(t *testing.T) {
	km := NewKeyedMutex()
	unlock := km.Lock("b", "a", "b")
	assert.Equal(t, 2, km.size())
	unlock()
	assert.Equal(t, 0, km.size())
}

func TestKeyedMutex_OrdenCruzadoSinInterbloqueo(t *testing.T) {
	km := NewKeyedMutex()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			km.Lock("a", "b")()
		}()
		go func() {
			defer wg.Done()
			km.Lock("b", "a")()
		}()
	}
	wg.Wait()
}
