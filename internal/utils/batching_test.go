package utils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatchBuffer(t *testing.T) {
	b := NewBatchBuffer[string](2)
	assert.Nil(t, b.GetAndClear())

	assert.Equal(t, 1, b.Add("ดี"))
	assert.False(t, b.Full())
	assert.Equal(t, 3, b.Add("แย่", "เฉยๆ"))
	assert.True(t, b.Full())

	assert.Equal(t, []string{"ดี", "แย่", "เฉยๆ"}, b.GetAndClear())
	assert.Equal(t, 0, b.Size())
}

func TestBatchBufferConcurrentAdd(t *testing.T) {
	b := NewBatchBuffer[int](0)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			b.Add(n)
		}(i)
	}
	wg.Wait()

	assert.Len(t, b.GetAndClear(), 50)
}
