package systems

import (
	"runtime"
	"sync"
)

// parallelThreshold is the minimum column count to use parallel processing.
// Below this, single-threaded is faster due to goroutine overhead.
const parallelThreshold = 16

// workChunk represents a range of grid columns for a worker to process.
type workChunk struct {
	start, end int
	delta      float64
	dst        *DensityGrid
}

// columnPool is a persistent set of worker goroutines that fill disjoint
// column ranges of a density grid.
type columnPool struct {
	numWorkers int
	compute    func(start, end int, delta float64, dst *DensityGrid)

	// Worker pool channels
	workChan chan workChunk // sends work to workers
	doneChan chan struct{}  // workers signal completion
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup // tracks active workers
	running  bool           // true if workers are running
}

func newColumnPool(compute func(start, end int, delta float64, dst *DensityGrid)) *columnPool {
	return &columnPool{
		numWorkers: runtime.GOMAXPROCS(0),
		compute:    compute,
	}
}

// start launches persistent worker goroutines.
func (p *columnPool) start() {
	if p.running {
		return
	}

	p.workChan = make(chan workChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// stop signals all workers to exit and waits for them.
func (p *columnPool) stop() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

// worker runs in a goroutine, processing chunks until stopped.
func (p *columnPool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			p.compute(chunk.start, chunk.end, chunk.delta, chunk.dst)
			p.doneChan <- struct{}{}
		}
	}
}

// run fills columns [0, n) of dst and returns once every column is written.
func (p *columnPool) run(n int, delta float64, dst *DensityGrid) {
	if n < parallelThreshold || p.numWorkers < 2 {
		p.compute(0, n, delta, dst)
		return
	}

	if !p.running {
		p.start()
	}

	chunkSize := (n + p.numWorkers - 1) / p.numWorkers

	// Dispatch chunks to workers
	chunksDispatched := 0
	for w := 0; w < p.numWorkers; w++ {
		start := w * chunkSize
		end := min(start+chunkSize, n)
		if start >= end {
			continue
		}

		p.workChan <- workChunk{start: start, end: end, delta: delta, dst: dst}
		chunksDispatched++
	}

	// Wait for all chunks to complete
	for i := 0; i < chunksDispatched; i++ {
		<-p.doneChan
	}
}
