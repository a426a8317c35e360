package mandel

import (
	"context"
	"image"
	"sync"
)

// DefaultWorkers is the number of concurrent band workers used when no
// WithWorkers option is given.
const DefaultWorkers = 4

// Coordinator turns render requests into completed frames. It splits the
// canvas into horizontal bands, renders each band on its own goroutine and
// reassembles the results on a single control goroutine, which is the only
// writer of the frame buffer and the completion counter.
//
// A new request strictly supersedes an in-flight one: the old workers are
// cancelled before new ones are spawned, their partial frame is abandoned
// and any band they still deliver is discarded. Only fully assembled frames
// ever reach the sink, so a burst of rapid pan/zoom requests presents at
// most the newest frame.
type Coordinator struct {
	workers  int
	sink     FrameSink
	bandHook BandHook

	requests chan RenderRequest
	results  chan bandResult
	quit     chan struct{}
	done     chan struct{}
}

// bandResult carries one worker's finished band back to the control
// goroutine, tagged with the render generation it belongs to.
type bandResult struct {
	gen    uint64
	startY uint32
	chunk  []byte
}

// CoordinatorOption configures a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithWorkers sets the number of concurrent band workers per render.
// Values below 1 fall back to DefaultWorkers.
func WithWorkers(n int) CoordinatorOption {
	return func(c *Coordinator) {
		if n >= 1 {
			c.workers = n
		}
	}
}

// WithBandHook registers a hook invoked for every band that lands in the
// currently live render. Superseded renders never reach the hook.
func WithBandHook(h BandHook) CoordinatorOption {
	return func(c *Coordinator) {
		c.bandHook = h
	}
}

// NewCoordinator starts the control goroutine and returns a ready
// Coordinator. Close must be called to stop it.
func NewCoordinator(sink FrameSink, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		workers:  DefaultWorkers,
		sink:     sink,
		requests: make(chan RenderRequest, 1),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, o := range opts {
		o(c)
	}
	c.results = make(chan bandResult, c.workers)
	go c.loop()
	return c
}

// Render submits a request. It never blocks: if an earlier request is
// still queued and unconsumed it is dropped in favour of the new one
// (latest wins), mirroring how rapid input events supersede each other.
//
// The caller must guarantee Width, Height and View.Zoom are positive;
// geometry is not validated here.
func (c *Coordinator) Render(req RenderRequest) {
	for {
		select {
		case c.requests <- req:
			return
		default:
		}
		// Queue full: evict the stale queued request and retry.
		select {
		case <-c.requests:
		default:
		}
	}
}

// Close cancels any in-flight render and stops the control goroutine.
func (c *Coordinator) Close() {
	close(c.quit)
	<-c.done
}

// loop is the control goroutine: sole owner of the live frame buffer,
// the completion counter and the render generation.
func (c *Coordinator) loop() {
	defer close(c.done)

	var (
		gen     uint64
		cancel  context.CancelFunc = func() {}
		req     RenderRequest
		frame   []byte
		pending int
	)
	defer cancel()

	for {
		select {
		case r := <-c.requests:
			// Supersede: cancel the previous render's workers before
			// spawning any new ones, abandon its buffer and counter.
			cancel()
			gen++
			var ctx context.Context
			ctx, cancel = context.WithCancel(context.Background())

			req = r
			frame = make([]byte, int(r.Width)*int(r.Height)*4)
			bands := SplitBands(r.Height, uint32(c.workers))
			pending = len(bands)
			for _, b := range bands {
				go renderWorker(ctx, c.results, gen, r, b)
			}

		case res := <-c.results:
			if res.gen != gen {
				// Stale band from a superseded render.
				continue
			}
			copy(frame[int(res.startY)*int(req.Width)*4:], res.chunk)
			if c.bandHook != nil {
				c.bandHook(req, res.startY, res.chunk)
			}
			pending--
			if pending == 0 {
				c.sink(req, frame)
			}

		case <-c.quit:
			return
		}
	}
}

// renderWorker renders one band into its own buffer and hands it to the
// control goroutine. Cancellation is checked between rows; a cancelled
// worker delivers nothing.
func renderWorker(ctx context.Context, results chan<- bandResult, gen uint64, req RenderRequest, b Band) {
	rowLen := int(req.Width) * 4
	chunk := make([]byte, rowLen*int(b.Rows()))
	for y := b.Start; y < b.End; y++ {
		select {
		case <-ctx.Done():
			return
		default:
		}
		off := int(y-b.Start) * rowLen
		renderRow(chunk[off:off+rowLen], req.Width, y, req.View, req.MaxIter)
	}

	select {
	case results <- bandResult{gen: gen, startY: b.Start, chunk: chunk}:
	case <-ctx.Done():
	}
}

// RenderImage renders one frame synchronously with the given number of
// band workers and returns it as a stdlib image. Used by the poster CLI
// and anywhere a blocking render is more convenient than a Coordinator.
func RenderImage(req RenderRequest, workers int) *image.RGBA {
	if workers < 1 {
		workers = DefaultWorkers
	}
	img := image.NewRGBA(image.Rect(0, 0, int(req.Width), int(req.Height)))

	var wg sync.WaitGroup
	for _, b := range SplitBands(req.Height, uint32(workers)) {
		wg.Add(1)
		go func(b Band) {
			defer wg.Done()
			chunk := RenderBand(req.Width, b, req.View, req.MaxIter)
			copy(img.Pix[int(b.Start)*int(req.Width)*4:], chunk)
		}(b)
	}
	wg.Wait()
	return img
}
