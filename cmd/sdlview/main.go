// sdlview is the native interactive explorer. It runs the parallel render
// core in-process: drag pans, the mouse wheel zooms around the cursor,
// resizing the window re-renders at the new size (with a scaled preview of
// the old frame shown while the re-render is in flight).
package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"runtime"
	"unsafe"

	mandel "github.com/marben/mandelzoom"
	"github.com/veandco/go-sdl2/sdl"
	xdraw "golang.org/x/image/draw"
)

func init() {
	// SDL event handling must stay on the main OS thread.
	runtime.LockOSThread()
}

// frame is one presented pixel buffer.
type frame struct {
	width, height uint32
	pix           []byte
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run() error {
	width := flag.Int("width", 1024, "initial window width")
	height := flag.Int("height", 768, "initial window height")
	iter := flag.Int("iter", 100, "max escape iterations")
	workers := flag.Int("workers", mandel.DefaultWorkers, "concurrent band workers")
	flag.Parse()

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("sdl.Init: %w", err)
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow("mandelzoom",
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(*width), int32(*height),
		sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE)
	if err != nil {
		return fmt.Errorf("sdl.CreateWindow: %w", err)
	}
	defer window.Destroy()

	// Completed frames land in a single-slot mailbox (latest wins); the
	// event loop picks up the newest one on its next pass.
	frames := make(chan frame, 1)
	sink := func(req mandel.RenderRequest, pix []byte) {
		f := frame{width: req.Width, height: req.Height, pix: pix}
		for {
			select {
			case frames <- f:
				return
			default:
			}
			select {
			case <-frames:
			default:
			}
		}
	}

	coord := mandel.NewCoordinator(sink, mandel.WithWorkers(*workers))
	defer coord.Close()

	w, h := uint32(*width), uint32(*height)
	view := mandel.Home.View(w)
	maxIter := uint32(*iter)
	var seq uint32
	render := func() {
		seq++
		coord.Render(mandel.RenderRequest{
			Width:   w,
			Height:  h,
			MaxIter: maxIter,
			View:    view,
			Seq:     seq,
		})
	}
	render()

	var last frame
	for {
		for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
			switch e := ev.(type) {
			case *sdl.QuitEvent:
				return nil

			case *sdl.KeyboardEvent:
				if e.Type == sdl.KEYDOWN {
					switch e.Keysym.Sym {
					case sdl.K_ESCAPE, sdl.K_q:
						return nil
					case sdl.K_r:
						view = mandel.Home.View(w)
						render()
					}
				}

			case *sdl.MouseMotionEvent:
				if e.State&sdl.ButtonLMask() != 0 {
					// Drag moves the plane with the pointer.
					view.OffsetX -= float64(e.XRel) / view.Zoom
					view.OffsetY -= float64(e.YRel) / view.Zoom
					render()
				}

			case *sdl.MouseWheelEvent:
				mx, my, _ := sdl.GetMouseState()
				factor := 1.1
				if e.Y < 0 {
					factor = 1 / 1.1
				}
				// Zoom around the cursor: the plane point under it stays put.
				newZoom := view.Zoom * factor
				view.OffsetX += float64(mx)/view.Zoom - float64(mx)/newZoom
				view.OffsetY += float64(my)/view.Zoom - float64(my)/newZoom
				view.Zoom = newZoom
				render()

			case *sdl.WindowEvent:
				if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
					w, h = uint32(e.Data1), uint32(e.Data2)
					if last.pix != nil {
						if err := blit(window, scaleFrame(last, w, h)); err != nil {
							log.Printf("blit preview: %v", err)
						}
					}
					render()
				}
			}
		}

		select {
		case f := <-frames:
			last = f
			if err := blit(window, f); err != nil {
				log.Printf("blit: %v", err)
			}
		default:
		}

		sdl.Delay(8)
	}
}

// blit copies a frame onto the window surface.
func blit(window *sdl.Window, f frame) error {
	if len(f.pix) == 0 {
		return nil
	}
	src, err := sdl.CreateRGBSurfaceWithFormatFrom(
		unsafe.Pointer(&f.pix[0]),
		int32(f.width), int32(f.height),
		32, int32(f.width)*4,
		sdl.PIXELFORMAT_RGBA32)
	if err != nil {
		return fmt.Errorf("create surface: %w", err)
	}
	defer src.Free()

	win, err := window.GetSurface()
	if err != nil {
		return fmt.Errorf("window surface: %w", err)
	}
	if err := src.Blit(nil, win, nil); err != nil {
		return fmt.Errorf("blit: %w", err)
	}
	return window.UpdateSurface()
}

// scaleFrame stretches the previous frame to the new window size. Shown
// as a placeholder until the re-render at the resized geometry lands.
func scaleFrame(f frame, width, height uint32) frame {
	src := &image.RGBA{
		Pix:    f.pix,
		Stride: int(f.width) * 4,
		Rect:   image.Rect(0, 0, int(f.width), int(f.height)),
	}
	dst := image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return frame{width: width, height: height, pix: dst.Pix}
}
