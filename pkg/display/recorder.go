package display

import "gochip8/pkg/cpu"

// Recorder keeps a copy of every rendered frame.
type Recorder struct {
	Frames []cpu.Framebuffer
}

func (r *Recorder) Render(fb *cpu.Framebuffer) {
	r.Frames = append(r.Frames, *fb)
}

// Last returns the most recent frame, or nil if nothing was rendered.
func (r *Recorder) Last() *cpu.Framebuffer {
	if len(r.Frames) == 0 {
		return nil
	}
	return &r.Frames[len(r.Frames)-1]
}

func (r *Recorder) Reset() {
	r.Frames = r.Frames[:0]
}
