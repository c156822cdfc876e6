package selcal

/*------------------------------------------------------------------
 *
 * Purpose:	The capture task: open the audio input stream and copy
 *		arriving PCM frames into the Ring Buffer.
 *
 * Description:	A pcmStream interface abstracts the PortAudio stream so
 *		tests can inject synthetic PCM without a real sound card. A
 *		dedicated goroutine calls Read() into a small transfer
 *		buffer in a loop, copying into shared state (the Ring
 *		Buffer) rather than blocking on the analyzer. The capture
 *		path does no I/O beyond the stream read, apart from a
 *		warning logged on each failed read, and never blocks on the
 *		analyzer task.
 *
 *------------------------------------------------------------------*/

import (
	"context"
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// frameSize is the number of samples read from the device per Read()
// call: 20ms at 8kHz, a small, low-latency transfer chunk.
const frameSize = 160

// pcmStream abstracts a PortAudio input stream so the capture loop can be
// exercised in tests without opening a real audio device.
type pcmStream interface {
	Start() error
	Stop() error
	Close() error
	Read() error
}

// Capture owns the audio input stream and the goroutine that drains it
// into a RingBuffer.
type Capture struct {
	stream pcmStream
	buf    []float32
	ring   *RingBuffer
	logger Logger

	underruns int
}

// OpenCapture opens a mono, SampleRate-Hz PortAudio input stream on the
// named device ("" selects the system default) and wires it to ring.
func OpenCapture(deviceName string, ring *RingBuffer, logger Logger) (*Capture, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate audio devices: %w", err)
	}

	device, err := resolveInputDevice(devices, deviceName)
	if err != nil {
		return nil, err
	}

	buf := make([]float32, frameSize)
	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   device,
			Channels: 1,
			Latency:  device.DefaultLowInputLatency,
		},
		SampleRate:      SampleRate,
		FramesPerBuffer: frameSize,
	}

	stream, err := portaudio.OpenStream(params, buf)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio input device %q: %w", deviceName, err)
	}

	return &Capture{stream: stream, buf: buf, ring: ring, logger: logger}, nil
}

func resolveInputDevice(devices []*portaudio.DeviceInfo, name string) (*portaudio.DeviceInfo, error) {
	if name == "" {
		return portaudio.DefaultInputDevice()
	}
	for _, d := range devices {
		if d.Name == name && d.MaxInputChannels > 0 {
			return d, nil
		}
	}
	return nil, fmt.Errorf("audio input device %q not found", name)
}

// Start starts the stream and runs the capture loop in a new goroutine
// until ctx is cancelled, at which point the stream is stopped and
// closed. The loop itself never allocates and never blocks on anything
// but the device.
func (c *Capture) Start(ctx context.Context) error {
	if err := c.stream.Start(); err != nil {
		return fmt.Errorf("failed to start audio stream: %w", err)
	}

	go c.captureLoop(ctx)

	return nil
}

func (c *Capture) captureLoop(ctx context.Context) {
	defer func() {
		_ = c.stream.Stop()
		_ = c.stream.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := c.stream.Read(); err != nil {
			c.underruns++
			if c.logger != nil {
				c.logger.Warn("audio underrun", "error", err, "total", c.underruns)
			}
			continue
		}

		c.ring.Write(c.buf)
	}
}

// Underruns returns the number of read errors observed so far, exposed
// for the audio-stats ticker.
func (c *Capture) Underruns() int { return c.underruns }
