// Package recorder pipes presented frames into ffmpeg.
package recorder

import (
	"fmt"
	"io"
	"log"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Recorder encodes raw RGBA frames of a fixed size to a video file. Frames
// arrive bottom row first, as glReadPixels returns them.
type Recorder struct {
	width  int
	height int
	pipe   *io.PipeWriter
	errc   chan error
	frames int64
}

// Args returns the ffmpeg input and output arguments for a width×height
// RGBA stream at fps.
func Args(width, height, fps int) (inputArgs ffmpeg.KwArgs, outputArgs ffmpeg.KwArgs) {
	inputArgs = ffmpeg.KwArgs{
		"f":       "rawvideo",
		"pix_fmt": "rgba",
		"s":       fmt.Sprintf("%dx%d", width, height),
		"r":       fps,
	}
	outputArgs = ffmpeg.KwArgs{
		"vf":      "vflip",
		"c:v":     "libx264",
		"pix_fmt": "yuv420p",
	}
	return
}

// New starts ffmpeg writing to outputFile. An empty ffmpegPath uses the
// ffmpeg found on PATH.
func New(outputFile string, width, height, fps int, ffmpegPath string) (*Recorder, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid recording size %dx%d", width, height)
	}
	if fps <= 0 {
		return nil, fmt.Errorf("invalid recording frame rate %d", fps)
	}
	pipeReader, pipeWriter := io.Pipe()
	inputArgs, outputArgs := Args(width, height, fps)

	ffmpegCmd := ffmpeg.Input("pipe:", inputArgs).
		Output(outputFile, outputArgs).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()
	if ffmpegPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(ffmpegPath)
	}

	r := &Recorder{
		width:  width,
		height: height,
		pipe:   pipeWriter,
		errc:   make(chan error, 1),
	}
	go func() {
		err := ffmpegCmd.Run()
		// Unblock the writer if ffmpeg exits early.
		pipeReader.CloseWithError(fmt.Errorf("ffmpeg exited: %v", err))
		r.errc <- err
	}()
	log.Printf("Recording %dx%d@%d to %s", width, height, fps, outputFile)
	return r, nil
}

func (r *Recorder) Size() (int, int) {
	return r.width, r.height
}

func (r *Recorder) WriteFrame(pixels []byte) error {
	if want := r.width * r.height * 4; len(pixels) != want {
		return fmt.Errorf("frame %d has %d bytes, want %d", r.frames, len(pixels), want)
	}
	if _, err := r.pipe.Write(pixels); err != nil {
		return err
	}
	r.frames++
	return nil
}

// Frames returns the number of frames written.
func (r *Recorder) Frames() int64 {
	return r.frames
}

// Close ends the stream and waits for ffmpeg to finish.
func (r *Recorder) Close() error {
	r.pipe.Close()
	err := <-r.errc
	log.Printf("Recorded %d frames", r.frames)
	return err
}
