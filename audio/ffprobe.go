package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
)

// FFProbe lists container streams by shelling out to ffprobe.
type FFProbe struct {
	binary string
}

func NewFFProbe(binary string) *FFProbe {
	if binary == "" {
		binary = "ffprobe"
	}
	return &FFProbe{binary: binary}
}

// ListStreams runs the inspector against path and decodes its JSON
// stream report.
func (f *FFProbe) ListStreams(ctx context.Context, path string) (*StreamList, error) {
	cmd := exec.CommandContext(ctx, f.binary,
		"-v", "quiet",
		"-print_format", "json",
		"-show_streams",
		path,
	)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", f.binary, err)
	}

	stderrData := make(chan []byte, 1)
	go func() {
		data, _ := io.ReadAll(stderr)
		stderrData <- data
	}()

	if err := cmd.Wait(); err != nil {
		errMsg := <-stderrData
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%s cancelled: %w", f.binary, ctx.Err())
		}
		return nil, fmt.Errorf("%s failed: %w: %s", f.binary, err, bytes.TrimSpace(errMsg))
	}

	var list StreamList
	if err := json.Unmarshal(stdout.Bytes(), &list); err != nil {
		return nil, fmt.Errorf("decoding %s output: %w", f.binary, err)
	}
	return &list, nil
}

// CheckFFProbeInstalled verifies the stream inspector can be executed.
func CheckFFProbeInstalled(binary string) error {
	if binary == "" {
		binary = "ffprobe"
	}
	cmd := exec.Command(binary, "-version")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffprobe not found or not executable: %w", err)
	}
	return nil
}
