package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/gookit/color"
	"github.com/stretchr/testify/suite"
)

type BaseHTTPSuite struct {
	suite.Suite
	Config Config
	Client *http.Client
}

// SetupSuite loads the environment configuration and checks that the
// server under test answers; without one the scenarios are skipped
// rather than failed.
func (s *BaseHTTPSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	s.Client = &http.Client{Timeout: 60 * time.Second}

	resp, err := s.Client.Get(s.Config.ServerAddr + "/health")
	if err != nil {
		s.T().Skipf("No server reachable at %s: %v", s.Config.ServerAddr, err)
	}
	_ = resp.Body.Close()
}

// Step prints a colorized header so scenario phases stand out in logs
func (s *BaseHTTPSuite) Step(t *testing.T, name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	t.Log(header)
}

// Do sends the request, logs method/status/duration (and bodies when
// E2E_DEBUG_JSON is on) and returns the status code with the raw body.
func (s *BaseHTTPSuite) Do(t *testing.T, req *http.Request) (int, []byte) {
	start := time.Now()
	resp, err := s.Client.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)

	logBuilder := strings.Builder{}
	fmt.Fprintf(&logBuilder, "HTTP %s %s [%d] in %v", req.Method, req.URL.Path, resp.StatusCode, time.Since(start))
	if s.Config.DebugJSON {
		fmt.Fprintln(&logBuilder, "\nRESPONSE:")
		fmt.Fprintln(&logBuilder, string(body))
	}
	t.Log(logBuilder.String())

	return resp.StatusCode, body
}

// PostJSON sends a JSON payload to path.
func (s *BaseHTTPSuite) PostJSON(t *testing.T, path string, payload any) (int, []byte) {
	data, err := json.Marshal(payload)
	s.Require().NoError(err)
	if s.Config.DebugJSON {
		t.Logf("REQUEST:\n%s", data)
	}

	req, err := http.NewRequest(http.MethodPost, s.Config.ServerAddr+path, bytes.NewReader(data))
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	return s.Do(t, req)
}

// PostFile uploads filePath as the multipart "file" field of path.
func (s *BaseHTTPSuite) PostFile(t *testing.T, path, filePath, contentType string) (int, []byte) {
	content, err := os.ReadFile(filePath)
	s.Require().NoError(err)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filepath.Base(filePath)))
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	part, err := writer.CreatePart(header)
	s.Require().NoError(err)
	_, err = part.Write(content)
	s.Require().NoError(err)
	s.Require().NoError(writer.Close())

	req, err := http.NewRequest(http.MethodPost, s.Config.ServerAddr+path, &buf)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return s.Do(t, req)
}

// Get fetches path.
func (s *BaseHTTPSuite) Get(t *testing.T, path string) (int, []byte) {
	req, err := http.NewRequest(http.MethodGet, s.Config.ServerAddr+path, nil)
	s.Require().NoError(err)
	return s.Do(t, req)
}

// WriteSineWAV drops a one second sine fixture at rate/channels into dir.
func (s *BaseHTTPSuite) WriteSineWAV(dir string, rate, channels int) string {
	data := make([]int, rate*channels)
	for i := 0; i < rate; i++ {
		v := int(0.5 * 32767 * math.Sin(2*math.Pi*440*float64(i)/float64(rate)))
		for c := 0; c < channels; c++ {
			data[i*channels+c] = v
		}
	}
	return s.writeWAV(dir, fmt.Sprintf("sine_%d_%dch.wav", rate, channels), rate, channels, data)
}

// WriteSilenceWAV drops a one second all-zero fixture into dir.
func (s *BaseHTTPSuite) WriteSilenceWAV(dir string, rate int) string {
	return s.writeWAV(dir, "silence.wav", rate, 1, make([]int, rate))
}

func (s *BaseHTTPSuite) writeWAV(dir, name string, rate, channels int, data []int) string {
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	s.Require().NoError(err)

	enc := wav.NewEncoder(f, rate, 16, channels, 1)
	s.Require().NoError(enc.Write(&goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: rate},
		Data:           data,
		SourceBitDepth: 16,
	}))
	s.Require().NoError(enc.Close())
	s.Require().NoError(f.Close())
	return path
}
