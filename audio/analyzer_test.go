package audio

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"

	"voice-lab/domain"
	apperrors "voice-lab/errors"
)

func newTestAnalyzer(t *testing.T, tmpDir string, lister StreamLister) *Analyzer {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	if lister == nil {
		lister = &fakeStreamLister{}
	}
	prober := NewProber(log, lister)
	// The bogus binary path keeps the tool dependency out of WAV-only
	// tests; passthrough inputs never reach it.
	converter := NewConverter(log, filepath.Join(tmpDir, "missing-ffmpeg"), tmpDir)
	return NewAnalyzer(log, prober, converter)
}

func TestAnalyzer_Analyze_WAVPassthrough(t *testing.T) {
	req := require.New(t)

	dir := t.TempDir()
	tmpDir := t.TempDir()
	path := writeWAV(t, dir, "tone.wav", 16000, 1, 16, sineWave(16000, 16000, 440, 0.5))

	analyzer := newTestAnalyzer(t, tmpDir, nil)

	report, err := analyzer.Analyze(context.Background(), path)
	req.NoError(err)
	req.Equal(domain.TargetSampleRate, report.SampleRate)
	req.GreaterOrEqual(report.PESQScore, -0.5)
	req.LessOrEqual(report.PESQScore, 4.5)
	req.Equal(domain.Categorize(report.PESQScore), report.QualityCategory)
	req.Greater(report.SNRdB, 0.0, "a loud sine against calibration noise is well above the floor")

	// Passthrough leaves no temporary conversion file behind, and the
	// input itself survives.
	entries, err := os.ReadDir(tmpDir)
	req.NoError(err)
	req.Empty(entries)
	_, err = os.Stat(path)
	req.NoError(err)
}

func TestAnalyzer_Analyze_StereoHighRate(t *testing.T) {
	req := require.New(t)

	dir := t.TempDir()

	// Interleave an identical tone on both channels at 44.1 kHz.
	mono := sineWave(22050, 44100, 440, 0.5)
	stereo := make([]int, 0, len(mono)*2)
	for _, v := range mono {
		stereo = append(stereo, v, v)
	}
	path := writeWAV(t, dir, "stereo.wav", 44100, 2, 16, stereo)

	analyzer := newTestAnalyzer(t, t.TempDir(), nil)

	report, err := analyzer.Analyze(context.Background(), path)
	req.NoError(err)
	req.Equal(domain.TargetSampleRate, report.SampleRate)
	req.NotEmpty(report.QualityCategory)
}

func TestAnalyzer_Analyze_SilenceReportsZeroSNR(t *testing.T) {
	req := require.New(t)

	dir := t.TempDir()
	path := writeWAV(t, dir, "silence.wav", 16000, 1, 16, make([]int, 16000))

	analyzer := newTestAnalyzer(t, t.TempDir(), nil)

	report, err := analyzer.Analyze(context.Background(), path)
	req.NoError(err)
	req.Equal(0.0, report.SNRdB)
	req.Equal(domain.TargetSampleRate, report.SampleRate)
}

func TestAnalyzer_Analyze_CategoryStableAcrossRuns(t *testing.T) {
	req := require.New(t)

	dir := t.TempDir()
	path := writeWAV(t, dir, "tone.wav", 16000, 1, 16, sineWave(16000, 16000, 440, 0.5))

	analyzer := newTestAnalyzer(t, t.TempDir(), nil)

	first, err := analyzer.Analyze(context.Background(), path)
	req.NoError(err)
	second, err := analyzer.Analyze(context.Background(), path)
	req.NoError(err)

	// Scores wander with the independent noise draws; the bucket and
	// rate do not for a clearly placed input.
	req.Equal(first.QualityCategory, second.QualityCategory)
	req.Equal(first.SampleRate, second.SampleRate)
}

func TestAnalyzer_Analyze_RejectsMasqueradingPDF(t *testing.T) {
	req := require.New(t)

	dir := t.TempDir()
	path := writeBytes(t, dir, "report.wav", pdfStub())

	analyzer := newTestAnalyzer(t, t.TempDir(), nil)

	_, err := analyzer.Analyze(context.Background(), path)
	req.Error(err)

	var unsupported *apperrors.UnsupportedFormatError
	req.True(errors.As(err, &unsupported))
}

func TestAnalyzer_Analyze_ConversionFailureCleansUp(t *testing.T) {
	req := require.New(t)

	dir := t.TempDir()
	tmpDir := t.TempDir()
	path := writeBytes(t, dir, "voice.webm", webmStub())

	lister := &fakeStreamLister{list: &StreamList{Streams: []Stream{
		{CodecName: "opus", CodecType: "audio"},
	}}}
	analyzer := newTestAnalyzer(t, tmpDir, lister)

	_, err := analyzer.Analyze(context.Background(), path)
	req.Error(err)

	var convErr *apperrors.ConversionError
	req.True(errors.As(err, &convErr))

	// The failed conversion left nothing behind.
	entries, err := os.ReadDir(tmpDir)
	req.NoError(err)
	req.Empty(entries)
	_, err = os.Stat(path)
	req.NoError(err, "the caller's input must never be deleted")
}

func TestAnalyzer_Analyze_ConcurrentInvocations(t *testing.T) {
	req := require.New(t)

	dir := t.TempDir()
	path := writeWAV(t, dir, "tone.wav", 16000, 1, 16, sineWave(16000, 16000, 440, 0.5))

	analyzer := newTestAnalyzer(t, t.TempDir(), nil)

	const workers = 6
	reports := make([]*domain.AnalysisReport, workers)
	errs := make([]error, workers)

	done := make(chan int, workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			reports[i], errs[i] = analyzer.Analyze(context.Background(), path)
			done <- i
		}(i)
	}
	for i := 0; i < workers; i++ {
		<-done
	}

	for i := 0; i < workers; i++ {
		req.NoError(errs[i])
		req.Equal(domain.TargetSampleRate, reports[i].SampleRate)
	}
}
